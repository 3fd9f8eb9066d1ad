package dataprocessing

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildReportWorkbook assembles an in-memory workbook in the fixed sail
// report layout: vessel name at B2, headers at row 8, data from row 9 and
// two trailing summary rows.
func buildReportWorkbook(t *testing.T, vessel string, rows [][]string) *bytes.Buffer {
	t.Helper()
	return buildWorkbook(t, vessel, []string{
		"Niet-flexibel", "Start", "Einde", "Vaaruren", "Wachttijd", "Rusttijd", "Laad/Lostijd", "Snelheid",
	}, rows)
}

func buildWorkbook(t *testing.T, vessel string, header []string, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetCellValue(sheet, "B2", vessel))
	require.NoError(t, f.SetSheetRow(sheet, "A8", rowValues(header)))

	rowNum := 9
	for _, row := range rows {
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), rowValues(row)))
		rowNum++
	}

	// Trailing summary rows the parser must discard.
	require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), rowValues([]string{"Totaal", "", "", "99:99"})))
	require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum+1), rowValues([]string{"Einde rapport"})))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func rowValues(cells []string) *[]interface{} {
	vals := make([]interface{}, len(cells))
	for i, c := range cells {
		vals[i] = c
	}
	return &vals
}
