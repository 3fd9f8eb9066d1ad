package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailcli/pkg/contracts/domain"
)

func TestMerge(t *testing.T) {
	base := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	a := &domain.ShipReport{Vessel: "ShipA", Records: []domain.ActivityRecord{
		dayRecord("ShipA", base, 8, 12, domain.CategorySailing),
		dayRecord("ShipA", base, 12, 14, domain.CategoryWaiting),
	}}
	b := &domain.ShipReport{Vessel: "ShipB", Records: []domain.ActivityRecord{
		dayRecord("ShipB", base, 6, 10, domain.CategoryTerminal),
	}}
	// Same vessel uploaded twice: rows are appended, never merged by key.
	a2 := &domain.ShipReport{Vessel: "ShipA", Records: []domain.ActivityRecord{
		dayRecord("ShipA", base.AddDate(0, 0, 1), 8, 12, domain.CategorySailing),
	}}

	merged := Merge([]*domain.ShipReport{a, b, a2})
	require.Len(t, merged, 4)

	// Row order within each source is preserved.
	assert.Equal(t, a.Records[0], merged[0])
	assert.Equal(t, a.Records[1], merged[1])
	assert.Equal(t, b.Records[0], merged[2])
	assert.Equal(t, a2.Records[0], merged[3])

	assert.Equal(t, []string{"ShipA", "ShipB"}, Vessels(merged))
}

func TestMerge_EmptyInput(t *testing.T) {
	assert.Empty(t, Merge(nil))
	assert.Empty(t, Merge([]*domain.ShipReport{}))
	assert.Empty(t, Merge([]*domain.ShipReport{nil, {Vessel: "ShipA"}}))
}
