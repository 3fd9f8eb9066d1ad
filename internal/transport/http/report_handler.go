package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sailcli/internal/dataprocessing"
	apierrors "sailcli/internal/errors"
	"sailcli/internal/services"
	"sailcli/pkg/contracts/domain"
)

// ReportHandler handles report upload and processing requests.
type ReportHandler struct {
	service        *services.ReportService
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *ReportHandler {
	return &ReportHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "report_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/reports", h.ProcessReports)
	return r
}

// ProcessReports accepts one or more sail reports as a multipart upload and
// returns the normalized activity table, week summaries and selection index.
//
// Form fields: "reports" (one or more .xlsx files), "week_start" (weekday
// name or 0-6), "filter_violations" (bool), "contracts" (JSON object mapping
// vessel to weekly hours).
func (h *ReportHandler) ProcessReports(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidation("invalid multipart upload", err))
		return
	}

	files := r.MultipartForm.File["reports"]
	if len(files) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.NewEmptyInput("no report files uploaded"))
		return
	}

	inputs := make([]dataprocessing.Input, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.NewValidation("failed to read uploaded file", err))
			return
		}
		defer f.Close()
		inputs = append(inputs, dataprocessing.Input{Name: fh.Filename, Reader: f})
	}

	params, err := h.parseParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Process(r.Context(), inputs, params)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, newProcessResponse(result))
}

func (h *ReportHandler) parseParams(r *http.Request) (services.ProcessParams, error) {
	params := services.ProcessParams{
		WeekStart: r.FormValue("week_start"),
	}

	if v := r.FormValue("filter_violations"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return params, apierrors.NewValidation("invalid filter_violations value", err)
		}
		params.FilterViolations = &b
	}

	if v := r.FormValue("contracts"); v != "" {
		var contracts domain.ContractConfig
		if err := json.Unmarshal([]byte(v), &contracts); err != nil {
			return params, apierrors.NewValidation("invalid contracts value", err)
		}
		params.Contracts = contracts
	}
	return params, nil
}

// processResponse is the JSON shape consumed by the dashboard.
type processResponse struct {
	Vessels   []string                `json:"vessels"`
	Records   []domain.ActivityRecord `json:"records"`
	Weeks     []weekView              `json:"weeks"`
	Selection selectionView           `json:"selection"`
	Warnings  []string                `json:"warnings,omitempty"`
}

// weekView is one window's summary with display rounding applied and the
// delta against the vessel's contract target.
type weekView struct {
	Vessel          string    `json:"vessel"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	AvgSpeed        float64   `json:"avg_speed"`
	SailingHours    float64   `json:"sailing_hours"`
	WaitingHours    float64   `json:"waiting_hours"`
	TerminalHours   float64   `json:"terminal_hours"`
	RestingHours    float64   `json:"resting_hours"`
	ContractedHours float64   `json:"contracted_hours"`
	ContractTarget  float64   `json:"contract_target"`
	Delta           float64   `json:"delta"`
	ShortWeek       bool      `json:"short_week,omitempty"`
}

type selectionView struct {
	Starts []selectionEntry     `json:"starts"`
	Dates  map[string]time.Time `json:"dates"`
}

type selectionEntry struct {
	Start   time.Time          `json:"start"`
	Windows []domain.WindowRef `json:"windows"`
}

func newProcessResponse(result *dataprocessing.Result) processResponse {
	weeks := make([]weekView, 0, len(result.Windows))
	for _, w := range result.Windows {
		target := result.Contracts.HoursFor(w.Vessel)
		weeks = append(weeks, weekView{
			Vessel:          w.Vessel,
			Start:           w.Start(),
			End:             w.End(),
			AvgSpeed:        w.Summary.AvgSpeed,
			SailingHours:    domain.Round1(w.Summary.SailingHours),
			WaitingHours:    domain.Round1(w.Summary.WaitingHours),
			TerminalHours:   domain.Round1(w.Summary.TerminalHours),
			RestingHours:    domain.Round1(w.Summary.RestingHours),
			ContractedHours: domain.Round1(w.Summary.ContractedHours),
			ContractTarget:  target,
			Delta:           domain.Round1(w.Summary.Delta(target)),
			ShortWeek:       w.Summary.ShortWeek,
		})
	}

	starts := make([]selectionEntry, 0, len(result.Selection.Windows))
	for _, start := range result.Selection.SortedStarts() {
		starts = append(starts, selectionEntry{Start: start, Windows: result.Selection.At(start)})
	}

	return processResponse{
		Vessels: result.Vessels,
		Records: result.Records,
		Weeks:   weeks,
		Selection: selectionView{
			Starts: starts,
			Dates:  result.Selection.Dates,
		},
		Warnings: result.Warnings,
	}
}
