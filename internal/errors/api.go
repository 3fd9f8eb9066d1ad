package errors

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the structured error payload returned by the HTTP surface.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates an APIError with the given parameters.
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// ErrorHandler converts pipeline errors into API responses.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError logs err and writes the corresponding API error response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, h.toAPIError(err))
}

// toAPIError maps AppError types onto HTTP statuses. Unknown errors become
// an opaque 500.
func (h *ErrorHandler) toAPIError(err error) *APIError {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	}

	apiErr := &APIError{ErrorCode: string(appErr.Type), Message: appErr.Message}
	if len(appErr.Context) > 0 {
		apiErr.Details = appErr.Context
	}

	switch appErr.Type {
	case ErrTypeDataFormat, ErrTypeRowParse, ErrTypeValidation:
		apiErr.StatusCode = http.StatusBadRequest
	case ErrTypeEmptyInput:
		apiErr.StatusCode = http.StatusUnprocessableEntity
	default:
		apiErr.StatusCode = http.StatusInternalServerError
	}
	return apiErr
}
