package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies pipeline errors per the processing taxonomy.
type ErrorType string

const (
	// ErrTypeDataFormat marks an input file that does not match the expected
	// report layout. Fatal for that file, other files in a batch proceed.
	ErrTypeDataFormat ErrorType = "DATA_FORMAT"
	// ErrTypeRowParse marks a single unparsable row. Policy is
	// skip-with-warning, the row is dropped and the file proceeds.
	ErrTypeRowParse ErrorType = "ROW_PARSE"
	// ErrTypeEmptyInput marks zero files or all-empty parse results. Soft:
	// surfaced as "nothing to display", never a processing fault.
	ErrTypeEmptyInput ErrorType = "EMPTY_INPUT"
	// ErrTypeAmbiguousCategory marks a row with more than one positive
	// duration field. Resolved by priority order, logged, never fatal.
	ErrTypeAmbiguousCategory ErrorType = "AMBIGUOUS_CATEGORY"
	// ErrTypeValidation marks invalid configuration or request parameters.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeInternal marks invariant violations in stages that trust their
	// input. These are programming faults, not user input.
	ErrTypeInternal ErrorType = "INTERNAL"
)

// AppError is the application error carried through the pipeline.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new AppError.
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Cause: cause}
}

// NewDataFormat reports a file whose layout does not match the report schema.
func NewDataFormat(message string, cause error) *AppError {
	return New(ErrTypeDataFormat, message, cause)
}

// NewRowParse reports an unparsable row, identified by its sheet row number.
func NewRowParse(row int, message string, cause error) *AppError {
	return New(ErrTypeRowParse, message, cause).WithContext("row", row)
}

// NewEmptyInput reports that there is nothing to process.
func NewEmptyInput(message string) *AppError {
	return New(ErrTypeEmptyInput, message, nil)
}

// NewAmbiguousCategory reports a row with multiple positive duration fields.
func NewAmbiguousCategory(row int, message string) *AppError {
	return New(ErrTypeAmbiguousCategory, message, nil).WithContext("row", row)
}

// NewValidation reports invalid configuration or parameters.
func NewValidation(message string, cause error) *AppError {
	return New(ErrTypeValidation, message, cause)
}

// NewInternal reports an invariant violation.
func NewInternal(message string, cause error) *AppError {
	return New(ErrTypeInternal, message, cause)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
