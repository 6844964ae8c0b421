package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/ukaji3/timesheet-go/pkg/timesheet"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates a new APIError with the given parameters
func NewAPIError(statusCode int, errorCode, message string, details any) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

const (
	CodeInvalidUpload    = "INVALID_UPLOAD"
	CodeInvalidWorkbook  = "INVALID_WORKBOOK"
	CodeProcessingFailed = "PROCESSING_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

// errInvalidUpload describes a request without a usable file part.
func errInvalidUpload(err error) *APIError {
	return NewAPIError(http.StatusBadRequest, CodeInvalidUpload, "Upload an .xlsx file in the \"file\" form field", err.Error())
}

// errFromCheck maps a failed check to its API error.
func errFromCheck(err error) *APIError {
	var ce *timesheet.CheckError
	if errors.As(err, &ce) {
		switch ce.Stage {
		case timesheet.StageLoad, timesheet.StageExtract:
			return NewAPIError(http.StatusUnprocessableEntity, CodeInvalidWorkbook, "The file could not be read as a timesheet workbook", ce.Err.Error())
		}
	}
	return NewAPIError(http.StatusInternalServerError, CodeProcessingFailed, "The timesheet could not be processed", err.Error())
}

func renderError(w http.ResponseWriter, r *http.Request, e *APIError) {
	if err := render.Render(w, r, e); err != nil {
		http.Error(w, e.Message, e.StatusCode)
	}
}
