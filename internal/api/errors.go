// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bdo-activity/backend/internal/session"
	"github.com/bdo-activity/backend/internal/validation"
	"github.com/bdo-activity/backend/internal/wizard"
)

// ShowErrorDetails includes the cause of unexpected errors in responses.
var ShowErrorDetails = false

// APIError represents a structured API error response
type APIError struct {
	Status  int                 `json:"-"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
	Errors  validation.ErrorSet `json:"errors,omitempty"`
	Failing []string            `json:"failing,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewValidationFailure creates a 422 carrying every field flag and the
// aggregated alert text of a failed step.
func NewValidationFailure(res validation.Result) *APIError {
	return &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    "VALIDATION_FAILED",
		Message: res.Message(),
		Errors:  res.Errors,
		Failing: res.Failing(),
	}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(resource string, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewConflictError creates a 409 Conflict error
func NewConflictError(message string) *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Code:    "CONFLICT",
		Message: message,
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewServiceUnavailableError creates a 503 Service Unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    "SERVICE_UNAVAILABLE",
		Message: message,
	}
}

// toAPIError maps domain errors onto their HTTP shape.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &httpErr):
		return &APIError{
			Status:  httpErr.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	case errors.Is(err, session.ErrSessionNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, wizard.ErrRecordNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, wizard.ErrInvalidTransition), errors.Is(err, wizard.ErrAtRoot):
		return NewConflictError(err.Error())
	case errors.Is(err, session.ErrTooManySessions):
		return NewServiceUnavailableError(err.Error())
	}

	apiErr = &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "UNKNOWN_ERROR",
		Message: "An unexpected error occurred",
	}
	if ShowErrorDetails {
		apiErr.Details = err.Error()
	}
	return apiErr
}

// ErrorHandler middleware for Echo
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := toAPIError(err)
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(apiErr.Status)
		return
	}
	_ = c.JSON(apiErr.Status, apiErr)
}

// RespondWithError is a helper to respond with an APIError
func RespondWithError(c echo.Context, err *APIError) error {
	return c.JSON(err.Status, err)
}
