// Package errors provides structured error handling for the kitchen services
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

// Error codes exposed to API clients
const (
	// Client errors (4xx)
	CodeBadRequest          ErrorCode = "BAD_REQUEST"
	CodeInvalidInput        ErrorCode = "INVALID_INPUT"
	CodeUpstreamFetchFailed ErrorCode = "UPSTREAM_FETCH_FAILED"
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeForbidden           ErrorCode = "FORBIDDEN"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests     ErrorCode = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeExtractionFailed     ErrorCode = "EXTRACTION_FAILED"
	CodeServiceUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Business logic errors
	CodeRecipeNotFound      ErrorCode = "RECIPE_NOT_FOUND"
	CodePantryItemNotFound  ErrorCode = "PANTRY_ITEM_NOT_FOUND"
	CodeMasterRecipeMissing ErrorCode = "MASTER_RECIPE_NOT_FOUND"
)

// AppError represents an application error with structured information
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeInvalidInput, CodeUpstreamFetchFailed:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeRecipeNotFound, CodePantryItemNotFound, CodeMasterRecipeMissing:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewInvalidInputError reports caller input that was rejected before any work was done
func NewInvalidInputError(message string) *AppError {
	return NewAppError(CodeInvalidInput, message, "")
}

// NewUpstreamFetchError reports that a source page could not be retrieved
func NewUpstreamFetchError(url string, cause error) *AppError {
	return NewAppError(
		CodeUpstreamFetchFailed,
		"Failed to fetch recipe page",
		cause.Error(),
	).WithMetadata("url", url).WithCause(cause)
}

// NewExtractionError reports that the model produced nothing usable
func NewExtractionError(cause error) *AppError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return NewAppError(
		CodeExtractionFailed,
		"Failed to extract recipe from page",
		details,
	).WithCause(cause)
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return NewAppError(CodeUnauthorized, message, "")
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "Access forbidden"
	}
	return NewAppError(CodeForbidden, message, "")
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", strings.ToUpper(resource[:1])+resource[1:])
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewTooManyRequestsError creates a rate limit error
func NewTooManyRequestsError() *AppError {
	return NewAppError(CodeTooManyRequests, "Too many requests", "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// NewExternalServiceError creates an external service error
func NewExternalServiceError(service string, cause error) *AppError {
	return NewAppError(
		CodeExternalServiceError,
		"External service error",
		fmt.Sprintf("Failed to communicate with %s", service),
	).WithCause(cause)
}

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(recipeID string) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %s does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

// NewPantryItemNotFoundError creates a pantry item not found error
func NewPantryItemNotFoundError(itemID string) *AppError {
	return NewAppError(
		CodePantryItemNotFound,
		"Pantry item not found",
		fmt.Sprintf("Pantry item with ID %s does not exist", itemID),
	).WithMetadata("item_id", itemID)
}

// NewMasterRecipeNotFoundError creates a catalog lookup error
func NewMasterRecipeNotFoundError(id string) *AppError {
	return NewAppError(
		CodeMasterRecipeMissing,
		"Master recipe not found",
		fmt.Sprintf("Master recipe with ID %s does not exist", id),
	).WithMetadata("master_recipe_id", id)
}

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// StatusOf maps any error onto an HTTP status
func StatusOf(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "pkg/errors") {
			builder.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Tag     string      `json:"tag"`
	Message string      `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	if len(v) == 1 {
		return v[0].Message
	}

	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}

	return strings.Join(messages, "; ")
}

// NewValidationErrors creates validation errors from validator errors
func NewValidationErrors(errors []ValidationError) *AppError {
	validationErrs := ValidationErrors(errors)

	return NewAppError(
		CodeValidationFailed,
		"Validation failed",
		validationErrs.Error(),
	).WithMetadata("validation_errors", validationErrs)
}

// ErrorResponse is the error envelope returned by every endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToErrorResponse converts an error to the API error envelope
func ToErrorResponse(err error) ErrorResponse {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		if appErr.Details != "" && appErr.StatusCode() < http.StatusInternalServerError {
			return ErrorResponse{Error: fmt.Sprintf("%s: %s", appErr.Message, appErr.Details)}
		}
		return ErrorResponse{Error: appErr.Message}
	}
	return ErrorResponse{Error: "An unexpected error occurred"}
}
