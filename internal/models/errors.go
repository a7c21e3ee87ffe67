package models

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service and repository layers.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeStorage      = "STORAGE_ERROR"
)

// ErrorResponse is the standardized JSON error body.
type ErrorResponse struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// AppError is an immutable typed failure constructed at the call site.
// Fields carries one message per violated input field for validation
// failures.
type AppError struct {
	Code    string
	Message string
	Fields  []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, "; "))
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a single malformed client input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewFieldValidationError reports one message per violated field.
func NewFieldValidationError(fields ...string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewNotFoundError reports an absent Post or User.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewForbiddenError reports an ownership violation.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewUnauthorizedError reports a failed or missing authentication.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewStorageError reports a durable-store I/O failure. It is surfaced to
// the caller as-is; the core never retries.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    CodeStorage,
		Message: "Storage operation failed",
		Err:     err,
	}
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusUnprocessableEntity
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standardized error response, deriving the
// HTTP status from the error code.
func RespondWithError(c *fiber.Ctx, err error) error {
	response := ErrorResponse{Message: err.Error()}
	if appErr, ok := err.(*AppError); ok {
		response.Message = appErr.Message
		response.Code = appErr.Code
		response.Fields = appErr.Fields
	}
	return c.Status(HTTPStatus(err)).JSON(response)
}
