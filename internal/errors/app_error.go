package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type AppError struct {
	Code       string
	Message    string
	Details    []string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetails(details []string) *AppError {
	e.Details = details

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidCategory = "INVALID_CATEGORY"
	ErrCodeFileValidation  = "FILE_VALIDATION_ERROR"
	ErrCodeMissingImage    = "MISSING_IMAGE"
	ErrCodeUploadFailed    = "UPLOAD_FAILED"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// InvalidCategoryError lists every allowed category in the message.
func InvalidCategoryError(allowed []string) *AppError {
	return NewAppError(ErrCodeInvalidCategory,
		fmt.Sprintf("Invalid category. Must be one of: %s", strings.Join(allowed, ", ")),
		http.StatusBadRequest)
}

func FileValidationError(message string) *AppError {
	return NewAppError(ErrCodeFileValidation, message, http.StatusBadRequest)
}

func MissingImageError() *AppError {
	return NewAppError(ErrCodeMissingImage, "At least one image is required", http.StatusBadRequest)
}

func UploadError(message string) *AppError {
	return NewAppError(ErrCodeUploadFailed, message, http.StatusInternalServerError)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

// SchemaValidationError carries one entry per failing field, the way the
// document store reports them.
func SchemaValidationError(fieldErrors []string) *AppError {
	return ValidationError(fmt.Sprintf("Validation failed: %s", strings.Join(fieldErrors, ", "))).
		WithDetails(fieldErrors)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
