package app_error

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field that failed validation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fieldError := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fieldError.Field, fieldError.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field string, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// OrNil returns nil when nothing was added so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

func NewValidationError(field string, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// HTTPStatus classifies err: 400 for validation errors, 404 for missing
// records and 500 otherwise.
func HTTPStatus(err error) int {
	var validationError *ValidationError
	switch {
	case errors.As(err, &validationError):
		return http.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	var validationError *ValidationError
	if errors.As(err, &validationError) {
		c.JSON(status, gin.H{"message": "Validation error", "errors": validationError.Errors})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}
