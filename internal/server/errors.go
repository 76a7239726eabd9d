package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-ats/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnknownRubric indicates a request named a rubric the server does not serve
type ErrUnknownRubric struct {
	Name string
}

func (e *ErrUnknownRubric) Error() string {
	return fmt.Sprintf("unknown rubric: %s", e.Name)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var rubricErr *ErrUnknownRubric
	var parseErr *ingestion.ParseError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr), errors.As(err, &rubricErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
