// Package server provides the HTTP surface of the resume reviewer: the JSON
// API, the embedded single-page UI, and the download endpoints.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSessionNotFound indicates the review session does not exist or expired
type ErrSessionNotFound struct {
	ID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrSessionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
