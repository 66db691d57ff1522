package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrTextTooLarge indicates a document over MaxTextBytes
type ErrTextTooLarge struct {
	Field string
	Size  int
	Limit int
}

func (e *ErrTextTooLarge) Error() string {
	return fmt.Sprintf("%s is %d bytes, limit is %d", e.Field, e.Size, e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation, *ErrTextTooLarge:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
