package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/jonathan/expert-profile/internal/parsing"
	"github.com/jonathan/expert-profile/internal/rendering"
	"github.com/jonathan/expert-profile/internal/schemas"
)

// ErrBadRequest indicates a body that could not be read or decoded
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		maxBytesErr   *http.MaxBytesError
		badRequestErr *ErrBadRequest
		inputErr      *parsing.InputError
		schemaErr     *schemas.ValidationError
		documentErr   *schemas.DocumentError
		formatErr     *rendering.FormatError
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
		apiCallErr    *parsing.APICallError
		llmErr        *llm.APIError
	)

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &badRequestErr), errors.As(err, &inputErr), errors.As(err, &schemaErr),
		errors.As(err, &documentErr), errors.As(err, &formatErr), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiCallErr), errors.As(err, &llmErr):
		return http.StatusBadGateway
	default:
		// parse, render and template errors
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the text sent to clients for err.
func ErrorMessage(err error) string {
	var inputErr *parsing.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	return err.Error()
}
