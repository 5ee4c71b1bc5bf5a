package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-editor/internal/backend"
	"github.com/jonathan/resume-editor/internal/codec"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a collaborator the request needs is not configured.
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		unavailable   *ErrUnavailable
		parseErr      *codec.ParseError
		opErr         *editing.OpError
		schemaErr     *schemas.ValidationError
		backendErr    *backend.Error
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &parseErr),
		errors.As(err, &opErr),
		errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &backendErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the JSON body for err. Client errors carry enough detail
// to point at the offending input; server errors are reported generically.
func errorBody(err error) map[string]any {
	body := map[string]any{"error": err.Error()}

	var (
		parseErr  *codec.ParseError
		opErr     *editing.OpError
		schemaErr *schemas.ValidationError
	)
	switch {
	case errors.As(err, &parseErr):
		body["error"] = parseErr.Error()
		if parseErr.Line > 0 {
			body["line"] = parseErr.Line
		}
	case errors.As(err, &opErr):
		body["error"] = opErr.Error()
		body["path"] = opErr.Op.Path
	case errors.As(err, &schemaErr):
		body["error"] = "document does not match the resume schema"
		fields := make([]map[string]string, 0, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			fields = append(fields, map[string]string{"field": fe.Field, "message": fe.Message})
		}
		body["fields"] = fields
	}

	if HTTPStatus(err) == http.StatusInternalServerError {
		body["error"] = "internal server error"
	}
	return body
}
