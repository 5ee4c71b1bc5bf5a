package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-editor/internal/backend"
	"github.com/jonathan/resume-editor/internal/codec"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &ErrValidation{Field: "ops", Message: "required"}, want: http.StatusBadRequest},
		{name: "parse", err: &codec.ParseError{Message: "bad", Line: 2}, want: http.StatusBadRequest},
		{name: "wrapped op", err: fmt.Errorf("op 0: %w", &editing.OpError{Op: editing.Op{Path: "x"}}), want: http.StatusBadRequest},
		{name: "schema", err: &schemas.ValidationError{}, want: http.StatusBadRequest},
		{name: "unavailable", err: &ErrUnavailable{Feature: "PDF rendering"}, want: http.StatusServiceUnavailable},
		{name: "backend", err: &backend.Error{Op: "upload", Message: "down"}, want: http.StatusBadGateway},
		{name: "render", err: &rendering.RenderError{Format: "pdf", Message: "boom"}, want: http.StatusInternalServerError},
		{name: "plain", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	t.Run("parse error carries line", func(t *testing.T) {
		body := errorBody(&codec.ParseError{Message: "bad indent", Line: 4})
		assert.Equal(t, 4, body["line"])
		assert.Equal(t, "parse error at line 4: bad indent", body["error"])
	})

	t.Run("parse error without line", func(t *testing.T) {
		body := errorBody(&codec.ParseError{Message: "bad"})
		assert.NotContains(t, body, "line")
	})

	t.Run("op error carries path", func(t *testing.T) {
		body := errorBody(fmt.Errorf("op 2: %w", &editing.OpError{
			Op:      editing.Op{Op: editing.KindSet, Path: "basic/nickname"},
			Message: "path does not name an editable field",
		}))
		assert.Equal(t, "basic/nickname", body["path"])
	})

	t.Run("schema error lists fields", func(t *testing.T) {
		body := errorBody(&schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "objective", Message: "Invalid type. Expected: string, given: integer"},
		}})
		fields, ok := body["fields"].([]map[string]string)
		assert.True(t, ok)
		assert.Equal(t, "objective", fields[0]["field"])
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		body := errorBody(errors.New("pq: password authentication failed"))
		assert.Equal(t, "internal server error", body["error"])
	})
}
