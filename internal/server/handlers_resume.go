package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/codec"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/server/middleware"
)

// maxDocumentBytes bounds request bodies that carry a document.
const maxDocumentBytes = 1 << 20

// EditRequest is the body of POST /resume/edits.
type EditRequest struct {
	Ops []editing.Op `json:"ops" validate:"required,min=1,dive"`
}

// LintResponse is the body of GET /resume/lint.
type LintResponse struct {
	Issues []resume.Issue `json:"issues"`
}

// requireUser returns the authenticated user or writes a 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// loadDocument returns the user's stored document, or the empty default
// when nothing has been saved yet.
func (s *Server) loadDocument(ctx context.Context, userID uuid.UUID) (resume.Document, error) {
	stored, err := s.store.GetResume(ctx, userID)
	if err != nil {
		return resume.Document{}, fmt.Errorf("failed to load resume: %w", err)
	}
	if stored == nil {
		return resume.New(), nil
	}
	return resume.Normalize(stored.Document), nil
}

// handleGetResume returns the stored record, or the empty default document
// without timestamps when the user has none.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	stored, err := s.store.GetResume(r.Context(), userID)
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to load resume: %w", err))
		return
	}
	if stored == nil {
		s.jsonResponse(w, http.StatusOK, resume.New())
		return
	}
	stored.Document = resume.Normalize(stored.Document)
	s.jsonResponse(w, http.StatusOK, stored)
}

// handlePutResume replaces the stored document. JSON bodies are checked
// against the resume schema; YAML bodies go through the codec.
func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	var doc resume.Document
	if isYAML(r.Header.Get("Content-Type")) {
		doc, err = codec.Deserialize(body)
		if err != nil {
			s.metrics.parseErrors.Inc()
			s.failure(w, r, err)
			return
		}
	} else {
		doc, err = decodeDocumentJSON(body)
		if err != nil {
			s.failure(w, r, err)
			return
		}
	}

	s.saveAndRespond(w, r, userID, doc)
}

// handleEdits applies a batch of edit operations atomically: either every
// operation applies and the result is saved, or nothing changes.
func (s *Server) handleEdits(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req EditRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes)).Decode(&req); err != nil {
		s.failure(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.failure(w, r, &ErrValidation{Field: "ops", Message: err.Error()})
		return
	}

	doc, err := s.loadDocument(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	doc, err = editing.ApplyAll(doc, req.Ops)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	for _, op := range req.Ops {
		s.metrics.editOps.WithLabelValues(string(op.Op)).Inc()
	}

	s.saveAndRespond(w, r, userID, doc)
}

// handleExport downloads the document as YAML.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	doc, err := s.loadDocument(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	data, err := codec.Serialize(doc)
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to serialize resume: %w", err))
		return
	}

	w.Header().Set("Content-Type", codec.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": codec.ExportFilename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[server] Error writing export: %v", err)
	}
}

// handleImport replaces the document with an uploaded YAML file. The body
// is either the raw YAML or a multipart form with a "file" part. A document
// that fails to parse leaves the stored one untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	body, err := readImport(w, r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	doc, err := codec.Deserialize(body)
	if err != nil {
		s.metrics.parseErrors.Inc()
		s.failure(w, r, err)
		return
	}

	s.saveAndRespond(w, r, userID, doc)
}

// handleLint reports presentation issues in the stored document.
func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	doc, err := s.loadDocument(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	issues := resume.Lint(doc)
	if issues == nil {
		issues = []resume.Issue{}
	}
	s.jsonResponse(w, http.StatusOK, LintResponse{Issues: issues})
}

func (s *Server) saveAndRespond(w http.ResponseWriter, r *http.Request, userID uuid.UUID, doc resume.Document) {
	stored, err := s.store.SaveResume(r.Context(), userID, resume.Normalize(doc))
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to save resume: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// decodeDocumentJSON validates a structured record against the schema and
// decodes it. Timestamps in the body are ignored.
func decodeDocumentJSON(body []byte) (resume.Document, error) {
	if err := schemas.ValidateDocumentJSON(body); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return resume.Document{}, err
		}
		return resume.Document{}, &ErrValidation{Field: "body", Message: "request body is not valid JSON"}
	}

	var stored db.StoredResume
	if err := json.Unmarshal(body, &stored); err != nil {
		return resume.Document{}, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return stored.Document, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return body, nil
}

func readImport(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return readBody(w, r)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, &ErrValidation{Field: "file", Message: err.Error()}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &ErrValidation{Field: "file", Message: err.Error()}
	}
	return data, nil
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.Contains(mediaType, "yaml")
}
