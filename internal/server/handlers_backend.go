package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-editor/internal/backend"
)

// GenerateRequest is the body of POST /resume/generate. The stored document
// is sent along with the job.
type GenerateRequest struct {
	JobURL         string `json:"jobUrl,omitempty" validate:"omitempty,url"`
	JobDescription string `json:"jobDescription,omitempty" validate:"required_without=JobURL"`
}

// UploadRequest is the body of POST /resume/upload. The stored document is
// printed to PDF and sent to the board.
type UploadRequest struct {
	Board  string `json:"board" validate:"required"`
	JobURL string `json:"jobUrl,omitempty" validate:"omitempty,url"`
}

// handleGenerate asks the backend to tailor the stored document to a job.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if s.backend == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "resume generation"})
		return
	}

	var req GenerateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	doc, err := s.loadDocument(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	resp, err := s.backend.Generate(r.Context(), backend.GenerateRequest{
		Resume:         doc,
		JobURL:         req.JobURL,
		JobDescription: req.JobDescription,
	})
	s.metrics.observeBackend("generate", err)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, resp)
}

// handleUpload prints the stored document and uploads it to a job board.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if s.backend == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "resume upload"})
		return
	}

	var req UploadRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	doc, opts, err := s.loadRenderInput(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	pdf, err := s.renderPDF(r.Context(), doc, opts)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	resp, err := s.backend.Upload(r.Context(), backend.UploadRequest{
		Board:    req.Board,
		JobURL:   req.JobURL,
		Filename: pdfFilename,
		PDF:      pdf,
	})
	s.metrics.observeBackend("upload", err)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, resp)
}

// decodeRequest decodes a JSON body into v and validates it, writing a 400
// on failure.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes)).Decode(v); err != nil {
		s.failure(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.failure(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return false
	}
	return true
}
