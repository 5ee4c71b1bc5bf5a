package server

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/resume"
)

// Preview formats served by GET /resume/preview.
const (
	FormatHTML   = "html"
	FormatText   = "text"
	FormatLaTeX  = "tex"
	FormatLayout = "layout"
	FormatPDF    = "pdf"
)

// pdfFilename is the download name of the printed resume.
const pdfFilename = "resume.pdf"

// renderOptions derives render options from stored preferences. A nil
// preference record means the defaults.
func renderOptions(prefs *db.Preferences, doc resume.Document) rendering.Options {
	var opts rendering.Options
	var include *bool
	if prefs != nil {
		opts.LocationOverride = prefs.Location
		include = prefs.IncludeObjective
	}
	opts.OmitObjective = !resume.IncludeObjective(include, doc)
	return opts
}

// loadRenderInput loads the document and the options it renders with.
func (s *Server) loadRenderInput(ctx context.Context, userID uuid.UUID) (resume.Document, rendering.Options, error) {
	doc, err := s.loadDocument(ctx, userID)
	if err != nil {
		return resume.Document{}, rendering.Options{}, err
	}
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		return resume.Document{}, rendering.Options{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	return doc, renderOptions(prefs, doc), nil
}

// handlePreview renders the document in a text format. The layout format
// returns the intermediate layout as JSON.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatHTML
	}
	contentType, known := previewContentTypes[format]
	if !known {
		s.failure(w, r, &ErrValidation{Field: "format", Message: fmt.Sprintf("unsupported format %q", format)})
		return
	}

	doc, opts, err := s.loadRenderInput(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	start := time.Now()
	layout := rendering.Render(doc, opts)
	if format == FormatLayout {
		s.metrics.observeRender(format, start)
		s.jsonResponse(w, http.StatusOK, layout)
		return
	}

	out, err := renderText(format, layout)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.metrics.observeRender(format, start)

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		log.Printf("[server] Error writing preview: %v", err)
	}
}

var previewContentTypes = map[string]string{
	FormatHTML:   "text/html; charset=utf-8",
	FormatText:   "text/plain; charset=utf-8",
	FormatLaTeX:  "application/x-tex; charset=utf-8",
	FormatLayout: "application/json",
}

func renderText(format string, layout rendering.Layout) (string, error) {
	switch format {
	case FormatHTML:
		return rendering.HTML(layout)
	case FormatLaTeX:
		return rendering.LaTeX(layout)
	case FormatText:
		return rendering.Text(layout), nil
	}
	return "", &ErrValidation{Field: "format", Message: fmt.Sprintf("unsupported format %q", format)}
}

// handlePDF prints the document to PDF, serving repeat requests for the same
// content from the render cache.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
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

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": pdfFilename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("[server] Error writing PDF: %v", err)
	}
}

// renderPDF returns the printed document, consulting the cache first when
// one is configured. Cache failures are logged and otherwise ignored.
func (s *Server) renderPDF(ctx context.Context, doc resume.Document, opts rendering.Options) ([]byte, error) {
	if s.pdf == nil {
		return nil, &ErrUnavailable{Feature: "PDF rendering"}
	}

	fingerprint := rendering.Fingerprint(doc, opts)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, FormatPDF, fingerprint)
		if err != nil {
			log.Printf("[cache] Lookup failed for %s: %v", fingerprint[:12], err)
		}
		s.metrics.observeCache(cached != nil)
		if cached != nil {
			return cached, nil
		}
	}

	start := time.Now()
	html, err := rendering.HTML(rendering.Render(doc, opts))
	if err != nil {
		return nil, err
	}
	pdf, err := s.pdf.RenderPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	s.metrics.observeRender(FormatPDF, start)

	if s.cache != nil {
		if err := s.cache.Set(ctx, FormatPDF, fingerprint, pdf); err != nil {
			log.Printf("[cache] Store failed for %s: %v", fingerprint[:12], err)
		}
	}
	return pdf, nil
}
