package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-editor/internal/db"
)

// PreferencesRequest is the body of PUT /preferences. A null or absent
// includeObjective returns the objective toggle to its automatic default.
type PreferencesRequest struct {
	IncludeObjective *bool  `json:"includeObjective"`
	Location         string `json:"location" validate:"max=200"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	prefs, err := s.store.GetPreferences(r.Context(), userID)
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to load preferences: %w", err))
		return
	}
	if prefs == nil {
		prefs = &db.Preferences{}
	}
	s.jsonResponse(w, http.StatusOK, prefs)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req PreferencesRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	saved, err := s.store.SavePreferences(r.Context(), userID, db.Preferences{
		IncludeObjective: req.IncludeObjective,
		Location:         strings.TrimSpace(req.Location),
	})
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to save preferences: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}
