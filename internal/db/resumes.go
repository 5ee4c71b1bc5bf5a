package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-editor/internal/resume"
)

// GetResume retrieves the user's resume, or nil if none has been saved
func (db *DB) GetResume(ctx context.Context, userID uuid.UUID) (*StoredResume, error) {
	var stored StoredResume
	var document []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document, created_at, updated_at FROM resumes WHERE user_id = $1`,
		userID,
	).Scan(&document, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(document, &stored.Document); err != nil {
		return nil, fmt.Errorf("failed to decode stored resume: %w", err)
	}
	stored.Document = resume.Normalize(stored.Document)
	return &stored, nil
}

// SaveResume replaces the user's resume wholesale. The first save sets
// created_at; later saves only move updated_at. Concurrent saves are not
// reconciled and the last write wins.
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, doc resume.Document) (*StoredResume, error) {
	document, err := json.Marshal(resume.Normalize(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	stored := StoredResume{Document: resume.Normalize(doc)}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, document)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET document = $2, updated_at = NOW()
		 RETURNING created_at, updated_at`,
		userID, document,
	).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &stored, nil
}

// DeleteResume removes the user's resume
func (db *DB) DeleteResume(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}
