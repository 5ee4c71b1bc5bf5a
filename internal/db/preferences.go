package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetPreferences retrieves the user's preferences, or nil if none are stored
func (db *DB) GetPreferences(ctx context.Context, userID uuid.UUID) (*Preferences, error) {
	var prefs Preferences
	err := db.pool.QueryRow(ctx,
		`SELECT include_objective, location, updated_at FROM user_preferences WHERE user_id = $1`,
		userID,
	).Scan(&prefs.IncludeObjective, &prefs.Location, &prefs.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &prefs, nil
}

// SavePreferences upserts the user's preferences
func (db *DB) SavePreferences(ctx context.Context, userID uuid.UUID, prefs Preferences) (*Preferences, error) {
	saved := prefs
	err := db.pool.QueryRow(ctx,
		`INSERT INTO user_preferences (user_id, include_objective, location)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET include_objective = $2, location = $3, updated_at = NOW()
		 RETURNING updated_at`,
		userID, prefs.IncludeObjective, prefs.Location,
	).Scan(&saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return &saved, nil
}
