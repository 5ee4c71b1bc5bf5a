package db

import (
	"time"

	"github.com/jonathan/resume-editor/internal/resume"
)

// StoredResume is the persisted record: the document's sections at the top
// level plus the two timestamps.
type StoredResume struct {
	resume.Document
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preferences holds per-user settings that affect rendering but are not part
// of the document.
type Preferences struct {
	// IncludeObjective is nil until the user chooses.
	IncludeObjective *bool     `json:"includeObjective"`
	Location         string    `json:"location"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
