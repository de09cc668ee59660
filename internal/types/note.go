package types

import "time"

// Priority is the 3-level label attached to quick notes.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	// PriorityAuto asks the priority detector to pick a label.
	PriorityAuto Priority = "Auto"
)

// DefaultWorkspace can never be deleted.
const DefaultWorkspace = "Main"

// QuickNote is a lightweight note that is never indexed into memory.
type QuickNote struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Content       string    `json:"content"`
	Priority      Priority  `json:"priority"`
	FinalPriority Priority  `json:"final_priority"`
	Workspace     string    `json:"workspace"`
	Encrypted     bool      `json:"is_encrypted"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuickNoteUpdate carries optional changes; nil fields are left untouched.
type QuickNoteUpdate struct {
	Content   *string
	Priority  *Priority
	Workspace *string
	Encrypted *bool
}
