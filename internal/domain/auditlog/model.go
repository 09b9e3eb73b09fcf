package auditlog

import "time"

// Entry records one admin action against an event, for audit display. The
// scoring engine never reads these.
type Entry struct {
	AdminID   string
	EventID   string
	Action    string
	Changes   map[string]any
	Timestamp time.Time
}

const (
	ActionSaveResult   = "save_result"
	ActionApplyPenalty = "apply_penalty"
)
