package event

import "time"

// Event is one round of the season. Reference data, never mutated by the
// scoring engine.
type Event struct {
	ID             string
	Round          int
	Name           string
	Country        string
	HasSprint      bool
	LockAtUTC      time.Time
	SoftDeadlineAt time.Time
}

func (e Event) IsLocked(now time.Time) bool {
	if e.LockAtUTC.IsZero() {
		return false
	}
	return !now.Before(e.LockAtUTC)
}
