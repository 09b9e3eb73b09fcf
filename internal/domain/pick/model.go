package pick

import (
	"fmt"
	"time"
)

// Slot shape of one weekly selection. Empty strings are empty slots.
const (
	MaxATeams   = 2
	MaxADrivers = 3
	MaxBDrivers = 2
)

// Selection is one user's picks for one event. It is overwritten wholesale
// on submission and frozen once the event has an official result, except for
// the admin penalty fields.
type Selection struct {
	UserID        string
	EventID       string
	ATeams        []string
	BTeam         string
	ADrivers      []string
	BDrivers      []string
	FastestLap    string
	Penalty       float64
	PenaltyReason string
	SubmittedAt   time.Time
}

// SeasonPicks holds every per-event selection one user has made, keyed by
// event id. This is the per-user unit read by the leaderboard recompute.
type SeasonPicks struct {
	UserID     string
	ByEvent    map[string]Selection
	LastSaveAt time.Time
}

func (s Selection) ValidateShape() error {
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.EventID == "" {
		return fmt.Errorf("event id is required")
	}
	if len(s.ATeams) > MaxATeams {
		return fmt.Errorf("at most %d class A teams are allowed", MaxATeams)
	}
	if len(s.ADrivers) > MaxADrivers {
		return fmt.Errorf("at most %d class A drivers are allowed", MaxADrivers)
	}
	if len(s.BDrivers) > MaxBDrivers {
		return fmt.Errorf("at most %d class B drivers are allowed", MaxBDrivers)
	}
	if s.Penalty < 0 || s.Penalty > 1 {
		return fmt.Errorf("penalty must be within [0, 1]")
	}
	return nil
}

// IsEmpty reports whether the selection has no teams or drivers at all. An
// empty selection scores zero for every result.
func (s Selection) IsEmpty() bool {
	for _, id := range s.ATeams {
		if id != "" {
			return false
		}
	}
	if s.BTeam != "" {
		return false
	}
	for _, id := range s.ADrivers {
		if id != "" {
			return false
		}
	}
	for _, id := range s.BDrivers {
		if id != "" {
			return false
		}
	}
	return s.FastestLap == ""
}

// PickedTeamIDs returns the credited team ids, nulls dropped.
func (s Selection) PickedTeamIDs() []string {
	out := make([]string, 0, len(s.ATeams)+1)
	for _, id := range s.ATeams {
		if id != "" {
			out = append(out, id)
		}
	}
	if s.BTeam != "" {
		out = append(out, s.BTeam)
	}
	return out
}

// PickedDriverIDs returns the individually picked driver ids with nulls
// dropped and duplicates collapsed, preserving first-seen order.
func (s Selection) PickedDriverIDs() []string {
	seen := make(map[string]struct{}, len(s.ADrivers)+len(s.BDrivers))
	out := make([]string, 0, len(s.ADrivers)+len(s.BDrivers))
	for _, id := range append(append([]string(nil), s.ADrivers...), s.BDrivers...) {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
