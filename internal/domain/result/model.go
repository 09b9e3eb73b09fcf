package result

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

// EventResult is the official outcome for one event. Finisher lists are
// ordered; an empty string at a position means no classified finisher was
// recorded for that place, which can never match a pick.
//
// DriverTeams and ScoringSnapshot, once frozen, are the reproducibility
// anchor: later roster or configuration edits must not alter them.
type EventResult struct {
	EventID          string
	GrandPrixFinish  []string
	GPQualifying     []string
	FastestLap       string
	SprintFinish     []string
	SprintQualifying []string
	DriverTeams      map[string]string
	ScoringSnapshot  *scoring.PointsSystem
	EnteredBy        string
	UpdatedAt        time.Time
}

// HasSprint reports whether the result carries sprint categories.
func (r EventResult) HasSprint() bool {
	return len(r.SprintFinish) > 0 || len(r.SprintQualifying) > 0
}

// TeamOf resolves a driver against the frozen assignment. Callers fall back
// to the live roster snapshot when the result has none.
func (r EventResult) TeamOf(driverID string) (string, bool) {
	if driverID == "" || len(r.DriverTeams) == 0 {
		return "", false
	}
	teamID, ok := r.DriverTeams[driverID]
	if !ok || teamID == "" {
		return "", false
	}
	return teamID, true
}
