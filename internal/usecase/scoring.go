package usecase

import (
	"math"

	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

// EventScore is the point breakdown for one user and one event. Category
// buckets are pre-penalty; Total is post-penalty and may be negative when
// the deduction exceeds the subtotal. Callers decide whether to clamp.
type EventScore struct {
	GrandPrix        int
	Sprint           int
	GPQualifying     int
	SprintQualifying int
	FastestLap       int
	Penalty          int
	Total            int
}

// Qualifying is the combined qualifying bucket used in breakdown displays.
func (s EventScore) Qualifying() int {
	return s.GPQualifying + s.SprintQualifying
}

func (s EventScore) preTotal() int {
	return s.GrandPrix + s.Sprint + s.GPQualifying + s.SprintQualifying + s.FastestLap
}

// SeasonScore accumulates per-event scores across a season. TotalPoints is
// post-penalty with each event's contribution clamped at zero.
type SeasonScore struct {
	TotalPoints            int
	GrandPrixPoints        int
	SprintPoints           int
	GPQualifyingPoints     int
	SprintQualifyingPoints int
	FastestLapPoints       int
	EventsScored           int
}

// ConfigResolver yields the effective points configuration for one result:
// the result's frozen snapshot when present, otherwise the caller's
// fallback chain (active profile, then hardcoded default).
type ConfigResolver func(res result.EventResult) scoring.PointsSystem

// NewConfigResolver builds the resolution chain of the engine: result
// snapshot, then active profile, then scoring.Default. It never fails;
// missing configuration degrades to the default table.
func NewConfigResolver(settings scoring.Settings, hasSettings bool) ConfigResolver {
	fallback := scoring.Default()
	if hasSettings {
		if active, ok := settings.ActiveProfile(); ok {
			fallback = active.Points
		}
	}

	return func(res result.EventResult) scoring.PointsSystem {
		if res.ScoringSnapshot != nil {
			return *res.ScoringSnapshot
		}
		return fallback
	}
}

// ScoreEvent computes one user's points for one event. Pure and
// deterministic: identical inputs always produce identical output.
//
// Team credit and driver credit are independent paths that stack; a driver
// both individually picked and driving for a picked team earns points
// through both. Individually picked driver ids are deduplicated, so one
// driver filling two slots is credited once per category. Unknown driver
// ids resolve to no team and contribute nothing.
func ScoreEvent(sel pick.Selection, res result.EventResult, cfg scoring.PointsSystem, grid roster.Snapshot) EventScore {
	var score EventScore

	resolveTeam := func(driverID string) (string, bool) {
		if driverID == "" {
			return "", false
		}
		if teamID, ok := res.TeamOf(driverID); ok {
			return teamID, true
		}
		return grid.TeamOf(driverID)
	}

	creditedTeams := make(map[string]struct{})
	for _, teamID := range sel.PickedTeamIDs() {
		creditedTeams[teamID] = struct{}{}
	}

	// A credited team earns once per driver in a scored position, so two
	// finishers from the same picked team both count.
	teamPoints := func(finishers []string, table []int) int {
		total := 0
		for position, driverID := range finishers {
			if driverID == "" {
				continue
			}
			teamID, ok := resolveTeam(driverID)
			if !ok {
				continue
			}
			if _, credited := creditedTeams[teamID]; !credited {
				continue
			}
			total += scoring.PointsAt(table, position)
		}
		return total
	}

	score.GrandPrix += teamPoints(res.GrandPrixFinish, cfg.GrandPrixFinish)
	score.Sprint += teamPoints(res.SprintFinish, cfg.SprintFinish)
	score.GPQualifying += teamPoints(res.GPQualifying, cfg.GPQualifying)
	score.SprintQualifying += teamPoints(res.SprintQualifying, cfg.SprintQualifying)

	driverPoints := func(driverID string, finishers []string, table []int) int {
		for position, finisher := range finishers {
			if finisher != "" && finisher == driverID {
				return scoring.PointsAt(table, position)
			}
		}
		return 0
	}

	for _, driverID := range sel.PickedDriverIDs() {
		score.GrandPrix += driverPoints(driverID, res.GrandPrixFinish, cfg.GrandPrixFinish)
		score.Sprint += driverPoints(driverID, res.SprintFinish, cfg.SprintFinish)
		score.GPQualifying += driverPoints(driverID, res.GPQualifying, cfg.GPQualifying)
		score.SprintQualifying += driverPoints(driverID, res.SprintQualifying, cfg.SprintQualifying)
	}

	if sel.FastestLap != "" && sel.FastestLap == res.FastestLap {
		score.FastestLap += cfg.FastestLap
	}

	preTotal := score.preTotal()
	if sel.Penalty > 0 {
		// Rounded up, toward the larger deduction.
		score.Penalty = int(math.Ceil(float64(preTotal) * sel.Penalty))
	}
	score.Total = preTotal - score.Penalty

	return score
}

// RollupSeason sums ScoreEvent across every event with an available result.
// Events without a result are skipped: results-pending is a normal state,
// not an error. Events a user never picked contribute zero through an empty
// selection. Negative per-event totals are clamped before accumulating.
func RollupSeason(
	seasonPicks map[string]pick.Selection,
	raceResults map[string]result.EventResult,
	resolve ConfigResolver,
	grid roster.Snapshot,
) SeasonScore {
	var rollup SeasonScore

	for eventID, res := range raceResults {
		sel := seasonPicks[eventID]

		score := ScoreEvent(sel, res, resolve(res), grid)
		rollup.GrandPrixPoints += score.GrandPrix
		rollup.SprintPoints += score.Sprint
		rollup.GPQualifyingPoints += score.GPQualifying
		rollup.SprintQualifyingPoints += score.SprintQualifying
		rollup.FastestLapPoints += score.FastestLap

		eventTotal := score.Total
		if eventTotal < 0 {
			eventTotal = 0
		}
		rollup.TotalPoints += eventTotal
		rollup.EventsScored++
	}

	return rollup
}
