package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
	"github.com/sourcegraph/conc"
)

// SimulationService is the audit harness: it fabricates whole seasons of
// picks and results, rolls them up, and checks sanity properties the real
// engine must hold. It never touches stored data.
type SimulationService struct {
	logger *slog.Logger
}

func NewSimulationService(logger *slog.Logger) *SimulationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulationService{logger: logger}
}

type SimulationInput struct {
	Seasons        int
	UsersPerSeason int
	EventsPer      int
	Seed           int64
}

type SimulationReport struct {
	Seasons        int   `json:"seasons"`
	UsersPerSeason int   `json:"users_per_season"`
	EventsPer      int   `json:"events_per_season"`
	RollupsRun     int   `json:"rollups_run"`
	Anomalies      int   `json:"anomalies"`
	IntegrityScore int   `json:"integrity_score"`
	DurationMs     int64 `json:"duration_ms"`
}

const (
	simDefaultSeasons = 3
	simDefaultUsers   = 50
	simDefaultEvents  = 24
	simMaxSeasons     = 100
	simMaxUsers       = 5000
)

// Run executes every simulated season concurrently and aggregates the
// anomaly count into an integrity score: 100 minus 5 per anomaly, floored
// at zero.
func (s *SimulationService) Run(ctx context.Context, input SimulationInput) (SimulationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.Run")
	defer span.End()

	if input.Seasons <= 0 {
		input.Seasons = simDefaultSeasons
	}
	if input.UsersPerSeason <= 0 {
		input.UsersPerSeason = simDefaultUsers
	}
	if input.EventsPer <= 0 {
		input.EventsPer = simDefaultEvents
	}
	if input.Seasons > simMaxSeasons || input.UsersPerSeason > simMaxUsers {
		return SimulationReport{}, fmt.Errorf("%w: at most %d seasons and %d users per season", ErrInvalidInput, simMaxSeasons, simMaxUsers)
	}
	if input.Seed == 0 {
		input.Seed = time.Now().UnixNano()
	}

	started := time.Now()

	var mu sync.Mutex
	totalAnomalies := 0
	rollupsRun := 0

	var wg conc.WaitGroup
	for seasonIdx := 0; seasonIdx < input.Seasons; seasonIdx++ {
		seasonSeed := input.Seed + int64(seasonIdx)
		wg.Go(func() {
			anomalies, rollups := s.runSeason(seasonSeed, input.UsersPerSeason, input.EventsPer)
			mu.Lock()
			totalAnomalies += anomalies
			rollupsRun += rollups
			mu.Unlock()
		})
	}
	wg.Wait()

	score := 100 - 5*totalAnomalies
	if score < 0 {
		score = 0
	}

	report := SimulationReport{
		Seasons:        input.Seasons,
		UsersPerSeason: input.UsersPerSeason,
		EventsPer:      input.EventsPer,
		RollupsRun:     rollupsRun,
		Anomalies:      totalAnomalies,
		IntegrityScore: score,
		DurationMs:     time.Since(started).Milliseconds(),
	}

	s.logger.InfoContext(ctx, "simulation finished",
		"seasons", report.Seasons,
		"rollups", report.RollupsRun,
		"anomalies", report.Anomalies,
		"integrity_score", report.IntegrityScore,
	)
	return report, nil
}

func (s *SimulationService) runSeason(seed int64, users, events int) (anomalies, rollups int) {
	rng := rand.New(rand.NewSource(seed))
	grid := syntheticGrid()
	cfg := scoring.Default()
	resolve := func(result.EventResult) scoring.PointsSystem { return cfg }

	raceResults := make(map[string]result.EventResult, events)
	for e := 0; e < events; e++ {
		eventID := fmt.Sprintf("sim-evt-%d", e)
		raceResults[eventID] = syntheticResult(rng, grid, eventID, e%3 == 0)
	}

	for u := 0; u < users; u++ {
		userID := fmt.Sprintf("sim-user-%d", u)
		seasonPicks := make(map[string]pick.Selection, events)
		// Fixed iteration order keeps a given seed fully reproducible.
		for e := 0; e < events; e++ {
			eventID := fmt.Sprintf("sim-evt-%d", e)
			// Roughly one event in eight left unpicked, a normal state.
			if rng.Intn(8) == 0 {
				continue
			}
			seasonPicks[eventID] = syntheticSelection(rng, grid, userID, eventID)
		}

		rollup := RollupSeason(seasonPicks, raceResults, resolve, grid)
		rollups++
		anomalies += checkRollup(rollup, seasonPicks, grid)
	}
	return anomalies, rollups
}

// checkRollup counts sanity violations: negative aggregates, non-finite
// averages, and picked driver ids the grid cannot resolve.
func checkRollup(rollup SeasonScore, seasonPicks map[string]pick.Selection, grid roster.Snapshot) int {
	anomalies := 0

	if rollup.TotalPoints < 0 ||
		rollup.GrandPrixPoints < 0 ||
		rollup.SprintPoints < 0 ||
		rollup.GPQualifyingPoints < 0 ||
		rollup.SprintQualifyingPoints < 0 ||
		rollup.FastestLapPoints < 0 {
		anomalies++
	}

	if rollup.EventsScored > 0 {
		average := float64(rollup.TotalPoints) / float64(rollup.EventsScored)
		if math.IsNaN(average) || math.IsInf(average, 0) {
			anomalies++
		}
	}

	for _, sel := range seasonPicks {
		for _, driverID := range sel.PickedDriverIDs() {
			if !grid.HasDriver(driverID) {
				anomalies++
			}
		}
	}
	return anomalies
}

func syntheticGrid() roster.Snapshot {
	teams := make([]roster.Constructor, 0, 10)
	drivers := make([]roster.Driver, 0, 20)
	for t := 0; t < 10; t++ {
		class := roster.ClassA
		if t >= 5 {
			class = roster.ClassB
		}
		teamID := fmt.Sprintf("sim-team-%d", t)
		teams = append(teams, roster.Constructor{ID: teamID, Name: teamID, ClassOf: class, IsActive: true})
		for d := 0; d < 2; d++ {
			driverID := fmt.Sprintf("sim-drv-%d-%d", t, d)
			drivers = append(drivers, roster.Driver{
				ID:            driverID,
				Name:          driverID,
				ClassOf:       class,
				ConstructorID: teamID,
				IsActive:      true,
			})
		}
	}

	return roster.NewSnapshot(time.Unix(0, 0).UTC(), drivers, teams)
}

func syntheticResult(rng *rand.Rand, grid roster.Snapshot, eventID string, hasSprint bool) result.EventResult {
	order := rng.Perm(len(grid.Drivers))
	finishers := make([]string, len(order))
	for i, idx := range order {
		finishers[i] = grid.Drivers[idx].ID
	}

	res := result.EventResult{
		EventID:         eventID,
		GrandPrixFinish: finishers[:scoring.GrandPrixFinishPositions],
		GPQualifying:    finishers[:scoring.GPQualifyingPositions],
		FastestLap:      finishers[rng.Intn(len(finishers))],
		DriverTeams:     grid.DriverTeams(),
	}
	if hasSprint {
		res.SprintFinish = finishers[:scoring.SprintFinishPositions]
		res.SprintQualifying = finishers[:scoring.SprintQualifyingPositions]
	}
	return res
}

func syntheticSelection(rng *rand.Rand, grid roster.Snapshot, userID, eventID string) pick.Selection {
	var aTeams, bTeams []string
	for _, team := range grid.Constructors {
		if team.ClassOf == roster.ClassA {
			aTeams = append(aTeams, team.ID)
		} else {
			bTeams = append(bTeams, team.ID)
		}
	}
	var aDrivers, bDrivers []string
	for _, drv := range grid.Drivers {
		if drv.ClassOf == roster.ClassA {
			aDrivers = append(aDrivers, drv.ID)
		} else {
			bDrivers = append(bDrivers, drv.ID)
		}
	}

	pickSome := func(pool []string, n int) []string {
		order := rng.Perm(len(pool))
		out := make([]string, 0, n)
		for _, idx := range order[:n] {
			out = append(out, pool[idx])
		}
		return out
	}

	sel := pick.Selection{
		UserID:     userID,
		EventID:    eventID,
		ATeams:     pickSome(aTeams, pick.MaxATeams),
		BTeam:      bTeams[rng.Intn(len(bTeams))],
		ADrivers:   pickSome(aDrivers, pick.MaxADrivers),
		BDrivers:   pickSome(bDrivers, pick.MaxBDrivers),
		FastestLap: aDrivers[rng.Intn(len(aDrivers))],
	}
	// A sprinkling of penalties keeps the clamping path exercised.
	if rng.Intn(10) == 0 {
		sel.Penalty = float64(rng.Intn(10)+1) / 10.0
		sel.PenaltyReason = "simulated stewards decision"
	}
	return sel
}
