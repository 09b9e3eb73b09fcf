package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

func testGrid() roster.Snapshot {
	return roster.NewSnapshot(
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		[]roster.Driver{
			{ID: "d1", Name: "Driver One", ClassOf: roster.ClassA, ConstructorID: "t1", IsActive: true},
			{ID: "d2", Name: "Driver Two", ClassOf: roster.ClassA, ConstructorID: "t1", IsActive: true},
			{ID: "d3", Name: "Driver Three", ClassOf: roster.ClassA, ConstructorID: "t2", IsActive: true},
			{ID: "d4", Name: "Driver Four", ClassOf: roster.ClassB, ConstructorID: "t2", IsActive: true},
			{ID: "d5", Name: "Driver Five", ClassOf: roster.ClassB, ConstructorID: "t3", IsActive: true},
		},
		[]roster.Constructor{
			{ID: "t1", Name: "Team One", ClassOf: roster.ClassA, IsActive: true},
			{ID: "t2", Name: "Team Two", ClassOf: roster.ClassA, IsActive: true},
			{ID: "t3", Name: "Team Three", ClassOf: roster.ClassB, IsActive: true},
		},
	)
}

func TestScoreEvent_DriverFinishAndFastestLap(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{
		UserID:     "user-1",
		EventID:    "gp-sakhir",
		ADrivers:   []string{"d3"},
		FastestLap: "d3",
	}
	res := result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d3", "d1", "d2"},
		FastestLap:      "d3",
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	if score.GrandPrix != 25 {
		t.Fatalf("unexpected grand prix points: got=%d want=25", score.GrandPrix)
	}
	if score.FastestLap != 3 {
		t.Fatalf("unexpected fastest lap points: got=%d want=3", score.FastestLap)
	}
	if score.Total != 28 {
		t.Fatalf("unexpected total: got=%d want=28", score.Total)
	}
}

func TestScoreEvent_TeamCreditCountsEveryFinisher(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{UserID: "user-1", EventID: "gp-sakhir", ATeams: []string{"t1"}}
	res := result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d1", "d3", "d4", "d5", "d2"},
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	// P1 (25) and P5 (10) both drive for the picked team.
	if score.GrandPrix != 35 {
		t.Fatalf("unexpected grand prix points: got=%d want=35", score.GrandPrix)
	}
}

func TestScoreEvent_DriverAndTeamCreditStack(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{
		UserID:   "user-1",
		EventID:  "gp-sakhir",
		ATeams:   []string{"t1"},
		ADrivers: []string{"d1"},
	}
	res := result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d1"},
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	if score.GrandPrix != 50 {
		t.Fatalf("expected team and driver credit to stack: got=%d want=50", score.GrandPrix)
	}
}

func TestScoreEvent_DuplicateDriverCreditedOnce(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{
		UserID:   "user-1",
		EventID:  "gp-sakhir",
		ADrivers: []string{"d4", "d4"},
		BDrivers: []string{"d4"},
	}
	res := result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d4"},
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	if score.GrandPrix != 25 {
		t.Fatalf("duplicate driver must be credited once: got=%d want=25", score.GrandPrix)
	}
}

func TestScoreEvent_SprintAndQualifyingBuckets(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{UserID: "user-1", EventID: "gp-shanghai", ADrivers: []string{"d1"}}
	res := result.EventResult{
		EventID:          "gp-shanghai",
		SprintFinish:     []string{"d1"},
		GPQualifying:     []string{"d1"},
		SprintQualifying: []string{"d2", "d1"},
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	if score.Sprint != 8 {
		t.Fatalf("unexpected sprint points: got=%d want=8", score.Sprint)
	}
	if score.GPQualifying != 3 {
		t.Fatalf("unexpected gp qualifying points: got=%d want=3", score.GPQualifying)
	}
	if score.SprintQualifying != 2 {
		t.Fatalf("unexpected sprint qualifying points: got=%d want=2", score.SprintQualifying)
	}
	if score.Qualifying() != 5 {
		t.Fatalf("unexpected combined qualifying: got=%d want=5", score.Qualifying())
	}
}

func TestScoreEvent_PenaltyRoundsUp(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{
		UserID:     "user-1",
		EventID:    "gp-sakhir",
		ADrivers:   []string{"d3"},
		FastestLap: "d3",
		Penalty:    0.5,
	}
	res := result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d3"},
		FastestLap:      "d3",
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	if score.Penalty != 14 {
		t.Fatalf("unexpected penalty: got=%d want=14", score.Penalty)
	}
	if score.Total != 14 {
		t.Fatalf("unexpected total: got=%d want=14", score.Total)
	}

	sel.Penalty = 0.33
	res.FastestLap = ""
	sel.FastestLap = ""
	res.GrandPrixFinish = []string{"", "", "", "", "d3"}
	score = ScoreEvent(sel, res, scoring.Default(), testGrid())
	// ceil(10 * 0.33) = 4
	if score.Penalty != 4 || score.Total != 6 {
		t.Fatalf("unexpected penalty rounding: penalty=%d total=%d", score.Penalty, score.Total)
	}
}

func TestScoreEvent_EmptySelectionScoresZero(t *testing.T) {
	t.Parallel()

	res := result.EventResult{
		EventID:          "gp-sakhir",
		GrandPrixFinish:  []string{"d1", "d2", "d3"},
		GPQualifying:     []string{"d1", "d2", "d3"},
		SprintFinish:     []string{"d1", "d2"},
		SprintQualifying: []string{"d1"},
		FastestLap:       "d1",
	}

	score := ScoreEvent(pick.Selection{UserID: "user-1", EventID: "gp-sakhir"}, res, scoring.Default(), testGrid())
	if score.Total != 0 {
		t.Fatalf("empty selection must score zero: got=%d", score.Total)
	}
}

func TestScoreEvent_EmptyPositionNeverMatches(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{UserID: "user-1", EventID: "gp-sakhir", ADrivers: []string{"d1"}}
	res := result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"", "d1"},
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	if score.GrandPrix != 18 {
		t.Fatalf("unexpected grand prix points: got=%d want=18", score.GrandPrix)
	}

	// Neither side declared a fastest lap; no accidental match on "".
	if score.FastestLap != 0 {
		t.Fatalf("empty fastest lap ids must not match: got=%d", score.FastestLap)
	}
}

func TestScoreEvent_MismatchedFastestLapScoresZero(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{
		UserID:     "user-1",
		EventID:    "gp-sakhir",
		ADrivers:   []string{"d1"},
		FastestLap: "d1",
	}
	res := result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d1"},
		FastestLap:      "d2",
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	if score.FastestLap != 0 {
		t.Fatalf("different fastest lap ids must not score: got=%d", score.FastestLap)
	}
	if score.Total != 25 {
		t.Fatalf("unexpected total: got=%d want=25", score.Total)
	}
}

func TestScoreEvent_Monotonicity(t *testing.T) {
	t.Parallel()

	// The selection references every table: GP positions 1-3, sprint 1-2,
	// both qualifying tables, fastest lap, and a penalty fraction.
	sel := pick.Selection{
		UserID:     "user-1",
		EventID:    "gp-sakhir",
		ADrivers:   []string{"d1", "d3"},
		BDrivers:   []string{"d5"},
		ATeams:     []string{"t1"},
		FastestLap: "d1",
		Penalty:    0.25,
	}
	res := result.EventResult{
		EventID:          "gp-sakhir",
		GrandPrixFinish:  []string{"d1", "d3", "d5", "d2"},
		GPQualifying:     []string{"d3", "d1", "d5"},
		SprintFinish:     []string{"d5", "d1"},
		SprintQualifying: []string{"d1", "d5", "d3"},
		FastestLap:       "d1",
	}
	grid := testGrid()
	base := ScoreEvent(sel, res, scoring.Default(), grid).Total

	check := func(name string, cfg scoring.PointsSystem) {
		if got := ScoreEvent(sel, res, cfg, grid).Total; got < base {
			t.Fatalf("%s: raising a table entry lowered the total: got=%d base=%d", name, got, base)
		}
	}

	for i := range scoring.Default().GrandPrixFinish {
		cfg := scoring.Default().Clone()
		cfg.GrandPrixFinish[i] += 5
		check(fmt.Sprintf("grand prix P%d", i+1), cfg)
	}
	for i := range scoring.Default().SprintFinish {
		cfg := scoring.Default().Clone()
		cfg.SprintFinish[i] += 5
		check(fmt.Sprintf("sprint P%d", i+1), cfg)
	}
	for i := range scoring.Default().GPQualifying {
		cfg := scoring.Default().Clone()
		cfg.GPQualifying[i] += 5
		check(fmt.Sprintf("gp qualifying P%d", i+1), cfg)
	}
	for i := range scoring.Default().SprintQualifying {
		cfg := scoring.Default().Clone()
		cfg.SprintQualifying[i] += 5
		check(fmt.Sprintf("sprint qualifying P%d", i+1), cfg)
	}
	cfg := scoring.Default().Clone()
	cfg.FastestLap += 5
	check("fastest lap", cfg)
}

func TestScoreEvent_FrozenDriverTeamsBeatLiveRoster(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{UserID: "user-1", EventID: "gp-sakhir", ATeams: []string{"t2"}}
	res := result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d1"},
		// d1 raced for t2 at the time; the live roster says t1.
		DriverTeams: map[string]string{"d1": "t2"},
	}

	score := ScoreEvent(sel, res, scoring.Default(), testGrid())
	if score.GrandPrix != 25 {
		t.Fatalf("frozen assignment must win over live roster: got=%d want=25", score.GrandPrix)
	}
}

func TestScoreEvent_Deterministic(t *testing.T) {
	t.Parallel()

	sel := pick.Selection{
		UserID:     "user-1",
		EventID:    "gp-sakhir",
		ATeams:     []string{"t1", "t2"},
		BTeam:      "t3",
		ADrivers:   []string{"d1", "d3"},
		BDrivers:   []string{"d5"},
		FastestLap: "d1",
		Penalty:    0.25,
	}
	res := result.EventResult{
		EventID:          "gp-sakhir",
		GrandPrixFinish:  []string{"d3", "d1", "d5", "d2", "d4"},
		GPQualifying:     []string{"d1", "d3", "d5"},
		SprintFinish:     []string{"d5", "d3"},
		SprintQualifying: []string{"d3", "d5", "d1"},
		FastestLap:       "d1",
	}

	first := ScoreEvent(sel, res, scoring.Default(), testGrid())
	for i := 0; i < 10; i++ {
		if got := ScoreEvent(sel, res, scoring.Default(), testGrid()); got != first {
			t.Fatalf("score changed across runs: got=%+v want=%+v", got, first)
		}
	}
}

func TestRollupSeason_SkipsEventsWithoutResults(t *testing.T) {
	t.Parallel()

	grid := testGrid()
	resolve := NewConfigResolver(scoring.Settings{}, false)

	picks := map[string]pick.Selection{
		"gp-sakhir": {UserID: "user-1", EventID: "gp-sakhir", ADrivers: []string{"d1"}},
		"gp-jeddah": {UserID: "user-1", EventID: "gp-jeddah", ADrivers: []string{"d1"}},
		"gp-monaco": {UserID: "user-1", EventID: "gp-monaco", ADrivers: []string{"d1"}},
	}
	results := map[string]result.EventResult{
		"gp-sakhir": {EventID: "gp-sakhir", GrandPrixFinish: []string{"d1"}},
		"gp-jeddah": {EventID: "gp-jeddah", GrandPrixFinish: []string{"d2", "d1"}},
	}

	rollup := RollupSeason(picks, results, resolve, grid)
	if rollup.EventsScored != 2 {
		t.Fatalf("unexpected events scored: got=%d want=2", rollup.EventsScored)
	}
	if rollup.TotalPoints != 43 {
		t.Fatalf("unexpected total: got=%d want=43", rollup.TotalPoints)
	}
	if rollup.GrandPrixPoints != 43 {
		t.Fatalf("unexpected grand prix bucket: got=%d want=43", rollup.GrandPrixPoints)
	}
}

func TestRollupSeason_UnpickedEventContributesZero(t *testing.T) {
	t.Parallel()

	resolve := NewConfigResolver(scoring.Settings{}, false)
	results := map[string]result.EventResult{
		"gp-sakhir": {EventID: "gp-sakhir", GrandPrixFinish: []string{"d1"}},
	}

	rollup := RollupSeason(nil, results, resolve, testGrid())
	if rollup.TotalPoints != 0 || rollup.EventsScored != 1 {
		t.Fatalf("unexpected rollup: %+v", rollup)
	}
}

func TestNewConfigResolver_Chain(t *testing.T) {
	t.Parallel()

	custom := scoring.PointsSystem{
		GrandPrixFinish: []int{10, 5},
		FastestLap:      1,
	}
	settings := scoring.Settings{
		Profiles:        []scoring.Profile{{ID: "p-custom", Name: "Custom", Points: custom}},
		ActiveProfileID: "p-custom",
	}

	noSettings := NewConfigResolver(scoring.Settings{}, false)
	if got := noSettings(result.EventResult{}); got.FastestLap != scoring.Default().FastestLap {
		t.Fatalf("expected default fallback without settings")
	}

	withProfile := NewConfigResolver(settings, true)
	if got := withProfile(result.EventResult{}); got.FastestLap != 1 {
		t.Fatalf("expected active profile fallback, got %+v", got)
	}

	snapshot := scoring.PointsSystem{GrandPrixFinish: []int{50}, FastestLap: 9}
	res := result.EventResult{ScoringSnapshot: &snapshot}
	if got := withProfile(res); got.FastestLap != 9 {
		t.Fatalf("expected frozen snapshot to win, got %+v", got)
	}
}
