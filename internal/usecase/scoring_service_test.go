package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
)

func scoringServiceFixture() (*ScoringService, *stubPickRepository, *stubResultRepository) {
	pickRepo := newStubPickRepository()
	resultRepo := newStubResultRepository()
	svc := NewScoringService(pickRepo, resultRepo, &stubScoringRepository{}, &stubRosterRepository{snapshot: testGrid()})
	return svc, pickRepo, resultRepo
}

func TestScoringService_GetUserEventScore(t *testing.T) {
	t.Parallel()

	svc, pickRepo, resultRepo := scoringServiceFixture()
	pickRepo.put(pick.Selection{UserID: "user-1", EventID: "gp-sakhir", ADrivers: []string{"d1"}, FastestLap: "d1"})
	resultRepo.results["gp-sakhir"] = result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d1", "d2"},
		FastestLap:      "d1",
	}

	score, err := svc.GetUserEventScore(context.Background(), "user-1", "gp-sakhir")
	if err != nil {
		t.Fatalf("get event score: %v", err)
	}
	if score.Score.Total != 28 {
		t.Fatalf("expected 28 points (win plus fastest lap), got %d", score.Score.Total)
	}
}

func TestScoringService_GetUserEventScore_NoResultYet(t *testing.T) {
	t.Parallel()

	svc, pickRepo, _ := scoringServiceFixture()
	pickRepo.put(pick.Selection{UserID: "user-1", EventID: "gp-sakhir", ADrivers: []string{"d1"}})

	if _, err := svc.GetUserEventScore(context.Background(), "user-1", "gp-sakhir"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoringService_GetUserEventScore_MissingPickScoresZero(t *testing.T) {
	t.Parallel()

	svc, _, resultRepo := scoringServiceFixture()
	resultRepo.results["gp-sakhir"] = result.EventResult{
		EventID:         "gp-sakhir",
		GrandPrixFinish: []string{"d1"},
	}

	score, err := svc.GetUserEventScore(context.Background(), "user-2", "gp-sakhir")
	if err != nil {
		t.Fatalf("get event score: %v", err)
	}
	if score.Score.Total != 0 {
		t.Fatalf("expected zero points without a pick, got %d", score.Score.Total)
	}
}

func TestScoringService_GetUserSeasonSummary_Average(t *testing.T) {
	t.Parallel()

	svc, pickRepo, resultRepo := scoringServiceFixture()
	pickRepo.put(pick.Selection{UserID: "user-1", EventID: "gp-sakhir", ADrivers: []string{"d1"}})
	pickRepo.put(pick.Selection{UserID: "user-1", EventID: "gp-jeddah", ADrivers: []string{"d1"}})
	resultRepo.results["gp-sakhir"] = result.EventResult{EventID: "gp-sakhir", GrandPrixFinish: []string{"d1"}}
	resultRepo.results["gp-jeddah"] = result.EventResult{EventID: "gp-jeddah", GrandPrixFinish: []string{"d2", "d1"}}

	summary, err := svc.GetUserSeasonSummary(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get season summary: %v", err)
	}
	if summary.Season.TotalPoints != 43 {
		t.Fatalf("expected 43 season points, got %d", summary.Season.TotalPoints)
	}
	if summary.Season.EventsScored != 2 {
		t.Fatalf("expected 2 scored events, got %d", summary.Season.EventsScored)
	}
	if summary.AveragePoints != 21.5 {
		t.Fatalf("expected average 21.5, got %v", summary.AveragePoints)
	}
}

func TestScoringService_GetUserSeasonSummary_EmptySeason(t *testing.T) {
	t.Parallel()

	svc, _, _ := scoringServiceFixture()

	summary, err := svc.GetUserSeasonSummary(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get season summary: %v", err)
	}
	if summary.Season.TotalPoints != 0 || summary.AveragePoints != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
}

func TestScoringService_ListUserEventScores_OrderedByEvent(t *testing.T) {
	t.Parallel()

	svc, pickRepo, resultRepo := scoringServiceFixture()
	pickRepo.put(pick.Selection{UserID: "user-1", EventID: "gp-suzuka", ADrivers: []string{"d1"}})
	resultRepo.results["gp-suzuka"] = result.EventResult{EventID: "gp-suzuka", GrandPrixFinish: []string{"d1"}}
	resultRepo.results["gp-jeddah"] = result.EventResult{EventID: "gp-jeddah", GrandPrixFinish: []string{"d2"}}

	scores, err := svc.ListUserEventScores(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list event scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected one entry per scored event, got %d", len(scores))
	}
	if scores[0].EventID != "gp-jeddah" || scores[1].EventID != "gp-suzuka" {
		t.Fatalf("expected events ordered by id, got %+v", scores)
	}
	if scores[0].Score.Total != 0 || scores[1].Score.Total != 25 {
		t.Fatalf("unexpected totals: %+v", scores)
	}
}

func TestScoringService_InputValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := scoringServiceFixture()

	if _, err := svc.GetUserEventScore(context.Background(), "", "gp-sakhir"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.GetUserSeasonSummary(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ListUserEventScores(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
