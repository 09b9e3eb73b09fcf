package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

// ScoringService answers per-user score questions: one event's breakdown or
// the whole season. The heavy lifting lives in the pure ScoreEvent and
// RollupSeason functions; this service only assembles their inputs.
type ScoringService struct {
	pickRepo     pick.Repository
	resultRepo   result.Repository
	settingsRepo scoring.Repository
	rosterRepo   roster.Repository
}

func NewScoringService(
	pickRepo pick.Repository,
	resultRepo result.Repository,
	settingsRepo scoring.Repository,
	rosterRepo roster.Repository,
) *ScoringService {
	return &ScoringService{
		pickRepo:     pickRepo,
		resultRepo:   resultRepo,
		settingsRepo: settingsRepo,
		rosterRepo:   rosterRepo,
	}
}

// UserEventScore is one scored event for breakdown display.
type UserEventScore struct {
	UserID  string
	EventID string
	Score   EventScore
}

// UserSeasonSummary is a user's season rollup plus presentation extras.
type UserSeasonSummary struct {
	UserID        string
	Season        SeasonScore
	AveragePoints float64
	ComputedAt    time.Time
}

func (s *ScoringService) GetUserEventScore(ctx context.Context, userID, eventID string) (UserEventScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetUserEventScore")
	defer span.End()

	if userID == "" || eventID == "" {
		return UserEventScore{}, fmt.Errorf("%w: user id and event id are required", ErrInvalidInput)
	}

	res, hasResult, err := s.resultRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return UserEventScore{}, fmt.Errorf("get result for event score: %w", err)
	}
	if !hasResult {
		return UserEventScore{}, fmt.Errorf("%w: event %s has no result yet", ErrNotFound, eventID)
	}

	// A missing pick scores as an all-empty selection, zero total.
	sel, _, err := s.pickRepo.GetSelection(ctx, userID, eventID)
	if err != nil {
		return UserEventScore{}, fmt.Errorf("get selection for event score: %w", err)
	}

	resolve, grid, err := s.scoringInputs(ctx)
	if err != nil {
		return UserEventScore{}, err
	}

	return UserEventScore{
		UserID:  userID,
		EventID: eventID,
		Score:   ScoreEvent(sel, res, resolve(res), grid),
	}, nil
}

func (s *ScoringService) GetUserSeasonSummary(ctx context.Context, userID string) (UserSeasonSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetUserSeasonSummary")
	defer span.End()

	if userID == "" {
		return UserSeasonSummary{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	seasonPicks, _, err := s.pickRepo.GetSeasonPicks(ctx, userID)
	if err != nil {
		return UserSeasonSummary{}, fmt.Errorf("get season picks for summary: %w", err)
	}

	raceResults, err := s.resultRepo.ListAll(ctx)
	if err != nil {
		return UserSeasonSummary{}, fmt.Errorf("list results for summary: %w", err)
	}

	resolve, grid, err := s.scoringInputs(ctx)
	if err != nil {
		return UserSeasonSummary{}, err
	}

	season := RollupSeason(seasonPicks.ByEvent, raceResults, resolve, grid)
	average := 0.0
	if season.EventsScored > 0 {
		average = float64(season.TotalPoints) / float64(season.EventsScored)
	}

	return UserSeasonSummary{
		UserID:        userID,
		Season:        season,
		AveragePoints: average,
		ComputedAt:    time.Now().UTC(),
	}, nil
}

// ListUserEventScores returns every scored event for one user, ordered by
// event id for stable display.
func (s *ScoringService) ListUserEventScores(ctx context.Context, userID string) ([]UserEventScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListUserEventScores")
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	seasonPicks, _, err := s.pickRepo.GetSeasonPicks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get season picks for event scores: %w", err)
	}

	raceResults, err := s.resultRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results for event scores: %w", err)
	}

	resolve, grid, err := s.scoringInputs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserEventScore, 0, len(raceResults))
	for eventID, res := range raceResults {
		out = append(out, UserEventScore{
			UserID:  userID,
			EventID: eventID,
			Score:   ScoreEvent(seasonPicks.ByEvent[eventID], res, resolve(res), grid),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].EventID < out[j].EventID
	})
	return out, nil
}

func (s *ScoringService) scoringInputs(ctx context.Context) (ConfigResolver, roster.Snapshot, error) {
	settings, hasSettings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, roster.Snapshot{}, fmt.Errorf("get scoring settings: %w", err)
	}

	grid, err := s.rosterRepo.GetSnapshot(ctx)
	if err != nil {
		return nil, roster.Snapshot{}, fmt.Errorf("get roster snapshot: %w", err)
	}

	return NewConfigResolver(settings, hasSettings), grid, nil
}
