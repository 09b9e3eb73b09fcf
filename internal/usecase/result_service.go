package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/auditlog"
	"github.com/pitwall/fantasy-gp/internal/domain/event"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

// RecomputeTrigger fires the leaderboard recompute after a result change.
// Implementations range from a job-queue publisher to a direct call.
type RecomputeTrigger interface {
	EnqueueRecompute(ctx context.Context) error
}

// ResultService handles official result entry. Saving a result freezes the
// driver->team assignment and the points configuration in effect, so later
// roster or profile edits cannot corrupt historical scores.
type ResultService struct {
	eventRepo    event.Repository
	resultRepo   result.Repository
	settingsRepo scoring.Repository
	rosterRepo   roster.Repository
	auditRepo    auditlog.Repository
	trigger      RecomputeTrigger
	logger       *slog.Logger
	now          func() time.Time
}

func NewResultService(
	eventRepo event.Repository,
	resultRepo result.Repository,
	settingsRepo scoring.Repository,
	rosterRepo roster.Repository,
	auditRepo auditlog.Repository,
	trigger RecomputeTrigger,
	logger *slog.Logger,
) *ResultService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultService{
		eventRepo:    eventRepo,
		resultRepo:   resultRepo,
		settingsRepo: settingsRepo,
		rosterRepo:   rosterRepo,
		auditRepo:    auditRepo,
		trigger:      trigger,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ResultService) GetByEvent(ctx context.Context, eventID string) (result.EventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.GetByEvent")
	defer span.End()

	res, ok, err := s.resultRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return result.EventResult{}, fmt.Errorf("get result: %w", err)
	}
	if !ok {
		return result.EventResult{}, fmt.Errorf("%w: no result for event %s", ErrNotFound, eventID)
	}
	return res, nil
}

// Save upserts an official result. Snapshots already frozen on a stored
// result are carried over untouched; a first save fills them from the
// current roster and the active profile.
func (s *ResultService) Save(ctx context.Context, adminID string, res result.EventResult) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Save")
	defer span.End()

	if adminID == "" {
		return fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	if res.EventID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	evt, exists, err := s.eventRepo.GetByID(ctx, res.EventID)
	if err != nil {
		return fmt.Errorf("get event for result save: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: unknown event %s", ErrNotFound, res.EventID)
	}
	if !evt.HasSprint && (len(res.SprintFinish) > 0 || len(res.SprintQualifying) > 0) {
		return fmt.Errorf("%w: event %s has no sprint", ErrInvalidInput, res.EventID)
	}

	existing, hasExisting, err := s.resultRepo.GetByEvent(ctx, res.EventID)
	if err != nil {
		return fmt.Errorf("get existing result: %w", err)
	}

	if hasExisting && len(existing.DriverTeams) > 0 {
		res.DriverTeams = existing.DriverTeams
	}
	if hasExisting && existing.ScoringSnapshot != nil {
		res.ScoringSnapshot = existing.ScoringSnapshot
	}

	if len(res.DriverTeams) == 0 {
		grid, gridErr := s.rosterRepo.GetSnapshot(ctx)
		if gridErr != nil {
			return fmt.Errorf("get roster snapshot for result save: %w", gridErr)
		}
		res.DriverTeams = grid.DriverTeams()
	}
	if res.ScoringSnapshot == nil {
		frozen := s.effectivePoints(ctx)
		res.ScoringSnapshot = &frozen
	}

	res.EnteredBy = adminID
	res.UpdatedAt = s.now().UTC()

	if err := res.ScoringSnapshot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.resultRepo.Upsert(ctx, res); err != nil {
		return fmt.Errorf("upsert result event=%s: %w", res.EventID, err)
	}

	s.appendAudit(ctx, auditlog.Entry{
		AdminID: adminID,
		EventID: res.EventID,
		Action:  auditlog.ActionSaveResult,
		Changes: map[string]any{
			"gp_finishers":     countNonEmpty(res.GrandPrixFinish),
			"sprint_finishers": countNonEmpty(res.SprintFinish),
			"fastest_lap":      res.FastestLap,
			"updated_existing": hasExisting,
		},
		Timestamp: res.UpdatedAt,
	})

	s.fireRecompute(ctx, res.EventID)
	return nil
}

// effectivePoints resolves the configuration to freeze: active profile when
// one exists, hardcoded default otherwise. Never fails.
func (s *ResultService) effectivePoints(ctx context.Context) scoring.PointsSystem {
	settings, ok, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "get scoring settings failed, freezing default table", "error", err)
		return scoring.Default()
	}
	if ok {
		if active, found := settings.ActiveProfile(); found {
			return active.Points.Clone()
		}
	}
	return scoring.Default()
}

func (s *ResultService) appendAudit(ctx context.Context, entry auditlog.Entry) {
	if s.auditRepo == nil {
		return
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		// Audit display is peripheral; a failed append never blocks the save.
		s.logger.WarnContext(ctx, "append audit entry failed", "event_id", entry.EventID, "error", err)
	}
}

func (s *ResultService) ListAuditByEvent(ctx context.Context, eventID string) ([]auditlog.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListAuditByEvent")
	defer span.End()

	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	entries, err := s.auditRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}

func (s *ResultService) fireRecompute(ctx context.Context, eventID string) {
	if s.trigger == nil {
		return
	}
	if err := s.trigger.EnqueueRecompute(ctx); err != nil {
		// The board converges on the next successful trigger or manual rerun.
		s.logger.WarnContext(ctx, "enqueue leaderboard recompute failed", "event_id", eventID, "error", err)
	}
}

func countNonEmpty(ids []string) int {
	n := 0
	for _, id := range ids {
		if id != "" {
			n++
		}
	}
	return n
}
