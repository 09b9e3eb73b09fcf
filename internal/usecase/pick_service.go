package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/auditlog"
	"github.com/pitwall/fantasy-gp/internal/domain/event"
	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

// PickService manages weekly selections. A submission overwrites the whole
// selection; once the event locks or has an official result, the only
// allowed mutation is the admin penalty.
type PickService struct {
	pickRepo   pick.Repository
	eventRepo  event.Repository
	resultRepo result.Repository
	rosterRepo roster.Repository
	auditRepo  auditlog.Repository
	trigger    RecomputeTrigger
	logger     *slog.Logger
	now        func() time.Time
}

func NewPickService(
	pickRepo pick.Repository,
	eventRepo event.Repository,
	resultRepo result.Repository,
	rosterRepo roster.Repository,
	auditRepo auditlog.Repository,
	trigger RecomputeTrigger,
	logger *slog.Logger,
) *PickService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PickService{
		pickRepo:   pickRepo,
		eventRepo:  eventRepo,
		resultRepo: resultRepo,
		rosterRepo: rosterRepo,
		auditRepo:  auditRepo,
		trigger:    trigger,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PickService) GetSelection(ctx context.Context, userID, eventID string) (pick.Selection, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetSelection")
	defer span.End()

	if userID == "" || eventID == "" {
		return pick.Selection{}, false, fmt.Errorf("%w: user id and event id are required", ErrInvalidInput)
	}
	sel, ok, err := s.pickRepo.GetSelection(ctx, userID, eventID)
	if err != nil {
		return pick.Selection{}, false, fmt.Errorf("get selection: %w", err)
	}
	return sel, ok, nil
}

func (s *PickService) GetSeasonPicks(ctx context.Context, userID string) (pick.SeasonPicks, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetSeasonPicks")
	defer span.End()

	if userID == "" {
		return pick.SeasonPicks{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	season, ok, err := s.pickRepo.GetSeasonPicks(ctx, userID)
	if err != nil {
		return pick.SeasonPicks{}, fmt.Errorf("get season picks: %w", err)
	}
	if !ok {
		return pick.SeasonPicks{UserID: userID, ByEvent: map[string]pick.Selection{}}, nil
	}
	return season, nil
}

// Submit stores a whole weekly selection. Unknown driver or team ids are
// rejected here at the boundary; historical scoring stays tolerant of them.
func (s *PickService) Submit(ctx context.Context, sel pick.Selection) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit")
	defer span.End()

	if err := sel.ValidateShape(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	evt, exists, err := s.eventRepo.GetByID(ctx, sel.EventID)
	if err != nil {
		return fmt.Errorf("get event for pick submit: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: unknown event %s", ErrNotFound, sel.EventID)
	}

	now := s.now().UTC()
	if evt.IsLocked(now) {
		return fmt.Errorf("%w: event %s locked at %s", ErrPickLocked, evt.ID, evt.LockAtUTC.Format(time.RFC3339))
	}

	_, hasResult, err := s.resultRepo.GetByEvent(ctx, sel.EventID)
	if err != nil {
		return fmt.Errorf("check result for pick submit: %w", err)
	}
	if hasResult {
		return fmt.Errorf("%w: event %s already has an official result", ErrPickLocked, sel.EventID)
	}

	if err := s.validateReferences(ctx, sel); err != nil {
		return err
	}

	// Penalty fields are admin-only; a user submission always resets them.
	sel.Penalty = 0
	sel.PenaltyReason = ""
	sel.SubmittedAt = now

	if err := s.pickRepo.UpsertSelection(ctx, sel); err != nil {
		return fmt.Errorf("upsert selection user=%s event=%s: %w", sel.UserID, sel.EventID, err)
	}
	return nil
}

// ApplyPenalty sets the penalty fraction on an existing selection. This is
// the one mutation allowed after results exist; it re-triggers the
// leaderboard so the deduction lands immediately.
func (s *PickService) ApplyPenalty(ctx context.Context, adminID, userID, eventID string, penalty float64, reason string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ApplyPenalty")
	defer span.End()

	if adminID == "" {
		return fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	if penalty < 0 || penalty > 1 {
		return fmt.Errorf("%w: penalty must be within [0, 1]", ErrInvalidInput)
	}

	sel, ok, err := s.pickRepo.GetSelection(ctx, userID, eventID)
	if err != nil {
		return fmt.Errorf("get selection for penalty: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: no selection for user %s event %s", ErrNotFound, userID, eventID)
	}

	sel.Penalty = penalty
	sel.PenaltyReason = reason
	if err := s.pickRepo.UpsertSelection(ctx, sel); err != nil {
		return fmt.Errorf("upsert selection with penalty: %w", err)
	}

	if s.auditRepo != nil {
		entry := auditlog.Entry{
			AdminID: adminID,
			EventID: eventID,
			Action:  auditlog.ActionApplyPenalty,
			Changes: map[string]any{
				"user_id": userID,
				"penalty": penalty,
				"reason":  reason,
			},
			Timestamp: s.now().UTC(),
		}
		if auditErr := s.auditRepo.Append(ctx, entry); auditErr != nil {
			s.logger.WarnContext(ctx, "append audit entry failed", "event_id", eventID, "error", auditErr)
		}
	}

	if s.trigger != nil {
		if trigErr := s.trigger.EnqueueRecompute(ctx); trigErr != nil {
			s.logger.WarnContext(ctx, "enqueue leaderboard recompute failed", "event_id", eventID, "error", trigErr)
		}
	}
	return nil
}

func (s *PickService) validateReferences(ctx context.Context, sel pick.Selection) error {
	grid, err := s.rosterRepo.GetSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("get roster snapshot for pick submit: %w", err)
	}

	knownTeams := make(map[string]roster.Constructor, len(grid.Constructors))
	for _, c := range grid.Constructors {
		knownTeams[c.ID] = c
	}
	knownDrivers := make(map[string]roster.Driver, len(grid.Drivers))
	for _, d := range grid.Drivers {
		knownDrivers[d.ID] = d
	}

	checkTeam := func(teamID string, class roster.Class) error {
		if teamID == "" {
			return nil
		}
		team, ok := knownTeams[teamID]
		if !ok {
			return fmt.Errorf("%w: unknown team %s", ErrInvalidInput, teamID)
		}
		if team.ClassOf != class {
			return fmt.Errorf("%w: team %s is not class %s", ErrInvalidInput, teamID, class)
		}
		return nil
	}
	checkDriver := func(driverID string, class roster.Class) error {
		if driverID == "" {
			return nil
		}
		drv, ok := knownDrivers[driverID]
		if !ok {
			return fmt.Errorf("%w: unknown driver %s", ErrInvalidInput, driverID)
		}
		if drv.ClassOf != class {
			return fmt.Errorf("%w: driver %s is not class %s", ErrInvalidInput, driverID, class)
		}
		return nil
	}

	for _, teamID := range sel.ATeams {
		if err := checkTeam(teamID, roster.ClassA); err != nil {
			return err
		}
	}
	if err := checkTeam(sel.BTeam, roster.ClassB); err != nil {
		return err
	}
	for _, driverID := range sel.ADrivers {
		if err := checkDriver(driverID, roster.ClassA); err != nil {
			return err
		}
	}
	for _, driverID := range sel.BDrivers {
		if err := checkDriver(driverID, roster.ClassB); err != nil {
			return err
		}
	}
	if sel.FastestLap != "" {
		if _, ok := knownDrivers[sel.FastestLap]; !ok {
			return fmt.Errorf("%w: unknown fastest lap driver %s", ErrInvalidInput, sel.FastestLap)
		}
	}
	return nil
}
