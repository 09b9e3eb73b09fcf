package usecase

import (
	"context"
	"fmt"

	"github.com/pitwall/fantasy-gp/internal/domain/event"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

// ScheduleService serves the season calendar and the grid, the read-only
// reference data every picks screen needs.
type ScheduleService struct {
	eventRepo  event.Repository
	rosterRepo roster.Repository
}

func NewScheduleService(eventRepo event.Repository, rosterRepo roster.Repository) *ScheduleService {
	return &ScheduleService{
		eventRepo:  eventRepo,
		rosterRepo: rosterRepo,
	}
}

func (s *ScheduleService) ListEvents(ctx context.Context) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListEvents")
	defer span.End()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *ScheduleService) GetEvent(ctx context.Context, eventID string) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GetEvent")
	defer span.End()

	if eventID == "" {
		return event.Event{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	e, ok, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !ok {
		return event.Event{}, fmt.Errorf("%w: event %q", ErrNotFound, eventID)
	}
	return e, nil
}

func (s *ScheduleService) ListDrivers(ctx context.Context) ([]roster.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListDrivers")
	defer span.End()

	drivers, err := s.rosterRepo.ListDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

func (s *ScheduleService) ListConstructors(ctx context.Context) ([]roster.Constructor, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListConstructors")
	defer span.End()

	constructors, err := s.rosterRepo.ListConstructors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list constructors: %w", err)
	}
	return constructors, nil
}
