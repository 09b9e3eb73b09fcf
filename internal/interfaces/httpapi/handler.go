package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pitwall/fantasy-gp/internal/domain/event"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

type Handler struct {
	scheduleService    *usecase.ScheduleService
	pickService        *usecase.PickService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	resultService      *usecase.ResultService
	profileService     *usecase.ProfileService
	simulationService  *usecase.SimulationService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	scheduleService *usecase.ScheduleService,
	pickService *usecase.PickService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	resultService *usecase.ResultService,
	profileService *usecase.ProfileService,
	simulationService *usecase.SimulationService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		scheduleService:    scheduleService,
		pickService:        pickService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		resultService:      resultService,
		profileService:     profileService,
		simulationService:  simulationService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	events, err := h.scheduleService.ListEvents(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	now := time.Now().UTC()
	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e, now))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	e, err := h.scheduleService.GetEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(e, time.Now().UTC()))
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDrivers")
	defer span.End()

	drivers, err := h.scheduleService.ListDrivers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list drivers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]driverDTO, 0, len(drivers))
	for _, d := range drivers {
		items = append(items, driverDTO{
			ID:            d.ID,
			Name:          d.Name,
			Class:         string(d.ClassOf),
			ConstructorID: d.ConstructorID,
			IsActive:      d.IsActive,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListConstructors(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListConstructors")
	defer span.End()

	constructors, err := h.scheduleService.ListConstructors(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list constructors failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]constructorDTO, 0, len(constructors))
	for _, c := range constructors {
		items = append(items, constructorDTO{
			ID:       c.ID,
			Name:     c.Name,
			Class:    string(c.ClassOf),
			IsActive: c.IsActive,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type eventDTO struct {
	ID             string `json:"id"`
	Round          int    `json:"round"`
	Name           string `json:"name"`
	Country        string `json:"country"`
	HasSprint      bool   `json:"hasSprint"`
	LockAtUTC      string `json:"lockAtUtc"`
	SoftDeadlineAt string `json:"softDeadlineAtUtc"`
	IsLocked       bool   `json:"isLocked"`
}

type driverDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Class         string `json:"class"`
	ConstructorID string `json:"constructorId"`
	IsActive      bool   `json:"isActive"`
}

type constructorDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Class    string `json:"class"`
	IsActive bool   `json:"isActive"`
}

func eventToDTO(e event.Event, now time.Time) eventDTO {
	return eventDTO{
		ID:             e.ID,
		Round:          e.Round,
		Name:           e.Name,
		Country:        e.Country,
		HasSprint:      e.HasSprint,
		LockAtUTC:      e.LockAtUTC.UTC().Format(time.RFC3339),
		SoftDeadlineAt: e.SoftDeadlineAt.UTC().Format(time.RFC3339),
		IsLocked:       e.IsLocked(now),
	}
}
