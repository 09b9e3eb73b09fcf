package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSimulation")
	defer span.End()

	var req runSimulationRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.simulationService.Run(ctx, usecase.SimulationInput{
		Seasons:        req.Seasons,
		UsersPerSeason: req.UsersPerSeason,
		EventsPer:      req.EventsPerSeason,
		Seed:           req.Seed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run simulation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

type runSimulationRequest struct {
	Seasons         int   `json:"seasons" validate:"gte=0,lte=100"`
	UsersPerSeason  int   `json:"usersPerSeason" validate:"gte=0,lte=5000"`
	EventsPerSeason int   `json:"eventsPerSeason" validate:"gte=0,lte=30"`
	Seed            int64 `json:"seed"`
}
