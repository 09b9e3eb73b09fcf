package httpapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

func (h *Handler) GetMySelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	sel, exists, err := h.pickService.GetSelection(ctx, principal.UserID, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get selection failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(sel))
}

func (h *Handler) SubmitSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	var req selectionUpsertRequest
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

	sel := pick.Selection{
		UserID:      principal.UserID,
		EventID:     eventID,
		ATeams:      req.ATeamIDs,
		BTeam:       req.BTeamID,
		ADrivers:    req.ADriverIDs,
		BDrivers:    req.BDriverIDs,
		FastestLap:  req.FastestLapDriverID,
		SubmittedAt: time.Now().UTC(),
	}
	if err := h.pickService.Submit(ctx, sel); err != nil {
		h.logger.WarnContext(ctx, "submit selection failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(sel))
}

func (h *Handler) GetMySeasonPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySeasonPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	season, err := h.pickService.GetSeasonPicks(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season picks failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonPicksToDTO(season))
}

func (h *Handler) ApplyPickPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyPickPenalty")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userID := strings.TrimSpace(r.PathValue("userID"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))

	var req applyPenaltyRequest
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

	if err := h.pickService.ApplyPenalty(ctx, principal.UserID, userID, eventID, req.Penalty, req.Reason); err != nil {
		h.logger.WarnContext(ctx, "apply penalty failed", "admin_id", principal.UserID, "user_id", userID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "applied"})
}

type selectionUpsertRequest struct {
	ATeamIDs           []string `json:"aTeamIds" validate:"max=2"`
	BTeamID            string   `json:"bTeamId"`
	ADriverIDs         []string `json:"aDriverIds" validate:"max=3"`
	BDriverIDs         []string `json:"bDriverIds" validate:"max=2"`
	FastestLapDriverID string   `json:"fastestLapDriverId"`
}

type applyPenaltyRequest struct {
	Penalty float64 `json:"penalty" validate:"gte=0,lte=1"`
	Reason  string  `json:"reason" validate:"required,max=500"`
}

type selectionDTO struct {
	EventID            string   `json:"eventId"`
	ATeamIDs           []string `json:"aTeamIds"`
	BTeamID            string   `json:"bTeamId"`
	ADriverIDs         []string `json:"aDriverIds"`
	BDriverIDs         []string `json:"bDriverIds"`
	FastestLapDriverID string   `json:"fastestLapDriverId"`
	Penalty            float64  `json:"penalty,omitempty"`
	PenaltyReason      string   `json:"penaltyReason,omitempty"`
	SubmittedAt        string   `json:"submittedAt"`
}

type seasonPicksDTO struct {
	UserID     string         `json:"userId"`
	Picks      []selectionDTO `json:"picks"`
	LastSaveAt string         `json:"lastSaveAt,omitempty"`
}

func selectionToDTO(sel pick.Selection) selectionDTO {
	return selectionDTO{
		EventID:            sel.EventID,
		ATeamIDs:           append([]string(nil), sel.ATeams...),
		BTeamID:            sel.BTeam,
		ADriverIDs:         append([]string(nil), sel.ADrivers...),
		BDriverIDs:         append([]string(nil), sel.BDrivers...),
		FastestLapDriverID: sel.FastestLap,
		Penalty:            sel.Penalty,
		PenaltyReason:      sel.PenaltyReason,
		SubmittedAt:        sel.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func seasonPicksToDTO(season pick.SeasonPicks) seasonPicksDTO {
	picks := make([]selectionDTO, 0, len(season.ByEvent))
	for _, sel := range season.ByEvent {
		picks = append(picks, selectionToDTO(sel))
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].EventID < picks[j].EventID })

	dto := seasonPicksDTO{
		UserID: season.UserID,
		Picks:  picks,
	}
	if !season.LastSaveAt.IsZero() {
		dto.LastSaveAt = season.LastSaveAt.UTC().Format(time.RFC3339)
	}
	return dto
}
