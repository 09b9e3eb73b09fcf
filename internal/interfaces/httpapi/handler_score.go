package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pitwall/fantasy-gp/internal/usecase"
)

func (h *Handler) GetMyEventScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyEventScore")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	score, err := h.scoringService.GetUserEventScore(ctx, principal.UserID, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event score failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventScoreToDTO(score))
}

func (h *Handler) ListMyEventScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEventScores")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	scores, err := h.scoringService.ListUserEventScores(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list event scores failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, eventScoreToDTO(score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMySeasonSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySeasonSummary")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	summary, err := h.scoringService.GetUserSeasonSummary(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season summary failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonSummaryDTO{
		UserID:                 summary.UserID,
		TotalPoints:            summary.Season.TotalPoints,
		GrandPrixPoints:        summary.Season.GrandPrixPoints,
		SprintPoints:           summary.Season.SprintPoints,
		GPQualifyingPoints:     summary.Season.GPQualifyingPoints,
		SprintQualifyingPoints: summary.Season.SprintQualifyingPoints,
		FastestLapPoints:       summary.Season.FastestLapPoints,
		EventsScored:           summary.Season.EventsScored,
		AveragePoints:          summary.AveragePoints,
		ComputedAt:             summary.ComputedAt.UTC().Format(time.RFC3339),
	})
}

type eventScoreDTO struct {
	EventID          string `json:"eventId"`
	GrandPrix        int    `json:"grandPrixPoints"`
	Sprint           int    `json:"sprintPoints"`
	GPQualifying     int    `json:"gpQualifyingPoints"`
	SprintQualifying int    `json:"sprintQualifyingPoints"`
	FastestLap       int    `json:"fastestLapPoints"`
	Penalty          int    `json:"penaltyPoints"`
	Total            int    `json:"totalPoints"`
}

type seasonSummaryDTO struct {
	UserID                 string  `json:"userId"`
	TotalPoints            int     `json:"totalPoints"`
	GrandPrixPoints        int     `json:"grandPrixPoints"`
	SprintPoints           int     `json:"sprintPoints"`
	GPQualifyingPoints     int     `json:"gpQualifyingPoints"`
	SprintQualifyingPoints int     `json:"sprintQualifyingPoints"`
	FastestLapPoints       int     `json:"fastestLapPoints"`
	EventsScored           int     `json:"eventsScored"`
	AveragePoints          float64 `json:"averagePoints"`
	ComputedAt             string  `json:"computedAt"`
}

func eventScoreToDTO(score usecase.UserEventScore) eventScoreDTO {
	return eventScoreDTO{
		EventID:          score.EventID,
		GrandPrix:        score.Score.GrandPrix,
		Sprint:           score.Score.Sprint,
		GPQualifying:     score.Score.GPQualifying,
		SprintQualifying: score.Score.SprintQualifying,
		FastestLap:       score.Score.FastestLap,
		Penalty:          score.Score.Penalty,
		Total:            score.Score.Total,
	}
}
