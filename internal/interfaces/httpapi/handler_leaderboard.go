package httpapi

import (
	"net/http"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/leaderboard"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.leaderboardService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) TriggerRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerRecompute")
	defer span.End()

	if err := h.leaderboardService.Recompute(ctx); err != nil {
		h.logger.ErrorContext(ctx, "leaderboard recompute failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recomputed"})
}

type leaderboardEntryDTO struct {
	UserID           string `json:"userId"`
	Rank             int    `json:"rank"`
	TotalPoints      int    `json:"totalPoints"`
	GrandPrixPoints  int    `json:"grandPrixPoints"`
	SprintPoints     int    `json:"sprintPoints"`
	QualifyingPoints int    `json:"qualifyingPoints"`
	FastestLapPoints int    `json:"fastestLapPoints"`
	CalculatedAt     string `json:"calculatedAt"`
}

func entryToDTO(entry leaderboard.Entry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		UserID:           entry.UserID,
		Rank:             entry.Rank,
		TotalPoints:      entry.TotalPoints,
		GrandPrixPoints:  entry.Breakdown.GrandPrix,
		SprintPoints:     entry.Breakdown.Sprint,
		QualifyingPoints: entry.Breakdown.Qualifying,
		FastestLapPoints: entry.Breakdown.FastestLap,
		CalculatedAt:     entry.CalculatedAt.UTC().Format(time.RFC3339),
	}
}
