package httpapi

import "net/http"

// RunLeaderboardRecomputeJob is the queue callback target. It runs the
// recompute synchronously so the queue's retry policy applies on failure.
func (h *Handler) RunLeaderboardRecomputeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLeaderboardRecomputeJob")
	defer span.End()

	if err := h.leaderboardService.Recompute(ctx); err != nil {
		h.logger.ErrorContext(ctx, "leaderboard recompute job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recomputed"})
}
