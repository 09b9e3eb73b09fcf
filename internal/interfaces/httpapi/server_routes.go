package httpapi

import (
	"net/http"

	"github.com/pitwall/fantasy-gp/internal/infrastructure/jobqueue"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/events/{eventID}", handler.GetEvent)
	mux.HandleFunc("GET /v1/events/{eventID}/result", handler.GetEventResult)
	mux.HandleFunc("GET /v1/roster/drivers", handler.ListDrivers)
	mux.HandleFunc("GET /v1/roster/constructors", handler.ListConstructors)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/scoring/settings", handler.GetScoringSettings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/picks", RequireAuth(verifier, http.HandlerFunc(handler.GetMySeasonPicks)))
	mux.Handle("GET /v1/picks/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMySelection)))
	mux.Handle("PUT /v1/picks/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.SubmitSelection)))
	mux.Handle("GET /v1/scores", RequireAuth(verifier, http.HandlerFunc(handler.ListMyEventScores)))
	mux.Handle("GET /v1/scores/summary", RequireAuth(verifier, http.HandlerFunc(handler.GetMySeasonSummary)))
	mux.Handle("GET /v1/scores/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMyEventScore)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("PUT /v1/admin/events/{eventID}/result", admin(handler.SaveEventResult))
	mux.Handle("GET /v1/admin/events/{eventID}/audit", admin(handler.ListEventAudit))
	mux.Handle("POST /v1/admin/users/{userID}/picks/{eventID}/penalty", admin(handler.ApplyPickPenalty))
	mux.Handle("POST /v1/admin/scoring/profiles", admin(handler.SaveScoringProfile))
	mux.Handle("DELETE /v1/admin/scoring/profiles/{profileID}", admin(handler.DeleteScoringProfile))
	mux.Handle("POST /v1/admin/scoring/profiles/{profileID}/activate", admin(handler.ActivateScoringProfile))
	mux.Handle("POST /v1/admin/leaderboard/recompute", admin(handler.TriggerRecompute))
	mux.Handle("POST /v1/admin/simulation/run", admin(handler.RunSimulation))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST "+jobqueue.RecomputeJobPath, RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunLeaderboardRecomputeJob)))
}
