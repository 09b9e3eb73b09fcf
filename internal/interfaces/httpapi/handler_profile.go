package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

func (h *Handler) GetScoringSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringSettings")
	defer span.End()

	settings, err := h.profileService.GetSettings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get scoring settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(settings))
}

func (h *Handler) SaveScoringProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveScoringProfile")
	defer span.End()

	var req saveProfileRequest
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

	saved, err := h.profileService.SaveProfile(ctx, scoring.Profile{
		ID:   strings.TrimSpace(req.ID),
		Name: req.Name,
		Points: scoring.PointsSystem{
			GrandPrixFinish:  req.GrandPrixFinish,
			SprintFinish:     req.SprintFinish,
			GPQualifying:     req.GPQualifying,
			SprintQualifying: req.SprintQualifying,
			FastestLap:       req.FastestLap,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save scoring profile failed", "profile_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(saved))
}

func (h *Handler) DeleteScoringProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteScoringProfile")
	defer span.End()

	profileID := strings.TrimSpace(r.PathValue("profileID"))
	if err := h.profileService.DeleteProfile(ctx, profileID); err != nil {
		h.logger.WarnContext(ctx, "delete scoring profile failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ActivateScoringProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateScoringProfile")
	defer span.End()

	profileID := strings.TrimSpace(r.PathValue("profileID"))
	if err := h.profileService.ActivateProfile(ctx, profileID); err != nil {
		h.logger.WarnContext(ctx, "activate scoring profile failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "activated"})
}

type saveProfileRequest struct {
	ID               string `json:"id"`
	Name             string `json:"name" validate:"required,max=100"`
	GrandPrixFinish  []int  `json:"grandPrixFinish" validate:"required,min=1,max=10"`
	SprintFinish     []int  `json:"sprintFinish" validate:"max=8"`
	GPQualifying     []int  `json:"gpQualifying" validate:"max=3"`
	SprintQualifying []int  `json:"sprintQualifying" validate:"max=3"`
	FastestLap       int    `json:"fastestLap" validate:"gte=0"`
}

type settingsDTO struct {
	Profiles        []profileDTO `json:"profiles"`
	ActiveProfileID string       `json:"activeProfileId"`
}

type profileDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	GrandPrixFinish  []int  `json:"grandPrixFinish"`
	SprintFinish     []int  `json:"sprintFinish"`
	GPQualifying     []int  `json:"gpQualifying"`
	SprintQualifying []int  `json:"sprintQualifying"`
	FastestLap       int    `json:"fastestLap"`
}

func settingsToDTO(settings scoring.Settings) settingsDTO {
	profiles := make([]profileDTO, 0, len(settings.Profiles))
	for _, p := range settings.Profiles {
		profiles = append(profiles, profileToDTO(p))
	}
	return settingsDTO{
		Profiles:        profiles,
		ActiveProfileID: settings.ActiveProfileID,
	}
}

func profileToDTO(p scoring.Profile) profileDTO {
	return profileDTO{
		ID:               p.ID,
		Name:             p.Name,
		GrandPrixFinish:  p.Points.GrandPrixFinish,
		SprintFinish:     p.Points.SprintFinish,
		GPQualifying:     p.Points.GPQualifying,
		SprintQualifying: p.Points.SprintQualifying,
		FastestLap:       p.Points.FastestLap,
	}
}
