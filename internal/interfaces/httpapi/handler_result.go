package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

func (h *Handler) GetEventResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventResult")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	res, err := h.resultService.GetByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get result failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(res))
}

func (h *Handler) SaveEventResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveEventResult")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	var req saveResultRequest
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

	res := result.EventResult{
		EventID:          eventID,
		GrandPrixFinish:  req.GrandPrixFinish,
		GPQualifying:     req.GPQualifying,
		FastestLap:       req.FastestLapDriverID,
		SprintFinish:     req.SprintFinish,
		SprintQualifying: req.SprintQualifying,
	}
	if err := h.resultService.Save(ctx, principal.UserID, res); err != nil {
		h.logger.WarnContext(ctx, "save result failed", "admin_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	saved, err := h.resultService.GetByEvent(ctx, eventID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(saved))
}

func (h *Handler) ListEventAudit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventAudit")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	entries, err := h.resultService.ListAuditByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list audit failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]auditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, auditEntryDTO{
			AdminID:   entry.AdminID,
			EventID:   entry.EventID,
			Action:    entry.Action,
			Changes:   entry.Changes,
			Timestamp: entry.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type saveResultRequest struct {
	GrandPrixFinish    []string `json:"grandPrixFinish" validate:"required,min=1,max=10,dive,required"`
	GPQualifying       []string `json:"gpQualifying" validate:"max=3,dive,required"`
	FastestLapDriverID string   `json:"fastestLapDriverId"`
	SprintFinish       []string `json:"sprintFinish" validate:"max=8,dive,required"`
	SprintQualifying   []string `json:"sprintQualifying" validate:"max=3,dive,required"`
}

type resultDTO struct {
	EventID            string            `json:"eventId"`
	GrandPrixFinish    []string          `json:"grandPrixFinish"`
	GPQualifying       []string          `json:"gpQualifying"`
	FastestLapDriverID string            `json:"fastestLapDriverId"`
	SprintFinish       []string          `json:"sprintFinish,omitempty"`
	SprintQualifying   []string          `json:"sprintQualifying,omitempty"`
	DriverTeams        map[string]string `json:"driverTeams"`
	EnteredBy          string            `json:"enteredBy"`
	UpdatedAt          string            `json:"updatedAt"`
}

type auditEntryDTO struct {
	AdminID   string         `json:"adminId"`
	EventID   string         `json:"eventId"`
	Action    string         `json:"action"`
	Changes   map[string]any `json:"changes,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func resultToDTO(res result.EventResult) resultDTO {
	return resultDTO{
		EventID:            res.EventID,
		GrandPrixFinish:    append([]string(nil), res.GrandPrixFinish...),
		GPQualifying:       append([]string(nil), res.GPQualifying...),
		FastestLapDriverID: res.FastestLap,
		SprintFinish:       append([]string(nil), res.SprintFinish...),
		SprintQualifying:   append([]string(nil), res.SprintQualifying...),
		DriverTeams:        res.DriverTeams,
		EnteredBy:          res.EnteredBy,
		UpdatedAt:          res.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
