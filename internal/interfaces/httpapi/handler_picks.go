package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/picks"
)

type selectionDTO struct {
	ATeams     []*string `json:"aTeams"`
	BTeam      *string   `json:"bTeam"`
	ADrivers   []*string `json:"aDrivers"`
	BDrivers   []*string `json:"bDrivers"`
	FastestLap *string   `json:"fastestLap"`

	Penalty       float64 `json:"penalty,omitempty"`
	PenaltyReason string  `json:"penaltyReason,omitempty"`
}

type savePicksRequest struct {
	ATeams     []*string `json:"aTeams" validate:"required,len=2"`
	BTeam      *string   `json:"bTeam" validate:"required"`
	ADrivers   []*string `json:"aDrivers" validate:"required,len=3"`
	BDrivers   []*string `json:"bDrivers" validate:"required,len=2"`
	FastestLap *string   `json:"fastestLap" validate:"required"`
}

type setPenaltyRequest struct {
	Penalty float64 `json:"penalty" validate:"min=0,max=1"`
	Reason  string  `json:"reason" validate:"max=500"`
}

func (h *Handler) SaveMyEventPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyEventPicks")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	var req savePicksRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sel := picks.Selection{
		ATeams:     req.ATeams,
		BTeam:      req.BTeam,
		ADrivers:   req.ADrivers,
		BDrivers:   req.BDrivers,
		FastestLap: req.FastestLap,
	}
	if err := h.picksService.SaveEventPicks(ctx, principal, eventID, sel); err != nil {
		h.logger.WarnContext(ctx, "save picks failed", "event_id", eventID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(sel))
}

func (h *Handler) GetMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPicks")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	byEvent, err := h.picksService.GetMyPicks(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make(map[string]selectionDTO, len(byEvent))
	for eventID, sel := range byEvent {
		items[eventID] = selectionToDTO(sel)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SetPickPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPickPenalty")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	userID := strings.TrimSpace(r.PathValue("userID"))
	var req setPenaltyRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.picksService.SetPenalty(ctx, principal, userID, eventID, req.Penalty, req.Reason); err != nil {
		h.logger.WarnContext(ctx, "set penalty failed", "event_id", eventID, "target_user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"userId":    userID,
		"eventId":   eventID,
		"penalty":   req.Penalty,
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func selectionToDTO(sel picks.Selection) selectionDTO {
	return selectionDTO{
		ATeams:        sel.ATeams,
		BTeam:         sel.BTeam,
		ADrivers:      sel.ADrivers,
		BDrivers:      sel.BDrivers,
		FastestLap:    sel.FastestLap,
		Penalty:       sel.Penalty,
		PenaltyReason: sel.PenaltyReason,
	}
}
