package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/result"
)

type saveResultRequest struct {
	GrandPrixFinish  []*string `json:"grandPrixFinish"`
	SprintFinish     []*string `json:"sprintFinish"`
	GPQualifying     []*string `json:"gpQualifying"`
	SprintQualifying []*string `json:"sprintQualifying"`
	FastestLap       *string   `json:"fastestLap"`
	P22Driver        *string   `json:"p22Driver"`
}

type resultDTO struct {
	EventID          string    `json:"eventId"`
	GrandPrixFinish  []*string `json:"grandPrixFinish,omitempty"`
	SprintFinish     []*string `json:"sprintFinish,omitempty"`
	GPQualifying     []*string `json:"gpQualifying,omitempty"`
	SprintQualifying []*string `json:"sprintQualifying,omitempty"`
	FastestLap       *string   `json:"fastestLap"`
	P22Driver        *string   `json:"p22Driver"`
	HasSnapshot      bool      `json:"hasSnapshot"`
	UpdatedAt        string    `json:"updatedAt"`
}

func (h *Handler) SaveEventResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveEventResult")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	var req saveResultRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res := result.EventResult{
		EventID:          eventID,
		GrandPrixFinish:  req.GrandPrixFinish,
		SprintFinish:     req.SprintFinish,
		GPQualifying:     req.GPQualifying,
		SprintQualifying: req.SprintQualifying,
		FastestLap:       req.FastestLap,
		P22Driver:        req.P22Driver,
	}
	if err := h.resultsService.SaveResult(ctx, principal, res); err != nil {
		h.logger.WarnContext(ctx, "save result failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	saved, err := h.resultsService.GetResult(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "reload saved result failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(saved))
}

func (h *Handler) GetEventResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventResult")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	res, err := h.resultsService.GetResult(ctx, eventID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(res))
}

func (h *Handler) ListEventResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventResults")
	defer span.End()

	results, err := h.resultsService.ListResults(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make(map[string]resultDTO, len(results))
	for eventID, res := range results {
		items[eventID] = resultToDTO(res)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func resultToDTO(res result.EventResult) resultDTO {
	return resultDTO{
		EventID:          res.EventID,
		GrandPrixFinish:  res.GrandPrixFinish,
		SprintFinish:     res.SprintFinish,
		GPQualifying:     res.GPQualifying,
		SprintQualifying: res.SprintQualifying,
		FastestLap:       res.FastestLap,
		P22Driver:        res.P22Driver,
		HasSnapshot:      res.Snapshot != nil,
		UpdatedAt:        res.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
