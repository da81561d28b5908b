package httpapi

import (
	"net/http"

	"github.com/lightsout-league/pickem/internal/domain/entity"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
)

func (h *Handler) GetScoringSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringSettings")
	defer span.End()

	settings, err := h.scoringService.GetSettings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoring settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settings)
}

func (h *Handler) SaveScoringSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveScoringSettings")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req scoring.Settings
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.SaveSettings(ctx, principal, req); err != nil {
		h.logger.WarnContext(ctx, "save scoring settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, req)
}

func (h *Handler) GetEntityRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntityRegister")
	defer span.End()

	register, err := h.scoringService.GetRegister(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get entity register failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, register)
}

func (h *Handler) SaveEntityRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveEntityRegister")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req entity.Register
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.SaveRegister(ctx, principal, req); err != nil {
		h.logger.WarnContext(ctx, "save entity register failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, req)
}
