package httpapi

import (
	"net/http"
)

type sendAuthCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyAuthCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type validateInvitationRequest struct {
	Code string `json:"code" validate:"required,min=8,max=20"`
}

func (h *Handler) SendAuthCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendAuthCode")
	defer span.End()

	var req sendAuthCodeRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	demoCode, err := h.authService.SendAuthCode(ctx, req.Email, resolveClientIP(r))
	if err != nil {
		h.logger.WarnContext(ctx, "send auth code failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	payload := map[string]any{"sent": true}
	if demoCode != "" {
		payload["code"] = demoCode
	}
	writeSuccess(ctx, w, http.StatusOK, payload)
}

func (h *Handler) VerifyAuthCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyAuthCode")
	defer span.End()

	var req verifyAuthCodeRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.VerifyAuthCode(ctx, req.Email, req.Code); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"verified": true})
}

func (h *Handler) SendPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendPasswordReset")
	defer span.End()

	var req passwordResetRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.SendPasswordReset(ctx, req.Email, resolveClientIP(r)); err != nil {
		writeError(ctx, w, err)
		return
	}

	// Deliberately the same answer whether or not the address exists.
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"sent": true})
}

func (h *Handler) ValidateInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateInvitation")
	defer span.End()

	var req validateInvitationRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.invitationService.Validate(ctx, req.Code, resolveClientIP(r)); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"valid": true})
}
