package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/usecase"
)

type signupRequest struct {
	DisplayName    string `json:"displayName" validate:"max=100"`
	FirstName      string `json:"firstName" validate:"max=100"`
	LastName       string `json:"lastName" validate:"max=100"`
	InvitationCode string `json:"invitationCode" validate:"required,min=8,max=20"`
}

type updateDisplayNameRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
}

type setAdminRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

type setDuesStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Paid Unpaid"`
}

type profileDTO struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	IsAdmin        bool   `json:"isAdmin"`
	DuesPaidStatus string `json:"duesPaidStatus"`
	CreatedAt      string `json:"createdAt"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Signup")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req signupRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.accountService.Signup(ctx, principal, usecase.SignupInput{
		DisplayName:    req.DisplayName,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		InvitationCode: req.InvitationCode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "signup failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, map[string]bool{"created": created})
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	profile, err := h.accountService.GetProfile(ctx, principal)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

func (h *Handler) UpdateMyDisplayName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyDisplayName")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req updateDisplayNameRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.accountService.UpdateDisplayName(ctx, principal, req.DisplayName); err != nil {
		h.logger.WarnContext(ctx, "update display name failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"displayName": req.DisplayName})
}

func (h *Handler) SetUserAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetUserAdmin")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	targetID := strings.TrimSpace(r.PathValue("userID"))
	var req setAdminRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.accountService.SetAdmin(ctx, principal, targetID, req.IsAdmin); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"userId": targetID, "isAdmin": req.IsAdmin})
}

func (h *Handler) SetUserDuesStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetUserDuesStatus")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	targetID := strings.TrimSpace(r.PathValue("userID"))
	var req setDuesStatusRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.accountService.SetDuesStatus(ctx, principal, targetID, user.DuesStatus(req.Status)); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"userId": targetID, "status": req.Status})
}

func (h *Handler) PurgeUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PurgeUser")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	targetID := strings.TrimSpace(r.PathValue("userID"))
	if targetID == "" {
		targetID = principal.UserID
	}

	if err := h.accountService.Purge(ctx, principal, targetID); err != nil {
		h.logger.WarnContext(ctx, "purge user failed", "target_user_id", targetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"purged": true})
}

func profileToDTO(profile user.Profile) profileDTO {
	return profileDTO{
		ID:             profile.ID,
		Email:          profile.Email,
		DisplayName:    profile.DisplayName,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		IsAdmin:        profile.IsAdmin,
		DuesPaidStatus: string(profile.DuesPaidStatus),
		CreatedAt:      profile.CreatedAt.UTC().Format(time.RFC3339),
	}
}
