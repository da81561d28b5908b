package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/invitation"
)

type createInvitationRequest struct {
	ReservedFor string `json:"reservedFor" validate:"max=200"`
}

type createBulkInvitationsRequest struct {
	Count int `json:"count" validate:"required,min=1,max=50"`
}

type reservationNoteRequest struct {
	ReservedFor string `json:"reservedFor" validate:"max=200"`
}

type invitationDTO struct {
	Code        string `json:"code"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	CreatedBy   string `json:"createdBy"`
	ReservedAt  string `json:"reservedAt,omitempty"`
	ReservedFor string `json:"reservedFor,omitempty"`
	UsedAt      string `json:"usedAt,omitempty"`
	UsedBy      string `json:"usedBy,omitempty"`
	UsedByEmail string `json:"usedByEmail,omitempty"`
}

func (h *Handler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateInvitation")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createInvitationRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	code, err := h.invitationService.Create(ctx, principal, req.ReservedFor)
	if err != nil {
		h.logger.WarnContext(ctx, "create invitation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, invitationToDTO(code))
}

func (h *Handler) CreateBulkInvitations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBulkInvitations")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createBulkInvitationsRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	codes, err := h.invitationService.CreateBulk(ctx, principal, req.Count)
	if err != nil {
		h.logger.WarnContext(ctx, "create bulk invitations failed", "count", req.Count, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]invitationDTO, 0, len(codes))
	for _, code := range codes {
		items = append(items, invitationToDTO(code))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListInvitations")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	codes, err := h.invitationService.List(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list invitations failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]invitationDTO, 0, len(codes))
	for _, code := range codes {
		items = append(items, invitationToDTO(code))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SetInvitationNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetInvitationNote")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	code := strings.TrimSpace(r.PathValue("code"))
	var req reservationNoteRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.invitationService.SetReservationNote(ctx, principal, code, req.ReservedFor); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"code": code, "reservedFor": req.ReservedFor})
}

func (h *Handler) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteInvitation")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	code := strings.TrimSpace(r.PathValue("code"))
	if err := h.invitationService.Delete(ctx, principal, code); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func invitationToDTO(code invitation.Code) invitationDTO {
	dto := invitationDTO{
		Code:        code.Code,
		Status:      string(code.Status),
		CreatedAt:   code.CreatedAt.UTC().Format(time.RFC3339),
		CreatedBy:   code.CreatedBy,
		ReservedFor: code.ReservedFor,
		UsedBy:      code.UsedBy,
		UsedByEmail: code.UsedByEmail,
	}
	if code.ReservedAt != nil {
		dto.ReservedAt = code.ReservedAt.UTC().Format(time.RFC3339)
	}
	if code.UsedAt != nil {
		dto.UsedAt = code.UsedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
