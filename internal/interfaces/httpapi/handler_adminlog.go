package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/adminlog"
)

type adminLogEntryDTO struct {
	ID        string `json:"id"`
	AdminID   string `json:"adminId"`
	AdminName string `json:"adminName"`
	EventID   string `json:"eventId,omitempty"`
	EventName string `json:"eventName,omitempty"`
	Action    string `json:"action"`
	Changes   string `json:"changes,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func (h *Handler) ListAdminLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAdminLogs")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	eventID := strings.TrimSpace(r.URL.Query().Get("event_id"))
	entries, err := h.adminLogService.List(ctx, principal, eventID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]adminLogEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, adminLogEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func adminLogEntryToDTO(entry adminlog.Entry) adminLogEntryDTO {
	return adminLogEntryDTO{
		ID:        entry.ID,
		AdminID:   entry.AdminID,
		AdminName: entry.AdminName,
		EventID:   entry.EventID,
		EventName: entry.EventName,
		Action:    entry.Action,
		Changes:   entry.Changes,
		CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}
