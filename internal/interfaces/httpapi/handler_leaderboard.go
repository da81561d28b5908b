package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
)

type leaderboardEntryDTO struct {
	UserID      string            `json:"userId"`
	DisplayName string            `json:"displayName"`
	TotalPoints int               `json:"totalPoints"`
	Breakdown   scoring.Breakdown `json:"breakdown"`
	Rank        int               `json:"rank"`
	UpdatedAt   string            `json:"updatedAt"`
}

func (h *Handler) GetLeaderboardPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboardPage")
	defer span.End()

	offset := parseQueryInt(r, "offset", 0)
	limit := parseQueryInt(r, "limit", 0)

	entries, err := h.leaderboardService.ListPage(ctx, offset, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard page failed", "offset", offset, "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) TriggerManualRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerManualRecompute")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	outcome, err := h.recalcService.ManualRecompute(ctx, principal, resolveClientIP(r))
	if err != nil {
		h.logger.WarnContext(ctx, "manual recompute failed", "admin_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"usersProcessed": outcome.UsersProcessed,
	})
}

func leaderboardEntryToDTO(entry leaderboard.Entry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		UserID:      entry.UserID,
		DisplayName: entry.DisplayName,
		TotalPoints: entry.TotalPoints,
		Breakdown:   entry.Breakdown,
		Rank:        entry.Rank,
		UpdatedAt:   entry.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
