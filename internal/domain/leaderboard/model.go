package leaderboard

import (
	"time"

	"github.com/lightsout-league/pickem/internal/domain/scoring"
)

// UnrankedPosition marks rows that have never been through a recompute,
// i.e. users created after the last run.
const UnrankedPosition = 999

// Entry is one user's public leaderboard row. Rows are derived data:
// every recompute rebuilds and replaces all of them in one batch, so no
// field here is ever patched individually except the display name.
type Entry struct {
	UserID      string
	DisplayName string
	TotalPoints int
	Breakdown   scoring.Breakdown
	Rank        int
	UpdatedAt   time.Time
}

// NewEntry is the zeroed row written at signup, before the user has been
// through a recompute.
func NewEntry(userID, displayName string) Entry {
	return Entry{
		UserID:      userID,
		DisplayName: displayName,
		Rank:        UnrankedPosition,
	}
}
