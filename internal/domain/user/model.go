package user

import "time"

type DuesStatus string

const (
	DuesPaid   DuesStatus = "Paid"
	DuesUnpaid DuesStatus = "Unpaid"
)

// Profile is the private per-user record. The admin flag gates result
// entry, scoring configuration, and the manual recompute trigger.
type Profile struct {
	ID             string
	Email          string
	DisplayName    string
	FirstName      string
	LastName       string
	IsAdmin        bool
	DuesPaidStatus DuesStatus
	CreatedAt      time.Time
}

// Principal is the authenticated caller identity resolved at the HTTP
// edge. Authorization decisions always go back to the stored Profile.
type Principal struct {
	UserID string
	Email  string
}

// FallbackDisplayName names profiles that went missing from the user
// directory so leaderboard rows stay renderable.
func FallbackDisplayName(userID string) string {
	short := userID
	if len(short) > 4 {
		short = short[:4]
	}
	return "Team " + short
}
