package adminlog

import "time"

// Entry is one append-only record of an administrative action.
type Entry struct {
	ID        string
	AdminID   string
	AdminName string
	EventID   string
	EventName string
	Action    string
	Changes   string
	CreatedAt time.Time
}
