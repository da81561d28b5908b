package postgres

import "time"

type picksTableModel struct {
	UserID        string    `db:"user_id"`
	EventID       string    `db:"event_id"`
	Selection     []byte    `db:"selection"`
	Penalty       float64   `db:"penalty"`
	PenaltyReason string    `db:"penalty_reason"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type picksInsertModel struct {
	UserID    string `db:"user_id"`
	EventID   string `db:"event_id"`
	Selection []byte `db:"selection"`
}
