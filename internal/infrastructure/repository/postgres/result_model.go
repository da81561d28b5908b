package postgres

import "time"

type eventResultTableModel struct {
	EventID   string    `db:"event_id"`
	Payload   []byte    `db:"payload"`
	Snapshot  []byte    `db:"snapshot"`
	UpdatedAt time.Time `db:"updated_at"`
}

type eventResultInsertModel struct {
	EventID   string    `db:"event_id"`
	Payload   []byte    `db:"payload"`
	Snapshot  []byte    `db:"snapshot"`
	UpdatedAt time.Time `db:"updated_at"`
}
