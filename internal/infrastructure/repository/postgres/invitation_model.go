package postgres

import (
	"database/sql"
	"time"
)

type invitationTableModel struct {
	Code        string         `db:"code"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	CreatedBy   string         `db:"created_by"`
	ReservedAt  sql.NullTime   `db:"reserved_at"`
	ReservedFor sql.NullString `db:"reserved_for"`
	UsedAt      sql.NullTime   `db:"used_at"`
	UsedBy      sql.NullString `db:"used_by"`
	UsedByEmail sql.NullString `db:"used_by_email"`
}

type invitationInsertModel struct {
	Code        string    `db:"code"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	CreatedBy   string    `db:"created_by"`
	ReservedFor *string   `db:"reserved_for"`
}
