package postgres

import "time"

type userTableModel struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	DisplayName    string    `db:"display_name"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	IsAdmin        bool      `db:"is_admin"`
	DuesPaidStatus string    `db:"dues_paid_status"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type userInsertModel struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	DisplayName    string    `db:"display_name"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	IsAdmin        bool      `db:"is_admin"`
	DuesPaidStatus string    `db:"dues_paid_status"`
	CreatedAt      time.Time `db:"created_at"`
}
