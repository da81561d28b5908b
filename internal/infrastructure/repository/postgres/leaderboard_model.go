package postgres

import "time"

type leaderboardTableModel struct {
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	TotalPoints int       `db:"total_points"`
	Breakdown   []byte    `db:"breakdown"`
	Rank        int       `db:"rank"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type leaderboardInsertModel struct {
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	TotalPoints int       `db:"total_points"`
	Breakdown   []byte    `db:"breakdown"`
	Rank        int       `db:"rank"`
	UpdatedAt   time.Time `db:"updated_at"`
}
