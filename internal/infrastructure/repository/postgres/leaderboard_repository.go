package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	qb "github.com/lightsout-league/pickem/internal/platform/querybuilder"
)

type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) ListPage(ctx context.Context, offset, limit int) ([]leaderboard.Entry, error) {
	query, args, err := qb.Select("*").From("leaderboard_entries").
		OrderBy("rank", "total_points DESC", "user_id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leaderboard query: %w", err)
	}

	var rows []leaderboardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leaderboard page: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := entryFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// ReplaceAll swaps the whole table inside one transaction. A failed
// commit rolls back to the previous table; readers never observe a
// half-written leaderboard.
func (r *LeaderboardRepository) ReplaceAll(ctx context.Context, entries []leaderboard.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace leaderboard: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("leaderboard_entries").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear leaderboard query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}

	for _, entry := range entries {
		insertModel, err := insertModelFromEntry(entry)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("leaderboard_entries", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert leaderboard entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert leaderboard entry user=%s: %w", entry.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace leaderboard tx: %w", err)
	}
	return nil
}

func (r *LeaderboardRepository) Init(ctx context.Context, entry leaderboard.Entry) error {
	insertModel, err := insertModelFromEntry(entry)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("leaderboard_entries", insertModel, "ON CONFLICT (user_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build init leaderboard entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("init leaderboard entry user=%s: %w", entry.UserID, err)
	}
	return nil
}

func (r *LeaderboardRepository) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	query, args, err := qb.Update("leaderboard_entries").
		Set("display_name", displayName).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update display name query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update display name user=%s: %w", userID, err)
	}
	return nil
}

func (r *LeaderboardRepository) Delete(ctx context.Context, userID string) error {
	query, args, err := qb.DeleteFrom("leaderboard_entries").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete leaderboard entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete leaderboard entry user=%s: %w", userID, err)
	}
	return nil
}

func entryFromRow(row leaderboardTableModel) (leaderboard.Entry, error) {
	var breakdown scoring.Breakdown
	if err := unmarshalJSON(row.Breakdown, &breakdown); err != nil {
		return leaderboard.Entry{}, fmt.Errorf("decode breakdown user=%s: %w", row.UserID, err)
	}
	return leaderboard.Entry{
		UserID:      row.UserID,
		DisplayName: row.DisplayName,
		TotalPoints: row.TotalPoints,
		Breakdown:   breakdown,
		Rank:        row.Rank,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func insertModelFromEntry(entry leaderboard.Entry) (leaderboardInsertModel, error) {
	breakdown, err := marshalJSON(entry.Breakdown)
	if err != nil {
		return leaderboardInsertModel{}, fmt.Errorf("encode breakdown user=%s: %w", entry.UserID, err)
	}
	return leaderboardInsertModel{
		UserID:      entry.UserID,
		DisplayName: entry.DisplayName,
		TotalPoints: entry.TotalPoints,
		Breakdown:   breakdown,
		Rank:        entry.Rank,
		UpdatedAt:   entry.UpdatedAt,
	}, nil
}
