package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/lightsout-league/pickem/internal/platform/querybuilder"
)

// Single-row configuration documents share one shape: an id pinned to 1
// plus a json column replaced wholesale.
type documentTableModel struct {
	ID       int    `db:"id"`
	Document []byte `db:"document"`
}

func getDocument(ctx context.Context, db *sqlx.DB, table string, out any) (bool, error) {
	query, args, err := qb.Select("id", "document").From(table).
		Where(qb.Eq("id", 1)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build get %s query: %w", table, err)
	}

	var row documentTableModel
	if err := db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", table, err)
	}
	if err := unmarshalJSON(row.Document, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", table, err)
	}
	return true, nil
}

func saveDocument(ctx context.Context, db *sqlx.DB, table string, value any) error {
	encoded, err := marshalJSON(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", table, err)
	}

	query, args, err := qb.InsertInto(table).
		Columns("id", "document").
		Values(1, encoded).
		Suffix(`ON CONFLICT (id)
DO UPDATE SET
    document = EXCLUDED.document,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save %s query: %w", table, err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	return nil
}
