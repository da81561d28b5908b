package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/picks"
	qb "github.com/lightsout-league/pickem/internal/platform/querybuilder"
)

// PicksRepository stores one row per (user, event). The selection lives
// as a json document; the penalty columns sit outside it so saving a new
// slate never clears an assigned penalty.
type PicksRepository struct {
	db *sqlx.DB
}

func NewPicksRepository(db *sqlx.DB) *PicksRepository {
	return &PicksRepository{db: db}
}

func (r *PicksRepository) GetByUser(ctx context.Context, userID string) (map[string]picks.Selection, bool, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get picks query: %w", err)
	}

	var rows []picksTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, false, fmt.Errorf("get picks for user %s: %w", userID, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	record := make(map[string]picks.Selection, len(rows))
	for _, row := range rows {
		sel, err := selectionFromRow(row)
		if err != nil {
			return nil, false, err
		}
		record[row.EventID] = sel
	}
	return record, true, nil
}

func (r *PicksRepository) ListAll(ctx context.Context) (map[string]map[string]picks.Selection, error) {
	query, args, err := qb.Select("*").From("picks").
		OrderBy("user_id", "event_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []picksTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make(map[string]map[string]picks.Selection)
	for _, row := range rows {
		sel, err := selectionFromRow(row)
		if err != nil {
			return nil, err
		}
		record, ok := out[row.UserID]
		if !ok {
			record = make(map[string]picks.Selection)
			out[row.UserID] = record
		}
		record[row.EventID] = sel
	}
	return out, nil
}

func (r *PicksRepository) UpsertEvent(ctx context.Context, userID, eventID string, sel picks.Selection) error {
	sel.Penalty = 0
	sel.PenaltyReason = ""
	encoded, err := marshalJSON(sel)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}

	insertModel := picksInsertModel{
		UserID:    userID,
		EventID:   eventID,
		Selection: encoded,
	}
	query, args, err := qb.InsertModel("picks", insertModel, `ON CONFLICT (user_id, event_id)
DO UPDATE SET
    selection = EXCLUDED.selection,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert picks query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert picks user=%s event=%s: %w", userID, eventID, err)
	}
	return nil
}

func (r *PicksRepository) UpdatePenalty(ctx context.Context, userID, eventID string, penalty float64, reason string) error {
	// A penalty can land before the user has picked; seed an empty row
	// so it survives until they do.
	empty, err := marshalJSON(picks.Selection{})
	if err != nil {
		return fmt.Errorf("encode empty selection: %w", err)
	}

	query, args, err := qb.InsertInto("picks").
		Columns("user_id", "event_id", "selection", "penalty", "penalty_reason").
		Values(userID, eventID, empty, penalty, reason).
		Suffix(`ON CONFLICT (user_id, event_id)
DO UPDATE SET
    penalty = EXCLUDED.penalty,
    penalty_reason = EXCLUDED.penalty_reason,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update penalty query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update penalty user=%s event=%s: %w", userID, eventID, err)
	}
	return nil
}

func (r *PicksRepository) DeleteByUser(ctx context.Context, userID string) error {
	query, args, err := qb.DeleteFrom("picks").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete picks query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete picks for user %s: %w", userID, err)
	}
	return nil
}

func selectionFromRow(row picksTableModel) (picks.Selection, error) {
	var sel picks.Selection
	if err := unmarshalJSON(row.Selection, &sel); err != nil {
		return picks.Selection{}, fmt.Errorf("decode selection user=%s event=%s: %w", row.UserID, row.EventID, err)
	}
	sel.Penalty = row.Penalty
	sel.PenaltyReason = row.PenaltyReason
	return sel, nil
}
