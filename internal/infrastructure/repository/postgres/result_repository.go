package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/result"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	qb "github.com/lightsout-league/pickem/internal/platform/querybuilder"
)

// EventResultRepository stores one row per event. The finisher payload
// and the frozen scoring snapshot are separate json columns so a result
// edit can rewrite one without touching the other.
type EventResultRepository struct {
	db *sqlx.DB
}

func NewEventResultRepository(db *sqlx.DB) *EventResultRepository {
	return &EventResultRepository{db: db}
}

func (r *EventResultRepository) Get(ctx context.Context, eventID string) (result.EventResult, bool, error) {
	query, args, err := qb.Select("*").From("event_results").
		Where(qb.Eq("event_id", eventID)).
		ToSQL()
	if err != nil {
		return result.EventResult{}, false, fmt.Errorf("build get result query: %w", err)
	}

	var row eventResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.EventResult{}, false, nil
		}
		return result.EventResult{}, false, fmt.Errorf("get result for event %s: %w", eventID, err)
	}

	res, err := resultFromRow(row)
	if err != nil {
		return result.EventResult{}, false, err
	}
	return res, true, nil
}

func (r *EventResultRepository) ListAll(ctx context.Context) (map[string]result.EventResult, error) {
	query, args, err := qb.Select("*").From("event_results").
		OrderBy("event_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []eventResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make(map[string]result.EventResult, len(rows))
	for _, row := range rows {
		res, err := resultFromRow(row)
		if err != nil {
			return nil, err
		}
		out[row.EventID] = res
	}
	return out, nil
}

func (r *EventResultRepository) Upsert(ctx context.Context, res result.EventResult) error {
	snapshot := res.Snapshot
	res.Snapshot = nil
	payload, err := marshalJSON(res)
	if err != nil {
		return fmt.Errorf("encode result payload: %w", err)
	}
	var snapshotJSON []byte
	if snapshot != nil {
		snapshotJSON, err = marshalJSON(snapshot)
		if err != nil {
			return fmt.Errorf("encode scoring snapshot: %w", err)
		}
	}

	insertModel := eventResultInsertModel{
		EventID:   res.EventID,
		Payload:   payload,
		Snapshot:  snapshotJSON,
		UpdatedAt: res.UpdatedAt,
	}
	query, args, err := qb.InsertModel("event_results", insertModel, `ON CONFLICT (event_id)
DO UPDATE SET
    payload = EXCLUDED.payload,
    snapshot = EXCLUDED.snapshot,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result for event %s: %w", res.EventID, err)
	}
	return nil
}

func resultFromRow(row eventResultTableModel) (result.EventResult, error) {
	var res result.EventResult
	if err := unmarshalJSON(row.Payload, &res); err != nil {
		return result.EventResult{}, fmt.Errorf("decode result payload event=%s: %w", row.EventID, err)
	}
	if len(row.Snapshot) > 0 {
		var snapshot scoring.Snapshot
		if err := unmarshalJSON(row.Snapshot, &snapshot); err != nil {
			return result.EventResult{}, fmt.Errorf("decode scoring snapshot event=%s: %w", row.EventID, err)
		}
		res.Snapshot = &snapshot
	}
	res.EventID = row.EventID
	res.UpdatedAt = row.UpdatedAt
	return res, nil
}
