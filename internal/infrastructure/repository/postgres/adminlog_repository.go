package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/adminlog"
	"github.com/lightsout-league/pickem/internal/platform/id"
	qb "github.com/lightsout-league/pickem/internal/platform/querybuilder"
)

const adminLogPageSize = 200

type adminLogTableModel struct {
	ID        string    `db:"id"`
	AdminID   string    `db:"admin_id"`
	AdminName string    `db:"admin_name"`
	EventID   string    `db:"event_id"`
	EventName string    `db:"event_name"`
	Action    string    `db:"action"`
	Changes   string    `db:"changes"`
	CreatedAt time.Time `db:"created_at"`
}

type AdminLogRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

func NewAdminLogRepository(db *sqlx.DB, ids id.Generator) *AdminLogRepository {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &AdminLogRepository{db: db, ids: ids}
}

func (r *AdminLogRepository) Append(ctx context.Context, entry adminlog.Entry) error {
	if entry.ID == "" {
		newID, err := r.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate admin log id: %w", err)
		}
		entry.ID = newID
	}

	insertModel := adminLogTableModel{
		ID:        entry.ID,
		AdminID:   entry.AdminID,
		AdminName: entry.AdminName,
		EventID:   entry.EventID,
		EventName: entry.EventName,
		Action:    entry.Action,
		Changes:   entry.Changes,
		CreatedAt: entry.CreatedAt,
	}
	query, args, err := qb.InsertModel("admin_logs", insertModel, "")
	if err != nil {
		return fmt.Errorf("build append admin log query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append admin log: %w", err)
	}
	return nil
}

func (r *AdminLogRepository) List(ctx context.Context, eventID string) ([]adminlog.Entry, error) {
	builder := qb.Select("*").From("admin_logs")
	if eventID != "" {
		builder = builder.Where(qb.Eq("event_id", eventID))
	}
	query, args, err := builder.
		OrderBy("created_at DESC", "id").
		Limit(adminLogPageSize).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list admin logs query: %w", err)
	}

	var rows []adminLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list admin logs: %w", err)
	}

	out := make([]adminlog.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, adminlog.Entry(row))
	}
	return out, nil
}
