package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/invitation"
	qb "github.com/lightsout-league/pickem/internal/platform/querybuilder"
)

type InvitationRepository struct {
	db *sqlx.DB
}

func NewInvitationRepository(db *sqlx.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Get(ctx context.Context, code string) (invitation.Code, bool, error) {
	query, args, err := qb.Select("*").From("invitation_codes").
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return invitation.Code{}, false, fmt.Errorf("build get invitation query: %w", err)
	}

	var row invitationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return invitation.Code{}, false, nil
		}
		return invitation.Code{}, false, fmt.Errorf("get invitation %s: %w", code, err)
	}
	return invitationFromRow(row), true, nil
}

func (r *InvitationRepository) List(ctx context.Context) ([]invitation.Code, error) {
	query, args, err := qb.Select("*").From("invitation_codes").
		OrderBy("created_at DESC", "code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list invitations query: %w", err)
	}

	var rows []invitationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	out := make([]invitation.Code, 0, len(rows))
	for _, row := range rows {
		out = append(out, invitationFromRow(row))
	}
	return out, nil
}

func (r *InvitationRepository) Create(ctx context.Context, code invitation.Code) error {
	insertModel := invitationInsertModel{
		Code:        code.Code,
		Status:      string(code.Status),
		CreatedAt:   code.CreatedAt,
		CreatedBy:   code.CreatedBy,
		ReservedFor: nullableString(code.ReservedFor),
	}
	query, args, err := qb.InsertModel("invitation_codes", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create invitation query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create invitation %s: %w", code.Code, err)
	}
	return nil
}

// Reserve flips an active code to reserved under a row lock so two
// signups cannot claim the same code.
func (r *InvitationRepository) Reserve(ctx context.Context, code string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx reserve invitation: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var status string
	err = tx.GetContext(ctx, &status,
		"SELECT status FROM invitation_codes WHERE code = $1 FOR UPDATE", code)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("lock invitation %s: %w", code, err)
	}
	if status != string(invitation.StatusActive) {
		return true, invitation.ErrNotActive
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE invitation_codes SET status = $1, reserved_at = NOW() WHERE code = $2",
		string(invitation.StatusReserved), code); err != nil {
		return true, fmt.Errorf("reserve invitation %s: %w", code, err)
	}

	if err := tx.Commit(); err != nil {
		return true, fmt.Errorf("commit reserve invitation tx: %w", err)
	}
	return true, nil
}

func (r *InvitationRepository) MarkUsed(ctx context.Context, code, userID, email string) error {
	query, args, err := qb.Update("invitation_codes").
		Set("status", string(invitation.StatusUsed)).
		Set("used_by", userID).
		Set("used_by_email", email).
		SetExpr("used_at", "NOW()").
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark invitation used query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark invitation %s used: %w", code, err)
	}
	return nil
}

func (r *InvitationRepository) ReleaseByUser(ctx context.Context, userID string) error {
	query, args, err := qb.Update("invitation_codes").
		Set("status", string(invitation.StatusActive)).
		Set("used_by", nil).
		Set("used_by_email", nil).
		Set("used_at", nil).
		Set("reserved_at", nil).
		Where(qb.Eq("used_by", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release invitations query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("release invitations for user %s: %w", userID, err)
	}
	return nil
}

func (r *InvitationRepository) SetReservationNote(ctx context.Context, code, reservedFor string) error {
	query, args, err := qb.Update("invitation_codes").
		Set("reserved_for", nullableString(reservedFor)).
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set reservation note query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set reservation note on %s: %w", code, err)
	}
	return nil
}

func (r *InvitationRepository) Delete(ctx context.Context, code string) error {
	query, args, err := qb.DeleteFrom("invitation_codes").
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete invitation query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete invitation %s: %w", code, err)
	}
	return nil
}

func invitationFromRow(row invitationTableModel) invitation.Code {
	return invitation.Code{
		Code:        row.Code,
		Status:      invitation.Status(row.Status),
		CreatedAt:   row.CreatedAt,
		CreatedBy:   row.CreatedBy,
		ReservedAt:  nullTimeToTimePtr(row.ReservedAt),
		ReservedFor: stringFromNull(row.ReservedFor),
		UsedAt:      nullTimeToTimePtr(row.UsedAt),
		UsedBy:      stringFromNull(row.UsedBy),
		UsedByEmail: stringFromNull(row.UsedByEmail),
	}
}
