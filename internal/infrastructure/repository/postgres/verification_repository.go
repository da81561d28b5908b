package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/verification"
	qb "github.com/lightsout-league/pickem/internal/platform/querybuilder"
)

type verificationTableModel struct {
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

type VerificationRepository struct {
	db *sqlx.DB
}

func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Get(ctx context.Context, email string) (verification.Code, bool, error) {
	query, args, err := qb.Select("*").From("verification_codes").
		Where(qb.Eq("email", email)).
		ToSQL()
	if err != nil {
		return verification.Code{}, false, fmt.Errorf("build get verification code query: %w", err)
	}

	var row verificationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return verification.Code{}, false, nil
		}
		return verification.Code{}, false, fmt.Errorf("get verification code for %s: %w", email, err)
	}
	return verification.Code(row), true, nil
}

func (r *VerificationRepository) Put(ctx context.Context, code verification.Code) error {
	insertModel := verificationTableModel(code)
	query, args, err := qb.InsertModel("verification_codes", insertModel, `ON CONFLICT (email)
DO UPDATE SET
    code = EXCLUDED.code,
    expires_at = EXCLUDED.expires_at,
    created_at = EXCLUDED.created_at`)
	if err != nil {
		return fmt.Errorf("build put verification code query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put verification code for %s: %w", code.Email, err)
	}
	return nil
}

func (r *VerificationRepository) Delete(ctx context.Context, email string) error {
	query, args, err := qb.DeleteFrom("verification_codes").
		Where(qb.Eq("email", email)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete verification code query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete verification code for %s: %w", email, err)
	}
	return nil
}
