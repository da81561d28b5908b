package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/user"
	qb "github.com/lightsout-league/pickem/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.Profile, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get user %s: %w", id, err)
	}

	return profileFromRow(row), true, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]user.Profile, error) {
	query, args, err := qb.Select("*").From("users").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, profile user.Profile) (bool, error) {
	insertModel := userInsertModel{
		ID:             profile.ID,
		Email:          profile.Email,
		DisplayName:    profile.DisplayName,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		IsAdmin:        profile.IsAdmin,
		DuesPaidStatus: string(profile.DuesPaidStatus),
		CreatedAt:      profile.CreatedAt,
	}
	query, args, err := qb.InsertModel("users", insertModel, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build create user query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("create user %s: %w", profile.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create user %s rows affected: %w", profile.ID, err)
	}
	return affected > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, profile user.Profile) error {
	query, args, err := qb.Update("users").
		Set("email", profile.Email).
		Set("display_name", profile.DisplayName).
		Set("first_name", profile.FirstName).
		Set("last_name", profile.LastName).
		Set("is_admin", profile.IsAdmin).
		Set("dues_paid_status", string(profile.DuesPaidStatus)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", profile.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user %s: %w", profile.ID, err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("users").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

func profileFromRow(row userTableModel) user.Profile {
	return user.Profile{
		ID:             row.ID,
		Email:          row.Email,
		DisplayName:    row.DisplayName,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		IsAdmin:        row.IsAdmin,
		DuesPaidStatus: user.DuesStatus(row.DuesPaidStatus),
		CreatedAt:      row.CreatedAt,
	}
}
