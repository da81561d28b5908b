package usecase

import (
	"context"
	"fmt"

	"github.com/lightsout-league/pickem/internal/domain/user"
)

// requireAdmin resolves the caller's stored profile and enforces the
// admin flag. Authorization always goes back to the directory record,
// never to token claims.
func requireAdmin(ctx context.Context, repo user.Repository, principal user.Principal) (user.Profile, error) {
	profile, found, err := repo.GetByID(ctx, principal.UserID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("load caller profile: %w", err)
	}
	if !found || !profile.IsAdmin {
		return user.Profile{}, fmt.Errorf("%w: admin privileges required", ErrPermissionDenied)
	}
	return profile, nil
}
