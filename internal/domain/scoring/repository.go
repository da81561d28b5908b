package scoring

import "context"

// Repository stores the scoring settings document.
type Repository interface {
	GetSettings(ctx context.Context) (Settings, bool, error)
	SaveSettings(ctx context.Context, settings Settings) error
}
