package invitation

import "context"

type Repository interface {
	Get(ctx context.Context, code string) (Code, bool, error)
	List(ctx context.Context) ([]Code, error)
	Create(ctx context.Context, code Code) error
	// Reserve transitions an active code to reserved inside a
	// transaction. It fails with ErrNotActive when the code is reserved
	// or used, and reports found=false when it does not exist.
	Reserve(ctx context.Context, code string) (found bool, err error)
	MarkUsed(ctx context.Context, code, userID, email string) error
	// ReleaseByUser flips codes consumed by the given user back to
	// active, clearing usage fields. Used by account purge.
	ReleaseByUser(ctx context.Context, userID string) error
	SetReservationNote(ctx context.Context, code, reservedFor string) error
	Delete(ctx context.Context, code string) error
}
