package ports

import (
	"context"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

// SnapshotStore persists the two session entries that survive a restart:
// the bearer token and the last known identity snapshot. Writes are
// last-writer-wins; the two entries are deliberately independent (no
// atomicity across them).
type SnapshotStore interface {
	SaveToken(ctx context.Context, token string) error
	// LoadToken returns "" when no token is persisted.
	LoadToken(ctx context.Context) (string, error)
	SaveProfile(ctx context.Context, profile *domain.UserProfile) error
	// LoadProfile returns nil when no snapshot is persisted.
	LoadProfile(ctx context.Context) (*domain.UserProfile, error)
	// Clear removes both entries. Idempotent.
	Clear(ctx context.Context) error
}
