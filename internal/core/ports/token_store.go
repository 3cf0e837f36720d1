package ports

import (
	"context"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// TokenStore persists the access/refresh pair across restarts.
// Get returns an empty pair, not an error, when nothing is stored.
type TokenStore interface {
	Get(ctx context.Context) (domain.TokenPair, error)
	Set(ctx context.Context, pair domain.TokenPair) error
	Clear(ctx context.Context) error
}
