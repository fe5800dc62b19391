// Package ports defines the boundaries between the core and its adapters.
package ports

import (
	"context"

	"github.com/deckhandlabs/deckhand/internal/core/domain"
)

// Source loads a complete catalog in one shot. Implementations report
// domain.ErrCatalogMissing when the backing store is unreachable and
// domain.ErrCatalogEmpty when nothing valid survives filtering; per-record
// problems are absorbed into the returned stats instead of failing the load.
type Source interface {
	Load(ctx context.Context) (domain.Catalog, domain.LoadStats, error)
}
