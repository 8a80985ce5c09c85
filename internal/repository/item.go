package repository

import (
	"context"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// Item defines the interface for the item catalog: static display
// metadata keyed by item ID, read-only to the core at runtime.
type Item interface {
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpsertItem(ctx context.Context, item domain.Item) error
}
