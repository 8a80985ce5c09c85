// Package item serves the read-only item catalog: static display
// metadata the inventory ledger snapshots onto new stacks.
package item

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/logger"
	"github.com/highnoon-games/dustbound/internal/repository"
)

// Service looks up catalog entries with an expiring LRU in front of the
// repository. The catalog changes only on reseed, so a short TTL is
// enough to pick up edits without a restart.
type Service struct {
	repo  repository.Item
	cache *expirable.LRU[string, domain.Item]
}

// NewService creates a catalog service with the given cache bounds.
func NewService(repo repository.Item, cacheSize int, cacheTTL time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: expirable.NewLRU[string, domain.Item](cacheSize, nil, cacheTTL),
	}
}

// GetItem returns the catalog entry for itemID.
// Returns domain.ErrCatalogItemNotFound for unknown IDs.
func (s *Service) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	if cached, ok := s.cache.Get(itemID); ok {
		return &cached, nil
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get catalog item", "item_id", itemID, "error", err)
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogItemNotFound, itemID)
	}

	s.cache.Add(itemID, *item)
	return item, nil
}

// ListItems returns the full catalog, bypassing the cache.
func (s *Service) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list catalog items", "error", err)
		return nil, err
	}
	return items, nil
}
