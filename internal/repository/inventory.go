package repository

import (
	"context"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// Inventory defines the interface for inventory-stack persistence.
// Reads outside a transaction return committed state; lookups that find
// nothing return (nil, nil) and leave not-found semantics to the caller.
type Inventory interface {
	BeginTx(ctx context.Context) (InventoryTx, error)

	// GetStacks returns all stacks for a user ordered by
	// (item_type, item_name) for deterministic client rendering.
	GetStacks(ctx context.Context, userID string) ([]domain.ItemStack, error)
	GetStack(ctx context.Context, userID, itemID string) (*domain.ItemStack, error)
}

// InventoryTx is a transaction scoped to ledger mutations.
type InventoryTx interface {
	Tx
	StackTx
}
