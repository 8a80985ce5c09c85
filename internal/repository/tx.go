package repository

import (
	"context"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// Tx defines the minimal contract of an open database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// StackTx defines the inventory-stack operations available inside a
// transaction. Every mutating ledger path runs against this interface
// rather than a concrete transaction, so the quest coordinator can
// enlist item grants in its own unit of work and the whole reward
// commits or rolls back together.
//
// GetStackForUpdate takes a write-exclusive row lock; a second writer
// on the same (user, item) pair blocks until the first transaction
// finishes.
type StackTx interface {
	GetStackForUpdate(ctx context.Context, userID, itemID string) (*domain.ItemStack, error)
	InsertStack(ctx context.Context, stack *domain.ItemStack) error
	UpdateStack(ctx context.Context, stack domain.ItemStack) error
	DeleteStack(ctx context.Context, stackID string) error
}
