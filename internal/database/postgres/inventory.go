package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/repository"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool, lockTimeout time.Duration) *InventoryRepository {
	return &InventoryRepository{db: db, lockTimeout: lockTimeout}
}

// BeginTx starts a ledger transaction with the configured lock timeout.
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := beginTx(ctx, r.db, r.lockTimeout)
	if err != nil {
		return nil, err
	}
	return &inventoryTx{tx: tx}, nil
}

// GetStacks returns all stacks for a user ordered by (item_type, item_name).
func (r *InventoryRepository) GetStacks(ctx context.Context, userID string) ([]domain.ItemStack, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + stackColumns + `
		FROM inventory_items
		WHERE user_id = $1
		ORDER BY item_type ASC, item_name ASC`

	rows, err := r.db.Query(ctx, query, userUUID)
	if err != nil {
		return nil, wrapDBError("failed to query stacks", err)
	}
	defer rows.Close()

	stacks := make([]domain.ItemStack, 0)
	for rows.Next() {
		stack, err := scanStack(rows)
		if err != nil {
			return nil, wrapDBError("failed to scan stack", err)
		}
		stacks = append(stacks, *stack)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("failed to read stacks", err)
	}
	return stacks, nil
}

// GetStack returns the stack for a (user, item) pair, or (nil, nil) when absent.
func (r *InventoryRepository) GetStack(ctx context.Context, userID, itemID string) (*domain.ItemStack, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + stackColumns + `
		FROM inventory_items
		WHERE user_id = $1 AND item_id = $2`

	stack, err := scanStack(r.db.QueryRow(ctx, query, userUUID, itemID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get stack", err)
	}
	return stack, nil
}

// inventoryTx implements repository.InventoryTx
type inventoryTx struct {
	tx pgx.Tx
}

func (t *inventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback is a no-op after Commit so callers can defer it on every path.
func (t *inventoryTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func (t *inventoryTx) GetStackForUpdate(ctx context.Context, userID, itemID string) (*domain.ItemStack, error) {
	return getStackForUpdate(ctx, t.tx, userID, itemID)
}

func (t *inventoryTx) InsertStack(ctx context.Context, stack *domain.ItemStack) error {
	return insertStack(ctx, t.tx, stack)
}

func (t *inventoryTx) UpdateStack(ctx context.Context, stack domain.ItemStack) error {
	return updateStack(ctx, t.tx, stack)
}

func (t *inventoryTx) DeleteStack(ctx context.Context, stackID string) error {
	return deleteStack(ctx, t.tx, stackID)
}
