package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/highnoon-games/dustbound/internal/database"
	"github.com/highnoon-games/dustbound/internal/domain"
)

// Stack row operations shared by inventoryTx and questTx. Both
// transaction types satisfy repository.StackTx by delegating here, which
// is what lets a quest completion enlist ledger writes in its own
// transaction.

const stackColumns = `inventory_item_id, user_id, item_id, item_name, item_type, quantity, equipped, slot, created_at, last_modified`

// beginTx starts a transaction and applies the per-transaction lock
// timeout so a blocked writer fails with a transient error instead of
// waiting forever.
func beginTx(ctx context.Context, db *pgxpool.Pool, lockTimeout time.Duration) (pgx.Tx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	if lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			SafeRollback(ctx, tx)
			return nil, fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}
	return tx, nil
}

func scanStack(row pgx.Row) (*domain.ItemStack, error) {
	var stack domain.ItemStack
	var slot pgtype.Text
	err := row.Scan(
		&stack.ID,
		&stack.UserID,
		&stack.ItemID,
		&stack.ItemName,
		&stack.ItemType,
		&stack.Quantity,
		&stack.Equipped,
		&slot,
		&stack.CreatedAt,
		&stack.LastModified,
	)
	if err != nil {
		return nil, err
	}
	stack.Slot = slot.String
	return &stack, nil
}

func textOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// getStackForUpdate locks the (user, item) row for the duration of the
// transaction. Returns (nil, nil) when no row exists.
func getStackForUpdate(ctx context.Context, tx pgx.Tx, userID, itemID string) (*domain.ItemStack, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + stackColumns + `
		FROM inventory_items
		WHERE user_id = $1 AND item_id = $2
		FOR UPDATE`

	stack, err := scanStack(tx.QueryRow(ctx, query, userUUID, itemID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get stack for update", err)
	}
	return stack, nil
}

func insertStack(ctx context.Context, tx pgx.Tx, stack *domain.ItemStack) error {
	userUUID, err := parseUUID("user", stack.UserID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO inventory_items (user_id, item_id, item_name, item_type, quantity, equipped, slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING inventory_item_id, created_at, last_modified`

	err = tx.QueryRow(ctx, query,
		userUUID,
		stack.ItemID,
		stack.ItemName,
		stack.ItemType,
		stack.Quantity,
		stack.Equipped,
		textOrNil(stack.Slot),
	).Scan(&stack.ID, &stack.CreatedAt, &stack.LastModified)
	if err != nil {
		return wrapDBError("failed to insert stack", err)
	}
	return nil
}

func updateStack(ctx context.Context, tx pgx.Tx, stack domain.ItemStack) error {
	query := `
		UPDATE inventory_items
		SET quantity = $1, equipped = $2, slot = $3, last_modified = NOW()
		WHERE inventory_item_id = $4`

	tag, err := tx.Exec(ctx, query, stack.Quantity, stack.Equipped, textOrNil(stack.Slot), stack.ID)
	if err != nil {
		return wrapDBError("failed to update stack", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stack %s", domain.ErrItemNotFound, stack.ID)
	}
	return nil
}

func deleteStack(ctx context.Context, tx pgx.Tx, stackID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM inventory_items WHERE inventory_item_id = $1`, stackID)
	if err != nil {
		return wrapDBError("failed to delete stack", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stack %s", domain.ErrItemNotFound, stackID)
	}
	return nil
}
