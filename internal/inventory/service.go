// Package inventory implements the item-stack ledger: every mutation of
// a user's stacks goes through here, serialized by row locks so
// concurrent writers never lose an update.
package inventory

import (
	"context"
	"fmt"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/logger"
	"github.com/highnoon-games/dustbound/internal/metrics"
	"github.com/highnoon-games/dustbound/internal/repository"
)

// AuditRecorder receives best-effort records of ledger mutations.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// Service is the inventory ledger.
type Service struct {
	repo  repository.Inventory
	users repository.User
	audit AuditRecorder
}

// NewService creates a new inventory Service.
func NewService(repo repository.Inventory, users repository.User, audit AuditRecorder) *Service {
	return &Service{repo: repo, users: users, audit: audit}
}

// AddItem grants quantity of an item to a user, incrementing the
// existing stack or creating one. The whole mutation runs in its own
// transaction; a stack pushed past the limit rolls everything back.
func (s *Service) AddItem(ctx context.Context, userID string, params AddItemParams) (*domain.ItemStack, error) {
	log := logger.FromContext(ctx)

	if err := validateParams(params); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		log.Error("Failed to look up user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, err
	}
	committed := false
	defer rollbackOnError(ctx, tx, &committed, "inventory_add")

	stack, err := s.AddItemTx(ctx, tx, userID, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit add", "user_id", userID, "item_id", params.ItemID, "error", err)
		return nil, err
	}
	committed = true

	metrics.ItemsAdded.WithLabelValues(params.ItemID).Add(float64(params.Quantity))
	s.audit.Record(domain.AuditEntry{
		UserID:         userID,
		Action:         domain.AuditActionAdd,
		ItemID:         params.ItemID,
		QuantityChange: params.Quantity,
		OldQuantity:    stack.Quantity - params.Quantity,
		NewQuantity:    stack.Quantity,
	})
	return stack, nil
}

// AddItemTx is the add path against an externally supplied transaction.
// The quest reward coordinator uses it so inventory grants commit or
// roll back with the rest of a completion. It validates and mutates but
// does not commit, audit, or count metrics; the transaction owner does
// that after its commit.
func (s *Service) AddItemTx(ctx context.Context, tx repository.StackTx, userID string, params AddItemParams) (*domain.ItemStack, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	existing, err := tx.GetStackForUpdate(ctx, userID, params.ItemID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to lock stack", "user_id", userID, "item_id", params.ItemID, "error", err)
		return nil, err
	}

	if existing == nil {
		stack := &domain.ItemStack{
			UserID:   userID,
			ItemID:   params.ItemID,
			ItemName: params.ItemName,
			ItemType: params.ItemType,
			Quantity: params.Quantity,
			Slot:     params.Slot,
		}
		if err := tx.InsertStack(ctx, stack); err != nil {
			logger.FromContext(ctx).Error("Failed to insert stack", "user_id", userID, "item_id", params.ItemID, "error", err)
			return nil, err
		}
		return stack, nil
	}

	existing.Quantity += params.Quantity
	if existing.Quantity > domain.MaxStackQuantity {
		return nil, fmt.Errorf("%w: %d + %d exceeds %d",
			domain.ErrStackLimitExceeded, existing.Quantity-params.Quantity, params.Quantity, domain.MaxStackQuantity)
	}
	if err := tx.UpdateStack(ctx, *existing); err != nil {
		logger.FromContext(ctx).Error("Failed to update stack", "user_id", userID, "item_id", params.ItemID, "error", err)
		return nil, err
	}
	return existing, nil
}

// RemoveItem consumes quantity from a user's stack, deleting the row on
// exact depletion.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string, quantity int) (*domain.ItemStack, error) {
	log := logger.FromContext(ctx)

	if quantity < domain.MinStackQuantity || quantity > domain.MaxStackQuantity {
		return nil, fmt.Errorf("%w: quantity must be between %d and %d",
			domain.ErrInvalidQuantity, domain.MinStackQuantity, domain.MaxStackQuantity)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, err
	}
	committed := false
	defer rollbackOnError(ctx, tx, &committed, "inventory_remove")

	stack, err := tx.GetStackForUpdate(ctx, userID, itemID)
	if err != nil {
		log.Error("Failed to lock stack", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	if stack == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if stack.Quantity < quantity {
		return nil, fmt.Errorf("%w: have %d, requested %d", domain.ErrInsufficientQuantity, stack.Quantity, quantity)
	}

	oldQuantity := stack.Quantity
	action := domain.AuditActionRemove
	if stack.Quantity == quantity {
		action = domain.AuditActionRemoveAll
		if err := tx.DeleteStack(ctx, stack.ID); err != nil {
			log.Error("Failed to delete stack", "user_id", userID, "item_id", itemID, "error", err)
			return nil, err
		}
		stack.Quantity = 0
	} else {
		stack.Quantity -= quantity
		if err := tx.UpdateStack(ctx, *stack); err != nil {
			log.Error("Failed to update stack", "user_id", userID, "item_id", itemID, "error", err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit remove", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	committed = true

	metrics.ItemsRemoved.WithLabelValues(itemID).Add(float64(quantity))
	if action == domain.AuditActionRemoveAll {
		metrics.StacksDeleted.WithLabelValues(itemID).Inc()
	}
	s.audit.Record(domain.AuditEntry{
		UserID:         userID,
		Action:         action,
		ItemID:         itemID,
		QuantityChange: -quantity,
		OldQuantity:    oldQuantity,
		NewQuantity:    stack.Quantity,
	})
	return stack, nil
}

// GetInventory returns all of a user's stacks ordered by
// (item_type, item_name).
func (s *Service) GetInventory(ctx context.Context, userID string) ([]domain.ItemStack, error) {
	stacks, err := s.repo.GetStacks(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get inventory", "user_id", userID, "error", err)
		return nil, err
	}
	return stacks, nil
}

// GetItem returns a single stack or domain.ErrItemNotFound.
func (s *Service) GetItem(ctx context.Context, userID, itemID string) (*domain.ItemStack, error) {
	stack, err := s.repo.GetStack(ctx, userID, itemID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get stack", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	if stack == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return stack, nil
}

// ToggleEquipped flips a stack's equipped flag under lock.
func (s *Service) ToggleEquipped(ctx context.Context, userID, itemID string) (*domain.ItemStack, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, err
	}
	committed := false
	defer rollbackOnError(ctx, tx, &committed, "inventory_toggle")

	stack, err := tx.GetStackForUpdate(ctx, userID, itemID)
	if err != nil {
		log.Error("Failed to lock stack", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	if stack == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	stack.Equipped = !stack.Equipped
	if err := tx.UpdateStack(ctx, *stack); err != nil {
		log.Error("Failed to update stack", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit toggle", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	committed = true

	action := domain.AuditActionUnequip
	if stack.Equipped {
		action = domain.AuditActionEquip
	}
	s.audit.Record(domain.AuditEntry{
		UserID:      userID,
		Action:      action,
		ItemID:      itemID,
		OldQuantity: stack.Quantity,
		NewQuantity: stack.Quantity,
	})
	return stack, nil
}

// UpdateItem applies a partial overwrite to a stack under lock. Fields
// left nil are untouched. Quantity is written as supplied; out-of-range
// values are rejected by the database constraint, not here.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, params UpdateItemParams) (*domain.ItemStack, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, err
	}
	committed := false
	defer rollbackOnError(ctx, tx, &committed, "inventory_update")

	stack, err := tx.GetStackForUpdate(ctx, userID, itemID)
	if err != nil {
		log.Error("Failed to lock stack", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	if stack == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	oldQuantity := stack.Quantity
	if params.Quantity != nil {
		stack.Quantity = *params.Quantity
	}
	if params.Equipped != nil {
		stack.Equipped = *params.Equipped
	}
	if params.Slot != nil {
		stack.Slot = *params.Slot
	}

	if err := tx.UpdateStack(ctx, *stack); err != nil {
		log.Error("Failed to update stack", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit update", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}
	committed = true

	if params.Quantity != nil && *params.Quantity != oldQuantity {
		s.audit.Record(domain.AuditEntry{
			UserID:         userID,
			Action:         domain.AuditActionUpdate,
			ItemID:         itemID,
			QuantityChange: stack.Quantity - oldQuantity,
			OldQuantity:    oldQuantity,
			NewQuantity:    stack.Quantity,
		})
	}
	return stack, nil
}

// rollbackOnError is deferred on every tx path. It rolls back and
// counts the rollback unless the commit already happened.
func rollbackOnError(ctx context.Context, tx repository.Tx, committed *bool, reason string) {
	if *committed {
		return
	}
	metrics.TxRollbacks.WithLabelValues(reason).Inc()
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "reason", reason, "error", err)
	}
}
