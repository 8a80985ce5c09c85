package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/inventory"
)

// TestConcurrentAddItem_Integration verifies that row locking isolates
// concurrent AddItem operations, preventing lost updates.
func TestConcurrentAddItem_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := startTestDatabase(t)
	userID := createTestUser(t, pool, "concurrency_test_user")

	repo := NewInventoryRepository(pool, testLockTimeout)
	svc := inventory.NewService(repo, NewUserRepository(pool), &inventory.CapturingAudit{})

	const concurrentOps = 20

	var wg sync.WaitGroup
	wg.Add(concurrentOps)
	errChan := make(chan error, concurrentOps)

	t.Logf("Starting %d concurrent AddItem operations...", concurrentOps)
	startTime := time.Now()

	for range concurrentOps {
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, userID, inventory.AddItemParams{
				ItemID:   "gold_nugget",
				ItemName: "Gold Nugget",
				ItemType: domain.ItemTypeMaterial,
				Quantity: 1,
			})
			if err != nil {
				errChan <- err
			}
		}()
	}

	wg.Wait()
	close(errChan)
	t.Logf("Completed in %v", time.Since(startTime))

	for err := range errChan {
		t.Errorf("concurrent add failed: %v", err)
	}

	stack, err := svc.GetItem(ctx, userID, "gold_nugget")
	if err != nil {
		t.Fatalf("failed to read final stack: %v", err)
	}
	if stack.Quantity != concurrentOps {
		t.Errorf("lost update detected: got quantity %d, want %d", stack.Quantity, concurrentOps)
	}
}

// TestConcurrentAddRemove_Integration runs matched add/remove pairs and
// checks the balance is conserved.
func TestConcurrentAddRemove_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := startTestDatabase(t)
	userID := createTestUser(t, pool, "conservation_test_user")

	repo := NewInventoryRepository(pool, testLockTimeout)
	svc := inventory.NewService(repo, NewUserRepository(pool), &inventory.CapturingAudit{})

	const initial = 100
	_, err := svc.AddItem(ctx, userID, inventory.AddItemParams{
		ItemID:   "beans",
		ItemName: "Can of Beans",
		ItemType: domain.ItemTypeConsumable,
		Quantity: initial,
	})
	if err != nil {
		t.Fatalf("failed to seed stack: %v", err)
	}

	const pairs = 10
	var wg sync.WaitGroup
	errChan := make(chan error, pairs*2)
	for range pairs {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, userID, inventory.AddItemParams{
				ItemID: "beans", ItemName: "Can of Beans", ItemType: domain.ItemTypeConsumable, Quantity: 2,
			}); err != nil {
				errChan <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.RemoveItem(ctx, userID, "beans", 2); err != nil {
				errChan <- err
			}
		}()
	}
	wg.Wait()
	close(errChan)
	for err := range errChan {
		t.Errorf("concurrent mutation failed: %v", err)
	}

	stack, err := svc.GetItem(ctx, userID, "beans")
	if err != nil {
		t.Fatalf("failed to read final stack: %v", err)
	}
	if stack.Quantity != initial {
		t.Errorf("quantity not conserved: got %d, want %d", stack.Quantity, initial)
	}
}

// TestStackCheckConstraint_Integration verifies the database rejects a
// direct write past the stack bounds even when service validation is
// bypassed.
func TestStackCheckConstraint_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := startTestDatabase(t)
	userID := createTestUser(t, pool, "constraint_test_user")

	_, err := pool.Exec(ctx, `
		INSERT INTO inventory_items (user_id, item_id, item_name, item_type, quantity)
		VALUES ($1, 'beans', 'Can of Beans', 'consumable', 10000)`, userID)
	if err == nil {
		t.Fatal("expected CHECK constraint violation for quantity 10000")
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO inventory_items (user_id, item_id, item_name, item_type, quantity)
		VALUES ($1, 'beans', 'Can of Beans', 'consumable', 0)`, userID)
	if err == nil {
		t.Fatal("expected CHECK constraint violation for quantity 0")
	}
}
