package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// The fake serializes transactions the way row locks do, so these tests
// catch read-modify-write bugs in the service itself. The equivalent
// against a real database lives in the postgres package.

func TestConcurrentAdds_NoLostUpdates(t *testing.T) {
	svc, _, _ := newTestService()

	const workers = 20
	const perWorker = 5

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				if _, err := svc.AddItem(context.Background(), testUserID, revolverParams(1)); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stack, err := svc.GetItem(context.Background(), testUserID, "rusty_revolver")
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, stack.Quantity)
}

func TestConcurrentAddAndRemove_Conserved(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.Seed(domain.ItemStack{
		UserID: testUserID, ItemID: "hardtack", ItemName: "Hardtack",
		ItemType: domain.ItemTypeConsumable, Quantity: 100,
	})

	const pairs = 10
	var wg sync.WaitGroup
	errs := make(chan error, pairs*2)
	for range pairs {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(context.Background(), testUserID, AddItemParams{
				ItemID: "hardtack", ItemName: "Hardtack", ItemType: domain.ItemTypeConsumable, Quantity: 3,
			}); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.RemoveItem(context.Background(), testUserID, "hardtack", 3); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stack, err := svc.GetItem(context.Background(), testUserID, "hardtack")
	require.NoError(t, err)
	assert.Equal(t, 100, stack.Quantity, "equal adds and removes must cancel out")
}
