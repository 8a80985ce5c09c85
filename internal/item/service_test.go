package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highnoon-games/dustbound/internal/domain"
)

type fakeItemRepo struct {
	items    map[string]domain.Item
	getCalls int
	err      error
}

func (f *fakeItemRepo) GetItem(_ context.Context, itemID string) (*domain.Item, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[itemID]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (f *fakeItemRepo) ListItems(_ context.Context) ([]domain.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeItemRepo) UpsertItem(_ context.Context, item domain.Item) error {
	f.items[item.ID] = item
	return nil
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]domain.Item{
		"rusty_revolver": {ID: "rusty_revolver", Name: "Rusty Revolver", Type: domain.ItemTypeWeapon, Slot: "weapon", BaseValue: 15},
		"hardtack":       {ID: "hardtack", Name: "Hardtack", Type: domain.ItemTypeConsumable, BaseValue: 2},
	}}
}

func TestGetItem_Found(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo, 16, time.Minute)

	item, err := svc.GetItem(context.Background(), "rusty_revolver")

	require.NoError(t, err)
	assert.Equal(t, "Rusty Revolver", item.Name)
	assert.Equal(t, domain.ItemTypeWeapon, item.Type)
}

func TestGetItem_CachesLookups(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo, 16, time.Minute)

	for range 5 {
		_, err := svc.GetItem(context.Background(), "hardtack")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, repo.getCalls, "repeat lookups should hit the cache")
}

func TestGetItem_NotFound(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo, 16, time.Minute)

	_, err := svc.GetItem(context.Background(), "plasma_rifle")

	assert.ErrorIs(t, err, domain.ErrCatalogItemNotFound)
}

func TestGetItem_NotFoundNotCached(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo, 16, time.Minute)

	_, err := svc.GetItem(context.Background(), "plasma_rifle")
	require.ErrorIs(t, err, domain.ErrCatalogItemNotFound)

	// A later seed of the same ID must become visible.
	require.NoError(t, repo.UpsertItem(context.Background(), domain.Item{
		ID: "plasma_rifle", Name: "Plasma Rifle", Type: domain.ItemTypeWeapon,
	}))

	item, err := svc.GetItem(context.Background(), "plasma_rifle")
	require.NoError(t, err)
	assert.Equal(t, "Plasma Rifle", item.Name)
}

func TestGetItem_RepoError(t *testing.T) {
	repo := newFakeItemRepo()
	repo.err = errors.New("connection refused")
	svc := NewService(repo, 16, time.Minute)

	_, err := svc.GetItem(context.Background(), "hardtack")

	assert.ErrorContains(t, err, "connection refused")
}

func TestListItems(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo, 16, time.Minute)

	items, err := svc.ListItems(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 2)
}
