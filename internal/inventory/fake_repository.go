package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/repository"
)

// FakeRepository is an in-memory repository.Inventory for tests. A
// transaction takes a working copy of the state and holds an exclusive
// lock until Commit or Rollback, mirroring the serialization the real
// implementation gets from row locks: commits apply the copy, rollbacks
// discard it.
type FakeRepository struct {
	txMu sync.Mutex // held by the open transaction

	mu     sync.Mutex // guards stacks and nextID
	stacks map[string]map[string]domain.ItemStack
	nextID int

	BeginTxErr error
	CommitErr  error
	GetErr     error
	InsertErr  error
	UpdateErr  error
	DeleteErr  error
}

// NewFakeRepository creates an empty FakeRepository.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{stacks: make(map[string]map[string]domain.ItemStack)}
}

// Seed places a stack directly into committed state.
func (r *FakeRepository) Seed(stack domain.ItemStack) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stack.ID == "" {
		r.nextID++
		stack.ID = fmt.Sprintf("stack-%d", r.nextID)
	}
	if r.stacks[stack.UserID] == nil {
		r.stacks[stack.UserID] = make(map[string]domain.ItemStack)
	}
	r.stacks[stack.UserID][stack.ItemID] = stack
}

func (r *FakeRepository) clone() map[string]map[string]domain.ItemStack {
	out := make(map[string]map[string]domain.ItemStack, len(r.stacks))
	for userID, byItem := range r.stacks {
		userStacks := make(map[string]domain.ItemStack, len(byItem))
		for itemID, stack := range byItem {
			userStacks[itemID] = stack
		}
		out[userID] = userStacks
	}
	return out
}

func (r *FakeRepository) BeginTx(_ context.Context) (repository.InventoryTx, error) {
	if r.BeginTxErr != nil {
		return nil, r.BeginTxErr
	}
	r.txMu.Lock()
	r.mu.Lock()
	working := r.clone()
	r.mu.Unlock()
	return &fakeTx{repo: r, stacks: working}, nil
}

func (r *FakeRepository) GetStacks(_ context.Context, userID string) ([]domain.ItemStack, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ItemStack, 0, len(r.stacks[userID]))
	for _, stack := range r.stacks[userID] {
		out = append(out, stack)
	}
	sortStacks(out)
	return out, nil
}

func (r *FakeRepository) GetStack(_ context.Context, userID, itemID string) (*domain.ItemStack, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stack, ok := r.stacks[userID][itemID]
	if !ok {
		return nil, nil
	}
	return &stack, nil
}

// sortStacks orders by (item_type, item_name) like the real query.
func sortStacks(stacks []domain.ItemStack) {
	for i := 1; i < len(stacks); i++ {
		for j := i; j > 0; j-- {
			a, b := stacks[j-1], stacks[j]
			if a.ItemType < b.ItemType || (a.ItemType == b.ItemType && a.ItemName <= b.ItemName) {
				break
			}
			stacks[j-1], stacks[j] = b, a
		}
	}
}

type fakeTx struct {
	repo   *FakeRepository
	stacks map[string]map[string]domain.ItemStack
	done   bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.repo.CommitErr != nil {
		return t.repo.CommitErr
	}
	t.repo.mu.Lock()
	t.repo.stacks = t.stacks
	t.repo.mu.Unlock()
	t.done = true
	t.repo.txMu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.repo.txMu.Unlock()
	return nil
}

func (t *fakeTx) GetStackForUpdate(_ context.Context, userID, itemID string) (*domain.ItemStack, error) {
	if t.repo.GetErr != nil {
		return nil, t.repo.GetErr
	}
	stack, ok := t.stacks[userID][itemID]
	if !ok {
		return nil, nil
	}
	return &stack, nil
}

func (t *fakeTx) InsertStack(_ context.Context, stack *domain.ItemStack) error {
	if t.repo.InsertErr != nil {
		return t.repo.InsertErr
	}
	t.repo.mu.Lock()
	t.repo.nextID++
	stack.ID = fmt.Sprintf("stack-%d", t.repo.nextID)
	t.repo.mu.Unlock()

	now := time.Now().UTC()
	stack.CreatedAt = now
	stack.LastModified = now
	if t.stacks[stack.UserID] == nil {
		t.stacks[stack.UserID] = make(map[string]domain.ItemStack)
	}
	t.stacks[stack.UserID][stack.ItemID] = *stack
	return nil
}

func (t *fakeTx) UpdateStack(_ context.Context, stack domain.ItemStack) error {
	if t.repo.UpdateErr != nil {
		return t.repo.UpdateErr
	}
	for userID, byItem := range t.stacks {
		for itemID, existing := range byItem {
			if existing.ID == stack.ID {
				stack.CreatedAt = existing.CreatedAt
				stack.LastModified = time.Now().UTC()
				t.stacks[userID][itemID] = stack
				return nil
			}
		}
	}
	return fmt.Errorf("%w: stack %s", domain.ErrItemNotFound, stack.ID)
}

func (t *fakeTx) DeleteStack(_ context.Context, stackID string) error {
	if t.repo.DeleteErr != nil {
		return t.repo.DeleteErr
	}
	for _, byItem := range t.stacks {
		for itemID, existing := range byItem {
			if existing.ID == stackID {
				delete(byItem, itemID)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: stack %s", domain.ErrItemNotFound, stackID)
}

// FakeUserRepository is an in-memory repository.User for tests.
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
	Err   error
}

// NewFakeUserRepository creates a FakeUserRepository with the given users.
func NewFakeUserRepository(userIDs ...string) *FakeUserRepository {
	r := &FakeUserRepository{users: make(map[string]domain.User)}
	for _, id := range userIDs {
		r.users[id] = domain.User{ID: id, Username: id}
	}
	return r
}

func (r *FakeUserRepository) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *FakeUserRepository) UpsertUser(_ context.Context, user *domain.User) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = user.Username
	}
	r.users[user.ID] = *user
	return nil
}

// CapturingAudit records entries synchronously for assertions.
type CapturingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (c *CapturingAudit) Record(entry domain.AuditEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

// Entries returns a copy of everything recorded so far.
func (c *CapturingAudit) Entries() []domain.AuditEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.AuditEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
