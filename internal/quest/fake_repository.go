package quest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/repository"
)

// FakeRepository is an in-memory repository.Quest for tests. Like the
// inventory fake, a transaction works on a copy of the state under an
// exclusive lock; Commit applies the copy atomically and Rollback
// discards it, so tests can assert that failed completions change
// nothing.
type FakeRepository struct {
	txMu sync.Mutex

	mu         sync.Mutex
	quests     map[string]domain.Quest
	attempts   map[string]domain.QuestAttempt
	characters map[string]domain.Character
	stacks     map[string]map[string]domain.ItemStack
	nextID     int

	GetQuestCalls int

	BeginTxErr         error
	CommitErr          error
	UpdateAttemptErr   error
	UpdateCharacterErr error
	InsertStackErr     error
	UpdateStackErr     error
}

// NewFakeRepository creates an empty FakeRepository.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		quests:     make(map[string]domain.Quest),
		attempts:   make(map[string]domain.QuestAttempt),
		characters: make(map[string]domain.Character),
		stacks:     make(map[string]map[string]domain.ItemStack),
	}
}

func attemptKey(userID, questID string) string {
	return userID + "|" + questID
}

// SeedQuest places a quest definition into the fake.
func (r *FakeRepository) SeedQuest(quest domain.Quest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quests[quest.ID] = quest
}

// SeedCharacter places a character into the fake.
func (r *FakeRepository) SeedCharacter(character domain.Character) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if character.ID == "" {
		r.nextID++
		character.ID = fmt.Sprintf("char-%d", r.nextID)
	}
	r.characters[character.UserID] = character
}

// Character returns the committed character state for a user.
func (r *FakeRepository) Character(userID string) (domain.Character, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.characters[userID]
	return c, ok
}

// Stack returns the committed stack for a (user, item) pair.
func (r *FakeRepository) Stack(userID, itemID string) (domain.ItemStack, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stacks[userID][itemID]
	return s, ok
}

func (r *FakeRepository) GetQuest(_ context.Context, questID string) (*domain.Quest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.GetQuestCalls++
	quest, ok := r.quests[questID]
	if !ok {
		return nil, nil
	}
	return &quest, nil
}

func (r *FakeRepository) ListQuests(_ context.Context) ([]domain.Quest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Quest, 0, len(r.quests))
	for _, quest := range r.quests {
		out = append(out, quest)
	}
	return out, nil
}

func (r *FakeRepository) GetAttempt(_ context.Context, userID, questID string) (*domain.QuestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[attemptKey(userID, questID)]
	if !ok {
		return nil, nil
	}
	return &attempt, nil
}

func (r *FakeRepository) ListAttempts(_ context.Context, userID string) ([]domain.QuestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.QuestAttempt, 0)
	for _, attempt := range r.attempts {
		if attempt.UserID == userID {
			out = append(out, attempt)
		}
	}
	return out, nil
}

func (r *FakeRepository) CreateAttempt(_ context.Context, attempt *domain.QuestAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := attemptKey(attempt.UserID, attempt.QuestID)
	if _, exists := r.attempts[key]; exists {
		return domain.ErrQuestAlreadyAccepted
	}
	r.nextID++
	attempt.ID = fmt.Sprintf("attempt-%d", r.nextID)
	attempt.AcceptedAt = time.Now().UTC()
	r.attempts[key] = *attempt
	return nil
}

func (r *FakeRepository) UpsertQuest(_ context.Context, quest domain.Quest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if quest.ID == "" {
		r.nextID++
		quest.ID = fmt.Sprintf("quest-%d", r.nextID)
	}
	r.quests[quest.ID] = quest
	return nil
}

func (r *FakeRepository) BeginTx(_ context.Context) (repository.QuestTx, error) {
	if r.BeginTxErr != nil {
		return nil, r.BeginTxErr
	}
	r.txMu.Lock()
	r.mu.Lock()
	tx := &fakeTx{
		repo:       r,
		attempts:   make(map[string]domain.QuestAttempt, len(r.attempts)),
		characters: make(map[string]domain.Character, len(r.characters)),
		stacks:     make(map[string]map[string]domain.ItemStack, len(r.stacks)),
	}
	for k, v := range r.attempts {
		tx.attempts[k] = v
	}
	for k, v := range r.characters {
		tx.characters[k] = v
	}
	for userID, byItem := range r.stacks {
		userStacks := make(map[string]domain.ItemStack, len(byItem))
		for itemID, stack := range byItem {
			userStacks[itemID] = stack
		}
		tx.stacks[userID] = userStacks
	}
	r.mu.Unlock()
	return tx, nil
}

type fakeTx struct {
	repo       *FakeRepository
	attempts   map[string]domain.QuestAttempt
	characters map[string]domain.Character
	stacks     map[string]map[string]domain.ItemStack
	done       bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.repo.CommitErr != nil {
		return t.repo.CommitErr
	}
	t.repo.mu.Lock()
	t.repo.attempts = t.attempts
	t.repo.characters = t.characters
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

func (t *fakeTx) GetAttemptForUpdate(_ context.Context, userID, questID string) (*domain.QuestAttempt, error) {
	attempt, ok := t.attempts[attemptKey(userID, questID)]
	if !ok {
		return nil, nil
	}
	return &attempt, nil
}

func (t *fakeTx) UpdateAttempt(_ context.Context, attempt domain.QuestAttempt) error {
	if t.repo.UpdateAttemptErr != nil {
		return t.repo.UpdateAttemptErr
	}
	key := attemptKey(attempt.UserID, attempt.QuestID)
	if _, ok := t.attempts[key]; !ok {
		return fmt.Errorf("%w: attempt %s", domain.ErrQuestNotStarted, attempt.ID)
	}
	t.attempts[key] = attempt
	return nil
}

func (t *fakeTx) GetCharacterForUpdate(_ context.Context, userID string) (*domain.Character, error) {
	character, ok := t.characters[userID]
	if !ok {
		return nil, nil
	}
	return &character, nil
}

func (t *fakeTx) UpdateCharacter(_ context.Context, character domain.Character) error {
	if t.repo.UpdateCharacterErr != nil {
		return t.repo.UpdateCharacterErr
	}
	if _, ok := t.characters[character.UserID]; !ok {
		return fmt.Errorf("%w: character %s", domain.ErrCharacterNotFound, character.ID)
	}
	t.characters[character.UserID] = character
	return nil
}

func (t *fakeTx) GetStackForUpdate(_ context.Context, userID, itemID string) (*domain.ItemStack, error) {
	stack, ok := t.stacks[userID][itemID]
	if !ok {
		return nil, nil
	}
	return &stack, nil
}

func (t *fakeTx) InsertStack(_ context.Context, stack *domain.ItemStack) error {
	if t.repo.InsertStackErr != nil {
		return t.repo.InsertStackErr
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
	if t.repo.UpdateStackErr != nil {
		return t.repo.UpdateStackErr
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
