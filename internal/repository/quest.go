package repository

import (
	"context"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// Quest defines the interface for quest definitions and attempts.
type Quest interface {
	BeginTx(ctx context.Context) (QuestTx, error)

	GetQuest(ctx context.Context, questID string) (*domain.Quest, error)
	ListQuests(ctx context.Context) ([]domain.Quest, error)

	GetAttempt(ctx context.Context, userID, questID string) (*domain.QuestAttempt, error)
	ListAttempts(ctx context.Context, userID string) ([]domain.QuestAttempt, error)

	// CreateAttempt inserts a new attempt. A unique constraint on
	// (user, quest) makes concurrent duplicate accepts lose with
	// domain.ErrQuestAlreadyAccepted rather than a second row.
	CreateAttempt(ctx context.Context, attempt *domain.QuestAttempt) error

	// UpsertQuest is used by seeding only; definitions are read-only to
	// the core at runtime.
	UpsertQuest(ctx context.Context, quest domain.Quest) error
}

// QuestTx is the unit of work for a quest completion: attempt status,
// character progression and inventory grants all commit or roll back
// together. It embeds StackTx so the inventory ledger's add path can be
// invoked against it directly.
type QuestTx interface {
	Tx
	StackTx

	GetAttemptForUpdate(ctx context.Context, userID, questID string) (*domain.QuestAttempt, error)
	UpdateAttempt(ctx context.Context, attempt domain.QuestAttempt) error

	GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character domain.Character) error
}
