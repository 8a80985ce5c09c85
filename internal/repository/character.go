package repository

import (
	"context"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// Character defines the interface for character persistence.
// Reward-transaction mutations go through QuestTx instead; this
// interface covers reads and creation.
type Character interface {
	GetCharacterByUserID(ctx context.Context, userID string) (*domain.Character, error)
	CreateCharacter(ctx context.Context, character *domain.Character) error
}
