// Package quest implements the quest lifecycle: accepting quests and
// completing them for rewards. A completion is one transaction; attempt
// status, character progression and inventory grants commit or roll
// back together.
package quest

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/inventory"
	"github.com/highnoon-games/dustbound/internal/logger"
	"github.com/highnoon-games/dustbound/internal/metrics"
	"github.com/highnoon-games/dustbound/internal/progression"
	"github.com/highnoon-games/dustbound/internal/repository"
)

// InventoryGranter is the ledger's transactional add path. The real
// implementation is inventory.Service.AddItemTx.
type InventoryGranter interface {
	AddItemTx(ctx context.Context, tx repository.StackTx, userID string, params inventory.AddItemParams) (*domain.ItemStack, error)
}

// ItemCatalog resolves reward item IDs to display metadata.
type ItemCatalog interface {
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
}

// AuditRecorder receives best-effort records of the inventory grants a
// completion made.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// Config tunes the coordinator.
type Config struct {
	// ResolveAllLevels switches progression from the live single-step
	// level resolution to a full loop over banked XP.
	ResolveAllLevels bool

	CacheSize int
	CacheTTL  time.Duration
}

// Service coordinates quest accepts and completions.
type Service struct {
	repo    repository.Quest
	granter InventoryGranter
	catalog ItemCatalog
	audit   AuditRecorder

	resolveAllLevels bool
	cache            *expirable.LRU[string, domain.Quest]
}

// NewService creates a new quest Service.
func NewService(repo repository.Quest, granter InventoryGranter, catalog ItemCatalog, audit AuditRecorder, cfg Config) *Service {
	return &Service{
		repo:             repo,
		granter:          granter,
		catalog:          catalog,
		audit:            audit,
		resolveAllLevels: cfg.ResolveAllLevels,
		cache:            expirable.NewLRU[string, domain.Quest](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// CompleteResult summarizes what a completion granted.
type CompleteResult struct {
	Attempt      domain.QuestAttempt
	Character    domain.Character
	LevelsGained int
	Rewards      domain.Reward
}

// getQuest serves quest definitions through the cache; definitions only
// change on reseed.
func (s *Service) getQuest(ctx context.Context, questID string) (*domain.Quest, error) {
	if cached, ok := s.cache.Get(questID); ok {
		return &cached, nil
	}
	quest, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get quest", "quest_id", questID, "error", err)
		return nil, err
	}
	if quest == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
	}
	s.cache.Add(questID, *quest)
	return quest, nil
}

// Accept starts a quest for a user. Accepting the same quest twice is a
// conflict, not an idempotent no-op; the unique constraint on
// (user, quest) backstops the race between the check and the insert.
func (s *Service) Accept(ctx context.Context, userID, questID string) (*domain.QuestAttempt, error) {
	log := logger.FromContext(ctx)

	if _, err := s.getQuest(ctx, questID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetAttempt(ctx, userID, questID)
	if err != nil {
		log.Error("Failed to get attempt", "user_id", userID, "quest_id", questID, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestAlreadyAccepted, questID)
	}

	attempt := &domain.QuestAttempt{
		UserID:   userID,
		QuestID:  questID,
		Status:   domain.QuestStatusActive,
		Progress: map[string]int{},
	}
	if err := s.repo.CreateAttempt(ctx, attempt); err != nil {
		log.Error("Failed to create attempt", "user_id", userID, "quest_id", questID, "error", err)
		return nil, err
	}

	metrics.QuestsAccepted.Inc()
	log.Info("Quest accepted", "user_id", userID, "quest_id", questID)
	return attempt, nil
}

// Complete finishes an active quest and grants its rewards. Objective
// progress is not checked here; the client decides when a quest is
// done. Everything inside runs in one transaction: the attempt flips to
// COMPLETED, the character takes XP and gold, and every reward line is
// added to the inventory through the ledger's transactional path. Any
// failure rolls the whole completion back.
func (s *Service) Complete(ctx context.Context, userID, questID string) (*CompleteResult, error) {
	log := logger.FromContext(ctx)

	quest, err := s.getQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, err
	}
	committed := false
	defer s.rollbackOnError(ctx, tx, &committed)

	attempt, err := tx.GetAttemptForUpdate(ctx, userID, questID)
	if err != nil {
		log.Error("Failed to lock attempt", "user_id", userID, "quest_id", questID, "error", err)
		return nil, err
	}
	if attempt == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotStarted, questID)
	}
	if attempt.Status == domain.QuestStatusCompleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestAlreadyCompleted, questID)
	}

	now := time.Now().UTC()
	attempt.Status = domain.QuestStatusCompleted
	attempt.CompletedAt = &now
	if err := tx.UpdateAttempt(ctx, *attempt); err != nil {
		log.Error("Failed to update attempt", "user_id", userID, "quest_id", questID, "error", err)
		return nil, err
	}

	character, err := tx.GetCharacterForUpdate(ctx, userID)
	if err != nil {
		log.Error("Failed to lock character", "user_id", userID, "error", err)
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrCharacterNotFound, userID)
	}

	applied := progression.Apply(character, quest.Rewards.XP, quest.Rewards.Gold, s.resolveAllLevels)
	if err := tx.UpdateCharacter(ctx, *character); err != nil {
		log.Error("Failed to update character", "user_id", userID, "error", err)
		return nil, err
	}

	// Grants enlist in this transaction; a catalog miss or a full stack
	// takes the whole completion down with it.
	grants := make([]domain.AuditEntry, 0, len(quest.Rewards.Items))
	for _, line := range quest.Rewards.Items {
		catalogItem, err := s.catalog.GetItem(ctx, line.ItemID)
		if err != nil {
			log.Error("Failed to resolve reward item", "quest_id", questID, "item_id", line.ItemID, "error", err)
			return nil, err
		}
		stack, err := s.granter.AddItemTx(ctx, tx, userID, inventory.AddItemParams{
			ItemID:   catalogItem.ID,
			ItemName: catalogItem.Name,
			ItemType: catalogItem.Type,
			Quantity: line.Quantity,
			Slot:     catalogItem.Slot,
		})
		if err != nil {
			log.Error("Failed to grant reward item", "quest_id", questID, "item_id", line.ItemID, "error", err)
			return nil, err
		}
		grants = append(grants, domain.AuditEntry{
			UserID:         userID,
			Action:         domain.AuditActionAdd,
			ItemID:         line.ItemID,
			QuantityChange: line.Quantity,
			OldQuantity:    stack.Quantity - line.Quantity,
			NewQuantity:    stack.Quantity,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit completion", "user_id", userID, "quest_id", questID, "error", err)
		return nil, err
	}
	committed = true

	metrics.QuestsCompleted.Inc()
	if applied.LevelsGained > 0 {
		metrics.LevelUps.Add(float64(applied.LevelsGained))
	}
	for _, grant := range grants {
		metrics.ItemsAdded.WithLabelValues(grant.ItemID).Add(float64(grant.QuantityChange))
		s.audit.Record(grant)
	}

	log.Info("Quest completed",
		"user_id", userID,
		"quest_id", questID,
		"xp", quest.Rewards.XP,
		"gold", quest.Rewards.Gold,
		"levels_gained", applied.LevelsGained,
	)
	return &CompleteResult{
		Attempt:      *attempt,
		Character:    *character,
		LevelsGained: applied.LevelsGained,
		Rewards:      quest.Rewards,
	}, nil
}

// ListQuests returns all quest definitions.
func (s *Service) ListQuests(ctx context.Context) ([]domain.Quest, error) {
	quests, err := s.repo.ListQuests(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list quests", "error", err)
		return nil, err
	}
	return quests, nil
}

// ListAttempts returns all of a user's attempts, oldest first.
func (s *Service) ListAttempts(ctx context.Context, userID string) ([]domain.QuestAttempt, error) {
	attempts, err := s.repo.ListAttempts(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list attempts", "user_id", userID, "error", err)
		return nil, err
	}
	return attempts, nil
}

func (s *Service) rollbackOnError(ctx context.Context, tx repository.Tx, committed *bool) {
	if *committed {
		return
	}
	metrics.TxRollbacks.WithLabelValues("quest_complete").Inc()
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
