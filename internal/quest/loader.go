package quest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// ErrInvalidConfig marks a structurally broken quest seed file.
var ErrInvalidConfig = errors.New("invalid quest configuration")

// Seed is a quest definition as it appears in the seed file, before it
// has a database identity.
type Seed struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Objectives  []domain.Objective `json:"objectives"`
	Rewards     domain.Reward      `json:"rewards"`
}

// LoadQuests reads and validates the quest seed file. Quests are keyed
// by title in the database, so duplicate titles are rejected here
// rather than silently overwriting each other on upsert.
func LoadQuests(path string) ([]Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quests config file: %w", err)
	}

	var quests []Seed
	if err := json.Unmarshal(raw, &quests); err != nil {
		return nil, fmt.Errorf("failed to parse quests config: %w", err)
	}
	if len(quests) == 0 {
		return nil, fmt.Errorf("%w: no quests defined", ErrInvalidConfig)
	}

	titles := make(map[string]bool, len(quests))
	for i, q := range quests {
		if q.Title == "" {
			return nil, fmt.Errorf("%w: quest %d has empty title", ErrInvalidConfig, i)
		}
		if titles[q.Title] {
			return nil, fmt.Errorf("%w: duplicate quest title %q", ErrInvalidConfig, q.Title)
		}
		titles[q.Title] = true
		if len(q.Objectives) == 0 {
			return nil, fmt.Errorf("%w: quest %q has no objectives", ErrInvalidConfig, q.Title)
		}
		if q.Rewards.XP < 0 || q.Rewards.Gold < 0 {
			return nil, fmt.Errorf("%w: quest %q has negative rewards", ErrInvalidConfig, q.Title)
		}
		for _, reward := range q.Rewards.Items {
			if reward.ItemID == "" {
				return nil, fmt.Errorf("%w: quest %q has an item reward with empty id", ErrInvalidConfig, q.Title)
			}
			if reward.Quantity < 1 || reward.Quantity > domain.MaxStackQuantity {
				return nil, fmt.Errorf("%w: quest %q rewards %d of %q, outside 1..%d",
					ErrInvalidConfig, q.Title, reward.Quantity, reward.ItemID, domain.MaxStackQuantity)
			}
		}
	}
	return quests, nil
}
