package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// ErrInvalidConfig marks a structurally broken item seed file.
var ErrInvalidConfig = errors.New("invalid item configuration")

var validItemTypes = map[string]bool{
	domain.ItemTypeWeapon:     true,
	domain.ItemTypeArmor:      true,
	domain.ItemTypeConsumable: true,
	domain.ItemTypeMaterial:   true,
	domain.ItemTypeQuest:      true,
	domain.ItemTypeMisc:       true,
}

// LoadItems reads and validates the catalog seed file. Seeding an
// invalid catalog is worse than failing loudly, so every entry is
// checked before anything is returned.
func LoadItems(path string) ([]domain.Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items config file: %w", err)
	}

	var items []domain.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items config: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items defined", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("%w: item %d has empty id", ErrInvalidConfig, i)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("%w: duplicate item id %q", ErrInvalidConfig, item.ID)
		}
		seen[item.ID] = true
		if item.Name == "" {
			return nil, fmt.Errorf("%w: item %q has empty name", ErrInvalidConfig, item.ID)
		}
		if !validItemTypes[item.Type] {
			return nil, fmt.Errorf("%w: item %q has unknown type %q", ErrInvalidConfig, item.ID, item.Type)
		}
		if item.BaseValue < 0 {
			return nil, fmt.Errorf("%w: item %q has negative base_value", ErrInvalidConfig, item.ID)
		}
	}
	return items, nil
}
