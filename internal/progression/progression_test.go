package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/highnoon-games/dustbound/internal/domain"
)

func TestApply_NoLevelUp(t *testing.T) {
	c := domain.NewCharacter("user-1", "Dusty")

	result := Apply(c, 50, 25, false)

	assert.Equal(t, 0, result.LevelsGained)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 50, c.XP)
	assert.Equal(t, 125, c.Gold)
	assert.Equal(t, 100, c.MaxHealth)
}

func TestApply_SingleLevelUp(t *testing.T) {
	c := domain.NewCharacter("user-1", "Dusty")
	c.XP = 80
	c.CurrentHealth = 40

	result := Apply(c, 30, 0, false)

	assert.Equal(t, 1, result.LevelsGained)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 10, c.XP, "surplus XP carries into the new level")
	assert.Equal(t, 110, c.MaxHealth)
	assert.Equal(t, 110, c.CurrentHealth, "level-up fully heals")
}

func TestApply_SingleStepBanksSurplus(t *testing.T) {
	// Level 1 + 350 XP crosses the level-1 (100) and level-2 (200)
	// thresholds, but single-step mode resolves only the first; the
	// remaining 250 XP sits banked above the level-2 threshold.
	c := domain.NewCharacter("user-1", "Dusty")

	result := Apply(c, 350, 0, false)

	assert.Equal(t, 1, result.LevelsGained)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 250, c.XP)
	assert.Equal(t, 110, c.MaxHealth)
}

func TestApply_ResolveAllLevels(t *testing.T) {
	c := domain.NewCharacter("user-1", "Dusty")

	result := Apply(c, 350, 0, true)

	assert.Equal(t, 2, result.LevelsGained)
	assert.Equal(t, 3, c.Level)
	assert.Equal(t, 50, c.XP)
	assert.Equal(t, 120, c.MaxHealth)
	assert.Equal(t, 120, c.CurrentHealth)
}

func TestApply_BankedXPResolvesOnNextGrant(t *testing.T) {
	// A zero-XP grant still resolves a banked level in single-step mode.
	c := domain.NewCharacter("user-1", "Dusty")
	c.Level = 2
	c.XP = 250

	result := Apply(c, 0, 0, false)

	assert.Equal(t, 1, result.LevelsGained)
	assert.Equal(t, 3, c.Level)
	assert.Equal(t, 50, c.XP)
}

func TestApply_ExactThreshold(t *testing.T) {
	c := domain.NewCharacter("user-1", "Dusty")

	result := Apply(c, 100, 0, false)

	assert.Equal(t, 1, result.LevelsGained)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 0, c.XP)
}

func TestApply_GoldOnly(t *testing.T) {
	c := domain.NewCharacter("user-1", "Dusty")

	result := Apply(c, 0, 500, false)

	assert.Equal(t, 0, result.LevelsGained)
	assert.Equal(t, 600, c.Gold)
	assert.Equal(t, 1, c.Level)
}
