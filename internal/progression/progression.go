// Package progression owns the character level-up math. It is pure: the
// quest reward coordinator applies it to a locked character row inside
// its own transaction.
package progression

import "github.com/highnoon-games/dustbound/internal/domain"

// Result describes what a reward application did to a character.
type Result struct {
	LevelsGained int
	XPGained     int
	GoldGained   int
}

// Apply credits xp and gold to the character and resolves level-ups
// in place.
//
// The default mode resolves at most ONE level per application, matching
// the live game's long-standing behavior: a grant large enough to cross
// two thresholds banks the surplus XP until the next grant. Players
// have built timing strategies around this, so the multi-level resolve
// stays behind resolveAllLevels until a season boundary.
func Apply(c *domain.Character, xp, gold int, resolveAllLevels bool) Result {
	c.XP += xp
	c.Gold += gold

	result := Result{XPGained: xp, GoldGained: gold}
	for c.XP >= threshold(c.Level) {
		c.XP -= threshold(c.Level)
		c.Level++
		c.MaxHealth += domain.LevelUpHealthBonus
		c.CurrentHealth = c.MaxHealth
		result.LevelsGained++
		if !resolveAllLevels {
			break
		}
	}
	return result
}

// threshold is the XP required to leave the given level.
func threshold(level int) int {
	return level * domain.XPPerLevelFactor
}
