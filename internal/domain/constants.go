package domain

// MaxStackQuantity is the upper bound for a single inventory stack.
// A stack holding more than this is never persisted; adds that would
// push past it fail validation and roll back.
const MaxStackQuantity = 9999

// MinStackQuantity is the lower bound for a persisted stack.
// Rows are deleted, not zeroed, when quantity reaches zero.
const MinStackQuantity = 1

// XPPerLevelFactor scales the XP threshold for a level-up:
// a character levels when xp >= level * XPPerLevelFactor.
const XPPerLevelFactor = 100

// LevelUpHealthBonus is added to max health on every level gained.
const LevelUpHealthBonus = 10

// Item types recognized by the inventory ledger.
const (
	ItemTypeWeapon     = "weapon"
	ItemTypeArmor      = "armor"
	ItemTypeConsumable = "consumable"
	ItemTypeMaterial   = "material"
	ItemTypeQuest      = "quest"
	ItemTypeMisc       = "misc"
)
