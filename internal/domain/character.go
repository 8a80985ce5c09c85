package domain

// Character is the single authoritative progression record for a player.
// Only the quest reward coordinator mutates it, inside a reward transaction.
type Character struct {
	ID     string
	UserID string
	Name   string

	Level int
	XP    int
	Gold  int

	CurrentHealth int
	MaxHealth     int

	Strength     int
	Agility      int
	Endurance    int
	Perception   int
	Intelligence int
}

// Default values applied when a character is created.
const (
	DefaultCharacterLevel     = 1
	DefaultCharacterGold      = 100
	DefaultCharacterHealth    = 100
	DefaultCharacterAttribute = 5
)

// NewCharacter returns a fresh level-1 character for a user.
func NewCharacter(userID, name string) *Character {
	return &Character{
		UserID:        userID,
		Name:          name,
		Level:         DefaultCharacterLevel,
		XP:            0,
		Gold:          DefaultCharacterGold,
		CurrentHealth: DefaultCharacterHealth,
		MaxHealth:     DefaultCharacterHealth,
		Strength:      DefaultCharacterAttribute,
		Agility:       DefaultCharacterAttribute,
		Endurance:     DefaultCharacterAttribute,
		Perception:    DefaultCharacterAttribute,
		Intelligence:  DefaultCharacterAttribute,
	}
}
