package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// CharacterRepository implements the character repository for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `character_id, user_id, name, level, xp, gold,
	current_health, max_health, strength, agility, endurance, perception, intelligence`

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var c domain.Character
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Level,
		&c.XP,
		&c.Gold,
		&c.CurrentHealth,
		&c.MaxHealth,
		&c.Strength,
		&c.Agility,
		&c.Endurance,
		&c.Perception,
		&c.Intelligence,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCharacterByUserID returns a user's character, or (nil, nil) when absent.
func (r *CharacterRepository) GetCharacterByUserID(ctx context.Context, userID string) (*domain.Character, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1`
	character, err := scanCharacter(r.db.QueryRow(ctx, query, userUUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get character", err)
	}
	return character, nil
}

// CreateCharacter inserts a new character row, filling in the generated ID.
func (r *CharacterRepository) CreateCharacter(ctx context.Context, character *domain.Character) error {
	userUUID, err := parseUUID("user", character.UserID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO characters (user_id, name, level, xp, gold,
			current_health, max_health, strength, agility, endurance, perception, intelligence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING character_id`

	err = r.db.QueryRow(ctx, query,
		userUUID,
		character.Name,
		character.Level,
		character.XP,
		character.Gold,
		character.CurrentHealth,
		character.MaxHealth,
		character.Strength,
		character.Agility,
		character.Endurance,
		character.Perception,
		character.Intelligence,
	).Scan(&character.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("character already exists for user %s", character.UserID)
		}
		return wrapDBError("failed to create character", err)
	}
	return nil
}

// updateCharacter writes the mutable progression fields. Attributes are
// immutable for now so they stay out of the SET list.
func updateCharacter(ctx context.Context, tx pgx.Tx, character domain.Character) error {
	query := `
		UPDATE characters
		SET level = $1, xp = $2, gold = $3, current_health = $4, max_health = $5
		WHERE character_id = $6`

	tag, err := tx.Exec(ctx, query,
		character.Level,
		character.XP,
		character.Gold,
		character.CurrentHealth,
		character.MaxHealth,
		character.ID,
	)
	if err != nil {
		return wrapDBError("failed to update character", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: character %s", domain.ErrCharacterNotFound, character.ID)
	}
	return nil
}
