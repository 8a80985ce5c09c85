package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/repository"
)

// QuestRepository implements the quest repository for PostgreSQL
type QuestRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool, lockTimeout time.Duration) *QuestRepository {
	return &QuestRepository{db: db, lockTimeout: lockTimeout}
}

const questColumns = `quest_id, title, description, objectives, rewards`
const attemptColumns = `user_quest_id, user_id, quest_id, status, progress, accepted_at, completed_at`

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var quest domain.Quest
	var objectives, rewards []byte
	if err := row.Scan(&quest.ID, &quest.Title, &quest.Description, &objectives, &rewards); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(objectives, &quest.Objectives); err != nil {
		return nil, fmt.Errorf("failed to decode objectives: %w", err)
	}
	if err := json.Unmarshal(rewards, &quest.Rewards); err != nil {
		return nil, fmt.Errorf("failed to decode rewards: %w", err)
	}
	return &quest, nil
}

func scanAttempt(row pgx.Row) (*domain.QuestAttempt, error) {
	var attempt domain.QuestAttempt
	var progress []byte
	var completedAt pgtype.Timestamptz
	err := row.Scan(
		&attempt.ID,
		&attempt.UserID,
		&attempt.QuestID,
		&attempt.Status,
		&progress,
		&attempt.AcceptedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(progress, &attempt.Progress); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	if completedAt.Valid {
		attempt.CompletedAt = &completedAt.Time
	}
	return &attempt, nil
}

// GetQuest returns a quest definition, or (nil, nil) when unknown.
func (r *QuestRepository) GetQuest(ctx context.Context, questID string) (*domain.Quest, error) {
	questUUID, err := parseUUID("quest", questID)
	if err != nil {
		return nil, err
	}

	quest, err := scanQuest(r.db.QueryRow(ctx, `SELECT `+questColumns+` FROM quests WHERE quest_id = $1`, questUUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get quest", err)
	}
	return quest, nil
}

// ListQuests returns all quest definitions.
func (r *QuestRepository) ListQuests(ctx context.Context) ([]domain.Quest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+questColumns+` FROM quests ORDER BY title ASC`)
	if err != nil {
		return nil, wrapDBError("failed to query quests", err)
	}
	defer rows.Close()

	quests := make([]domain.Quest, 0)
	for rows.Next() {
		quest, err := scanQuest(rows)
		if err != nil {
			return nil, wrapDBError("failed to scan quest", err)
		}
		quests = append(quests, *quest)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("failed to read quests", err)
	}
	return quests, nil
}

// GetAttempt returns the attempt for a (user, quest) pair, or (nil, nil) when absent.
func (r *QuestRepository) GetAttempt(ctx context.Context, userID, questID string) (*domain.QuestAttempt, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}
	questUUID, err := parseUUID("quest", questID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + attemptColumns + ` FROM user_quests WHERE user_id = $1 AND quest_id = $2`
	attempt, err := scanAttempt(r.db.QueryRow(ctx, query, userUUID, questUUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get attempt", err)
	}
	return attempt, nil
}

// ListAttempts returns all attempts for a user, oldest first.
func (r *QuestRepository) ListAttempts(ctx context.Context, userID string) ([]domain.QuestAttempt, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + attemptColumns + ` FROM user_quests WHERE user_id = $1 ORDER BY accepted_at ASC`
	rows, err := r.db.Query(ctx, query, userUUID)
	if err != nil {
		return nil, wrapDBError("failed to query attempts", err)
	}
	defer rows.Close()

	attempts := make([]domain.QuestAttempt, 0)
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, wrapDBError("failed to scan attempt", err)
		}
		attempts = append(attempts, *attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("failed to read attempts", err)
	}
	return attempts, nil
}

// CreateAttempt inserts a new ACTIVE attempt. The unique constraint on
// (user_id, quest_id) turns a duplicate accept race into a Conflict.
func (r *QuestRepository) CreateAttempt(ctx context.Context, attempt *domain.QuestAttempt) error {
	userUUID, err := parseUUID("user", attempt.UserID)
	if err != nil {
		return err
	}
	questUUID, err := parseUUID("quest", attempt.QuestID)
	if err != nil {
		return err
	}

	progress := attempt.Progress
	if progress == nil {
		progress = map[string]int{}
	}
	progressJSON, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	query := `
		INSERT INTO user_quests (user_id, quest_id, status, progress)
		VALUES ($1, $2, $3, $4)
		RETURNING user_quest_id, accepted_at`

	err = r.db.QueryRow(ctx, query, userUUID, questUUID, attempt.Status, progressJSON).
		Scan(&attempt.ID, &attempt.AcceptedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrQuestAlreadyAccepted
		}
		return wrapDBError("failed to create attempt", err)
	}
	return nil
}

// UpsertQuest inserts or refreshes a quest definition, keyed by title.
// Seeding only; runtime access is read-only.
func (r *QuestRepository) UpsertQuest(ctx context.Context, quest domain.Quest) error {
	objectives, err := json.Marshal(quest.Objectives)
	if err != nil {
		return fmt.Errorf("failed to encode objectives: %w", err)
	}
	rewards, err := json.Marshal(quest.Rewards)
	if err != nil {
		return fmt.Errorf("failed to encode rewards: %w", err)
	}

	query := `
		INSERT INTO quests (title, description, objectives, rewards)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (title) DO UPDATE
		SET description = EXCLUDED.description,
		    objectives = EXCLUDED.objectives,
		    rewards = EXCLUDED.rewards`

	if _, err := r.db.Exec(ctx, query, quest.Title, quest.Description, objectives, rewards); err != nil {
		return wrapDBError("failed to upsert quest", err)
	}
	return nil
}

// BeginTx starts a reward transaction with the configured lock timeout.
func (r *QuestRepository) BeginTx(ctx context.Context) (repository.QuestTx, error) {
	tx, err := beginTx(ctx, r.db, r.lockTimeout)
	if err != nil {
		return nil, err
	}
	return &questTx{tx: tx}, nil
}

// questTx implements repository.QuestTx
type questTx struct {
	tx pgx.Tx
}

func (t *questTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback is a no-op after Commit so callers can defer it on every path.
func (t *questTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// GetAttemptForUpdate locks the attempt row so concurrent completions
// serialize; the loser observes COMPLETED and fails with a Conflict.
func (t *questTx) GetAttemptForUpdate(ctx context.Context, userID, questID string) (*domain.QuestAttempt, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}
	questUUID, err := parseUUID("quest", questID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + attemptColumns + ` FROM user_quests WHERE user_id = $1 AND quest_id = $2 FOR UPDATE`
	attempt, err := scanAttempt(t.tx.QueryRow(ctx, query, userUUID, questUUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get attempt for update", err)
	}
	return attempt, nil
}

func (t *questTx) UpdateAttempt(ctx context.Context, attempt domain.QuestAttempt) error {
	progressJSON, err := json.Marshal(attempt.Progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	var completedAt pgtype.Timestamptz
	if attempt.CompletedAt != nil {
		completedAt = pgtype.Timestamptz{Time: *attempt.CompletedAt, Valid: true}
	}

	query := `
		UPDATE user_quests
		SET status = $1, progress = $2, completed_at = $3
		WHERE user_quest_id = $4`

	tag, err := t.tx.Exec(ctx, query, attempt.Status, progressJSON, completedAt, attempt.ID)
	if err != nil {
		return wrapDBError("failed to update attempt", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: attempt %s", domain.ErrQuestNotStarted, attempt.ID)
	}
	return nil
}

// GetCharacterForUpdate locks the character row for a stat mutation.
func (t *questTx) GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1 FOR UPDATE`
	character, err := scanCharacter(t.tx.QueryRow(ctx, query, userUUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get character for update", err)
	}
	return character, nil
}

func (t *questTx) UpdateCharacter(ctx context.Context, character domain.Character) error {
	return updateCharacter(ctx, t.tx, character)
}

func (t *questTx) GetStackForUpdate(ctx context.Context, userID, itemID string) (*domain.ItemStack, error) {
	return getStackForUpdate(ctx, t.tx, userID, itemID)
}

func (t *questTx) InsertStack(ctx context.Context, stack *domain.ItemStack) error {
	return insertStack(ctx, t.tx, stack)
}

func (t *questTx) UpdateStack(ctx context.Context, stack domain.ItemStack) error {
	return updateStack(ctx, t.tx, stack)
}

func (t *questTx) DeleteStack(ctx context.Context, stackID string) error {
	return deleteStack(ctx, t.tx, stackID)
}
