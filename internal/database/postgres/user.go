package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByID returns a user, or (nil, nil) when absent.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	userUUID, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT user_id, username, created_at, updated_at FROM users WHERE user_id = $1`

	var user domain.User
	err = r.db.QueryRow(ctx, query, userUUID).
		Scan(&user.ID, &user.Username, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get user", err)
	}
	return &user, nil
}

// UpsertUser inserts or refreshes a user keyed by username. Seeding and
// test setup only.
func (r *UserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username)
		VALUES ($1)
		ON CONFLICT (username) DO UPDATE SET updated_at = NOW()
		RETURNING user_id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, user.Username).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return wrapDBError("failed to upsert user", err)
	}
	return nil
}
