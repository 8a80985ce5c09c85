package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/highnoon-games/dustbound/internal/database"
	"github.com/highnoon-games/dustbound/internal/database/schema"
	"github.com/highnoon-games/dustbound/internal/domain"
)

const testLockTimeout = 5 * time.Second

// startTestDatabase spins up a disposable Postgres container, applies
// the schema and returns a pool. Cleanup is registered on t.
func startTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr, 25, 30*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema.SchemaSQL); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return pool
}

// createTestUser inserts a user and returns its generated ID.
func createTestUser(t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()
	repo := NewUserRepository(pool)
	user := &domain.User{Username: username}
	if err := repo.UpsertUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user.ID
}

// createTestCharacter inserts a fresh character for a user.
func createTestCharacter(t *testing.T, pool *pgxpool.Pool, userID string) *domain.Character {
	t.Helper()
	repo := NewCharacterRepository(pool)
	character := domain.NewCharacter(userID, "Tester")
	if err := repo.CreateCharacter(context.Background(), character); err != nil {
		t.Fatalf("failed to create test character: %v", err)
	}
	return character
}

// seedTestQuest inserts a quest definition and returns its ID.
func seedTestQuest(t *testing.T, pool *pgxpool.Pool, quest domain.Quest) string {
	t.Helper()
	repo := NewQuestRepository(pool, testLockTimeout)
	ctx := context.Background()
	if err := repo.UpsertQuest(ctx, quest); err != nil {
		t.Fatalf("failed to seed quest: %v", err)
	}
	var questID string
	if err := pool.QueryRow(ctx, `SELECT quest_id FROM quests WHERE title = $1`, quest.Title).Scan(&questID); err != nil {
		t.Fatalf("failed to look up seeded quest: %v", err)
	}
	return questID
}

// seedTestItem inserts a catalog item.
func seedTestItem(t *testing.T, pool *pgxpool.Pool, item domain.Item) {
	t.Helper()
	if err := NewItemRepository(pool).UpsertItem(context.Background(), item); err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
}
