// Command setup provisions the database: creates it if missing, applies
// the schema and seeds the item catalog and quest definitions from
// configs/.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/highnoon-games/dustbound/internal/config"
	"github.com/highnoon-games/dustbound/internal/database/schema"
	"github.com/highnoon-games/dustbound/internal/item"
	"github.com/highnoon-games/dustbound/internal/quest"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	createDatabase(ctx, cfg)

	conn, err := pgx.Connect(ctx, cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", cfg.DBName, err)
	}
	defer conn.Close(ctx)

	fmt.Println("Applying schema...")
	if _, err := conn.Exec(ctx, schema.SchemaSQL); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	seedItems(ctx, conn)
	seedQuests(ctx, conn)

	fmt.Println("Setup completed successfully.")
}

func createDatabase(ctx context.Context, cfg *config.Config) {
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, defaultConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", cfg.DBName)); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	fmt.Println("Database created successfully.")
}

func seedItems(ctx context.Context, conn *pgx.Conn) {
	items, err := item.LoadItems(config.ConfigPathItems)
	if err != nil {
		log.Fatalf("Failed to load item seed file: %v", err)
	}

	for _, it := range items {
		_, err := conn.Exec(ctx, `
			INSERT INTO items (item_id, item_name, item_type, slot, description, base_value)
			VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
			ON CONFLICT (item_id) DO UPDATE
			SET item_name = EXCLUDED.item_name,
			    item_type = EXCLUDED.item_type,
			    slot = EXCLUDED.slot,
			    description = EXCLUDED.description,
			    base_value = EXCLUDED.base_value`,
			it.ID, it.Name, it.Type, it.Slot, it.Description, it.BaseValue)
		if err != nil {
			log.Fatalf("Failed to seed item %s: %v", it.ID, err)
		}
	}
	fmt.Printf("Seeded %d items.\n", len(items))
}

func seedQuests(ctx context.Context, conn *pgx.Conn) {
	quests, err := quest.LoadQuests(config.ConfigPathQuests)
	if err != nil {
		log.Fatalf("Failed to load quest seed file: %v", err)
	}

	for _, q := range quests {
		objectives, err := json.Marshal(q.Objectives)
		if err != nil {
			log.Fatalf("Failed to encode objectives for %q: %v", q.Title, err)
		}
		rewards, err := json.Marshal(q.Rewards)
		if err != nil {
			log.Fatalf("Failed to encode rewards for %q: %v", q.Title, err)
		}
		_, err = conn.Exec(ctx, `
			INSERT INTO quests (title, description, objectives, rewards)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (title) DO UPDATE
			SET description = EXCLUDED.description,
			    objectives = EXCLUDED.objectives,
			    rewards = EXCLUDED.rewards`,
			q.Title, q.Description, objectives, rewards)
		if err != nil {
			log.Fatalf("Failed to seed quest %q: %v", q.Title, err)
		}
	}
	fmt.Printf("Seeded %d quests.\n", len(quests))
}
