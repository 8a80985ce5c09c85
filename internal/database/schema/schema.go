package schema

// SchemaSQL contains the full database schema initialization script.
// Applied by cmd/setup and by integration test harnesses.
const SchemaSQL = `
-- Users (owned by the auth layer; the core only checks existence)
CREATE TABLE IF NOT EXISTS users (
    user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(50) UNIQUE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Characters: one per user, the authoritative progression record
CREATE TABLE IF NOT EXISTS characters (
    character_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID UNIQUE NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    name VARCHAR(50) NOT NULL,
    level INTEGER NOT NULL DEFAULT 1,
    xp INTEGER NOT NULL DEFAULT 0,
    gold INTEGER NOT NULL DEFAULT 100,
    current_health INTEGER NOT NULL DEFAULT 100,
    max_health INTEGER NOT NULL DEFAULT 100,
    strength INTEGER NOT NULL DEFAULT 5,
    agility INTEGER NOT NULL DEFAULT 5,
    endurance INTEGER NOT NULL DEFAULT 5,
    perception INTEGER NOT NULL DEFAULT 5,
    intelligence INTEGER NOT NULL DEFAULT 5
);

-- Item catalog: static display metadata, seeded from configs/items.json
CREATE TABLE IF NOT EXISTS items (
    item_id VARCHAR(64) PRIMARY KEY,
    item_name VARCHAR(100) NOT NULL,
    item_type VARCHAR(32) NOT NULL,
    slot VARCHAR(32),
    description TEXT,
    base_value INTEGER NOT NULL DEFAULT 0
);

-- Inventory stacks: one row per (user, item) pair.
-- The CHECK is the last line of defense for the quantity invariant;
-- services validate before the row ever gets here.
CREATE TABLE IF NOT EXISTS inventory_items (
    inventory_item_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    item_id VARCHAR(64) NOT NULL,
    item_name VARCHAR(100) NOT NULL,
    item_type VARCHAR(32) NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity >= 1 AND quantity <= 9999),
    equipped BOOLEAN NOT NULL DEFAULT FALSE,
    slot VARCHAR(32),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_modified TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_inventory_items_user ON inventory_items (user_id, item_type, item_name);

-- Quest definitions, seeded from configs/quests.json
CREATE TABLE IF NOT EXISTS quests (
    quest_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title VARCHAR(200) UNIQUE NOT NULL,
    description TEXT NOT NULL,
    objectives JSONB NOT NULL DEFAULT '[]',
    rewards JSONB NOT NULL DEFAULT '{}'
);

-- Quest attempts: one row per (user, quest), never deleted.
-- Status is monotonic: ACTIVE -> COMPLETED.
CREATE TABLE IF NOT EXISTS user_quests (
    user_quest_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    quest_id UUID NOT NULL REFERENCES quests(quest_id) ON DELETE CASCADE,
    status VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
    progress JSONB NOT NULL DEFAULT '{}',
    accepted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at TIMESTAMPTZ,
    UNIQUE (user_id, quest_id)
);

CREATE INDEX IF NOT EXISTS idx_user_quests_user ON user_quests (user_id);
`
