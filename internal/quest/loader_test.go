package quest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quests.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadQuests(t *testing.T) {
	path := writeSeedFile(t, `[
		{
			"title": "Welcome to Dust",
			"description": "Speak to the Sheriff.",
			"objectives": [{"id": "obj1", "type": "talk", "description": "Talk to Sheriff", "target": 1}],
			"rewards": {"xp": 100, "gold": 50, "items": [{"itemId": "beans", "quantity": 3}]}
		}
	]`)

	quests, err := LoadQuests(path)

	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.Equal(t, "Welcome to Dust", quests[0].Title)
	assert.Equal(t, 100, quests[0].Rewards.XP)
	require.Len(t, quests[0].Rewards.Items, 1)
	assert.Equal(t, "beans", quests[0].Rewards.Items[0].ItemID)
}

func TestLoadQuests_MissingFile(t *testing.T) {
	_, err := LoadQuests(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadQuests_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty list":  `[]`,
		"empty title": `[{"title": "", "objectives": [{"id": "o", "type": "talk", "target": 1}], "rewards": {}}]`,
		"duplicate title": `[
			{"title": "Same", "objectives": [{"id": "o", "type": "talk", "target": 1}], "rewards": {}},
			{"title": "Same", "objectives": [{"id": "o", "type": "talk", "target": 1}], "rewards": {}}
		]`,
		"no objectives":   `[{"title": "Q", "objectives": [], "rewards": {}}]`,
		"negative xp":     `[{"title": "Q", "objectives": [{"id": "o", "type": "talk", "target": 1}], "rewards": {"xp": -5}}]`,
		"empty reward id": `[{"title": "Q", "objectives": [{"id": "o", "type": "talk", "target": 1}], "rewards": {"items": [{"itemId": "", "quantity": 1}]}}]`,
		"zero quantity":   `[{"title": "Q", "objectives": [{"id": "o", "type": "talk", "target": 1}], "rewards": {"items": [{"itemId": "beans", "quantity": 0}]}}]`,
		"over stack cap":  `[{"title": "Q", "objectives": [{"id": "o", "type": "talk", "target": 1}], "rewards": {"items": [{"itemId": "beans", "quantity": 10000}]}}]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadQuests(writeSeedFile(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
