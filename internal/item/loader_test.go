package item

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadItems(t *testing.T) {
	path := writeSeed(t, `[
		{"id": "rusty_revolver", "name": "Rusty Revolver", "type": "weapon", "slot": "main_hand", "base_value": 10},
		{"id": "beans", "name": "Can of Beans", "type": "consumable", "base_value": 2}
	]`)

	items, err := LoadItems(path)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "rusty_revolver", items[0].ID)
	assert.Equal(t, "main_hand", items[0].Slot)
}

func TestLoadItems_MissingFile(t *testing.T) {
	_, err := LoadItems(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadItems_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty list":     `[]`,
		"empty id":       `[{"id": "", "name": "X", "type": "misc"}]`,
		"empty name":     `[{"id": "x", "name": "", "type": "misc"}]`,
		"unknown type":   `[{"id": "x", "name": "X", "type": "spaceship"}]`,
		"negative value": `[{"id": "x", "name": "X", "type": "misc", "base_value": -1}]`,
		"duplicate id":   `[{"id": "x", "name": "X", "type": "misc"}, {"id": "x", "name": "Y", "type": "misc"}]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadItems(writeSeed(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
