package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// syncBuffer guards a bytes.Buffer because the sink writes from its
// worker goroutine while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSink_RecordAndDrain(t *testing.T) {
	out := &syncBuffer{}
	sink := NewSink(slog.New(slog.NewJSONHandler(out, nil)), 16)

	sink.Record(domain.AuditEntry{
		UserID:         "user-1",
		Action:         domain.AuditActionAdd,
		ItemID:         "rusty_revolver",
		QuantityChange: 3,
		OldQuantity:    2,
		NewQuantity:    5,
	})
	sink.Record(domain.AuditEntry{
		UserID:         "user-1",
		Action:         domain.AuditActionRemoveAll,
		ItemID:         "rusty_revolver",
		QuantityChange: -5,
		OldQuantity:    5,
		NewQuantity:    0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sink.Shutdown(ctx))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "user-1", first["user_id"])
	assert.Equal(t, "ADD", first["action"])
	assert.Equal(t, "rusty_revolver", first["item_id"])
	assert.Equal(t, float64(3), first["quantity_change"])
	assert.Equal(t, float64(5), first["new_quantity"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "REMOVE_ALL", second["action"])
	assert.Equal(t, float64(0), second["new_quantity"])
}

func TestSink_TimestampDefaulted(t *testing.T) {
	out := &syncBuffer{}
	sink := NewSink(slog.New(slog.NewJSONHandler(out, nil)), 4)

	before := time.Now().UTC()
	sink.Record(domain.AuditEntry{UserID: "user-1", Action: domain.AuditActionEquip, ItemID: "duster_coat"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sink.Shutdown(ctx))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out.String())), &entry))
	at, err := time.Parse(time.RFC3339Nano, entry["at"].(string))
	require.NoError(t, err)
	assert.False(t, at.Before(before.Truncate(time.Second)))
}

func TestSink_RecordAfterShutdownDoesNotPanic(t *testing.T) {
	out := &syncBuffer{}
	sink := NewSink(slog.New(slog.NewJSONHandler(out, nil)), 4)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sink.Shutdown(ctx))

	assert.NotPanics(t, func() {
		sink.Record(domain.AuditEntry{UserID: "user-1", Action: domain.AuditActionAdd, ItemID: "bent_nail"})
	})
}

func TestSink_ShutdownIdempotent(t *testing.T) {
	sink := NewSink(slog.New(slog.NewJSONHandler(&syncBuffer{}, nil)), 4)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sink.Shutdown(ctx))
	require.NoError(t, sink.Shutdown(ctx))
}
