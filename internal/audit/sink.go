// Package audit emits append-only records of inventory mutations.
// Entries are best-effort: the sink never blocks or fails the mutation
// it describes. When the buffer is full the entry is dropped and
// counted.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/metrics"
)

// Sink writes audit entries to structured logs from a background
// goroutine, decoupling the write from the mutation's critical path.
type Sink struct {
	log     *slog.Logger
	entries chan domain.AuditEntry
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewSink creates a sink with the given buffer size and starts its
// worker goroutine.
func NewSink(log *slog.Logger, bufferSize int) *Sink {
	s := &Sink{
		log:     log,
		entries: make(chan domain.AuditEntry, bufferSize),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Sink) run() {
	defer close(s.done)
	for entry := range s.entries {
		s.write(entry)
	}
}

func (s *Sink) write(entry domain.AuditEntry) {
	s.log.Info("Inventory audit",
		"user_id", entry.UserID,
		"action", string(entry.Action),
		"item_id", entry.ItemID,
		"quantity_change", entry.QuantityChange,
		"old_quantity", entry.OldQuantity,
		"new_quantity", entry.NewQuantity,
		"at", entry.Timestamp,
	)
}

// Record enqueues an audit entry. Never blocks: a full buffer or a
// closed sink drops the entry and increments the drop counter.
func (s *Sink) Record(entry domain.AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		metrics.AuditEntriesDropped.Inc()
		return
	}
	select {
	case s.entries <- entry:
		s.mu.Unlock()
		metrics.AuditEntries.WithLabelValues(string(entry.Action)).Inc()
	default:
		s.mu.Unlock()
		metrics.AuditEntriesDropped.Inc()
	}
}

// Shutdown stops accepting entries and waits for the buffer to drain,
// or for ctx to expire.
func (s *Sink) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
