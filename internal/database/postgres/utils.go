package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/highnoon-games/dustbound/internal/domain"
	"github.com/highnoon-games/dustbound/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseUUID parses an ID string to uuid.UUID with a consistent error message.
func parseUUID(kind, id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q: %w", kind, id, err)
	}
	return u, nil
}

// wrapDBError wraps a database error, tagging lock timeouts and
// deadlocks as domain.ErrTransient so callers can retry them.
func wrapDBError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrCodeLockNotAvailable, PgErrCodeDeadlockDetected:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrTransient, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, used to turn duplicate-insert races into Conflict errors.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrCodeUniqueViolation
}
