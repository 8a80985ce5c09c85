package repository

import (
	"context"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// User defines the interface for the user directory. The core only
// checks existence and supports seeding; account management is owned by
// the auth layer.
type User interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpsertUser(ctx context.Context, user *domain.User) error
}
