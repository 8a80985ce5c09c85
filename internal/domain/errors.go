package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Character errors
	ErrMsgCharacterNotFound = "character not found"

	// Item/stack errors
	ErrMsgItemNotFound        = "item not found"
	ErrMsgCatalogItemNotFound = "catalog item not found"

	// Inventory errors
	ErrMsgInvalidQuantity      = "invalid quantity"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgStackLimitExceeded   = "stack limit exceeded"

	// Quest errors
	ErrMsgQuestNotFound         = "quest not found"
	ErrMsgQuestNotStarted       = "quest not started"
	ErrMsgQuestAlreadyAccepted  = "quest already accepted"
	ErrMsgQuestAlreadyCompleted = "quest already completed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Transient errors (lock timeouts, deadlocks) - callers may retry
	ErrMsgTransient = "transient database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// NotFound
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrCharacterNotFound   = errors.New(ErrMsgCharacterNotFound)
	ErrItemNotFound        = errors.New(ErrMsgItemNotFound)
	ErrCatalogItemNotFound = errors.New(ErrMsgCatalogItemNotFound)
	ErrQuestNotFound       = errors.New(ErrMsgQuestNotFound)
	ErrQuestNotStarted     = errors.New(ErrMsgQuestNotStarted)

	// Validation
	ErrInvalidQuantity      = errors.New(ErrMsgInvalidQuantity)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrStackLimitExceeded   = errors.New(ErrMsgStackLimitExceeded)
	ErrInvalidInput         = errors.New(ErrMsgInvalidInput)

	// Conflict
	ErrQuestAlreadyAccepted  = errors.New(ErrMsgQuestAlreadyAccepted)
	ErrQuestAlreadyCompleted = errors.New(ErrMsgQuestAlreadyCompleted)

	// Transient
	ErrTransient = errors.New(ErrMsgTransient)
)
