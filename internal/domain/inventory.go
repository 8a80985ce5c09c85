package domain

import "time"

// ItemStack is a single inventory row aggregating quantity for one
// (user, item) pair. Invariant: 1 <= Quantity <= MaxStackQuantity while
// the row exists; depletion deletes the row.
type ItemStack struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	ItemType string `json:"item_type"`

	Quantity int    `json:"quantity"`
	Equipped bool   `json:"equipped"`
	Slot     string `json:"slot,omitempty"`

	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}
