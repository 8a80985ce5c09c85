package domain

// Item is a catalog entry: static display metadata keyed by item ID.
// The catalog is consumed, not owned, by the core; stacks copy name and
// type at creation time so later catalog edits never rewrite history.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Slot        string `json:"slot,omitempty"`
	Description string `json:"description,omitempty"`
	BaseValue   int    `json:"base_value"`
}
