package domain

import "time"

// User is the account record owning a character, inventory stacks and
// quest attempts. Authentication lives in the HTTP layer; the core only
// needs identity and existence.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
