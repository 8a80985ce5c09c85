package domain

import "time"

// QuestStatus is the lifecycle state of a user's quest attempt.
// Transitions are monotonic: ACTIVE -> COMPLETED, never back.
type QuestStatus string

const (
	QuestStatusActive    QuestStatus = "ACTIVE"
	QuestStatusCompleted QuestStatus = "COMPLETED"
)

// Objective is a single goal inside a quest definition.
type Objective struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Target      int    `json:"target"`
	Current     int    `json:"current"`
}

// ItemReward is one reward line granting a quantity of a catalog item.
type ItemReward struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Reward is the full reward specification of a quest.
type Reward struct {
	XP    int          `json:"xp"`
	Gold  int          `json:"gold"`
	Items []ItemReward `json:"items"`
}

// Quest is a read-only quest definition.
type Quest struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Objectives  []Objective `json:"objectives"`
	Rewards     Reward      `json:"rewards"`
}

// QuestAttempt is a user's instance of progress against a quest
// definition. One row per (user, quest) pair; never deleted.
//
// Progress maps objective ID to accumulated count. The coordinator
// stores it but does not validate it against objectives before granting
// rewards; the client is trusted there.
type QuestAttempt struct {
	ID       string         `json:"id"`
	UserID   string         `json:"user_id"`
	QuestID  string         `json:"quest_id"`
	Status   QuestStatus    `json:"status"`
	Progress map[string]int `json:"progress"`

	AcceptedAt  time.Time  `json:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
