package domain

import "time"

// AuditAction identifies the inventory mutation an audit entry records.
type AuditAction string

const (
	AuditActionAdd       AuditAction = "ADD"
	AuditActionRemove    AuditAction = "REMOVE"
	AuditActionRemoveAll AuditAction = "REMOVE_ALL"
	AuditActionEquip     AuditAction = "EQUIP"
	AuditActionUnequip   AuditAction = "UNEQUIP"
	AuditActionUpdate    AuditAction = "UPDATE"
)

// AuditEntry is one append-only record of an inventory mutation.
// Entries are best-effort: losing one never fails the mutation it
// describes.
type AuditEntry struct {
	Timestamp      time.Time   `json:"timestamp"`
	UserID         string      `json:"user_id"`
	Action         AuditAction `json:"action"`
	ItemID         string      `json:"item_id"`
	QuantityChange int         `json:"quantity_change"`
	OldQuantity    int         `json:"old_quantity"`
	NewQuantity    int         `json:"new_quantity"`
}
