package models

import "time"

// AuditLog records mutating ledger and account operations.
type AuditLog struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	Action       string    `bson:"action" json:"action"`
	ResourceType string    `bson:"resource_type" json:"resource_type"`
	IPAddress    string    `bson:"ip_address" json:"ip_address"`
	Changes      string    `bson:"changes,omitempty" json:"changes,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
