package models

import "time"

// AuditLogEntry is the compliance trail. Written on every create/update,
// never read back by this service.
type AuditLogEntry struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	UserType     string    `json:"user_type"`
	Action       string    `json:"action"` // "create" | "update"
	ResourceType string    `json:"resource_type"`
	ResourceID   int       `json:"resource_id"`
	NewValues    string    `json:"new_values"` // JSON snapshot
	CreatedAt    time.Time `json:"created_at"`
}

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
)
