package models

import (
	"time"
)

// AuditLog records a user or admin action. Entries are append-only and are
// never updated or deleted. UserID is nullified when the user is removed.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	Action     string    `gorm:"size:100;not null;index" json:"action"` // LOGIN, QUOTE_UPDATED_BY_ADMIN, ...
	EntityType *string   `gorm:"size:50" json:"entity_type"`            // QuoteRequest, Claim, ContactMessage, User
	EntityID   *uint     `json:"entity_id"`
	Details    string    `gorm:"type:text" json:"details"`
	IPAddress  string    `gorm:"size:45" json:"ip_address"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants for authentication events
const (
	ActionLogin          = "LOGIN"
	ActionUserRegistered = "USER_REGISTERED"
)
