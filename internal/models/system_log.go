package models

import (
	"time"
)

// SystemLog captures an unhandled failure with its request context. Written
// by the recovery middleware, never exposed to callers.
type SystemLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Level            string    `gorm:"size:10;not null;index" json:"level"`
	Message          string    `gorm:"type:text;not null" json:"message"`
	ExceptionType    *string   `gorm:"size:255" json:"exception_type"`
	ExceptionMessage *string   `gorm:"type:text" json:"exception_message"`
	StackTrace       *string   `gorm:"type:text" json:"stack_trace"`
	RequestMethod    *string   `gorm:"size:10" json:"request_method"`
	RequestPath      *string   `gorm:"size:500" json:"request_path"`
	RequestIP        *string   `gorm:"size:45" json:"request_ip"`
	RequestID        *string   `gorm:"size:36" json:"request_id"`
	UserID           *uint     `gorm:"index" json:"user_id"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for SystemLog
func (SystemLog) TableName() string {
	return "system_logs"
}

// Log level constants
const (
	LogLevelInfo    = "INFO"
	LogLevelWarning = "WARNING"
	LogLevelError   = "ERROR"
)
