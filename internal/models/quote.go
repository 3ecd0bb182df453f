package models

import (
	"encoding/json"
	"time"
)

// QuoteRequest represents an insurance quote request submitted by a customer.
// The quote_data payload is category-specific and opaque to the backend.
type QuoteRequest struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Category        string          `gorm:"size:30;not null;index" json:"category"`
	Subcategory     *string         `gorm:"size:30;index" json:"subcategory"`
	Status          string          `gorm:"size:20;default:pending;not null;index" json:"status"`
	QuoteData       json.RawMessage `gorm:"type:jsonb;not null" json:"quote_data"`
	CustomerNotes   *string         `gorm:"type:text" json:"customer_notes"`
	AgentNotes      *string         `gorm:"type:text" json:"agent_notes"`
	QuoteAmount     *float64        `json:"quote_amount"`
	QuotedAt        *time.Time      `json:"quoted_at"`
	AppointmentDate *time.Time      `gorm:"type:date" json:"appointment_date"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for QuoteRequest
func (QuoteRequest) TableName() string {
	return "quote_requests"
}

// Quote status constants
const (
	QuoteStatusPending  = "pending"
	QuoteStatusInReview = "in_review"
	QuoteStatusQuoted   = "quoted"
	QuoteStatusAccepted = "accepted"
	QuoteStatusDeclined = "declined"
)

// QuoteStatuses is the full set of valid quote statuses
var QuoteStatuses = []string{
	QuoteStatusPending,
	QuoteStatusInReview,
	QuoteStatusQuoted,
	QuoteStatusAccepted,
	QuoteStatusDeclined,
}

// IsOpen returns true while the quote still needs agent action
func (q *QuoteRequest) IsOpen() bool {
	return q.Status == QuoteStatusPending || q.Status == QuoteStatusInReview
}

// QuoteResponse is the JSON response format for the owner's view of a quote
type QuoteResponse struct {
	ID            uint            `json:"id"`
	Category      string          `json:"category"`
	Subcategory   *string         `json:"subcategory"`
	Status        string          `json:"status"`
	QuoteData     json.RawMessage `json:"quote_data"`
	CustomerNotes *string         `json:"customer_notes"`
	QuoteAmount   *float64        `json:"quote_amount"`
	QuotedAt      *time.Time      `json:"quoted_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToResponse converts QuoteRequest to QuoteResponse
func (q *QuoteRequest) ToResponse() QuoteResponse {
	return QuoteResponse{
		ID:            q.ID,
		Category:      q.Category,
		Subcategory:   q.Subcategory,
		Status:        q.Status,
		QuoteData:     q.QuoteData,
		CustomerNotes: q.CustomerNotes,
		QuoteAmount:   q.QuoteAmount,
		QuotedAt:      q.QuotedAt,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
