package models

import (
	"encoding/json"
	"time"
)

// Denormalized read models for the admin list and detail views. These join
// owner fields (name/email/phone) into the entity's own projection.

// AdminQuoteListItem is one row of the admin quote list
type AdminQuoteListItem struct {
	ID            uint      `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Category      string    `json:"category"`
	Subcategory   *string   `json:"subcategory"`
	Status        string    `json:"status"`
	QuoteAmount   *float64  `json:"quote_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AdminQuoteDetail is the full admin view of a quote
type AdminQuoteDetail struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"user_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone *string         `json:"customer_phone"`
	Category      string          `json:"category"`
	Subcategory   *string         `json:"subcategory"`
	Status        string          `json:"status"`
	QuoteData     json.RawMessage `json:"quote_data"`
	CustomerNotes *string         `json:"customer_notes"`
	AgentNotes    *string         `json:"agent_notes"`
	QuoteAmount   *float64        `json:"quote_amount"`
	QuotedAt      *time.Time      `json:"quoted_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AdminClaimListItem is one row of the admin claim list
type AdminClaimListItem struct {
	ID            uint      `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Category      string    `json:"category"`
	Subcategory   *string   `json:"subcategory"`
	IncidentDate  time.Time `json:"incident_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AdminClaimDetail is the full admin view of a claim
type AdminClaimDetail struct {
	ID                   uint            `json:"id"`
	UserID               uint            `json:"user_id"`
	CustomerName         string          `json:"customer_name"`
	CustomerEmail        string          `json:"customer_email"`
	CustomerPhone        *string         `json:"customer_phone"`
	Category             string          `json:"category"`
	Subcategory          *string         `json:"subcategory"`
	IncidentDate         time.Time       `json:"incident_date"`
	IncidentSummary      string          `json:"incident_summary"`
	ClaimData            json.RawMessage `json:"claim_data"`
	AppointmentRequested *time.Time      `json:"appointment_requested"`
	ContactPreference    string          `json:"contact_preference"`
	PreferredContactTime *string         `json:"preferred_contact_time"`
	AdditionalNotes      *string         `json:"additional_notes"`
	Status               string          `json:"status"`
	AdminNotes           *string         `json:"admin_notes"`
	ContactedAt          *time.Time      `json:"contacted_at"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// AdminMessageListItem is one row of the admin message list
type AdminMessageListItem struct {
	ID            uint      `json:"id"`
	SenderName    string    `json:"sender_name"`
	SenderEmail   string    `json:"sender_email"`
	Subject       string    `json:"subject"`
	Status        string    `json:"status"`
	IsGuest       bool      `json:"is_guest"`
	AdminResponse *string   `json:"admin_response"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AdminMessageDetail is the full admin view of a contact message
type AdminMessageDetail struct {
	ID            uint       `json:"id"`
	UserID        *uint      `json:"user_id"`
	SenderName    string     `json:"sender_name"`
	SenderEmail   string     `json:"sender_email"`
	SenderPhone   *string    `json:"sender_phone"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	IsGuest       bool       `json:"is_guest"`
	AdminResponse *string    `json:"admin_response"`
	RespondedAt   *time.Time `json:"responded_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AdminUserListItem is one row of the admin user list
type AdminUserListItem struct {
	ID            uint       `json:"id"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone"`
	IsActive      bool       `json:"is_active"`
	IsAdmin       bool       `json:"is_admin"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at"`
	QuotesCount   int64      `json:"quotes_count"`
	ClaimsCount   int64      `json:"claims_count"`
	MessagesCount int64      `json:"messages_count"`
}

// UserActivityRecord is one entry of a user's activity history.
// Category is set for quotes and claims, Subject for messages.
type UserActivityRecord struct {
	Type      string    `json:"type"`
	ID        uint      `json:"id"`
	Category  *string   `json:"category,omitempty"`
	Subject   *string   `json:"subject,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserActivitySummary groups a user's submissions for the admin detail view
type UserActivitySummary struct {
	Quotes         []UserActivityRecord `json:"quotes"`
	Claims         []UserActivityRecord `json:"claims"`
	Messages       []UserActivityRecord `json:"messages"`
	RecentActivity []UserActivityRecord `json:"recent_activity"`
}

// AdminUserDetail is the full admin view of a user with activity summary
type AdminUserDetail struct {
	ID            uint                `json:"id"`
	Username      string              `json:"username"`
	FullName      string              `json:"full_name"`
	Email         string              `json:"email"`
	Phone         *string             `json:"phone"`
	IsActive      bool                `json:"is_active"`
	IsAdmin       bool                `json:"is_admin"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	LastLoginAt   *time.Time          `json:"last_login_at"`
	QuotesCount   int64               `json:"quotes_count"`
	ClaimsCount   int64               `json:"claims_count"`
	MessagesCount int64               `json:"messages_count"`
	Activity      UserActivitySummary `json:"activity"`
}
