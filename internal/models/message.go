package models

import (
	"time"
)

// ContactMessage represents a message from the public contact form.
// UserID is nil for guest submissions.
type ContactMessage struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          *uint      `gorm:"index" json:"user_id"`
	FullName        string     `gorm:"size:200;not null" json:"full_name"`
	Email           string     `gorm:"size:255;not null" json:"email"`
	Phone           *string    `gorm:"size:20" json:"phone"`
	Subject         string     `gorm:"size:20;not null;index" json:"subject"`
	Message         string     `gorm:"type:text;not null" json:"message"`
	Status          string     `gorm:"size:20;default:new;not null;index" json:"status"`
	AdminResponse   *string    `gorm:"type:text" json:"admin_response"`
	RespondedAt     *time.Time `json:"responded_at"`
	AppointmentDate *time.Time `gorm:"type:date" json:"appointment_date"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for ContactMessage
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// Message status constants
const (
	MessageStatusNew       = "new"
	MessageStatusRead      = "read"
	MessageStatusResponded = "responded"
	MessageStatusClosed    = "closed"
)

// MessageStatuses is the full set of valid message statuses
var MessageStatuses = []string{
	MessageStatusNew,
	MessageStatusRead,
	MessageStatusResponded,
	MessageStatusClosed,
}

// Message subject constants
const (
	MessageSubjectGeneral = "general"
	MessageSubjectQuote   = "quote"
	MessageSubjectClaim   = "claim"
	MessageSubjectPolicy  = "policy"
	MessageSubjectOther   = "other"
)

// MessageSubjects is the full set of valid message subjects
var MessageSubjects = []string{
	MessageSubjectGeneral,
	MessageSubjectQuote,
	MessageSubjectClaim,
	MessageSubjectPolicy,
	MessageSubjectOther,
}

// IsGuest returns true when the message was submitted without authentication
func (m *ContactMessage) IsGuest() bool {
	return m.UserID == nil
}

// IsUnread returns true while no admin has responded to or closed the message
func (m *ContactMessage) IsUnread() bool {
	return m.Status == MessageStatusNew || m.Status == MessageStatusRead
}

// MessageResponse is the JSON response format for the owner's view of a message
type MessageResponse struct {
	ID            uint       `json:"id"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	AdminResponse *string    `json:"admin_response"`
	RespondedAt   *time.Time `json:"responded_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts ContactMessage to MessageResponse
func (m *ContactMessage) ToResponse() MessageResponse {
	return MessageResponse{
		ID:            m.ID,
		Subject:       m.Subject,
		Message:       m.Message,
		Status:        m.Status,
		AdminResponse: m.AdminResponse,
		RespondedAt:   m.RespondedAt,
		CreatedAt:     m.CreatedAt,
	}
}
