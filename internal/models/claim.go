package models

import (
	"encoding/json"
	"time"
)

// Claim represents a lightweight claim report: basic incident info so an
// agent can prepare for a customer visit, not a full claim processing record.
type Claim struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	UserID               uint            `gorm:"not null;index" json:"user_id"`
	Category             string          `gorm:"size:30;not null;index" json:"category"`
	Subcategory          *string         `gorm:"size:30;index" json:"subcategory"`
	IncidentDate         time.Time       `gorm:"type:date;not null" json:"incident_date"`
	IncidentSummary      string          `gorm:"type:text;not null" json:"incident_summary"`
	ClaimData            json.RawMessage `gorm:"type:jsonb;not null" json:"claim_data"`
	AppointmentRequested *time.Time      `gorm:"type:date" json:"appointment_requested"`
	ContactPreference    string          `gorm:"size:20;default:either;not null" json:"contact_preference"`
	PreferredContactTime *string         `gorm:"size:20" json:"preferred_contact_time"`
	AdditionalNotes      *string         `gorm:"type:text" json:"additional_notes"`
	Status               string          `gorm:"size:20;default:submitted;not null;index" json:"status"`
	AdminNotes           *string         `gorm:"type:text" json:"-"`
	ContactedAt          *time.Time      `json:"contacted_at"`
	CreatedAt            time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Claim
func (Claim) TableName() string {
	return "claims"
}

// Claim status constants
const (
	ClaimStatusSubmitted = "submitted"
	ClaimStatusContacted = "contacted"
	ClaimStatusClosed    = "closed"
)

// ClaimStatuses is the full set of valid claim statuses
var ClaimStatuses = []string{
	ClaimStatusSubmitted,
	ClaimStatusContacted,
	ClaimStatusClosed,
}

// Contact preference constants
const (
	ContactPreferenceEmail  = "email"
	ContactPreferencePhone  = "phone"
	ContactPreferenceEither = "either"
)

// ClaimResponse is the JSON response format for the owner's view of a claim
type ClaimResponse struct {
	ID                   uint            `json:"id"`
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
	ContactedAt          *time.Time      `json:"contacted_at"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToResponse converts Claim to ClaimResponse
func (c *Claim) ToResponse() ClaimResponse {
	return ClaimResponse{
		ID:                   c.ID,
		Category:             c.Category,
		Subcategory:          c.Subcategory,
		IncidentDate:         c.IncidentDate,
		IncidentSummary:      c.IncidentSummary,
		ClaimData:            c.ClaimData,
		AppointmentRequested: c.AppointmentRequested,
		ContactPreference:    c.ContactPreference,
		PreferredContactTime: c.PreferredContactTime,
		AdditionalNotes:      c.AdditionalNotes,
		Status:               c.Status,
		ContactedAt:          c.ContactedAt,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
