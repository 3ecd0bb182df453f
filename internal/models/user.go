package models

import (
	"time"
)

// User represents a customer or admin account
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName       string    `gorm:"size:255;not null" json:"full_name"`
	Phone          *string   `gorm:"size:20" json:"phone"`
	HashedPassword string    `gorm:"column:hashed_password;size:255;not null" json:"-"`
	IsActive       bool      `gorm:"default:true;not null" json:"is_active"`
	IsAdmin        bool      `gorm:"default:false;not null;index" json:"is_admin"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Associations
	QuoteRequests   []QuoteRequest   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"quote_requests,omitempty"`
	Claims          []Claim          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"claims,omitempty"`
	ContactMessages []ContactMessage `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"contact_messages,omitempty"`
	AuditLogs       []AuditLog       `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
