package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User      UserRepository
	Quote     QuoteRepository
	Claim     ClaimRepository
	Message   MessageRepository
	Audit     AuditLogRepository
	SystemLog SystemLogRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Quote:     NewQuoteRepository(db),
		Claim:     NewClaimRepository(db),
		Message:   NewMessageRepository(db),
		Audit:     NewAuditLogRepository(db),
		SystemLog: NewSystemLogRepository(db),
	}
}

// ListQuery represents common query parameters for paginated lists
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// SubmissionCount is one row of a per-user active submission count
type SubmissionCount struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
	Count    int64  `json:"count"`
}
