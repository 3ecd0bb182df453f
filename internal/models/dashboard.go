package models

import (
	"time"
)

// QuoteStats holds per-status quote counts for the dashboard
type QuoteStats struct {
	Pending  int64 `json:"pending"`
	InReview int64 `json:"in_review"`
	Quoted   int64 `json:"quoted"`
	Total    int64 `json:"total"`
}

// ClaimStats holds per-status claim counts for the dashboard
type ClaimStats struct {
	Submitted int64 `json:"submitted"`
	Contacted int64 `json:"contacted"`
	Closed    int64 `json:"closed"`
	Total     int64 `json:"total"`
}

// MessageStats holds per-status contact message counts for the dashboard
type MessageStats struct {
	New       int64 `json:"new"`
	Read      int64 `json:"read"`
	Responded int64 `json:"responded"`
	Closed    int64 `json:"closed"`
	Total     int64 `json:"total"`
}

// UserStats holds account counts for the dashboard
type UserStats struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Total    int64 `json:"total"`
}

// DashboardStats is the aggregated dashboard response
type DashboardStats struct {
	Quotes         QuoteStats            `json:"quotes"`
	Claims         ClaimStats            `json:"claims"`
	Messages       MessageStats          `json:"messages"`
	Users          UserStats             `json:"users"`
	RecentActivity []ActivitySummaryItem `json:"recent_activity"`
}

// Activity record type tags
const (
	ActivityTypeQuote   = "quote"
	ActivityTypeClaim   = "claim"
	ActivityTypeMessage = "message"
)

// ActivitySummaryItem is the compact feed shape shown on the dashboard
type ActivitySummaryItem struct {
	Type     string    `json:"type"`
	Customer string    `json:"customer"`
	Action   string    `json:"action"`
	Date     time.Time `json:"date"`
}

// ActivityItem is the detailed shape for the full recent-activity list.
// Category is set for quotes and claims, Subject for messages.
type ActivityItem struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	CustomerName string    `json:"customer_name"`
	Category     *string   `json:"category"`
	Subject      *string   `json:"subject"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Attention item priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Attention item type tags
const (
	AttentionTypeQuote          = "quote"
	AttentionTypeClaim          = "claim"
	AttentionTypeMessage        = "message"
	AttentionTypeMultipleQuotes = "multiple_quotes"
	AttentionTypeMultipleClaims = "multiple_claims"
	AttentionTypeAppointment    = "appointment"
)

// AttentionItem is a synthesized record surfaced to an admin indicating
// something needs human follow-up. It is never persisted. ID is nil for
// grouped items (multiple submissions per user).
type AttentionItem struct {
	Type         string `json:"type"`
	ID           *uint  `json:"id"`
	UserID       *uint  `json:"user_id"`
	CustomerName string `json:"customer_name"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Detail       string `json:"detail"`
	Age          string `json:"age"`
	Priority     string `json:"priority"`
	Icon         string `json:"icon"`
	Link         string `json:"link"`
}

// AttentionItemsResponse wraps the ranked attention list
type AttentionItemsResponse struct {
	Items []AttentionItem `json:"items"`
}
