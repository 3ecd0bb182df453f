package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/repository"
)

// AdminService aggregates submissions from every channel into the admin
// dashboard, the attention queue and the management views.
type AdminService struct {
	quoteRepo   repository.QuoteRepository
	claimRepo   repository.ClaimRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	auditRepo   repository.AuditLogRepository
	auditSvc    *AuditService
}

// NewAdminService creates a new admin service
func NewAdminService(
	quoteRepo repository.QuoteRepository,
	claimRepo repository.ClaimRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	auditSvc *AuditService,
) *AdminService {
	return &AdminService{
		quoteRepo:   quoteRepo,
		claimRepo:   claimRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		auditSvc:    auditSvc,
	}
}

// ===== Dashboard =====

// DashboardStats returns summary counters for every submission type plus
// the ten most recent activity entries.
func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	quoteStats, err := s.quoteRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote stats: %w", err)
	}
	claimStats, err := s.claimRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim stats: %w", err)
	}
	messageStats, err := s.messageRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load message stats: %w", err)
	}
	active, inactive, err := s.userRepo.CountByActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}

	recent, err := s.recentActivitySummary(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Quotes:   *quoteStats,
		Claims:   *claimStats,
		Messages: *messageStats,
		Users: models.UserStats{
			Active:   active,
			Inactive: inactive,
			Total:    active + inactive,
		},
		RecentActivity: recent,
	}, nil
}

// recentActivitySummary merges the newest quotes, claims and messages into
// a single feed of at most limit entries, newest first. Pending quotes read
// as "submitted" so the feed speaks in customer actions, not statuses.
func (s *AdminService) recentActivitySummary(ctx context.Context, limit int) ([]models.ActivitySummaryItem, error) {
	quotes, err := s.quoteRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent quotes: %w", err)
	}
	claims, err := s.claimRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent claims: %w", err)
	}
	messages, err := s.messageRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}

	activities := make([]models.ActivitySummaryItem, 0, len(quotes)+len(claims)+len(messages))
	for _, q := range quotes {
		action := q.Status
		if q.Status == models.QuoteStatusPending {
			action = "submitted"
		}
		activities = append(activities, models.ActivitySummaryItem{
			Type:     models.ActivityTypeQuote,
			Customer: q.User.FullName,
			Action:   action,
			Date:     q.CreatedAt,
		})
	}
	for _, c := range claims {
		activities = append(activities, models.ActivitySummaryItem{
			Type:     models.ActivityTypeClaim,
			Customer: c.User.FullName,
			Action:   c.Status,
			Date:     c.CreatedAt,
		})
	}
	for _, m := range messages {
		activities = append(activities, models.ActivitySummaryItem{
			Type:     models.ActivityTypeMessage,
			Customer: m.FullName,
			Action:   m.Status,
			Date:     m.CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// RecentActivity returns the detailed cross-type activity feed
func (s *AdminService) RecentActivity(ctx context.Context, limit int) ([]models.ActivityItem, error) {
	quotes, err := s.quoteRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent quotes: %w", err)
	}
	claims, err := s.claimRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent claims: %w", err)
	}
	messages, err := s.messageRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}

	activities := make([]models.ActivityItem, 0, len(quotes)+len(claims)+len(messages))
	for _, q := range quotes {
		category := q.Category
		activities = append(activities, models.ActivityItem{
			ID:           q.ID,
			Type:         models.ActivityTypeQuote,
			CustomerName: q.User.FullName,
			Category:     &category,
			Status:       q.Status,
			CreatedAt:    q.CreatedAt,
		})
	}
	for _, c := range claims {
		category := c.Category
		activities = append(activities, models.ActivityItem{
			ID:           c.ID,
			Type:         models.ActivityTypeClaim,
			CustomerName: c.User.FullName,
			Category:     &category,
			Status:       c.Status,
			CreatedAt:    c.CreatedAt,
		})
	}
	for _, m := range messages {
		subject := m.Subject
		activities = append(activities, models.ActivityItem{
			ID:           m.ID,
			Type:         models.ActivityTypeMessage,
			CustomerName: m.FullName,
			Subject:      &subject,
			Status:       m.Status,
			CreatedAt:    m.CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// ===== Attention queue =====

// overdueAfter is how long a submission may sit untouched before it
// surfaces in the attention queue.
const overdueAfter = 48 * time.Hour

// AttentionItems builds the ranked list of things an agent should act on:
// overdue quotes and claims, unread messages, customers with several open
// submissions, and appointments scheduled for today.
func (s *AdminService) AttentionItems(ctx context.Context) (*models.AttentionItemsResponse, error) {
	now := time.Now().UTC()
	items := []models.AttentionItem{}

	overdueQuotes, err := s.quoteRepo.FindOverdue(ctx, now.Add(-overdueAfter))
	if err != nil {
		return nil, fmt.Errorf("failed to load overdue quotes: %w", err)
	}
	for _, q := range overdueQuotes {
		ageDays := int(now.Sub(q.CreatedAt).Hours() / 24)
		id, userID := q.ID, q.UserID
		priority := models.PriorityMedium
		if ageDays > 5 {
			priority = models.PriorityHigh
		}
		items = append(items, models.AttentionItem{
			Type:         models.AttentionTypeQuote,
			ID:           &id,
			UserID:       &userID,
			CustomerName: q.User.FullName,
			Title:        fmt.Sprintf("Quote Request - %s", q.Category),
			Category:     "Overdue",
			Detail:       fmt.Sprintf("Status: %s", titleCase(q.Status)),
			Age:          formatAge(ageDays),
			Priority:     priority,
			Icon:         "⚠️",
			Link:         fmt.Sprintf("/admin/quotes/%d", q.ID),
		})
	}

	overdueClaims, err := s.claimRepo.FindOverdue(ctx, now.Add(-overdueAfter))
	if err != nil {
		return nil, fmt.Errorf("failed to load overdue claims: %w", err)
	}
	for _, c := range overdueClaims {
		ageDays := int(now.Sub(c.CreatedAt).Hours() / 24)
		id, userID := c.ID, c.UserID
		priority := models.PriorityMedium
		if ageDays > 5 {
			priority = models.PriorityHigh
		}
		items = append(items, models.AttentionItem{
			Type:         models.AttentionTypeClaim,
			ID:           &id,
			UserID:       &userID,
			CustomerName: c.User.FullName,
			Title:        fmt.Sprintf("Claim - %s", c.Category),
			Category:     "Overdue",
			Detail:       fmt.Sprintf("Incident: %s", c.IncidentDate.Format("01/02/2006")),
			Age:          formatAge(ageDays),
			Priority:     priority,
			Icon:         "⚠️",
			Link:         fmt.Sprintf("/admin/claims/%d", c.ID),
		})
	}

	// Unread messages surface at any age
	unread, err := s.messageRepo.FindUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load unread messages: %w", err)
	}
	for _, m := range unread {
		ageDays := int(now.Sub(m.CreatedAt).Hours() / 24)
		id := m.ID
		category := "Unread Message"
		priority := models.PriorityMedium
		if m.Status == models.MessageStatusNew {
			category = "New Message"
			priority = models.PriorityHigh
		}
		detail := m.Message
		if len(detail) > 50 {
			detail = detail[:50] + "..."
		}
		items = append(items, models.AttentionItem{
			Type:         models.AttentionTypeMessage,
			ID:           &id,
			UserID:       m.UserID,
			CustomerName: m.FullName,
			Title:        fmt.Sprintf("Message - %s", titleCase(m.Subject)),
			Category:     category,
			Detail:       detail,
			Age:          formatAge(ageDays),
			Priority:     priority,
			Icon:         "📧",
			Link:         fmt.Sprintf("/admin/messages/%d", m.ID),
		})
	}

	// Customers holding several open submissions, grouped per user
	quoteCounts, err := s.quoteRepo.ActiveCountsByUser(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote counts: %w", err)
	}
	for _, row := range quoteCounts {
		userID := row.UserID
		items = append(items, models.AttentionItem{
			Type:         models.AttentionTypeMultipleQuotes,
			UserID:       &userID,
			CustomerName: row.FullName,
			Title:        fmt.Sprintf("%d Pending Quotes", row.Count),
			Category:     "Multiple Submissions",
			Detail:       fmt.Sprintf("User has %d active quote requests", row.Count),
			Age:          "Multiple submissions",
			Priority:     models.PriorityMedium,
			Icon:         "📊",
			Link:         fmt.Sprintf("/admin/users/%d", row.UserID),
		})
	}

	claimCounts, err := s.claimRepo.ActiveCountsByUser(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim counts: %w", err)
	}
	for _, row := range claimCounts {
		userID := row.UserID
		items = append(items, models.AttentionItem{
			Type:         models.AttentionTypeMultipleClaims,
			UserID:       &userID,
			CustomerName: row.FullName,
			Title:        fmt.Sprintf("%d Submitted Claims", row.Count),
			Category:     "Multiple Submissions",
			Detail:       fmt.Sprintf("User has %d active claims", row.Count),
			Age:          "Multiple submissions",
			Priority:     models.PriorityMedium,
			Icon:         "📊",
			Link:         fmt.Sprintf("/admin/users/%d", row.UserID),
		})
	}

	// Appointments scheduled for today
	quoteAppts, err := s.quoteRepo.AppointmentsOn(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote appointments: %w", err)
	}
	for _, q := range quoteAppts {
		id, userID := q.ID, q.UserID
		items = append(items, models.AttentionItem{
			Type:         models.AttentionTypeAppointment,
			ID:           &id,
			UserID:       &userID,
			CustomerName: q.User.FullName,
			Title:        fmt.Sprintf("Appointment Today - %s", q.Category),
			Category:     "Appointment",
			Detail:       "Quote request appointment",
			Age:          "Today",
			Priority:     models.PriorityHigh,
			Icon:         "📅",
			Link:         fmt.Sprintf("/admin/quotes/%d", q.ID),
		})
	}

	claimAppts, err := s.claimRepo.AppointmentsOn(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim appointments: %w", err)
	}
	for _, c := range claimAppts {
		id, userID := c.ID, c.UserID
		items = append(items, models.AttentionItem{
			Type:         models.AttentionTypeAppointment,
			ID:           &id,
			UserID:       &userID,
			CustomerName: c.User.FullName,
			Title:        fmt.Sprintf("Appointment Today - %s", c.Category),
			Category:     "Appointment",
			Detail:       "Claim appointment",
			Age:          "Today",
			Priority:     models.PriorityHigh,
			Icon:         "📅",
			Link:         fmt.Sprintf("/admin/claims/%d", c.ID),
		})
	}

	messageAppts, err := s.messageRepo.AppointmentsOn(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load message appointments: %w", err)
	}
	for _, m := range messageAppts {
		id := m.ID
		items = append(items, models.AttentionItem{
			Type:         models.AttentionTypeAppointment,
			ID:           &id,
			UserID:       m.UserID,
			CustomerName: m.FullName,
			Title:        fmt.Sprintf("Appointment Today - %s", titleCase(m.Subject)),
			Category:     "Appointment",
			Detail:       "Contact message appointment",
			Age:          "Today",
			Priority:     models.PriorityHigh,
			Icon:         "📅",
			Link:         fmt.Sprintf("/admin/messages/%d", m.ID),
		})
	}

	sortAttentionItems(items)
	return &models.AttentionItemsResponse{Items: items}, nil
}

// sortAttentionItems orders by priority (high first), then oldest first
// within a priority. Labels without a leading day count ("Today",
// "Multiple submissions") keep their insertion order at the front of
// their priority band.
func sortAttentionItems(items []models.AttentionItem) {
	rank := func(priority string) int {
		switch priority {
		case models.PriorityHigh:
			return 0
		case models.PriorityMedium:
			return 1
		case models.PriorityLow:
			return 2
		}
		return 3
	}
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := rank(items[i].Priority), rank(items[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return ageSortKey(items[i].Age) < ageSortKey(items[j].Age)
	})
}

// ageSortKey maps "N days old" to -N so older items sort first; any label
// that does not start with a number maps to zero.
func ageSortKey(age string) int {
	fields := strings.Fields(age)
	if len(fields) == 0 {
		return 0
	}
	if n, err := strconv.Atoi(fields[0]); err == nil {
		return -n
	}
	return 0
}

// formatAge renders an age in days for the attention queue
func formatAge(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day old"
	default:
		return fmt.Sprintf("%d days old", days)
	}
}

// titleCase renders a snake_case value as words, "in_review" -> "In Review"
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ===== Quote management =====

// AdminQuoteUpdate carries the fields an admin may change on a quote
type AdminQuoteUpdate struct {
	Status      *string  `json:"status"`
	QuoteAmount *float64 `json:"quote_amount"`
	AgentNotes  *string  `json:"agent_notes"`
}

// ListQuotes returns the admin quote list with customer info joined in
func (s *AdminService) ListQuotes(ctx context.Context, query *repository.ListQuery) ([]models.AdminQuoteListItem, int64, error) {
	quotes, total, err := s.quoteRepo.List(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}

	items := make([]models.AdminQuoteListItem, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, models.AdminQuoteListItem{
			ID:            q.ID,
			CustomerName:  q.User.FullName,
			CustomerEmail: q.User.Email,
			Category:      q.Category,
			Subcategory:   q.Subcategory,
			Status:        q.Status,
			QuoteAmount:   q.QuoteAmount,
			CreatedAt:     q.CreatedAt,
			UpdatedAt:     q.UpdatedAt,
		})
	}
	return items, total, nil
}

// QuoteDetail returns the full admin view of one quote
func (s *AdminService) QuoteDetail(ctx context.Context, id uint) (*models.AdminQuoteDetail, error) {
	q, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "quote request", id)
	}

	return &models.AdminQuoteDetail{
		ID:            q.ID,
		UserID:        q.UserID,
		CustomerName:  q.User.FullName,
		CustomerEmail: q.User.Email,
		CustomerPhone: q.User.Phone,
		Category:      q.Category,
		Subcategory:   q.Subcategory,
		Status:        q.Status,
		QuoteData:     q.QuoteData,
		CustomerNotes: q.CustomerNotes,
		AgentNotes:    q.AgentNotes,
		QuoteAmount:   q.QuoteAmount,
		QuotedAt:      q.QuotedAt,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}, nil
}

// UpdateQuote applies an admin edit to a quote. Only fields that actually
// change are recorded; moving to "quoted" stamps quoted_at. A single audit
// entry covers the whole edit, and an edit that changes nothing writes none.
func (s *AdminService) UpdateQuote(ctx context.Context, id uint, update AdminQuoteUpdate, adminID uint, ip string) (*models.AdminQuoteDetail, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "quote request", id)
	}

	if update.Status != nil && !containsString(models.QuoteStatuses, *update.Status) {
		return nil, fmt.Errorf("%w: status must be one of: %s", ErrInvalidArgument, strings.Join(models.QuoteStatuses, ", "))
	}
	if update.QuoteAmount != nil && *update.QuoteAmount < 0 {
		return nil, fmt.Errorf("%w: quote amount must not be negative", ErrInvalidArgument)
	}
	if update.AgentNotes != nil && len(*update.AgentNotes) > 2000 {
		return nil, fmt.Errorf("%w: agent notes must be at most 2000 characters", ErrInvalidArgument)
	}

	changes := map[string]any{}

	if update.Status != nil && quote.Status != *update.Status {
		changes["status"] = map[string]any{"old": quote.Status, "new": *update.Status}
		quote.Status = *update.Status
		if *update.Status == models.QuoteStatusQuoted {
			now := time.Now().UTC()
			quote.QuotedAt = &now
		}
	}

	if update.QuoteAmount != nil && (quote.QuoteAmount == nil || *quote.QuoteAmount != *update.QuoteAmount) {
		var old any
		if quote.QuoteAmount != nil {
			old = *quote.QuoteAmount
		}
		changes["quote_amount"] = map[string]any{"old": old, "new": *update.QuoteAmount}
		quote.QuoteAmount = update.QuoteAmount
	}

	if update.AgentNotes != nil && (quote.AgentNotes == nil || *quote.AgentNotes != *update.AgentNotes) {
		changes["agent_notes"] = map[string]any{"updated": true}
		quote.AgentNotes = update.AgentNotes
	}

	if len(changes) > 0 {
		if err := s.quoteRepo.Update(ctx, quote); err != nil {
			return nil, fmt.Errorf("failed to update quote: %w", err)
		}
		s.logAdminChange(ctx, adminID, "QUOTE_UPDATED_BY_ADMIN", "QuoteRequest", quote.ID,
			"Admin updated quote request", changes, ip)
	}

	return s.QuoteDetail(ctx, id)
}

// ===== Claim management =====

// AdminClaimUpdate carries the fields an admin may change on a claim
type AdminClaimUpdate struct {
	Status               *string    `json:"status"`
	AdminNotes           *string    `json:"admin_notes"`
	AppointmentRequested *time.Time `json:"appointment_requested" time_format:"2006-01-02"`
}

// ListClaims returns the admin claim list with customer info joined in
func (s *AdminService) ListClaims(ctx context.Context, query *repository.ListQuery) ([]models.AdminClaimListItem, int64, error) {
	claims, total, err := s.claimRepo.List(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list claims: %w", err)
	}

	items := make([]models.AdminClaimListItem, 0, len(claims))
	for _, c := range claims {
		items = append(items, models.AdminClaimListItem{
			ID:            c.ID,
			CustomerName:  c.User.FullName,
			CustomerEmail: c.User.Email,
			Category:      c.Category,
			Subcategory:   c.Subcategory,
			IncidentDate:  c.IncidentDate,
			Status:        c.Status,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	return items, total, nil
}

// ClaimDetail returns the full admin view of one claim
func (s *AdminService) ClaimDetail(ctx context.Context, id uint) (*models.AdminClaimDetail, error) {
	c, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "claim", id)
	}

	return &models.AdminClaimDetail{
		ID:                   c.ID,
		UserID:               c.UserID,
		CustomerName:         c.User.FullName,
		CustomerEmail:        c.User.Email,
		CustomerPhone:        c.User.Phone,
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
		AdminNotes:           c.AdminNotes,
		ContactedAt:          c.ContactedAt,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}, nil
}

// UpdateClaim applies an admin edit to a claim. Moving to "contacted"
// stamps contacted_at.
func (s *AdminService) UpdateClaim(ctx context.Context, id uint, update AdminClaimUpdate, adminID uint, ip string) (*models.AdminClaimDetail, error) {
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "claim", id)
	}

	if update.Status != nil && !containsString(models.ClaimStatuses, *update.Status) {
		return nil, fmt.Errorf("%w: status must be one of: %s", ErrInvalidArgument, strings.Join(models.ClaimStatuses, ", "))
	}
	if update.AdminNotes != nil && len(*update.AdminNotes) > 2000 {
		return nil, fmt.Errorf("%w: admin notes must be at most 2000 characters", ErrInvalidArgument)
	}

	changes := map[string]any{}

	if update.Status != nil && claim.Status != *update.Status {
		changes["status"] = map[string]any{"old": claim.Status, "new": *update.Status}
		claim.Status = *update.Status
		if *update.Status == models.ClaimStatusContacted {
			now := time.Now().UTC()
			claim.ContactedAt = &now
		}
	}

	if update.AdminNotes != nil && (claim.AdminNotes == nil || *claim.AdminNotes != *update.AdminNotes) {
		changes["admin_notes"] = map[string]any{"updated": true}
		claim.AdminNotes = update.AdminNotes
	}

	if update.AppointmentRequested != nil &&
		(claim.AppointmentRequested == nil || !claim.AppointmentRequested.Equal(*update.AppointmentRequested)) {
		var old any
		if claim.AppointmentRequested != nil {
			old = claim.AppointmentRequested.Format("2006-01-02")
		}
		changes["appointment_requested"] = map[string]any{
			"old": old,
			"new": update.AppointmentRequested.Format("2006-01-02"),
		}
		claim.AppointmentRequested = update.AppointmentRequested
	}

	if len(changes) > 0 {
		if err := s.claimRepo.Update(ctx, claim); err != nil {
			return nil, fmt.Errorf("failed to update claim: %w", err)
		}
		s.logAdminChange(ctx, adminID, "CLAIM_UPDATED_BY_ADMIN", "Claim", claim.ID,
			"Admin updated claim", changes, ip)
	}

	return s.ClaimDetail(ctx, id)
}

// ===== Contact message management =====

// AdminMessageUpdate carries the fields an admin may change on a message
type AdminMessageUpdate struct {
	Status        *string `json:"status"`
	AdminResponse *string `json:"admin_response"`
}

// ListMessages returns the admin message list, including guest messages
// unless filtered out
func (s *AdminService) ListMessages(ctx context.Context, query *repository.ListQuery) ([]models.AdminMessageListItem, int64, error) {
	messages, total, err := s.messageRepo.List(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	items := make([]models.AdminMessageListItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, models.AdminMessageListItem{
			ID:            m.ID,
			SenderName:    m.FullName,
			SenderEmail:   m.Email,
			Subject:       m.Subject,
			Status:        m.Status,
			IsGuest:       m.IsGuest(),
			AdminResponse: m.AdminResponse,
			CreatedAt:     m.CreatedAt,
			UpdatedAt:     m.UpdatedAt,
		})
	}
	return items, total, nil
}

// MessageDetail returns the full admin view of one contact message
func (s *AdminService) MessageDetail(ctx context.Context, id uint) (*models.AdminMessageDetail, error) {
	m, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "message", id)
	}

	return &models.AdminMessageDetail{
		ID:            m.ID,
		UserID:        m.UserID,
		SenderName:    m.FullName,
		SenderEmail:   m.Email,
		SenderPhone:   m.Phone,
		Subject:       m.Subject,
		Message:       m.Message,
		Status:        m.Status,
		IsGuest:       m.IsGuest(),
		AdminResponse: m.AdminResponse,
		RespondedAt:   m.RespondedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// UpdateMessage applies an admin edit to a contact message. Writing an
// admin response stamps responded_at and advances a new or read message
// to "responded" automatically.
func (s *AdminService) UpdateMessage(ctx context.Context, id uint, update AdminMessageUpdate, adminID uint, ip string) (*models.AdminMessageDetail, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "message", id)
	}

	if update.Status != nil && !containsString(models.MessageStatuses, *update.Status) {
		return nil, fmt.Errorf("%w: status must be one of: %s", ErrInvalidArgument, strings.Join(models.MessageStatuses, ", "))
	}

	changes := map[string]any{}

	if update.Status != nil && message.Status != *update.Status {
		changes["status"] = map[string]any{"old": message.Status, "new": *update.Status}
		message.Status = *update.Status
	}

	if update.AdminResponse != nil && (message.AdminResponse == nil || *message.AdminResponse != *update.AdminResponse) {
		changes["admin_response"] = map[string]any{"updated": true}
		message.AdminResponse = update.AdminResponse
		now := time.Now().UTC()
		message.RespondedAt = &now
		if message.IsUnread() {
			message.Status = models.MessageStatusResponded
			changes["status"] = map[string]any{"auto_updated": models.MessageStatusResponded}
		}
	}

	if len(changes) > 0 {
		if err := s.messageRepo.Update(ctx, message); err != nil {
			return nil, fmt.Errorf("failed to update message: %w", err)
		}
		s.logAdminChange(ctx, adminID, "MESSAGE_UPDATED_BY_ADMIN", "ContactMessage", message.ID,
			"Admin updated message", changes, ip)
	}

	return s.MessageDetail(ctx, id)
}

// ===== User management =====

// AdminUserListParams are the query options for the admin user list
type AdminUserListParams struct {
	Status            string
	Search            string
	RecentlyContacted string
	SortBy            string
	SortOrder         string
	Page              int
	Limit             int
}

// AdminUserUpdate carries the fields an admin may change on a user
type AdminUserUpdate struct {
	IsActive *bool `json:"is_active"`
	IsAdmin  *bool `json:"is_admin"`
}

var recentlyContactedCutoffs = map[string]int{
	"2weeks":  14,
	"1month":  30,
	"3months": 90,
	"6months": 180,
	"1year":   365,
}

// ListUsers returns the admin user list annotated with submission counts
// and last login timestamps.
func (s *AdminService) ListUsers(ctx context.Context, params AdminUserListParams) ([]models.AdminUserListItem, int64, error) {
	query := repository.NewListQuery()
	if params.Page > 0 {
		query.Page = params.Page
	}
	// Limit 0 fetches everything, which the exports rely on.
	query.PerPage = params.Limit
	query.Search = params.Search

	switch params.Status {
	case "":
	case "active":
		query.Filters["is_active"] = "true"
	case "inactive":
		query.Filters["is_active"] = "false"
	default:
		return nil, 0, fmt.Errorf("%w: status must be active or inactive", ErrInvalidArgument)
	}

	switch params.SortBy {
	case "", "activity":
		query.SortBy = "last_activity"
	case "name":
		query.SortBy = "full_name"
	case "status":
		query.SortBy = "is_active"
	default:
		return nil, 0, fmt.Errorf("%w: sort_by must be activity, name or status", ErrInvalidArgument)
	}

	switch params.SortOrder {
	case "", "asc", "desc":
		query.SortDir = params.SortOrder
	default:
		return nil, 0, fmt.Errorf("%w: sort_order must be asc or desc", ErrInvalidArgument)
	}

	if params.RecentlyContacted != "" {
		days, ok := recentlyContactedCutoffs[params.RecentlyContacted]
		if !ok {
			return nil, 0, fmt.Errorf("%w: invalid recently_contacted value", ErrInvalidArgument)
		}
		cutoff := time.Now().AddDate(0, 0, -days)
		query.Filters["activity_since"] = cutoff.Format("2006-01-02 15:04:05")
	}

	users, total, err := s.userRepo.ListWithActivity(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	userIDs := make([]uint, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}
	lastLogins, err := s.auditRepo.LastLogins(ctx, userIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load last logins: %w", err)
	}

	items := make([]models.AdminUserListItem, 0, len(users))
	for _, u := range users {
		item := models.AdminUserListItem{
			ID:            u.ID,
			Username:      u.Username,
			FullName:      u.FullName,
			Email:         u.Email,
			Phone:         u.Phone,
			IsActive:      u.IsActive,
			IsAdmin:       u.IsAdmin,
			CreatedAt:     u.CreatedAt,
			QuotesCount:   u.QuotesCount,
			ClaimsCount:   u.ClaimsCount,
			MessagesCount: u.MessagesCount,
		}
		if t, ok := lastLogins[u.ID]; ok {
			lastLogin := t
			item.LastLoginAt = &lastLogin
		}
		items = append(items, item)
	}
	return items, total, nil
}

// UserDetail returns one user with submission counts and activity history,
// optionally restricted to a date range.
func (s *AdminService) UserDetail(ctx context.Context, id uint, dateRange string) (*models.AdminUserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "user", id)
	}

	since, err := activitySince(dateRange)
	if err != nil {
		return nil, err
	}

	counts, err := s.userRepo.CountsForUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user counts: %w", err)
	}

	activity, err := s.userActivity(ctx, id, since)
	if err != nil {
		return nil, err
	}

	lastLogins, err := s.auditRepo.LastLogins(ctx, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("failed to load last login: %w", err)
	}

	detail := &models.AdminUserDetail{
		ID:            user.ID,
		Username:      user.Username,
		FullName:      user.FullName,
		Email:         user.Email,
		Phone:         user.Phone,
		IsActive:      user.IsActive,
		IsAdmin:       user.IsAdmin,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		QuotesCount:   counts.Quotes,
		ClaimsCount:   counts.Claims,
		MessagesCount: counts.Messages,
		Activity:      *activity,
	}
	if t, ok := lastLogins[id]; ok {
		lastLogin := t
		detail.LastLoginAt = &lastLogin
	}
	return detail, nil
}

// activitySince translates a date range keyword into a lower bound.
// Empty and "all" mean no bound.
func activitySince(dateRange string) (*time.Time, error) {
	now := time.Now().UTC()
	var since time.Time
	switch dateRange {
	case "", "all":
		return nil, nil
	case "30days":
		since = now.AddDate(0, 0, -30)
	case "6months":
		since = now.AddDate(0, 0, -180)
	case "ytd":
		since = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	case "last_year":
		since = time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return nil, fmt.Errorf("%w: date_range must be 30days, 6months, ytd, last_year or all", ErrInvalidArgument)
	}
	return &since, nil
}

func (s *AdminService) userActivity(ctx context.Context, userID uint, since *time.Time) (*models.UserActivitySummary, error) {
	quotes, err := s.quoteRepo.FindByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load user quotes: %w", err)
	}
	claims, err := s.claimRepo.FindByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load user claims: %w", err)
	}
	messages, err := s.messageRepo.FindByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load user messages: %w", err)
	}

	summary := &models.UserActivitySummary{
		Quotes:   make([]models.UserActivityRecord, 0, len(quotes)),
		Claims:   make([]models.UserActivityRecord, 0, len(claims)),
		Messages: make([]models.UserActivityRecord, 0, len(messages)),
	}

	for _, q := range quotes {
		category := q.Category
		summary.Quotes = append(summary.Quotes, models.UserActivityRecord{
			Type:      models.ActivityTypeQuote,
			ID:        q.ID,
			Category:  &category,
			Status:    q.Status,
			CreatedAt: q.CreatedAt,
		})
	}
	for _, c := range claims {
		category := c.Category
		summary.Claims = append(summary.Claims, models.UserActivityRecord{
			Type:      models.ActivityTypeClaim,
			ID:        c.ID,
			Category:  &category,
			Status:    c.Status,
			CreatedAt: c.CreatedAt,
		})
	}
	for _, m := range messages {
		subject := m.Subject
		summary.Messages = append(summary.Messages, models.UserActivityRecord{
			Type:      models.ActivityTypeMessage,
			ID:        m.ID,
			Subject:   &subject,
			Status:    m.Status,
			CreatedAt: m.CreatedAt,
		})
	}

	merged := make([]models.UserActivityRecord, 0, len(quotes)+len(claims)+len(messages))
	merged = append(merged, summary.Quotes...)
	merged = append(merged, summary.Claims...)
	merged = append(merged, summary.Messages...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	summary.RecentActivity = merged

	return summary, nil
}

// UpdateUser applies an admin edit to an account. An admin cannot strip
// their own admin flag.
func (s *AdminService) UpdateUser(ctx context.Context, id uint, update AdminUserUpdate, adminID uint, ip string) (*models.AdminUserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "user", id)
	}

	if id == adminID && update.IsAdmin != nil && !*update.IsAdmin {
		return nil, fmt.Errorf("%w: cannot remove your own admin privileges", ErrPermissionDenied)
	}

	changes := map[string]any{}

	if update.IsActive != nil && user.IsActive != *update.IsActive {
		changes["is_active"] = map[string]any{"old": user.IsActive, "new": *update.IsActive}
		user.IsActive = *update.IsActive
	}

	if update.IsAdmin != nil && user.IsAdmin != *update.IsAdmin {
		changes["is_admin"] = map[string]any{"old": user.IsAdmin, "new": *update.IsAdmin}
		user.IsAdmin = *update.IsAdmin
	}

	if len(changes) > 0 {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		s.logAdminChange(ctx, adminID, "USER_UPDATED_BY_ADMIN", "User", user.ID,
			"Admin updated user", changes, ip)
	}

	return s.UserDetail(ctx, id, "")
}

// logAdminChange records a single audit entry describing an admin edit
func (s *AdminService) logAdminChange(ctx context.Context, adminID uint, action, entityType string, entityID uint, prefix string, changes map[string]any, ip string) {
	encoded, err := json.Marshal(changes)
	if err != nil {
		encoded = []byte("{}")
	}
	s.auditSvc.Log(ctx, &adminID, action, &entityType, &entityID,
		fmt.Sprintf("%s: %s", prefix, encoded), ip)
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
