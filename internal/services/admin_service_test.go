package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/repository"
	"gorm.io/gorm"
)

type mockQuoteRepo struct {
	repository.QuoteRepository
	mockCreate             func(ctx context.Context, quote *models.QuoteRequest) error
	mockFindByID           func(ctx context.Context, id uint) (*models.QuoteRequest, error)
	mockFindByUser         func(ctx context.Context, userID uint, since *time.Time) ([]models.QuoteRequest, error)
	mockUpdate             func(ctx context.Context, quote *models.QuoteRequest) error
	mockList               func(ctx context.Context, query *repository.ListQuery) ([]models.QuoteRequest, int64, error)
	mockRecent             func(ctx context.Context, limit int) ([]models.QuoteRequest, error)
	mockFindOverdue        func(ctx context.Context, cutoff time.Time) ([]models.QuoteRequest, error)
	mockActiveCountsByUser func(ctx context.Context, min int64) ([]repository.SubmissionCount, error)
	mockAppointmentsOn     func(ctx context.Context, day time.Time) ([]models.QuoteRequest, error)
	mockStats              func(ctx context.Context) (*models.QuoteStats, error)
}

func (m *mockQuoteRepo) Create(ctx context.Context, quote *models.QuoteRequest) error {
	return m.mockCreate(ctx, quote)
}

func (m *mockQuoteRepo) FindByID(ctx context.Context, id uint) (*models.QuoteRequest, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockQuoteRepo) FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.QuoteRequest, error) {
	if m.mockFindByUser != nil {
		return m.mockFindByUser(ctx, userID, since)
	}
	return nil, nil
}

func (m *mockQuoteRepo) Update(ctx context.Context, quote *models.QuoteRequest) error {
	return m.mockUpdate(ctx, quote)
}

func (m *mockQuoteRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.QuoteRequest, int64, error) {
	return m.mockList(ctx, query)
}

func (m *mockQuoteRepo) Recent(ctx context.Context, limit int) ([]models.QuoteRequest, error) {
	if m.mockRecent != nil {
		return m.mockRecent(ctx, limit)
	}
	return nil, nil
}

func (m *mockQuoteRepo) FindOverdue(ctx context.Context, cutoff time.Time) ([]models.QuoteRequest, error) {
	if m.mockFindOverdue != nil {
		return m.mockFindOverdue(ctx, cutoff)
	}
	return nil, nil
}

func (m *mockQuoteRepo) ActiveCountsByUser(ctx context.Context, min int64) ([]repository.SubmissionCount, error) {
	if m.mockActiveCountsByUser != nil {
		return m.mockActiveCountsByUser(ctx, min)
	}
	return nil, nil
}

func (m *mockQuoteRepo) AppointmentsOn(ctx context.Context, day time.Time) ([]models.QuoteRequest, error) {
	if m.mockAppointmentsOn != nil {
		return m.mockAppointmentsOn(ctx, day)
	}
	return nil, nil
}

func (m *mockQuoteRepo) Stats(ctx context.Context) (*models.QuoteStats, error) {
	return m.mockStats(ctx)
}

type mockClaimRepo struct {
	repository.ClaimRepository
	mockCreate             func(ctx context.Context, claim *models.Claim) error
	mockFindByID           func(ctx context.Context, id uint) (*models.Claim, error)
	mockFindByUser         func(ctx context.Context, userID uint, since *time.Time) ([]models.Claim, error)
	mockUpdate             func(ctx context.Context, claim *models.Claim) error
	mockDelete             func(ctx context.Context, id uint) error
	mockRecent             func(ctx context.Context, limit int) ([]models.Claim, error)
	mockFindOverdue        func(ctx context.Context, cutoff time.Time) ([]models.Claim, error)
	mockActiveCountsByUser func(ctx context.Context, min int64) ([]repository.SubmissionCount, error)
	mockAppointmentsOn     func(ctx context.Context, day time.Time) ([]models.Claim, error)
	mockStats              func(ctx context.Context) (*models.ClaimStats, error)
}

func (m *mockClaimRepo) Create(ctx context.Context, claim *models.Claim) error {
	return m.mockCreate(ctx, claim)
}

func (m *mockClaimRepo) FindByID(ctx context.Context, id uint) (*models.Claim, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockClaimRepo) FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.Claim, error) {
	if m.mockFindByUser != nil {
		return m.mockFindByUser(ctx, userID, since)
	}
	return nil, nil
}

func (m *mockClaimRepo) Update(ctx context.Context, claim *models.Claim) error {
	return m.mockUpdate(ctx, claim)
}

func (m *mockClaimRepo) Delete(ctx context.Context, id uint) error {
	return m.mockDelete(ctx, id)
}

func (m *mockClaimRepo) Recent(ctx context.Context, limit int) ([]models.Claim, error) {
	if m.mockRecent != nil {
		return m.mockRecent(ctx, limit)
	}
	return nil, nil
}

func (m *mockClaimRepo) FindOverdue(ctx context.Context, cutoff time.Time) ([]models.Claim, error) {
	if m.mockFindOverdue != nil {
		return m.mockFindOverdue(ctx, cutoff)
	}
	return nil, nil
}

func (m *mockClaimRepo) ActiveCountsByUser(ctx context.Context, min int64) ([]repository.SubmissionCount, error) {
	if m.mockActiveCountsByUser != nil {
		return m.mockActiveCountsByUser(ctx, min)
	}
	return nil, nil
}

func (m *mockClaimRepo) AppointmentsOn(ctx context.Context, day time.Time) ([]models.Claim, error) {
	if m.mockAppointmentsOn != nil {
		return m.mockAppointmentsOn(ctx, day)
	}
	return nil, nil
}

func (m *mockClaimRepo) Stats(ctx context.Context) (*models.ClaimStats, error) {
	return m.mockStats(ctx)
}

type mockMessageRepo struct {
	repository.MessageRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.ContactMessage, error)
	mockFindByUser     func(ctx context.Context, userID uint, since *time.Time) ([]models.ContactMessage, error)
	mockCreate         func(ctx context.Context, message *models.ContactMessage) error
	mockUpdate         func(ctx context.Context, message *models.ContactMessage) error
	mockRecent         func(ctx context.Context, limit int) ([]models.ContactMessage, error)
	mockFindUnread     func(ctx context.Context) ([]models.ContactMessage, error)
	mockAppointmentsOn func(ctx context.Context, day time.Time) ([]models.ContactMessage, error)
	mockStats          func(ctx context.Context) (*models.MessageStats, error)
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockMessageRepo) FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.ContactMessage, error) {
	if m.mockFindByUser != nil {
		return m.mockFindByUser(ctx, userID, since)
	}
	return nil, nil
}

func (m *mockMessageRepo) Create(ctx context.Context, message *models.ContactMessage) error {
	return m.mockCreate(ctx, message)
}

func (m *mockMessageRepo) Update(ctx context.Context, message *models.ContactMessage) error {
	return m.mockUpdate(ctx, message)
}

func (m *mockMessageRepo) Recent(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	if m.mockRecent != nil {
		return m.mockRecent(ctx, limit)
	}
	return nil, nil
}

func (m *mockMessageRepo) FindUnread(ctx context.Context) ([]models.ContactMessage, error) {
	if m.mockFindUnread != nil {
		return m.mockFindUnread(ctx)
	}
	return nil, nil
}

func (m *mockMessageRepo) AppointmentsOn(ctx context.Context, day time.Time) ([]models.ContactMessage, error) {
	if m.mockAppointmentsOn != nil {
		return m.mockAppointmentsOn(ctx, day)
	}
	return nil, nil
}

func (m *mockMessageRepo) Stats(ctx context.Context) (*models.MessageStats, error) {
	return m.mockStats(ctx)
}

type mockUserRepo struct {
	repository.UserRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.User, error)
	mockFindByEmail    func(ctx context.Context, email string) (*models.User, error)
	mockFindByUsername func(ctx context.Context, username string) (*models.User, error)
	mockCreate         func(ctx context.Context, user *models.User) error
	mockUpdate         func(ctx context.Context, user *models.User) error
	mockCountsForUser  func(ctx context.Context, userID uint) (*repository.UserCounts, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.mockFindByUsername(ctx, username)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.mockCreate(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.mockUpdate(ctx, user)
}

func (m *mockUserRepo) CountsForUser(ctx context.Context, userID uint) (*repository.UserCounts, error) {
	if m.mockCountsForUser != nil {
		return m.mockCountsForUser(ctx, userID)
	}
	return &repository.UserCounts{}, nil
}

type mockAuditRepo struct {
	repository.AuditLogRepository
	mockCreate     func(ctx context.Context, log *models.AuditLog) error
	mockLastLogins func(ctx context.Context, userIDs []uint) (map[uint]time.Time, error)
}

func (m *mockAuditRepo) Create(ctx context.Context, log *models.AuditLog) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, log)
	}
	return nil
}

func (m *mockAuditRepo) LastLogins(ctx context.Context, userIDs []uint) (map[uint]time.Time, error) {
	if m.mockLastLogins != nil {
		return m.mockLastLogins(ctx, userIDs)
	}
	return map[uint]time.Time{}, nil
}

func newTestAdminService(quotes *mockQuoteRepo, claims *mockClaimRepo, messages *mockMessageRepo, users *mockUserRepo, audits *mockAuditRepo) *AdminService {
	if quotes == nil {
		quotes = &mockQuoteRepo{}
	}
	if claims == nil {
		claims = &mockClaimRepo{}
	}
	if messages == nil {
		messages = &mockMessageRepo{}
	}
	if users == nil {
		users = &mockUserRepo{}
	}
	if audits == nil {
		audits = &mockAuditRepo{}
	}
	return NewAdminService(quotes, claims, messages, users, audits, NewAuditService(audits))
}

func strPtr(s string) *string { return &s }

func TestAdminService_AttentionItems_Ranking(t *testing.T) {
	now := time.Now().UTC()
	user := models.User{FullName: "Dana Fox"}

	quotes := &mockQuoteRepo{
		mockFindOverdue: func(ctx context.Context, cutoff time.Time) ([]models.QuoteRequest, error) {
			return []models.QuoteRequest{
				{ID: 10, UserID: 1, Category: "vehicle", Status: models.QuoteStatusPending, CreatedAt: now.Add(-7 * 24 * time.Hour), User: user},
				{ID: 11, UserID: 2, Category: "property", Status: models.QuoteStatusInReview, CreatedAt: now.Add(-3 * 24 * time.Hour), User: user},
			}, nil
		},
		mockActiveCountsByUser: func(ctx context.Context, min int64) ([]repository.SubmissionCount, error) {
			return []repository.SubmissionCount{{UserID: 5, FullName: "Sam Reed", Count: 3}}, nil
		},
	}
	messages := &mockMessageRepo{
		mockFindUnread: func(ctx context.Context) ([]models.ContactMessage, error) {
			return []models.ContactMessage{
				{ID: 20, FullName: "Kim Cho", Subject: "general", Message: strings.Repeat("x", 60), Status: models.MessageStatusNew, CreatedAt: now},
				{ID: 21, FullName: "Lee Park", Subject: "policy", Message: "short question", Status: models.MessageStatusRead, CreatedAt: now.Add(-2 * 24 * time.Hour)},
			}, nil
		},
		mockAppointmentsOn: func(ctx context.Context, day time.Time) ([]models.ContactMessage, error) {
			return []models.ContactMessage{
				{ID: 22, FullName: "Ada Ruiz", Subject: "quote", Status: models.MessageStatusRead, CreatedAt: now},
			}, nil
		},
	}

	service := newTestAdminService(quotes, nil, messages, nil, nil)
	resp, err := service.AttentionItems(context.Background())
	assert.NoError(t, err)
	assert.Len(t, resp.Items, 6)

	// High band first, oldest first; labels without a day count keep
	// insertion order.
	assert.Equal(t, "Quote Request - vehicle", resp.Items[0].Title)
	assert.Equal(t, models.PriorityHigh, resp.Items[0].Priority)
	assert.Equal(t, "7 days old", resp.Items[0].Age)
	assert.Equal(t, "⚠️", resp.Items[0].Icon)
	assert.Equal(t, "/admin/quotes/10", resp.Items[0].Link)

	assert.Equal(t, "Message - General", resp.Items[1].Title)
	assert.Equal(t, "New Message", resp.Items[1].Category)
	assert.Equal(t, strings.Repeat("x", 50)+"...", resp.Items[1].Detail)
	assert.Equal(t, "Today", resp.Items[1].Age)

	assert.Equal(t, models.AttentionTypeAppointment, resp.Items[2].Type)
	assert.Equal(t, "📅", resp.Items[2].Icon)

	// Medium band: 3-day quote before the 2-day read message, grouped
	// submissions last.
	assert.Equal(t, "Quote Request - property", resp.Items[3].Title)
	assert.Equal(t, models.PriorityMedium, resp.Items[3].Priority)
	assert.Equal(t, "Status: In Review", resp.Items[3].Detail)

	assert.Equal(t, "Unread Message", resp.Items[4].Category)

	assert.Equal(t, "3 Pending Quotes", resp.Items[5].Title)
	assert.Nil(t, resp.Items[5].ID)
	assert.Equal(t, "/admin/users/5", resp.Items[5].Link)
	assert.Equal(t, "Multiple submissions", resp.Items[5].Age)
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "Today", formatAge(0))
	assert.Equal(t, "1 day old", formatAge(1))
	assert.Equal(t, "12 days old", formatAge(12))
}

func TestAgeSortKey(t *testing.T) {
	assert.Equal(t, 0, ageSortKey("Today"))
	assert.Equal(t, 0, ageSortKey("Multiple submissions"))
	assert.Equal(t, -1, ageSortKey("1 day old"))
	assert.Equal(t, -9, ageSortKey("9 days old"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "In Review", titleCase("in_review"))
	assert.Equal(t, "General", titleCase("general"))
	assert.Equal(t, "Identity Protection", titleCase("identity_protection"))
}

func TestAdminService_UpdateQuote_NoChangeWritesNothing(t *testing.T) {
	updateCalled := false
	auditCalled := false
	quotes := &mockQuoteRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.QuoteRequest, error) {
			return &models.QuoteRequest{ID: id, Status: models.QuoteStatusPending}, nil
		},
		mockUpdate: func(ctx context.Context, quote *models.QuoteRequest) error {
			updateCalled = true
			return nil
		},
	}
	audits := &mockAuditRepo{
		mockCreate: func(ctx context.Context, log *models.AuditLog) error {
			auditCalled = true
			return nil
		},
	}

	service := newTestAdminService(quotes, nil, nil, nil, audits)
	detail, err := service.UpdateQuote(context.Background(), 1,
		AdminQuoteUpdate{Status: strPtr(models.QuoteStatusPending)}, 99, "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, models.QuoteStatusPending, detail.Status)
	assert.False(t, updateCalled)
	assert.False(t, auditCalled)
}

func TestAdminService_UpdateQuote_QuotedStampsTimestamp(t *testing.T) {
	quote := &models.QuoteRequest{ID: 1, Status: models.QuoteStatusInReview}
	var logged *models.AuditLog
	quotes := &mockQuoteRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.QuoteRequest, error) {
			return quote, nil
		},
		mockUpdate: func(ctx context.Context, q *models.QuoteRequest) error {
			return nil
		},
	}
	audits := &mockAuditRepo{
		mockCreate: func(ctx context.Context, log *models.AuditLog) error {
			logged = log
			return nil
		},
	}

	service := newTestAdminService(quotes, nil, nil, nil, audits)
	amount := 420.50
	detail, err := service.UpdateQuote(context.Background(), 1,
		AdminQuoteUpdate{Status: strPtr(models.QuoteStatusQuoted), QuoteAmount: &amount}, 99, "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, models.QuoteStatusQuoted, detail.Status)
	assert.NotNil(t, detail.QuotedAt)
	assert.NotNil(t, logged)
	assert.Equal(t, "QUOTE_UPDATED_BY_ADMIN", logged.Action)
	assert.Contains(t, logged.Details, "status")
	assert.Contains(t, logged.Details, "quote_amount")
}

func TestAdminService_UpdateQuote_InvalidStatus(t *testing.T) {
	quotes := &mockQuoteRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.QuoteRequest, error) {
			return &models.QuoteRequest{ID: id, Status: models.QuoteStatusPending}, nil
		},
	}

	service := newTestAdminService(quotes, nil, nil, nil, nil)
	_, err := service.UpdateQuote(context.Background(), 1,
		AdminQuoteUpdate{Status: strPtr("approved")}, 99, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAdminService_UpdateQuote_NegativeAmountRejected(t *testing.T) {
	updateCalled := false
	quotes := &mockQuoteRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.QuoteRequest, error) {
			return &models.QuoteRequest{ID: id, Status: models.QuoteStatusPending}, nil
		},
		mockUpdate: func(ctx context.Context, quote *models.QuoteRequest) error {
			updateCalled = true
			return nil
		},
	}

	service := newTestAdminService(quotes, nil, nil, nil, nil)
	amount := -500.0
	_, err := service.UpdateQuote(context.Background(), 1,
		AdminQuoteUpdate{QuoteAmount: &amount}, 99, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, updateCalled)
}

func TestAdminService_UpdateQuote_AgentNotesTooLong(t *testing.T) {
	quotes := &mockQuoteRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.QuoteRequest, error) {
			return &models.QuoteRequest{ID: id, Status: models.QuoteStatusPending}, nil
		},
	}

	service := newTestAdminService(quotes, nil, nil, nil, nil)
	notes := strings.Repeat("n", 2001)
	_, err := service.UpdateQuote(context.Background(), 1,
		AdminQuoteUpdate{AgentNotes: &notes}, 99, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAdminService_UpdateClaim_AdminNotesTooLong(t *testing.T) {
	claims := &mockClaimRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Claim, error) {
			return &models.Claim{ID: id, Status: models.ClaimStatusSubmitted}, nil
		},
	}

	service := newTestAdminService(nil, claims, nil, nil, nil)
	notes := strings.Repeat("n", 2001)
	_, err := service.UpdateClaim(context.Background(), 1,
		AdminClaimUpdate{AdminNotes: &notes}, 99, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAdminService_QuoteDetail_StorageFailurePropagates(t *testing.T) {
	quotes := &mockQuoteRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.QuoteRequest, error) {
			return nil, errors.New("pq: connection refused")
		},
	}

	service := newTestAdminService(quotes, nil, nil, nil, nil)
	_, err := service.QuoteDetail(context.Background(), 1)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAdminService_QuoteDetail_MissingRowReadsAsNotFound(t *testing.T) {
	quotes := &mockQuoteRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.QuoteRequest, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	service := newTestAdminService(quotes, nil, nil, nil, nil)
	_, err := service.QuoteDetail(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_UpdateMessage_ResponseAutoAdvances(t *testing.T) {
	message := &models.ContactMessage{ID: 7, FullName: "Kim Cho", Subject: "general", Status: models.MessageStatusNew}
	var logged *models.AuditLog
	auditWrites := 0
	messages := &mockMessageRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.ContactMessage, error) {
			return message, nil
		},
		mockUpdate: func(ctx context.Context, m *models.ContactMessage) error {
			return nil
		},
	}
	audits := &mockAuditRepo{
		mockCreate: func(ctx context.Context, log *models.AuditLog) error {
			logged = log
			auditWrites++
			return nil
		},
	}

	service := newTestAdminService(nil, nil, messages, nil, audits)
	detail, err := service.UpdateMessage(context.Background(), 7,
		AdminMessageUpdate{AdminResponse: strPtr("We'll call you tomorrow.")}, 99, "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, models.MessageStatusResponded, detail.Status)
	assert.NotNil(t, detail.RespondedAt)
	assert.Contains(t, logged.Details, "auto_updated")
	assert.Equal(t, 1, auditWrites)

	// Re-sending the same response changes nothing and writes no audit entry
	detail, err = service.UpdateMessage(context.Background(), 7,
		AdminMessageUpdate{AdminResponse: strPtr("We'll call you tomorrow.")}, 99, "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, models.MessageStatusResponded, detail.Status)
	assert.Equal(t, 1, auditWrites)
}

func TestAdminService_UpdateUser_SelfDemotion(t *testing.T) {
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsAdmin: true, IsActive: true}, nil
		},
	}

	service := newTestAdminService(nil, nil, nil, users, nil)
	isAdmin := false
	_, err := service.UpdateUser(context.Background(), 99, AdminUserUpdate{IsAdmin: &isAdmin}, 99, "10.0.0.1")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAdminService_ListUsers_InvalidParams(t *testing.T) {
	service := newTestAdminService(nil, nil, nil, nil, nil)

	_, _, err := service.ListUsers(context.Background(), AdminUserListParams{Status: "banned"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = service.ListUsers(context.Background(), AdminUserListParams{SortBy: "email"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = service.ListUsers(context.Background(), AdminUserListParams{SortOrder: "up"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = service.ListUsers(context.Background(), AdminUserListParams{RecentlyContacted: "5weeks"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestActivitySince(t *testing.T) {
	since, err := activitySince("")
	assert.NoError(t, err)
	assert.Nil(t, since)

	since, err = activitySince("all")
	assert.NoError(t, err)
	assert.Nil(t, since)

	since, err = activitySince("30days")
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), *since, time.Minute)

	since, err = activitySince("ytd")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(time.Now().UTC().Year(), 1, 1, 0, 0, 0, 0, time.UTC), *since)

	since, err = activitySince("last_year")
	assert.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Year()-1, since.Year())

	_, err = activitySince("forever")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAdminService_RecentActivity_MergesNewestFirst(t *testing.T) {
	now := time.Now().UTC()
	user := models.User{FullName: "Dana Fox"}

	quotes := &mockQuoteRepo{
		mockRecent: func(ctx context.Context, limit int) ([]models.QuoteRequest, error) {
			return []models.QuoteRequest{
				{ID: 1, Category: "vehicle", Status: models.QuoteStatusPending, CreatedAt: now.Add(-1 * time.Hour), User: user},
			}, nil
		},
	}
	claims := &mockClaimRepo{
		mockRecent: func(ctx context.Context, limit int) ([]models.Claim, error) {
			return []models.Claim{
				{ID: 2, Category: "property", Status: models.ClaimStatusSubmitted, CreatedAt: now.Add(-3 * time.Hour), User: user},
			}, nil
		},
	}
	messages := &mockMessageRepo{
		mockRecent: func(ctx context.Context, limit int) ([]models.ContactMessage, error) {
			return []models.ContactMessage{
				{ID: 3, FullName: "Kim Cho", Subject: "general", Status: models.MessageStatusNew, CreatedAt: now.Add(-2 * time.Hour)},
				{ID: 4, FullName: "Lee Park", Subject: "policy", Status: models.MessageStatusRead, CreatedAt: now.Add(-4 * time.Hour)},
			}, nil
		},
	}

	service := newTestAdminService(quotes, claims, messages, nil, nil)
	activity, err := service.RecentActivity(context.Background(), 3)
	assert.NoError(t, err)
	assert.Len(t, activity, 3)
	assert.Equal(t, uint(1), activity[0].ID)
	assert.Equal(t, uint(3), activity[1].ID)
	assert.Equal(t, uint(2), activity[2].ID)
}

func TestAdminService_DashboardStats_PendingReadsAsSubmitted(t *testing.T) {
	now := time.Now().UTC()
	quotes := &mockQuoteRepo{
		mockStats: func(ctx context.Context) (*models.QuoteStats, error) {
			return &models.QuoteStats{Pending: 2, Total: 2}, nil
		},
		mockRecent: func(ctx context.Context, limit int) ([]models.QuoteRequest, error) {
			return []models.QuoteRequest{
				{ID: 1, Status: models.QuoteStatusPending, CreatedAt: now, User: models.User{FullName: "Dana Fox"}},
			}, nil
		},
	}
	claims := &mockClaimRepo{
		mockStats: func(ctx context.Context) (*models.ClaimStats, error) {
			return &models.ClaimStats{}, nil
		},
	}
	messages := &mockMessageRepo{
		mockStats: func(ctx context.Context) (*models.MessageStats, error) {
			return &models.MessageStats{}, nil
		},
	}
	service := &AdminService{
		quoteRepo:   quotes,
		claimRepo:   claims,
		messageRepo: messages,
		userRepo:    &stubCountUserRepo{active: 4, inactive: 1},
		auditRepo:   &mockAuditRepo{},
		auditSvc:    NewAuditService(&mockAuditRepo{}),
	}

	stats, err := service.DashboardStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(5), stats.Users.Total)
	assert.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, "submitted", stats.RecentActivity[0].Action)
}

type stubCountUserRepo struct {
	repository.UserRepository
	active   int64
	inactive int64
}

func (s *stubCountUserRepo) CountByActive(ctx context.Context) (int64, int64, error) {
	return s.active, s.inactive, nil
}
