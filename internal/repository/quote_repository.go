package repository

import (
	"context"
	"time"

	"github.com/whittakeragency/agency-api/internal/models"
	"gorm.io/gorm"
)

// QuoteRepository defines the interface for quote request data access
type QuoteRepository interface {
	Create(ctx context.Context, quote *models.QuoteRequest) error
	FindByID(ctx context.Context, id uint) (*models.QuoteRequest, error)
	FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.QuoteRequest, error)
	Update(ctx context.Context, quote *models.QuoteRequest) error
	List(ctx context.Context, query *ListQuery) ([]models.QuoteRequest, int64, error)
	Recent(ctx context.Context, limit int) ([]models.QuoteRequest, error)
	FindOverdue(ctx context.Context, cutoff time.Time) ([]models.QuoteRequest, error)
	ActiveCountsByUser(ctx context.Context, min int64) ([]SubmissionCount, error)
	AppointmentsOn(ctx context.Context, day time.Time) ([]models.QuoteRequest, error)
	Stats(ctx context.Context) (*models.QuoteStats, error)
}

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *models.QuoteRequest) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepository) FindByID(ctx context.Context, id uint) (*models.QuoteRequest, error) {
	var quote models.QuoteRequest
	err := r.db.WithContext(ctx).Preload("User").First(&quote, id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.QuoteRequest, error) {
	var quotes []models.QuoteRequest
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if since != nil {
		db = db.Where("created_at >= ?", *since)
	}
	err := db.Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepository) Update(ctx context.Context, quote *models.QuoteRequest) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *quoteRepository) List(ctx context.Context, query *ListQuery) ([]models.QuoteRequest, int64, error) {
	var quotes []models.QuoteRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&models.QuoteRequest{}).
		Joins("JOIN users ON users.id = quote_requests.user_id")

	if query.Filters["category"] != "" {
		db = db.Where("quote_requests.category = ?", query.Filters["category"])
	}
	if query.Filters["subcategory"] != "" {
		db = db.Where("quote_requests.subcategory = ?", query.Filters["subcategory"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("quote_requests.status = ?", query.Filters["status"])
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("users.full_name ILIKE ? OR users.email ILIKE ?", search, search)
	}

	db.Count(&total)

	db = db.Preload("User").Order("quote_requests.created_at DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}
	err := db.Find(&quotes).Error
	return quotes, total, err
}

func (r *quoteRepository) Recent(ctx context.Context, limit int) ([]models.QuoteRequest, error) {
	var quotes []models.QuoteRequest
	err := r.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&quotes).Error
	return quotes, err
}

// FindOverdue returns open quotes created strictly before cutoff
func (r *quoteRepository) FindOverdue(ctx context.Context, cutoff time.Time) ([]models.QuoteRequest, error) {
	var quotes []models.QuoteRequest
	err := r.db.WithContext(ctx).Preload("User").
		Where("status IN ?", []string{models.QuoteStatusPending, models.QuoteStatusInReview}).
		Where("created_at < ?", cutoff).
		Find(&quotes).Error
	return quotes, err
}

// ActiveCountsByUser groups open quotes by owner and returns users holding
// at least min of them
func (r *quoteRepository) ActiveCountsByUser(ctx context.Context, min int64) ([]SubmissionCount, error) {
	var counts []SubmissionCount
	err := r.db.WithContext(ctx).Table("quote_requests").
		Select("quote_requests.user_id AS user_id, users.full_name AS full_name, COUNT(quote_requests.id) AS count").
		Joins("JOIN users ON users.id = quote_requests.user_id").
		Where("quote_requests.status IN ?", []string{models.QuoteStatusPending, models.QuoteStatusInReview}).
		Group("quote_requests.user_id, users.full_name").
		Having("COUNT(quote_requests.id) >= ?", min).
		Scan(&counts).Error
	return counts, err
}

func (r *quoteRepository) AppointmentsOn(ctx context.Context, day time.Time) ([]models.QuoteRequest, error) {
	var quotes []models.QuoteRequest
	err := r.db.WithContext(ctx).Preload("User").
		Where("appointment_date = ?", day.Format("2006-01-02")).
		Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepository) Stats(ctx context.Context) (*models.QuoteStats, error) {
	rows, total, err := countByStatus(r.db.WithContext(ctx), "quote_requests")
	if err != nil {
		return nil, err
	}
	return &models.QuoteStats{
		Pending:  rows[models.QuoteStatusPending],
		InReview: rows[models.QuoteStatusInReview],
		Quoted:   rows[models.QuoteStatusQuoted],
		Total:    total,
	}, nil
}

// countByStatus returns per-status row counts and the overall total for a table
func countByStatus(db *gorm.DB, table string) (map[string]int64, int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := db.Table(table).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[string]int64, len(rows))
	var total int64
	for _, row := range rows {
		counts[row.Status] = row.Count
		total += row.Count
	}
	return counts, total, nil
}
