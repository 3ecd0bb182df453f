package repository

import (
	"context"
	"time"

	"github.com/whittakeragency/agency-api/internal/models"
	"gorm.io/gorm"
)

// ClaimRepository defines the interface for claim data access
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	FindByID(ctx context.Context, id uint) (*models.Claim, error)
	FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.Claim, error)
	Update(ctx context.Context, claim *models.Claim) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Claim, int64, error)
	Recent(ctx context.Context, limit int) ([]models.Claim, error)
	FindOverdue(ctx context.Context, cutoff time.Time) ([]models.Claim, error)
	ActiveCountsByUser(ctx context.Context, min int64) ([]SubmissionCount, error)
	AppointmentsOn(ctx context.Context, day time.Time) ([]models.Claim, error)
	Stats(ctx context.Context) (*models.ClaimStats, error)
}

type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *claimRepository) FindByID(ctx context.Context, id uint) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.WithContext(ctx).Preload("User").First(&claim, id).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.Claim, error) {
	var claims []models.Claim
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if since != nil {
		db = db.Where("created_at >= ?", *since)
	}
	err := db.Order("created_at DESC").Find(&claims).Error
	return claims, err
}

func (r *claimRepository) Update(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}

func (r *claimRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Claim{}, id).Error
}

func (r *claimRepository) List(ctx context.Context, query *ListQuery) ([]models.Claim, int64, error) {
	var claims []models.Claim
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Claim{}).
		Joins("JOIN users ON users.id = claims.user_id")

	if query.Filters["category"] != "" {
		db = db.Where("claims.category = ?", query.Filters["category"])
	}
	if query.Filters["subcategory"] != "" {
		db = db.Where("claims.subcategory = ?", query.Filters["subcategory"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("claims.status = ?", query.Filters["status"])
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("users.full_name ILIKE ? OR users.email ILIKE ?", search, search)
	}

	db.Count(&total)

	db = db.Preload("User").Order("claims.created_at DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}
	err := db.Find(&claims).Error
	return claims, total, err
}

func (r *claimRepository) Recent(ctx context.Context, limit int) ([]models.Claim, error) {
	var claims []models.Claim
	err := r.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&claims).Error
	return claims, err
}

// FindOverdue returns submitted claims created strictly before cutoff
func (r *claimRepository) FindOverdue(ctx context.Context, cutoff time.Time) ([]models.Claim, error) {
	var claims []models.Claim
	err := r.db.WithContext(ctx).Preload("User").
		Where("status = ?", models.ClaimStatusSubmitted).
		Where("created_at < ?", cutoff).
		Find(&claims).Error
	return claims, err
}

// ActiveCountsByUser groups submitted claims by owner and returns users
// holding at least min of them
func (r *claimRepository) ActiveCountsByUser(ctx context.Context, min int64) ([]SubmissionCount, error) {
	var counts []SubmissionCount
	err := r.db.WithContext(ctx).Table("claims").
		Select("claims.user_id AS user_id, users.full_name AS full_name, COUNT(claims.id) AS count").
		Joins("JOIN users ON users.id = claims.user_id").
		Where("claims.status = ?", models.ClaimStatusSubmitted).
		Group("claims.user_id, users.full_name").
		Having("COUNT(claims.id) >= ?", min).
		Scan(&counts).Error
	return counts, err
}

func (r *claimRepository) AppointmentsOn(ctx context.Context, day time.Time) ([]models.Claim, error) {
	var claims []models.Claim
	err := r.db.WithContext(ctx).Preload("User").
		Where("appointment_requested = ?", day.Format("2006-01-02")).
		Find(&claims).Error
	return claims, err
}

func (r *claimRepository) Stats(ctx context.Context) (*models.ClaimStats, error) {
	rows, total, err := countByStatus(r.db.WithContext(ctx), "claims")
	if err != nil {
		return nil, err
	}
	return &models.ClaimStats{
		Submitted: rows[models.ClaimStatusSubmitted],
		Contacted: rows[models.ClaimStatusContacted],
		Closed:    rows[models.ClaimStatusClosed],
		Total:     total,
	}, nil
}
