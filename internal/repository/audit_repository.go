package repository

import (
	"context"
	"time"

	"github.com/whittakeragency/agency-api/internal/models"
	"gorm.io/gorm"
)

// AuditLogRepository defines the interface for audit log data access
type AuditLogRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error)
	LastLogins(ctx context.Context, userIDs []uint) (map[uint]time.Time, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditRepository) List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if query.Filters["action"] != "" {
		db = db.Where("action = ?", query.Filters["action"])
	}
	if query.Filters["entity_type"] != "" {
		db = db.Where("entity_type = ?", query.Filters["entity_type"])
	}
	if query.Filters["user_id"] != "" {
		db = db.Where("user_id = ?", query.Filters["user_id"])
	}

	db.Count(&total)

	err := db.Preload("User").
		Order("created_at DESC").
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&logs).Error
	return logs, total, err
}

// LastLogins returns the most recent login timestamp per user id
func (r *auditRepository) LastLogins(ctx context.Context, userIDs []uint) (map[uint]time.Time, error) {
	if len(userIDs) == 0 {
		return map[uint]time.Time{}, nil
	}

	type row struct {
		UserID    uint
		LastLogin time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.AuditLog{}).
		Select("user_id, MAX(created_at) AS last_login").
		Where("action = ? AND user_id IN ?", models.ActionLogin, userIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	logins := make(map[uint]time.Time, len(rows))
	for _, r := range rows {
		logins[r.UserID] = r.LastLogin
	}
	return logins, nil
}
