package repository

import (
	"context"

	"github.com/whittakeragency/agency-api/internal/models"
	"gorm.io/gorm"
)

// SystemLogRepository defines the interface for system log data access
type SystemLogRepository interface {
	Create(ctx context.Context, log *models.SystemLog) error
	List(ctx context.Context, query *ListQuery) ([]models.SystemLog, int64, error)
}

type systemLogRepository struct {
	db *gorm.DB
}

// NewSystemLogRepository creates a new system log repository
func NewSystemLogRepository(db *gorm.DB) SystemLogRepository {
	return &systemLogRepository{db: db}
}

func (r *systemLogRepository) Create(ctx context.Context, log *models.SystemLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *systemLogRepository) List(ctx context.Context, query *ListQuery) ([]models.SystemLog, int64, error) {
	var logs []models.SystemLog
	var total int64

	db := r.db.WithContext(ctx).Model(&models.SystemLog{})

	if query.Filters["level"] != "" {
		db = db.Where("level = ?", query.Filters["level"])
	}

	db.Count(&total)

	err := db.Order("created_at DESC").
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&logs).Error
	return logs, total, err
}
