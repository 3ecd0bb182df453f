package repository

import (
	"context"
	"time"

	"github.com/whittakeragency/agency-api/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for contact message data access
type MessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	FindByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.ContactMessage, error)
	Update(ctx context.Context, message *models.ContactMessage) error
	List(ctx context.Context, query *ListQuery) ([]models.ContactMessage, int64, error)
	Recent(ctx context.Context, limit int) ([]models.ContactMessage, error)
	FindUnread(ctx context.Context) ([]models.ContactMessage, error)
	AppointmentsOn(ctx context.Context, day time.Time) ([]models.ContactMessage, error)
	Stats(ctx context.Context) (*models.MessageStats, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new contact message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.WithContext(ctx).First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindByUser(ctx context.Context, userID uint, since *time.Time) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if since != nil {
		db = db.Where("created_at >= ?", *since)
	}
	err := db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *messageRepository) Update(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *messageRepository) List(ctx context.Context, query *ListQuery) ([]models.ContactMessage, int64, error) {
	var messages []models.ContactMessage
	var total int64

	db := r.db.WithContext(ctx).Model(&models.ContactMessage{})

	if query.Filters["subject"] != "" {
		db = db.Where("subject = ?", query.Filters["subject"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	if query.Filters["include_guest"] == "false" {
		db = db.Where("user_id IS NOT NULL")
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("full_name ILIKE ? OR email ILIKE ?", search, search)
	}

	db.Count(&total)

	db = db.Order("created_at DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}
	err := db.Find(&messages).Error
	return messages, total, err
}

func (r *messageRepository) Recent(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// FindUnread returns messages no admin has responded to or closed yet
func (r *messageRepository) FindUnread(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{models.MessageStatusNew, models.MessageStatusRead}).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) AppointmentsOn(ctx context.Context, day time.Time) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).
		Where("appointment_date = ?", day.Format("2006-01-02")).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) Stats(ctx context.Context) (*models.MessageStats, error) {
	rows, total, err := countByStatus(r.db.WithContext(ctx), "contact_messages")
	if err != nil {
		return nil, err
	}
	return &models.MessageStats{
		New:       rows[models.MessageStatusNew],
		Read:      rows[models.MessageStatusRead],
		Responded: rows[models.MessageStatusResponded],
		Closed:    rows[models.MessageStatusClosed],
		Total:     total,
	}, nil
}
