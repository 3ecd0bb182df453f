package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/whittakeragency/agency-api/internal/models"
	"gorm.io/gorm"
)

// UserWithActivity is a user row joined with submission counts and the
// timestamp of the most recent quote, claim or message.
type UserWithActivity struct {
	models.User
	QuotesCount   int64     `json:"quotes_count"`
	ClaimsCount   int64     `json:"claims_count"`
	MessagesCount int64     `json:"messages_count"`
	LastActivity  time.Time `json:"last_activity"`
}

// UserCounts holds per-user submission totals for the detail view
type UserCounts struct {
	Quotes   int64
	Claims   int64
	Messages int64
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	ListWithActivity(ctx context.Context, query *ListQuery) ([]UserWithActivity, int64, error)
	CountsForUser(ctx context.Context, userID uint) (*UserCounts, error)
	CountByActive(ctx context.Context) (active int64, inactive int64, err error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKeyError(err, "uni_users_username") {
			return errors.New("username is already taken")
		}
		if isDuplicateKeyError(err, "uni_users_email") {
			return errors.New("email is already registered")
		}
		return err
	}
	return nil
}

func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
	}
	return false
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ListWithActivity returns every account, admins included, annotated with
// submission counts and the most recent activity timestamp. Users with no
// submissions fall back to the epoch so they sort last under last_activity
// ordering.
func (r *userRepository) ListWithActivity(ctx context.Context, query *ListQuery) ([]UserWithActivity, int64, error) {
	var users []UserWithActivity
	var total int64

	db := r.db.WithContext(ctx).Model(&models.User{}).
		Select(`users.*,
			COUNT(DISTINCT quote_requests.id) AS quotes_count,
			COUNT(DISTINCT claims.id) AS claims_count,
			COUNT(DISTINCT contact_messages.id) AS messages_count,
			GREATEST(
				COALESCE(MAX(quote_requests.created_at), '1970-01-01'),
				COALESCE(MAX(claims.created_at), '1970-01-01'),
				COALESCE(MAX(contact_messages.created_at), '1970-01-01')
			) AS last_activity`).
		Joins("LEFT JOIN quote_requests ON quote_requests.user_id = users.id").
		Joins("LEFT JOIN claims ON claims.user_id = users.id").
		Joins("LEFT JOIN contact_messages ON contact_messages.user_id = users.id").
		Group("users.id")

	if query.Filters["is_active"] != "" {
		db = db.Where("users.is_active = ?", query.Filters["is_active"] == "true")
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("users.full_name ILIKE ? OR users.email ILIKE ? OR users.username ILIKE ?",
			search, search, search)
	}
	if query.Filters["activity_since"] != "" {
		db = db.Having(`GREATEST(
			COALESCE(MAX(quote_requests.created_at), '1970-01-01'),
			COALESCE(MAX(claims.created_at), '1970-01-01'),
			COALESCE(MAX(contact_messages.created_at), '1970-01-01')
		) >= ?`, query.Filters["activity_since"])
	}

	// Counting a grouped query directly collapses the groups, so count over
	// the grouped result as a subquery instead.
	if err := r.db.WithContext(ctx).
		Table("(?) AS grouped", db.Session(&gorm.Session{})).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var order string
	switch query.SortBy {
	case "full_name":
		order = "users.full_name"
	case "is_active":
		order = "users.is_active"
	default:
		order = "last_activity"
	}
	if query.SortDir != "asc" {
		order += " DESC"
	}
	db = db.Order(order)

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&users).Error
	return users, total, err
}

func (r *userRepository) CountsForUser(ctx context.Context, userID uint) (*UserCounts, error) {
	var counts UserCounts
	if err := r.db.WithContext(ctx).Model(&models.QuoteRequest{}).
		Where("user_id = ?", userID).Count(&counts.Quotes).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Claim{}).
		Where("user_id = ?", userID).Count(&counts.Claims).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("user_id = ?", userID).Count(&counts.Messages).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *userRepository) CountByActive(ctx context.Context) (int64, int64, error) {
	var active, inactive int64
	db := r.db.WithContext(ctx).Model(&models.User{})
	if err := db.Session(&gorm.Session{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Session(&gorm.Session{}).Where("is_active = ?", false).Count(&inactive).Error; err != nil {
		return 0, 0, err
	}
	return active, inactive, nil
}
