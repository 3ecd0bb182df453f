package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/whittakeragency/agency-api/internal/config"
	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo repository.UserRepository
	auditSvc *AuditService
	emailSvc *EmailService
	worker   *jobs.Worker
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, auditSvc *AuditService, emailSvc *EmailService, worker *jobs.Worker, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		auditSvc: auditSvc,
		emailSvc: emailSvc,
		worker:   worker,
		cfg:      cfg,
	}
}

// RegisterInput carries the fields needed to create an account
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// Register creates a new customer account
func (s *AuthService) Register(ctx context.Context, input RegisterInput, ip string) (*models.User, error) {
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:       strings.ToLower(strings.TrimSpace(input.Username)),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:       input.FullName,
		HashedPassword: hashed,
		IsActive:       true,
	}
	if input.Phone != "" {
		user.Phone = &input.Phone
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, err.Error())
	}

	entity := "user"
	s.auditSvc.Log(ctx, &user.ID, models.ActionUserRegistered, &entity, &user.ID,
		fmt.Sprintf("user %s registered", user.Username), ip)

	welcome := *user
	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		return s.emailSvc.SendWelcome(jobCtx, &welcome)
	})

	return user, nil
}

// Login authenticates a user by username and returns a token
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, ErrInvalidPassword
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", ErrPermissionDenied)
	}

	if !VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidPassword
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	entity := "user"
	s.auditSvc.Log(ctx, &user.ID, models.ActionLogin, &entity, &user.ID,
		fmt.Sprintf("user %s logged in", user.Username), ip)

	return &LoginResult{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// generateJWT creates a new JWT token for a user
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
