package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/whittakeragency/agency-api/internal/config"
	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/pkg/logger"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 24,
	}
}

func newTestAuthService(t *testing.T, users *mockUserRepo, audits *mockAuditRepo) *AuthService {
	t.Helper()
	logger.Setup("test")
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)
	return NewAuthService(users, NewAuditService(audits), NewEmailService(&config.Config{}), worker, testAuthConfig())
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	hashed, _ := HashPassword("password123")
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: username, HashedPassword: hashed, IsActive: false}, nil
		},
	}
	service := newTestAuthService(t, users, &mockAuditRepo{})

	result, err := service.Login(context.Background(), "dana", "password123", "10.0.0.1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hashed, _ := HashPassword("password123")
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: username, HashedPassword: hashed, IsActive: true}, nil
		},
	}
	service := newTestAuthService(t, users, &mockAuditRepo{})

	result, err := service.Login(context.Background(), "dana", "wrong", "10.0.0.1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthService_Login_UnknownUserReadsAsBadCredentials(t *testing.T) {
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return nil, errors.New("record not found")
		},
	}
	service := newTestAuthService(t, users, &mockAuditRepo{})

	result, err := service.Login(context.Background(), "ghost", "password123", "10.0.0.1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthService_Login_Success(t *testing.T) {
	hashed, _ := HashPassword("password123")
	var logged *models.AuditLog
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 3, Username: username, Email: "dana@example.com", HashedPassword: hashed, IsActive: true}, nil
		},
	}
	audits := &mockAuditRepo{
		mockCreate: func(ctx context.Context, log *models.AuditLog) error {
			logged = log
			return nil
		},
	}
	service := newTestAuthService(t, users, audits)

	result, err := service.Login(context.Background(), "  Dana ", "password123", "10.0.0.1")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, uint(3), result.User.ID)
	assert.NotNil(t, logged)
	assert.Equal(t, models.ActionLogin, logged.Action)
	assert.Equal(t, "10.0.0.1", logged.IPAddress)
}

func TestAuthService_Register_NormalizesIdentity(t *testing.T) {
	var created *models.User
	users := &mockUserRepo{
		mockCreate: func(ctx context.Context, user *models.User) error {
			user.ID = 7
			created = user
			return nil
		},
	}
	service := newTestAuthService(t, users, &mockAuditRepo{})

	user, err := service.Register(context.Background(), RegisterInput{
		Username: " DanaFox ",
		Email:    "Dana@Example.com",
		Password: "password123",
		FullName: "Dana Fox",
	}, "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, "danafox", user.Username)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.True(t, VerifyPassword("password123", created.HashedPassword))
}

func TestAuthService_Register_QueuesWelcomeEmail(t *testing.T) {
	logger.Setup("test")
	users := &mockUserRepo{
		mockCreate: func(ctx context.Context, user *models.User) error {
			user.ID = 7
			return nil
		},
	}
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()
	service := NewAuthService(users, NewAuditService(&mockAuditRepo{}),
		NewEmailService(&config.Config{}), worker, testAuthConfig())

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "danafox",
		Email:    "dana@example.com",
		Password: "password123",
		FullName: "Dana Fox",
	}, "10.0.0.1")
	assert.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for worker.GetStats().CompletedJobs < 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	stats := worker.GetStats()
	assert.Equal(t, int64(1), stats.CompletedJobs)
	assert.Equal(t, int64(0), stats.FailedJobs)
}

func TestAuthService_Register_DuplicateAccount(t *testing.T) {
	users := &mockUserRepo{
		mockCreate: func(ctx context.Context, user *models.User) error {
			return errors.New("username already taken")
		},
	}
	service := newTestAuthService(t, users, &mockAuditRepo{})

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "danafox",
		Email:    "dana@example.com",
		Password: "password123",
		FullName: "Dana Fox",
	}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrDuplicate)
}
