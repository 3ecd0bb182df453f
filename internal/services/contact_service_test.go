package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/whittakeragency/agency-api/internal/config"
	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/pkg/logger"
)

func TestContactService_Create_Validation(t *testing.T) {
	service := NewContactService(&mockMessageRepo{}, &mockUserRepo{}, nil, nil)
	ctx := context.Background()

	_, err := service.Create(ctx, nil, CreateMessageInput{
		FullName: "Guest", Email: "g@example.com", Subject: "complaint", Message: "long enough message",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = service.Create(ctx, nil, CreateMessageInput{
		FullName: "Guest", Email: "g@example.com", Subject: "general", Message: "too short",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Guests must identify themselves
	_, err = service.Create(ctx, nil, CreateMessageInput{
		Subject: "general", Message: "a perfectly reasonable question",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestContactService_Create_Guest(t *testing.T) {
	logger.Setup("test")

	var created *models.ContactMessage
	messages := &mockMessageRepo{
		mockCreate: func(ctx context.Context, message *models.ContactMessage) error {
			created = message
			return nil
		},
	}
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()
	service := NewContactService(messages, &mockUserRepo{}, NewEmailService(&config.Config{}), worker)

	msg, err := service.Create(context.Background(), nil, CreateMessageInput{
		FullName: "Guest Person",
		Email:    "guest@example.com",
		Subject:  models.MessageSubjectQuote,
		Message:  "I would like a quote for my boat.",
	})
	assert.NoError(t, err)
	assert.Nil(t, msg.UserID)
	assert.True(t, msg.IsGuest())
	assert.Equal(t, models.MessageStatusNew, msg.Status)
	assert.Equal(t, created, msg)
}

func TestContactService_Create_AuthenticatedUsesAccountIdentity(t *testing.T) {
	logger.Setup("test")

	phone := "555-0100"
	messages := &mockMessageRepo{
		mockCreate: func(ctx context.Context, message *models.ContactMessage) error { return nil },
	}
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FullName: "Dana Fox", Email: "dana@example.com", Phone: &phone}, nil
		},
	}
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()
	service := NewContactService(messages, users, NewEmailService(&config.Config{}), worker)

	userID := uint(3)
	msg, err := service.Create(context.Background(), &userID, CreateMessageInput{
		FullName: "Spoofed Name",
		Email:    "spoofed@example.com",
		Subject:  models.MessageSubjectPolicy,
		Message:  "Please update my policy details.",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Dana Fox", msg.FullName)
	assert.Equal(t, "dana@example.com", msg.Email)
	assert.Equal(t, &phone, msg.Phone)
}

func TestContactService_GetForUser_GuestMessageIsHidden(t *testing.T) {
	messages := &mockMessageRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.ContactMessage, error) {
			return &models.ContactMessage{ID: id}, nil
		},
	}
	service := NewContactService(messages, &mockUserRepo{}, nil, nil)

	_, err := service.GetForUser(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
