package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/whittakeragency/agency-api/internal/config"
	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/pkg/logger"
)

func TestQuoteService_Create(t *testing.T) {
	logger.Setup("test")

	var created *models.QuoteRequest
	quotes := &mockQuoteRepo{
		mockCreate: func(ctx context.Context, quote *models.QuoteRequest) error {
			created = quote
			return nil
		},
	}
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FullName: "Dana Fox"}, nil
		},
	}
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()
	service := NewQuoteService(quotes, users, nil, NewEmailService(&config.Config{}), worker)

	quote, err := service.Create(context.Background(), 1, CreateQuoteInput{Category: "vehicle"})
	assert.NoError(t, err)
	assert.Equal(t, models.QuoteStatusPending, quote.Status)
	assert.Equal(t, uint(1), quote.UserID)
	assert.Equal(t, created, quote)
}

func TestQuoteService_Create_NotesTooLong(t *testing.T) {
	service := NewQuoteService(&mockQuoteRepo{}, &mockUserRepo{}, nil, nil, nil)

	notes := strings.Repeat("n", 501)
	_, err := service.Create(context.Background(), 1, CreateQuoteInput{Category: "vehicle", CustomerNotes: &notes})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestQuoteService_GetForUser_Ownership(t *testing.T) {
	quotes := &mockQuoteRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.QuoteRequest, error) {
			return &models.QuoteRequest{ID: id, UserID: 2}, nil
		},
	}
	service := NewQuoteService(quotes, &mockUserRepo{}, nil, nil, nil)

	_, err := service.GetForUser(context.Background(), 9, 1)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	quote, err := service.GetForUser(context.Background(), 9, 2)
	assert.NoError(t, err)
	assert.Equal(t, uint(9), quote.ID)
}
