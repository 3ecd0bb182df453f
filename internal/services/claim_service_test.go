package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/whittakeragency/agency-api/internal/config"
	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/pkg/logger"
)

func validClaimInput() CreateClaimInput {
	sub := "auto"
	return CreateClaimInput{
		Category:        models.CategoryVehicle,
		Subcategory:     &sub,
		IncidentDate:    time.Now().UTC().AddDate(0, 0, -3),
		IncidentSummary: "Rear-ended at a stop light on Main Street.",
	}
}

func TestClaimService_Create_Taxonomy(t *testing.T) {
	service := NewClaimService(&mockClaimRepo{}, &mockUserRepo{}, nil, nil, nil)
	ctx := context.Background()

	input := validClaimInput()
	input.Category = "spaceship"
	_, err := service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Subcategory from the wrong category
	input = validClaimInput()
	sub := "renters"
	input.Subcategory = &sub
	_, err = service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Categories without subcategories reject one
	input = validClaimInput()
	input.Category = models.CategoryLife
	life := "term"
	input.Subcategory = &life
	_, err = service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "does not take a subcategory")

	// Categories with subcategories require one
	input = validClaimInput()
	input.Subcategory = nil
	_, err = service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClaimService_Create_IncidentDateBounds(t *testing.T) {
	service := NewClaimService(&mockClaimRepo{}, &mockUserRepo{}, nil, nil, nil)
	ctx := context.Background()

	input := validClaimInput()
	input.IncidentDate = time.Now().UTC().AddDate(0, 0, 2)
	_, err := service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "future")

	input = validClaimInput()
	input.IncidentDate = time.Now().UTC().AddDate(-2, 0, -1)
	_, err = service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "two years")
}

func TestClaimService_Create_FieldValidation(t *testing.T) {
	service := NewClaimService(&mockClaimRepo{}, &mockUserRepo{}, nil, nil, nil)
	ctx := context.Background()

	input := validClaimInput()
	input.IncidentSummary = "too short"
	_, err := service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	input = validClaimInput()
	long := strings.Repeat("n", 501)
	input.AdditionalNotes = &long
	_, err = service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	input = validClaimInput()
	badTime := "midnight"
	input.PreferredContactTime = &badTime
	_, err = service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	input = validClaimInput()
	input.ContactPreference = "carrier_pigeon"
	_, err = service.Create(ctx, 1, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClaimService_Create_DefaultsContactPreference(t *testing.T) {
	logger.Setup("test")

	var created *models.Claim
	claims := &mockClaimRepo{
		mockCreate: func(ctx context.Context, claim *models.Claim) error {
			created = claim
			return nil
		},
	}
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FullName: "Dana Fox", Email: "dana@example.com"}, nil
		},
	}
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()

	service := NewClaimService(claims, users, nil, NewEmailService(&config.Config{}), worker)
	claim, err := service.Create(context.Background(), 1, validClaimInput())
	assert.NoError(t, err)
	assert.Equal(t, models.ContactPreferenceEither, claim.ContactPreference)
	assert.Equal(t, models.ClaimStatusSubmitted, claim.Status)
	assert.Equal(t, created, claim)
}

func TestClaimService_GetForUser_Ownership(t *testing.T) {
	claims := &mockClaimRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Claim, error) {
			return &models.Claim{ID: id, UserID: 2, Status: models.ClaimStatusSubmitted}, nil
		},
	}
	service := NewClaimService(claims, &mockUserRepo{}, nil, nil, nil)

	_, err := service.GetForUser(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	claim, err := service.GetForUser(context.Background(), 5, 2)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), claim.ID)
}

func TestClaimService_DeleteForUser_OnlyWhileSubmitted(t *testing.T) {
	status := models.ClaimStatusContacted
	deleted := false
	claims := &mockClaimRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Claim, error) {
			return &models.Claim{ID: id, UserID: 1, Status: status}, nil
		},
		mockDelete: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	audits := &mockAuditRepo{}
	service := NewClaimService(claims, &mockUserRepo{}, NewAuditService(audits), nil, nil)

	err := service.DeleteForUser(context.Background(), 5, 1, "10.0.0.1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.False(t, deleted)

	status = models.ClaimStatusSubmitted
	err = service.DeleteForUser(context.Background(), 5, 1, "10.0.0.1")
	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestClaimService_Create_OtherCategoryTakesNamedSubcategories(t *testing.T) {
	logger.Setup("test")

	claims := &mockClaimRepo{
		mockCreate: func(ctx context.Context, claim *models.Claim) error { return nil },
	}
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FullName: "Dana Fox"}, nil
		},
	}
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()
	service := NewClaimService(claims, users, nil, NewEmailService(&config.Config{}), worker)

	input := validClaimInput()
	input.Category = models.CategoryOther
	sub := "pet"
	input.Subcategory = &sub
	_, err := service.Create(context.Background(), 1, input)
	assert.NoError(t, err)
}
