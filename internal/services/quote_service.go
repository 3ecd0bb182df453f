package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/repository"
)

// QuoteService handles customer quote requests
type QuoteService struct {
	quoteRepo repository.QuoteRepository
	userRepo  repository.UserRepository
	auditSvc  *AuditService
	emailSvc  *EmailService
	worker    *jobs.Worker
}

// NewQuoteService creates a new quote service
func NewQuoteService(quoteRepo repository.QuoteRepository, userRepo repository.UserRepository, auditSvc *AuditService, emailSvc *EmailService, worker *jobs.Worker) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		userRepo:  userRepo,
		auditSvc:  auditSvc,
		emailSvc:  emailSvc,
		worker:    worker,
	}
}

// CreateQuoteInput carries the fields a customer submits for a quote
type CreateQuoteInput struct {
	Category      string          `json:"category" binding:"required"`
	Subcategory   *string         `json:"subcategory"`
	QuoteData     json.RawMessage `json:"quote_data"`
	CustomerNotes *string         `json:"customer_notes"`
}

// Create stores a new quote request and notifies the agency.
// Category is recorded as submitted; the customer form is the gatekeeper
// for quote categories, so nothing is checked against the taxonomy here.
func (s *QuoteService) Create(ctx context.Context, userID uint, input CreateQuoteInput) (*models.QuoteRequest, error) {
	if input.CustomerNotes != nil && len(*input.CustomerNotes) > 500 {
		return nil, fmt.Errorf("%w: customer notes must be at most 500 characters", ErrInvalidArgument)
	}

	quote := &models.QuoteRequest{
		UserID:        userID,
		Category:      input.Category,
		Subcategory:   input.Subcategory,
		Status:        models.QuoteStatusPending,
		QuoteData:     input.QuoteData,
		CustomerNotes: input.CustomerNotes,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		user, err := s.userRepo.FindByID(jobCtx, userID)
		if err != nil {
			return err
		}
		return s.emailSvc.SendNewSubmissionNotice(jobCtx, "quote request", user.FullName,
			fmt.Sprintf("Category: %s", quote.Category))
	})

	return quote, nil
}

// ListForUser returns the customer's own quote requests, newest first
func (s *QuoteService) ListForUser(ctx context.Context, userID uint) ([]models.QuoteRequest, error) {
	return s.quoteRepo.FindByUser(ctx, userID, nil)
}

// GetForUser returns a single quote request if it belongs to the customer
func (s *QuoteService) GetForUser(ctx context.Context, id, userID uint) (*models.QuoteRequest, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "quote request", id)
	}
	if quote.UserID != userID {
		return nil, fmt.Errorf("%w: quote request belongs to another customer", ErrPermissionDenied)
	}
	return quote, nil
}
