package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/repository"
)

var contactTimes = map[string]bool{
	"morning":   true,
	"afternoon": true,
	"evening":   true,
	"anytime":   true,
}

var contactPreferences = map[string]bool{
	models.ContactPreferenceEmail:  true,
	models.ContactPreferencePhone:  true,
	models.ContactPreferenceEither: true,
}

// ClaimService handles customer claim reports
type ClaimService struct {
	claimRepo repository.ClaimRepository
	userRepo  repository.UserRepository
	auditSvc  *AuditService
	emailSvc  *EmailService
	worker    *jobs.Worker
}

// NewClaimService creates a new claim service
func NewClaimService(claimRepo repository.ClaimRepository, userRepo repository.UserRepository, auditSvc *AuditService, emailSvc *EmailService, worker *jobs.Worker) *ClaimService {
	return &ClaimService{
		claimRepo: claimRepo,
		userRepo:  userRepo,
		auditSvc:  auditSvc,
		emailSvc:  emailSvc,
		worker:    worker,
	}
}

// CreateClaimInput carries the fields a customer submits for a claim
type CreateClaimInput struct {
	Category             string          `json:"category" binding:"required"`
	Subcategory          *string         `json:"subcategory"`
	IncidentDate         time.Time       `json:"incident_date" binding:"required" time_format:"2006-01-02"`
	IncidentSummary      string          `json:"incident_summary" binding:"required"`
	ClaimData            json.RawMessage `json:"claim_data"`
	AppointmentRequested *time.Time      `json:"appointment_requested" time_format:"2006-01-02"`
	ContactPreference    string          `json:"contact_preference"`
	PreferredContactTime *string         `json:"preferred_contact_time"`
	AdditionalNotes      *string         `json:"additional_notes"`
}

// Create validates and stores a new claim report
func (s *ClaimService) Create(ctx context.Context, userID uint, input CreateClaimInput) (*models.Claim, error) {
	if !models.ValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, input.Category)
	}
	if !models.ValidSubcategory(input.Category, input.Subcategory) {
		if models.CategoryTaxonomy[input.Category] == nil {
			return nil, fmt.Errorf("%w: category %q does not take a subcategory", ErrInvalidArgument, input.Category)
		}
		return nil, fmt.Errorf("%w: invalid subcategory for category %q", ErrInvalidArgument, input.Category)
	}
	if err := validateIncidentDate(input.IncidentDate); err != nil {
		return nil, err
	}
	if n := len(input.IncidentSummary); n < 10 || n > 500 {
		return nil, fmt.Errorf("%w: incident summary must be between 10 and 500 characters", ErrInvalidArgument)
	}
	if input.AdditionalNotes != nil && len(*input.AdditionalNotes) > 500 {
		return nil, fmt.Errorf("%w: additional notes must be at most 500 characters", ErrInvalidArgument)
	}
	if input.PreferredContactTime != nil && !contactTimes[*input.PreferredContactTime] {
		return nil, fmt.Errorf("%w: preferred contact time must be morning, afternoon, evening or anytime", ErrInvalidArgument)
	}

	pref := input.ContactPreference
	if pref == "" {
		pref = models.ContactPreferenceEither
	}
	if !contactPreferences[pref] {
		return nil, fmt.Errorf("%w: contact preference must be email, phone or either", ErrInvalidArgument)
	}

	claim := &models.Claim{
		UserID:               userID,
		Category:             input.Category,
		Subcategory:          input.Subcategory,
		IncidentDate:         input.IncidentDate,
		IncidentSummary:      input.IncidentSummary,
		ClaimData:            input.ClaimData,
		AppointmentRequested: input.AppointmentRequested,
		ContactPreference:    pref,
		PreferredContactTime: input.PreferredContactTime,
		AdditionalNotes:      input.AdditionalNotes,
		Status:               models.ClaimStatusSubmitted,
	}

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		user, err := s.userRepo.FindByID(jobCtx, userID)
		if err != nil {
			return err
		}
		return s.emailSvc.SendNewSubmissionNotice(jobCtx, "claim", user.FullName,
			fmt.Sprintf("Category: %s, incident on %s", claim.Category, claim.IncidentDate.Format("2006-01-02")))
	})

	return claim, nil
}

// validateIncidentDate rejects future dates and incidents older than two years
func validateIncidentDate(date time.Time) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.After(today) {
		return fmt.Errorf("%w: incident date cannot be in the future", ErrInvalidArgument)
	}
	if date.Before(today.AddDate(-2, 0, 0)) {
		return fmt.Errorf("%w: incident date cannot be more than two years ago", ErrInvalidArgument)
	}
	return nil
}

// ListForUser returns the customer's own claims, newest first
func (s *ClaimService) ListForUser(ctx context.Context, userID uint) ([]models.Claim, error) {
	return s.claimRepo.FindByUser(ctx, userID, nil)
}

// GetForUser returns a single claim if it belongs to the customer
func (s *ClaimService) GetForUser(ctx context.Context, id, userID uint) (*models.Claim, error) {
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "claim", id)
	}
	if claim.UserID != userID {
		return nil, fmt.Errorf("%w: claim belongs to another customer", ErrPermissionDenied)
	}
	return claim, nil
}

// DeleteForUser removes a customer's claim while it is still untouched.
// Once an agent has contacted the customer or closed the claim the record
// stays for the office trail.
func (s *ClaimService) DeleteForUser(ctx context.Context, id, userID uint, ip string) error {
	claim, err := s.GetForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if claim.Status != models.ClaimStatusSubmitted {
		return fmt.Errorf("%w: claim has already been worked by an agent", ErrConflict)
	}

	if err := s.claimRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete claim: %w", err)
	}

	entity := "claim"
	s.auditSvc.Log(ctx, &userID, "CLAIM_DELETED", &entity, &id,
		fmt.Sprintf("customer withdrew claim %d", id), ip)
	return nil
}
