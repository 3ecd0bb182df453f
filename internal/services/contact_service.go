package services

import (
	"context"
	"fmt"
	"time"

	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/repository"
)

// ContactService handles contact messages from customers and guests
type ContactService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	emailSvc    *EmailService
	worker      *jobs.Worker
}

// NewContactService creates a new contact service
func NewContactService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, emailSvc *EmailService, worker *jobs.Worker) *ContactService {
	return &ContactService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		worker:      worker,
	}
}

// CreateMessageInput carries the fields of a contact form submission
type CreateMessageInput struct {
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           *string    `json:"phone"`
	Subject         string     `json:"subject" binding:"required"`
	Message         string     `json:"message" binding:"required"`
	AppointmentDate *time.Time `json:"appointment_date" time_format:"2006-01-02"`
}

// Create stores a contact message. userID is nil for guest submissions;
// for logged-in customers the name and email come from their account.
func (s *ContactService) Create(ctx context.Context, userID *uint, input CreateMessageInput) (*models.ContactMessage, error) {
	if !validSubject(input.Subject) {
		return nil, fmt.Errorf("%w: unknown subject %q", ErrInvalidArgument, input.Subject)
	}
	if n := len(input.Message); n < 10 || n > 2000 {
		return nil, fmt.Errorf("%w: message must be between 10 and 2000 characters", ErrInvalidArgument)
	}

	message := &models.ContactMessage{
		UserID:          userID,
		FullName:        input.FullName,
		Email:           input.Email,
		Phone:           input.Phone,
		Subject:         input.Subject,
		Message:         input.Message,
		Status:          models.MessageStatusNew,
		AppointmentDate: input.AppointmentDate,
	}

	if userID != nil {
		user, err := s.userRepo.FindByID(ctx, *userID)
		if err != nil {
			return nil, notFoundOrErr(err, "user", *userID)
		}
		message.FullName = user.FullName
		message.Email = user.Email
		if message.Phone == nil {
			message.Phone = user.Phone
		}
	} else {
		if message.FullName == "" || message.Email == "" {
			return nil, fmt.Errorf("%w: guest messages require a name and email", ErrInvalidArgument)
		}
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		return s.emailSvc.SendNewSubmissionNotice(jobCtx, "message", message.FullName,
			fmt.Sprintf("Subject: %s", message.Subject))
	})

	return message, nil
}

func validSubject(subject string) bool {
	for _, s := range models.MessageSubjects {
		if s == subject {
			return true
		}
	}
	return false
}

// ListForUser returns the customer's own messages, newest first
func (s *ContactService) ListForUser(ctx context.Context, userID uint) ([]models.ContactMessage, error) {
	return s.messageRepo.FindByUser(ctx, userID, nil)
}

// GetForUser returns a single message if it belongs to the customer
func (s *ContactService) GetForUser(ctx context.Context, id, userID uint) (*models.ContactMessage, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "message", id)
	}
	if message.UserID == nil || *message.UserID != userID {
		return nil, fmt.Errorf("%w: message belongs to another customer", ErrPermissionDenied)
	}
	return message, nil
}
