package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/whittakeragency/agency-api/internal/config"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

// SendWelcome notifies a customer that their account was created
func (s *EmailService) SendWelcome(ctx context.Context, user *models.User) error {
	if s.config.ResendAPIKey == "" {
		logger.Debug("no resend api key configured, skipping welcome email")
		return nil
	}

	data := struct {
		Name string
	}{
		Name: user.FullName,
	}

	body, err := s.renderTemplate("welcome.html", data)
	if err != nil {
		return err
	}

	return s.send(user.Email, "Welcome to Whittaker Agency", body)
}

// SendNewSubmissionNotice alerts the agency inbox about a new customer submission
func (s *EmailService) SendNewSubmissionNotice(ctx context.Context, kind, customer, detail string) error {
	if s.config.AdminEmail == "" {
		logger.Debug("no admin email configured, skipping submission notice")
		return nil
	}

	data := struct {
		Kind     string
		Customer string
		Detail   string
	}{
		Kind:     kind,
		Customer: customer,
		Detail:   detail,
	}

	body, err := s.renderTemplate("new_submission.html", data)
	if err != nil {
		return err
	}

	return s.send(s.config.AdminEmail, fmt.Sprintf("New %s from %s", kind, customer), body)
}

// SendAttentionDigest emails the daily list of items needing admin attention
func (s *EmailService) SendAttentionDigest(ctx context.Context, items []models.AttentionItem) error {
	if s.config.AdminEmail == "" {
		logger.Debug("no admin email configured, skipping attention digest")
		return nil
	}
	if len(items) == 0 {
		return nil
	}

	data := struct {
		Count int
		Items []models.AttentionItem
	}{
		Count: len(items),
		Items: items,
	}

	body, err := s.renderTemplate("attention_digest.html", data)
	if err != nil {
		return err
	}

	return s.send(s.config.AdminEmail, fmt.Sprintf("%d items need your attention", len(items)), body)
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	_, err := s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", to, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: %s", to, subject))
	return nil
}

func (s *EmailService) renderTemplate(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
