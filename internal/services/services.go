package services

import (
	"github.com/whittakeragency/agency-api/internal/config"
	"github.com/whittakeragency/agency-api/internal/jobs"
	"github.com/whittakeragency/agency-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth      *AuthService
	Quote     *QuoteService
	Claim     *ClaimService
	Contact   *ContactService
	Admin     *AdminService
	Audit     *AuditService
	SystemLog *SystemLogService
	Email     *EmailService
	Export    *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit)
	emailSvc := NewEmailService(cfg)
	adminSvc := NewAdminService(repos.Quote, repos.Claim, repos.Message, repos.User, repos.Audit, auditSvc)

	return &Services{
		Auth:      NewAuthService(repos.User, auditSvc, emailSvc, worker, cfg),
		Quote:     NewQuoteService(repos.Quote, repos.User, auditSvc, emailSvc, worker),
		Claim:     NewClaimService(repos.Claim, repos.User, auditSvc, emailSvc, worker),
		Contact:   NewContactService(repos.Message, repos.User, emailSvc, worker),
		Admin:     adminSvc,
		Audit:     auditSvc,
		SystemLog: NewSystemLogService(repos.SystemLog),
		Email:     emailSvc,
		Export:    NewExportService(adminSvc),
	}
}
