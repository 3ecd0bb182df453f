package services

import (
	"context"

	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/repository"
)

// AuditService records and queries the audit trail
type AuditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Log records an audit entry. userID may be nil for unauthenticated actions.
func (s *AuditService) Log(ctx context.Context, userID *uint, action string, entityType *string, entityID *uint, details, ip string) error {
	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  ip,
	}
	return s.auditRepo.Create(ctx, entry)
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, query)
}
