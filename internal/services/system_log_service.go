package services

import (
	"context"

	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/repository"
)

// SystemLogService persists application-level log records so operational
// errors survive process restarts.
type SystemLogService struct {
	systemLogRepo repository.SystemLogRepository
}

func NewSystemLogService(systemLogRepo repository.SystemLogRepository) *SystemLogService {
	return &SystemLogService{systemLogRepo: systemLogRepo}
}

// RecordError stores an error-level entry with request context
func (s *SystemLogService) RecordError(ctx context.Context, message string, excType, excMessage, stackTrace, method, path, ip, requestID *string, userID *uint) error {
	entry := &models.SystemLog{
		Level:            models.LogLevelError,
		Message:          message,
		ExceptionType:    excType,
		ExceptionMessage: excMessage,
		StackTrace:       stackTrace,
		RequestMethod:    method,
		RequestPath:      path,
		RequestIP:        ip,
		RequestID:        requestID,
		UserID:           userID,
	}
	return s.systemLogRepo.Create(ctx, entry)
}

// List retrieves system logs with filters
func (s *SystemLogService) List(ctx context.Context, query *repository.ListQuery) ([]models.SystemLog, int64, error) {
	return s.systemLogRepo.List(ctx, query)
}
