package service

import (
	"context"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"go.uber.org/zap"
)

type AuditService interface {
	// Record is best-effort; a failed trail write never fails the admin action.
	Record(ctx context.Context, adminID uint64, action, detail string)
	List(ctx context.Context, page, limit int) ([]repository.AuditEntry, int64, error)
}

type auditService struct {
	logs   repository.AuditLogRepository
	logger *zap.Logger
}

func NewAuditService(logs repository.AuditLogRepository, logger *zap.Logger) AuditService {
	return &auditService{logs: logs, logger: logger}
}

func (s *auditService) Record(ctx context.Context, adminID uint64, action, detail string) {
	err := s.logs.Create(ctx, &model.AuditLog{AdminID: adminID, Action: action, Detail: detail})
	if err != nil {
		s.logger.Warn("audit log write failed",
			zap.Uint64("admin_id", adminID), zap.String("action", action), zap.Error(err))
	}
}

func (s *auditService) List(ctx context.Context, page, limit int) ([]repository.AuditEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.logs.List(ctx, (page-1)*limit, limit)
}
