package repository

import (
	"context"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"gorm.io/gorm"
)

// AuditEntry is a log row joined with the acting admin's name.
type AuditEntry struct {
	ID        uint64
	AdminID   uint64
	AdminName string
	Action    string
	Detail    string
	LogDt     time.Time
}

type AuditLogRepository interface {
	Create(ctx context.Context, l *model.AuditLog) error
	List(ctx context.Context, offset, limit int) ([]AuditEntry, int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, l *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *auditLogRepository) List(ctx context.Context, offset, limit int) ([]AuditEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []AuditEntry
	if err := r.db.WithContext(ctx).
		Model(&model.AuditLog{}).
		Select("audit_logs.id, audit_logs.admin_id, users.name AS admin_name, audit_logs.action, audit_logs.detail, audit_logs.log_dt").
		Joins("JOIN users ON users.id = audit_logs.admin_id").
		Order("audit_logs.log_dt DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
