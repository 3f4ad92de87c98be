package model

import "time"

type AuditLog struct {
	ID      uint64    `gorm:"primaryKey;autoIncrement"`
	AdminID uint64    `gorm:"column:admin_id;not null;index:idx_audit_logs_admin"`
	Action  string    `gorm:"size:64;not null"`
	Detail  string    `gorm:"type:text"`
	LogDt   time.Time `gorm:"column:log_dt;autoCreateTime;index:idx_audit_logs_dt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
