package model

import "time"

type Session struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID       uint64    `gorm:"column:user_id;not null;index:idx_sessions_user"`
	Token        string    `gorm:"size:64;not null;uniqueIndex:uk_sessions_token"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null"`
	LastActivity time.Time `gorm:"column:last_activity;autoUpdateTime"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
