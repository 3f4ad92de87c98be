package model

import "time"

// UserBadge is the award ledger; one row per (user, badge), never revoked.
type UserBadge struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_user_badges"`
	BadgeID   uint64    `gorm:"column:badge_id;not null;uniqueIndex:uk_user_badges"`
	AwardedDt time.Time `gorm:"column:awarded_dt;autoCreateTime"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
