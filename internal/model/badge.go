package model

import "time"

type Badge struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:120;not null"`
	Description  *string   `gorm:"type:text"`
	ThresholdPts int       `gorm:"column:threshold_pts;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Badge) TableName() string {
	return "badges"
}
