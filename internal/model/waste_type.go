package model

import "time"

// WasteType maps a waste category to its points-per-gram factor.
type WasteType struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:120;not null;uniqueIndex:uk_waste_types_name"`
	Description *string   `gorm:"type:text"`
	PointFactor float64   `gorm:"column:point_factor;not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (WasteType) TableName() string {
	return "waste_types"
}
