package model

import "time"

type WasteRecord struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"column:user_id;not null;index:idx_waste_records_user"`
	TypeID      uint64    `gorm:"column:type_id;not null;index:idx_waste_records_type"`
	WeightG     int       `gorm:"column:weight_g;not null"`
	Points      int       `gorm:"not null"`
	Description *string   `gorm:"type:text"`
	RecordDt    time.Time `gorm:"column:record_dt;autoCreateTime;index:idx_waste_records_dt"`
}

func (WasteRecord) TableName() string {
	return "waste_records"
}
