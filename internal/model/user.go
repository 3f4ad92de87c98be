package model

import "time"

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:120;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	PwdHash      string    `gorm:"column:pwd_hash;size:255;not null"`
	Role         Role      `gorm:"size:16;not null;default:STUDENT"`
	Grade        *int      `gorm:"column:grade"`
	ClassSection *string   `gorm:"column:class_section;size:16"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
