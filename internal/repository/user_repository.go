package repository

import (
	"context"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"gorm.io/gorm"
)

// UserWithStats is a user row joined with its record aggregates.
type UserWithStats struct {
	model.User
	TotalPoints  int
	TotalRecords int
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListWithStats(ctx context.Context) ([]UserWithStats, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uint64) error
	Count(ctx context.Context, role *model.Role) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ListWithStats(ctx context.Context) ([]UserWithStats, error) {
	var rows []UserWithStats
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("users.*, COALESCE(SUM(waste_records.points), 0) AS total_points, COUNT(waste_records.id) AS total_records").
		Joins("LEFT JOIN waste_records ON waste_records.user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// Delete removes the user and everything hanging off it in one transaction.
func (r *userRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.WasteRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.UserBadge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}

func (r *userRepository) Count(ctx context.Context, role *model.Role) (int64, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&model.User{})
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *userRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("created_at >= ?", since).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *userRepository) CountActive(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("EXISTS (SELECT 1 FROM waste_records WHERE waste_records.user_id = users.id)").
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
