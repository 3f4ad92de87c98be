package repository

import (
	"context"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"gorm.io/gorm"
)

// EarnedBadge is a user's awarded badge joined with the catalog entry.
type EarnedBadge struct {
	BadgeID      uint64
	Name         string
	Description  *string
	ThresholdPts int
	AwardedDt    time.Time
}

type BadgeRepository interface {
	List(ctx context.Context) ([]model.Badge, error)
	HeldIDs(ctx context.Context, userID uint64) ([]uint64, error)
	Qualifying(ctx context.Context, totalPoints int, excludeIDs []uint64) ([]model.Badge, error)
	Award(ctx context.Context, awards []*model.UserBadge) error
	ListEarned(ctx context.Context, userID uint64) ([]EarnedBadge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) List(ctx context.Context) ([]model.Badge, error) {
	var badges []model.Badge
	if err := r.db.WithContext(ctx).Order("threshold_pts ASC").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepository) HeldIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Model(&model.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *badgeRepository) Qualifying(ctx context.Context, totalPoints int, excludeIDs []uint64) ([]model.Badge, error) {
	var badges []model.Badge
	q := r.db.WithContext(ctx).Where("threshold_pts <= ?", totalPoints)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Order("threshold_pts ASC").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepository) Award(ctx context.Context, awards []*model.UserBadge) error {
	if len(awards) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&awards).Error
}

func (r *badgeRepository) ListEarned(ctx context.Context, userID uint64) ([]EarnedBadge, error) {
	var rows []EarnedBadge
	if err := r.db.WithContext(ctx).
		Model(&model.UserBadge{}).
		Select("badges.id AS badge_id, badges.name, badges.description, badges.threshold_pts, user_badges.awarded_dt").
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.awarded_dt DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
