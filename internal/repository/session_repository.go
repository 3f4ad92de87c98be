package repository

import (
	"context"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"gorm.io/gorm"
)

// SessionWithUser joins a live session with its user for authentication.
type SessionWithUser struct {
	Session model.Session
	User    model.User
}

type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByToken(ctx context.Context, token string, now time.Time) (*SessionWithUser, error)
	DeleteByToken(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepository) FindByToken(ctx context.Context, token string, now time.Time) (*SessionWithUser, error) {
	var s model.Session
	if err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&s).Error; err != nil {
		return nil, err
	}
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, s.UserID).Error; err != nil {
		return nil, err
	}
	return &SessionWithUser{Session: s, User: u}, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}

func (r *sessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
