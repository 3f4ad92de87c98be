package service

import (
	"context"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
)

type NotificationService interface {
	// Notify is best-effort; it must never break the flow that triggered it.
	Notify(ctx context.Context, userID uint64, title, body string)
	List(ctx context.Context, userID uint64, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, userID uint64, ids []uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(ctx context.Context, userID uint64, title, body string) {
	if userID == 0 || title == "" {
		return
	}
	_ = s.repo.Create(ctx, &model.Notification{UserID: userID, Title: title, Body: body})
}

func (s *notificationService) List(ctx context.Context, userID uint64, limit int) ([]model.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID uint64, ids []uint64) error {
	return s.repo.MarkRead(ctx, userID, ids)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
