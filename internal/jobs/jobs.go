package jobs

import (
	"context"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/repository"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// notificationRetention is how long read notifications are kept.
const notificationRetention = 90 * 24 * time.Hour

// Runner owns the periodic housekeeping jobs.
type Runner struct {
	cron          *cron.Cron
	sessions      repository.SessionRepository
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func NewRunner(sessions repository.SessionRepository, notifications repository.NotificationRepository, logger *zap.Logger) *Runner {
	return &Runner{
		cron:          cron.New(),
		sessions:      sessions,
		notifications: notifications,
		logger:        logger,
	}
}

func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc("@hourly", r.purgeSessions); err != nil {
		return err
	}
	if _, err := r.cron.AddFunc("@daily", r.purgeNotifications); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

func (r *Runner) Stop() context.Context {
	return r.cron.Stop()
}

func (r *Runner) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := r.sessions.PurgeExpired(ctx, time.Now())
	if err != nil {
		r.logger.Warn("session purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.logger.Info("purged expired sessions", zap.Int64("count", n))
	}
}

func (r *Runner) purgeNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := r.notifications.PurgeReadBefore(ctx, time.Now().Add(-notificationRetention))
	if err != nil {
		r.logger.Warn("notification purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.logger.Info("purged read notifications", zap.Int64("count", n))
	}
}
