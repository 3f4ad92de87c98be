package service

import (
	"context"
	"fmt"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"go.uber.org/zap"
)

// AwardResult is the outcome of the post-commit badge step. It is carried
// alongside the primary result instead of an error return so a failed award
// can never look like a failed submission.
type AwardResult struct {
	NewBadges []model.Badge
	Err       error
}

// BadgeStatus is one catalog entry flagged with the user's progress.
type BadgeStatus struct {
	Badge     model.Badge
	Earned    bool
	AwardedDt *time.Time
}

// BadgeOverview is the whole catalog from one user's point of view.
type BadgeOverview struct {
	Badges        []BadgeStatus
	CurrentPoints int
}

type BadgeService interface {
	// AwardFor grants every badge whose threshold the total has crossed and
	// that the user does not already hold. Idempotent; failures are logged
	// and reported in the result, never as an error.
	AwardFor(ctx context.Context, userID uint64, totalPoints int) AwardResult
	Overview(ctx context.Context, userID uint64) (*BadgeOverview, error)
}

type badgeService struct {
	badges  repository.BadgeRepository
	records repository.WasteRecordRepository
	notify  NotificationService
	logger  *zap.Logger
}

func NewBadgeService(badges repository.BadgeRepository, records repository.WasteRecordRepository, notify NotificationService, logger *zap.Logger) BadgeService {
	return &badgeService{badges: badges, records: records, notify: notify, logger: logger}
}

func (s *badgeService) AwardFor(ctx context.Context, userID uint64, totalPoints int) AwardResult {
	held, err := s.badges.HeldIDs(ctx, userID)
	if err != nil {
		s.logger.Warn("badge award skipped: fetching held badges failed",
			zap.Uint64("user_id", userID), zap.Error(err))
		return AwardResult{Err: err}
	}
	qualifying, err := s.badges.Qualifying(ctx, totalPoints, held)
	if err != nil {
		s.logger.Warn("badge award skipped: fetching qualifying badges failed",
			zap.Uint64("user_id", userID), zap.Error(err))
		return AwardResult{Err: err}
	}
	if len(qualifying) == 0 {
		return AwardResult{}
	}

	awards := make([]*model.UserBadge, 0, len(qualifying))
	for _, b := range qualifying {
		awards = append(awards, &model.UserBadge{UserID: userID, BadgeID: b.ID})
	}
	if err := s.badges.Award(ctx, awards); err != nil {
		s.logger.Warn("badge award failed",
			zap.Uint64("user_id", userID), zap.Int("badges", len(awards)), zap.Error(err))
		return AwardResult{Err: err}
	}

	for _, b := range qualifying {
		s.notify.Notify(ctx, userID, "ได้รับเหรียญตราใหม่",
			fmt.Sprintf("คุณได้รับเหรียญตรา \"%s\" (%d คะแนน)", b.Name, b.ThresholdPts))
	}
	return AwardResult{NewBadges: qualifying}
}

func (s *badgeService) Overview(ctx context.Context, userID uint64) (*BadgeOverview, error) {
	catalog, err := s.badges.List(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := s.badges.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}
	awardedAt := make(map[uint64]time.Time, len(earned))
	for _, e := range earned {
		awardedAt[e.BadgeID] = e.AwardedDt
	}
	total, err := s.records.SumPointsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &BadgeOverview{CurrentPoints: total}
	for _, b := range catalog {
		st := BadgeStatus{Badge: b}
		if dt, ok := awardedAt[b.ID]; ok {
			st.Earned = true
			d := dt
			st.AwardedDt = &d
		}
		out.Badges = append(out.Badges, st)
	}
	return out, nil
}
