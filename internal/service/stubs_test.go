package service

import (
	"context"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
)

// Stubs delegate to func fields so each test only wires what it touches.

type stubRecordRepo struct {
	CreateBatchFn         func(ctx context.Context, records []*model.WasteRecord) error
	FindByIDFn            func(ctx context.Context, id uint64) (*model.WasteRecord, error)
	UpdateFn              func(ctx context.Context, rec *model.WasteRecord) error
	DeleteFn              func(ctx context.Context, id uint64) error
	CountForUserBetweenFn func(ctx context.Context, userID uint64, from, to time.Time) (int64, error)
	SumPointsByUserFn     func(ctx context.Context, userID uint64) (int, error)
	ListRecentWithTypeFn  func(ctx context.Context, userID uint64, limit int) ([]repository.RecordWithType, error)
	ListForUserSinceFn    func(ctx context.Context, userID uint64, since time.Time) ([]repository.RecordWithType, error)
	SumByTypeForUserFn    func(ctx context.Context, userID uint64) ([]repository.TypeUsage, error)
	PointSummariesFn      func(ctx context.Context, since *time.Time) ([]repository.UserPointSummary, error)
	TotalsFn              func(ctx context.Context, since *time.Time) (repository.RecordTotals, error)
	ListForExportFn       func(ctx context.Context, start, end *time.Time, limit int) ([]repository.ExportRow, error)
}

func (s *stubRecordRepo) CreateBatch(ctx context.Context, records []*model.WasteRecord) error {
	if s.CreateBatchFn != nil {
		return s.CreateBatchFn(ctx, records)
	}
	return nil
}

func (s *stubRecordRepo) FindByID(ctx context.Context, id uint64) (*model.WasteRecord, error) {
	return s.FindByIDFn(ctx, id)
}

func (s *stubRecordRepo) Update(ctx context.Context, rec *model.WasteRecord) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, rec)
	}
	return nil
}

func (s *stubRecordRepo) Delete(ctx context.Context, id uint64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s *stubRecordRepo) CountForUserBetween(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	if s.CountForUserBetweenFn != nil {
		return s.CountForUserBetweenFn(ctx, userID, from, to)
	}
	return 0, nil
}

func (s *stubRecordRepo) SumPointsByUser(ctx context.Context, userID uint64) (int, error) {
	if s.SumPointsByUserFn != nil {
		return s.SumPointsByUserFn(ctx, userID)
	}
	return 0, nil
}

func (s *stubRecordRepo) ListRecentWithType(ctx context.Context, userID uint64, limit int) ([]repository.RecordWithType, error) {
	if s.ListRecentWithTypeFn != nil {
		return s.ListRecentWithTypeFn(ctx, userID, limit)
	}
	return nil, nil
}

func (s *stubRecordRepo) ListForUserSince(ctx context.Context, userID uint64, since time.Time) ([]repository.RecordWithType, error) {
	if s.ListForUserSinceFn != nil {
		return s.ListForUserSinceFn(ctx, userID, since)
	}
	return nil, nil
}

func (s *stubRecordRepo) SumByTypeForUser(ctx context.Context, userID uint64) ([]repository.TypeUsage, error) {
	if s.SumByTypeForUserFn != nil {
		return s.SumByTypeForUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubRecordRepo) PointSummaries(ctx context.Context, since *time.Time) ([]repository.UserPointSummary, error) {
	if s.PointSummariesFn != nil {
		return s.PointSummariesFn(ctx, since)
	}
	return nil, nil
}

func (s *stubRecordRepo) Totals(ctx context.Context, since *time.Time) (repository.RecordTotals, error) {
	if s.TotalsFn != nil {
		return s.TotalsFn(ctx, since)
	}
	return repository.RecordTotals{}, nil
}

func (s *stubRecordRepo) ListForExport(ctx context.Context, start, end *time.Time, limit int) ([]repository.ExportRow, error) {
	if s.ListForExportFn != nil {
		return s.ListForExportFn(ctx, start, end, limit)
	}
	return nil, nil
}

type stubBadgeRepo struct {
	ListFn       func(ctx context.Context) ([]model.Badge, error)
	HeldIDsFn    func(ctx context.Context, userID uint64) ([]uint64, error)
	QualifyingFn func(ctx context.Context, totalPoints int, excludeIDs []uint64) ([]model.Badge, error)
	AwardFn      func(ctx context.Context, awards []*model.UserBadge) error
	ListEarnedFn func(ctx context.Context, userID uint64) ([]repository.EarnedBadge, error)
}

func (s *stubBadgeRepo) List(ctx context.Context) ([]model.Badge, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

func (s *stubBadgeRepo) HeldIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	if s.HeldIDsFn != nil {
		return s.HeldIDsFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubBadgeRepo) Qualifying(ctx context.Context, totalPoints int, excludeIDs []uint64) ([]model.Badge, error) {
	if s.QualifyingFn != nil {
		return s.QualifyingFn(ctx, totalPoints, excludeIDs)
	}
	return nil, nil
}

func (s *stubBadgeRepo) Award(ctx context.Context, awards []*model.UserBadge) error {
	if s.AwardFn != nil {
		return s.AwardFn(ctx, awards)
	}
	return nil
}

func (s *stubBadgeRepo) ListEarned(ctx context.Context, userID uint64) ([]repository.EarnedBadge, error) {
	if s.ListEarnedFn != nil {
		return s.ListEarnedFn(ctx, userID)
	}
	return nil, nil
}

type stubTypeRepo struct {
	CreateFn       func(ctx context.Context, t *model.WasteType) error
	UpdateFn       func(ctx context.Context, t *model.WasteType) error
	DeleteFn       func(ctx context.Context, id uint64) error
	FindByIDFn     func(ctx context.Context, id uint64) (*model.WasteType, error)
	FindByNameFn   func(ctx context.Context, name string) (*model.WasteType, error)
	ListFn         func(ctx context.Context) ([]model.WasteType, error)
	CountRecordsFn func(ctx context.Context, typeID uint64) (int64, error)
	UsageCountsFn  func(ctx context.Context) (map[uint64]int64, error)
}

func (s *stubTypeRepo) Create(ctx context.Context, t *model.WasteType) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, t)
	}
	return nil
}

func (s *stubTypeRepo) Update(ctx context.Context, t *model.WasteType) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, t)
	}
	return nil
}

func (s *stubTypeRepo) Delete(ctx context.Context, id uint64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s *stubTypeRepo) FindByID(ctx context.Context, id uint64) (*model.WasteType, error) {
	return s.FindByIDFn(ctx, id)
}

func (s *stubTypeRepo) FindByName(ctx context.Context, name string) (*model.WasteType, error) {
	return s.FindByNameFn(ctx, name)
}

func (s *stubTypeRepo) List(ctx context.Context) ([]model.WasteType, error) {
	return s.ListFn(ctx)
}

func (s *stubTypeRepo) CountRecords(ctx context.Context, typeID uint64) (int64, error) {
	if s.CountRecordsFn != nil {
		return s.CountRecordsFn(ctx, typeID)
	}
	return 0, nil
}

func (s *stubTypeRepo) UsageCounts(ctx context.Context) (map[uint64]int64, error) {
	if s.UsageCountsFn != nil {
		return s.UsageCountsFn(ctx)
	}
	return nil, nil
}

type stubUserRepo struct {
	CreateFn            func(ctx context.Context, u *model.User) error
	FindByIDFn          func(ctx context.Context, id uint64) (*model.User, error)
	FindByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	ListWithStatsFn     func(ctx context.Context) ([]repository.UserWithStats, error)
	UpdateFn            func(ctx context.Context, u *model.User) error
	DeleteFn            func(ctx context.Context, id uint64) error
	CountFn             func(ctx context.Context, role *model.Role) (int64, error)
	CountCreatedSinceFn func(ctx context.Context, since time.Time) (int64, error)
	CountActiveFn       func(ctx context.Context) (int64, error)
}

func (s *stubUserRepo) Create(ctx context.Context, u *model.User) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, u)
	}
	return nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.FindByIDFn(ctx, id)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.FindByEmailFn(ctx, email)
}

func (s *stubUserRepo) ListWithStats(ctx context.Context) ([]repository.UserWithStats, error) {
	if s.ListWithStatsFn != nil {
		return s.ListWithStatsFn(ctx)
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, u *model.User) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, u)
	}
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uint64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s *stubUserRepo) Count(ctx context.Context, role *model.Role) (int64, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx, role)
	}
	return 0, nil
}

func (s *stubUserRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if s.CountCreatedSinceFn != nil {
		return s.CountCreatedSinceFn(ctx, since)
	}
	return 0, nil
}

func (s *stubUserRepo) CountActive(ctx context.Context) (int64, error) {
	if s.CountActiveFn != nil {
		return s.CountActiveFn(ctx)
	}
	return 0, nil
}

type stubSessionRepo struct {
	CreateFn        func(ctx context.Context, sess *model.Session) error
	FindByTokenFn   func(ctx context.Context, token string, now time.Time) (*repository.SessionWithUser, error)
	DeleteByTokenFn func(ctx context.Context, token string) error
	PurgeExpiredFn  func(ctx context.Context, now time.Time) (int64, error)
}

func (s *stubSessionRepo) Create(ctx context.Context, sess *model.Session) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, sess)
	}
	return nil
}

func (s *stubSessionRepo) FindByToken(ctx context.Context, token string, now time.Time) (*repository.SessionWithUser, error) {
	return s.FindByTokenFn(ctx, token, now)
}

func (s *stubSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	if s.DeleteByTokenFn != nil {
		return s.DeleteByTokenFn(ctx, token)
	}
	return nil
}

func (s *stubSessionRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if s.PurgeExpiredFn != nil {
		return s.PurgeExpiredFn(ctx, now)
	}
	return 0, nil
}

// stubNotifRepo records created notifications in memory.
type stubNotifRepo struct {
	created []*model.Notification
}

func (s *stubNotifRepo) Create(ctx context.Context, n *model.Notification) error {
	s.created = append(s.created, n)
	return nil
}

func (s *stubNotifRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range s.created {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (s *stubNotifRepo) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var cnt int64
	for _, n := range s.created {
		if n.UserID == userID && !n.IsRead {
			cnt++
		}
	}
	return cnt, nil
}

func (s *stubNotifRepo) MarkRead(ctx context.Context, userID uint64, ids []uint64) error {
	return nil
}

func (s *stubNotifRepo) MarkAllRead(ctx context.Context, userID uint64) error {
	return nil
}

func (s *stubNotifRepo) PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// noopAudit satisfies AuditService for services under test.
type noopAudit struct {
	actions []string
}

func (a *noopAudit) Record(ctx context.Context, adminID uint64, action, detail string) {
	a.actions = append(a.actions, action)
}

func (a *noopAudit) List(ctx context.Context, page, limit int) ([]repository.AuditEntry, int64, error) {
	return nil, 0, nil
}
