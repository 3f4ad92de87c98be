package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/cache"
	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCatalog = []model.WasteType{
	{ID: 1, Name: "ขวดพลาสติก", PointFactor: 0.05},
	{ID: 2, Name: "กระดาษ", PointFactor: 0.03},
}

func newTestTypeService(types repository.WasteTypeRepository) WasteTypeService {
	return NewWasteTypeService(types, cache.New(time.Minute, nil), &noopAudit{})
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestSubmitBatchValidation(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	types := &stubTypeRepo{ListFn: func(ctx context.Context) ([]model.WasteType, error) {
		return testCatalog, nil
	}}

	tests := []struct {
		name      string
		entries   []BatchEntry
		submitted int64
		wantMsg   string
	}{
		{
			name:    "empty batch",
			entries: nil,
			wantMsg: "No records provided",
		},
		{
			name: "daily cap would be exceeded",
			entries: []BatchEntry{
				{TypeID: 1, WeightG: 100},
				{TypeID: 1, WeightG: 100},
			},
			submitted: 49,
			wantMsg:   "บันทึกขยะได้สูงสุด 50 รายการต่อวัน",
		},
		{
			name:    "weight below minimum",
			entries: []BatchEntry{{TypeID: 1, WeightG: 0}},
			wantMsg: "น้ำหนักต้องอยู่ระหว่าง 1 - 100000 กรัม",
		},
		{
			name:    "weight above maximum",
			entries: []BatchEntry{{TypeID: 1, WeightG: 100001}},
			wantMsg: "น้ำหนักต้องอยู่ระหว่าง 1 - 100000 กรัม",
		},
		{
			name:    "unknown waste type",
			entries: []BatchEntry{{TypeID: 9, WeightG: 100}},
			wantMsg: "Invalid waste type: 9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := &stubRecordRepo{
				CountForUserBetweenFn: func(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
					return tt.submitted, nil
				},
				CreateBatchFn: func(ctx context.Context, recs []*model.WasteRecord) error {
					t.Fatal("CreateBatch must not run for a rejected batch")
					return nil
				},
			}
			badges := NewBadgeService(&stubBadgeRepo{}, records, NewNotificationService(&stubNotifRepo{}), zap.NewNop())
			svc := NewRecordService(records, newTestTypeService(types), badges, zap.NewNop(), fixedClock(now))

			_, err := svc.SubmitBatch(context.Background(), 7, tt.entries)
			ve, ok := IsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestSubmitBatchAwardsPoints(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	types := &stubTypeRepo{ListFn: func(ctx context.Context) ([]model.WasteType, error) {
		return testCatalog, nil
	}}

	var created []*model.WasteRecord
	records := &stubRecordRepo{
		CreateBatchFn: func(ctx context.Context, recs []*model.WasteRecord) error {
			created = recs
			return nil
		},
		SumPointsByUserFn: func(ctx context.Context, userID uint64) (int, error) {
			return 340, nil
		},
	}
	badgeRepo := &stubBadgeRepo{
		QualifyingFn: func(ctx context.Context, totalPoints int, excludeIDs []uint64) ([]model.Badge, error) {
			assert.Equal(t, 340, totalPoints)
			return []model.Badge{
				{ID: 1, Name: "ก้าวแรก", ThresholdPts: 1},
				{ID: 2, Name: "นักสะสมมือใหม่", ThresholdPts: 100},
			}, nil
		},
	}
	notifRepo := &stubNotifRepo{}
	badges := NewBadgeService(badgeRepo, records, NewNotificationService(notifRepo), zap.NewNop())
	svc := NewRecordService(records, newTestTypeService(types), badges, zap.NewNop(), fixedClock(now))

	result, err := svc.SubmitBatch(context.Background(), 7, []BatchEntry{
		{TypeID: 1, WeightG: 5000},
		{TypeID: 2, WeightG: 3000},
	})
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, 250, created[0].Points)
	assert.Equal(t, 90, created[1].Points)

	assert.Equal(t, 340, result.BatchPoints)
	assert.Equal(t, 340, result.CurrentPoints)
	require.NoError(t, result.Award.Err)
	require.Len(t, result.Award.NewBadges, 2)
	assert.Equal(t, "ก้าวแรก", result.Award.NewBadges[0].Name)

	// One notification per new badge.
	assert.Len(t, notifRepo.created, 2)
}

func TestSubmitBatchAwardFailureDoesNotFailSubmission(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	types := &stubTypeRepo{ListFn: func(ctx context.Context) ([]model.WasteType, error) {
		return testCatalog, nil
	}}
	records := &stubRecordRepo{
		SumPointsByUserFn: func(ctx context.Context, userID uint64) (int, error) {
			return 0, errors.New("db gone")
		},
	}
	badges := NewBadgeService(&stubBadgeRepo{}, records, NewNotificationService(&stubNotifRepo{}), zap.NewNop())
	svc := NewRecordService(records, newTestTypeService(types), badges, zap.NewNop(), fixedClock(now))

	result, err := svc.SubmitBatch(context.Background(), 7, []BatchEntry{{TypeID: 1, WeightG: 100}})
	require.NoError(t, err)
	assert.Error(t, result.Award.Err)
	assert.Empty(t, result.Award.NewBadges)
}

func TestUpdateRecord(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	types := &stubTypeRepo{
		ListFn: func(ctx context.Context) ([]model.WasteType, error) { return testCatalog, nil },
		FindByIDFn: func(ctx context.Context, id uint64) (*model.WasteType, error) {
			return &testCatalog[0], nil
		},
	}

	rec := func(owner uint64, age time.Duration) *model.WasteRecord {
		return &model.WasteRecord{ID: 10, UserID: owner, TypeID: 1, WeightG: 1000, Points: 50, RecordDt: now.Add(-age)}
	}

	t.Run("not owner", func(t *testing.T) {
		records := &stubRecordRepo{FindByIDFn: func(ctx context.Context, id uint64) (*model.WasteRecord, error) {
			return rec(99, time.Hour), nil
		}}
		svc := NewRecordService(records, newTestTypeService(types), nil, zap.NewNop(), fixedClock(now))
		_, err := svc.UpdateRecord(context.Background(), 7, 10, 2000, nil)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("outside edit window", func(t *testing.T) {
		records := &stubRecordRepo{FindByIDFn: func(ctx context.Context, id uint64) (*model.WasteRecord, error) {
			return rec(7, 25*time.Hour), nil
		}}
		svc := NewRecordService(records, newTestTypeService(types), nil, zap.NewNop(), fixedClock(now))
		_, err := svc.UpdateRecord(context.Background(), 7, 10, 2000, nil)
		ve, ok := IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "ไม่สามารถแก้ไขรายการที่บันทึกเกิน 24 ชั่วโมงได้", ve.Message)
	})

	t.Run("recomputes points from current factor", func(t *testing.T) {
		var saved *model.WasteRecord
		records := &stubRecordRepo{
			FindByIDFn: func(ctx context.Context, id uint64) (*model.WasteRecord, error) {
				return rec(7, time.Hour), nil
			},
			UpdateFn: func(ctx context.Context, r *model.WasteRecord) error {
				saved = r
				return nil
			},
		}
		svc := NewRecordService(records, newTestTypeService(types), nil, zap.NewNop(), fixedClock(now))
		got, err := svc.UpdateRecord(context.Background(), 7, 10, 2000, nil)
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, 2000, got.WeightG)
		assert.Equal(t, 100, got.Points) // 2000 * 0.05
	})
}

func TestDeleteRecord(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	types := &stubTypeRepo{ListFn: func(ctx context.Context) ([]model.WasteType, error) { return testCatalog, nil }}

	t.Run("outside edit window", func(t *testing.T) {
		records := &stubRecordRepo{FindByIDFn: func(ctx context.Context, id uint64) (*model.WasteRecord, error) {
			return &model.WasteRecord{ID: 10, UserID: 7, RecordDt: now.Add(-24*time.Hour - time.Minute)}, nil
		}}
		svc := NewRecordService(records, newTestTypeService(types), nil, zap.NewNop(), fixedClock(now))
		err := svc.DeleteRecord(context.Background(), 7, 10)
		ve, ok := IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "ไม่สามารถลบรายการที่บันทึกเกิน 24 ชั่วโมงได้", ve.Message)
	})

	t.Run("within window", func(t *testing.T) {
		deleted := false
		records := &stubRecordRepo{
			FindByIDFn: func(ctx context.Context, id uint64) (*model.WasteRecord, error) {
				return &model.WasteRecord{ID: 10, UserID: 7, RecordDt: now.Add(-23 * time.Hour)}, nil
			},
			DeleteFn: func(ctx context.Context, id uint64) error {
				deleted = true
				return nil
			},
		}
		svc := NewRecordService(records, newTestTypeService(types), nil, zap.NewNop(), fixedClock(now))
		require.NoError(t, svc.DeleteRecord(context.Background(), 7, 10))
		assert.True(t, deleted)
	})
}
