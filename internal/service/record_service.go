package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Clock is injected wherever business rules depend on the current time.
type Clock func() time.Time

// BatchEntry is one submitted (type, weight) pair.
type BatchEntry struct {
	TypeID      uint64
	WeightG     int
	Description *string
}

// BatchResult is the outcome of a successful batch submission. Award is the
// post-commit badge step; its failure does not fail the submission.
type BatchResult struct {
	Records       []model.WasteRecord
	BatchPoints   int
	CurrentPoints int
	Award         AwardResult
}

type RecordService interface {
	SubmitBatch(ctx context.Context, userID uint64, entries []BatchEntry) (*BatchResult, error)
	UpdateRecord(ctx context.Context, userID, recordID uint64, weightG int, description *string) (*model.WasteRecord, error)
	DeleteRecord(ctx context.Context, userID, recordID uint64) error
}

type recordService struct {
	records repository.WasteRecordRepository
	types   WasteTypeService
	badges  BadgeService
	logger  *zap.Logger
	now     Clock
}

func NewRecordService(records repository.WasteRecordRepository, types WasteTypeService, badges BadgeService, logger *zap.Logger, now Clock) RecordService {
	if now == nil {
		now = time.Now
	}
	return &recordService{records: records, types: types, badges: badges, logger: logger, now: now}
}

func (s *recordService) SubmitBatch(ctx context.Context, userID uint64, entries []BatchEntry) (*BatchResult, error) {
	if len(entries) == 0 {
		return nil, Invalid("No records provided")
	}

	// Daily cap is enforced before any points are computed.
	dayStart := startOfDay(s.now())
	submitted, err := s.records.CountForUserBetween(ctx, userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	if submitted+int64(len(entries)) > DailyRecordCap {
		return nil, Invalidf("บันทึกขยะได้สูงสุด %d รายการต่อวัน", DailyRecordCap)
	}

	for _, e := range entries {
		if e.WeightG < 1 || e.WeightG > MaxWeightG {
			return nil, Invalidf("น้ำหนักต้องอยู่ระหว่าง 1 - %d กรัม", MaxWeightG)
		}
	}

	catalog, err := s.types.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	factors := make(map[uint64]float64, len(catalog))
	for _, t := range catalog {
		factors[t.ID] = t.PointFactor
	}

	var unknown []string
	for _, e := range entries {
		if _, ok := factors[e.TypeID]; !ok {
			unknown = append(unknown, fmt.Sprintf("%d", e.TypeID))
		}
	}
	if len(unknown) > 0 {
		return nil, Invalidf("Invalid waste type: %s", strings.Join(unknown, ", "))
	}

	records := make([]*model.WasteRecord, 0, len(entries))
	batchPoints := 0
	for _, e := range entries {
		pts := CalcPoints(e.WeightG, factors[e.TypeID])
		batchPoints += pts
		records = append(records, &model.WasteRecord{
			UserID:      userID,
			TypeID:      e.TypeID,
			WeightG:     e.WeightG,
			Points:      pts,
			Description: e.Description,
		})
	}

	if err := s.records.CreateBatch(ctx, records); err != nil {
		return nil, err
	}

	result := &BatchResult{BatchPoints: batchPoints}
	for _, r := range records {
		result.Records = append(result.Records, *r)
	}

	total, err := s.records.SumPointsByUser(ctx, userID)
	if err != nil {
		// Records are committed; the award step just cannot run.
		s.logger.Warn("total recompute failed after batch commit",
			zap.Uint64("user_id", userID), zap.Error(err))
		result.Award = AwardResult{Err: err}
		return result, nil
	}
	result.CurrentPoints = total
	result.Award = s.badges.AwardFor(ctx, userID, total)
	return result, nil
}

func (s *recordService) UpdateRecord(ctx context.Context, userID, recordID uint64, weightG int, description *string) (*model.WasteRecord, error) {
	rec, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrForbidden
	}
	if s.now().Sub(rec.RecordDt) > EditWindow {
		return nil, Invalid("ไม่สามารถแก้ไขรายการที่บันทึกเกิน 24 ชั่วโมงได้")
	}
	if weightG < 1 || weightG > MaxWeightG {
		return nil, Invalidf("น้ำหนักต้องอยู่ระหว่าง 1 - %d กรัม", MaxWeightG)
	}

	wt, err := s.types.Get(ctx, rec.TypeID)
	if err != nil {
		return nil, err
	}

	// Points follow the type's current factor; already-awarded badges stay.
	rec.WeightG = weightG
	rec.Points = CalcPoints(weightG, wt.PointFactor)
	rec.Description = description
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recordService) DeleteRecord(ctx context.Context, userID, recordID uint64) error {
	rec, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rec.UserID != userID {
		return ErrForbidden
	}
	if s.now().Sub(rec.RecordDt) > EditWindow {
		return Invalid("ไม่สามารถลบรายการที่บันทึกเกิน 24 ชั่วโมงได้")
	}
	return s.records.Delete(ctx, recordID)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
