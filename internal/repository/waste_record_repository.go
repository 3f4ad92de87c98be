package repository

import (
	"context"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"gorm.io/gorm"
)

// RecordWithType is a record row joined with its waste-type name.
type RecordWithType struct {
	ID       uint64
	TypeID   uint64
	TypeName string
	WeightG  int
	Points   int
	RecordDt time.Time
}

// UserPointSummary aggregates one user's records for ranking.
type UserPointSummary struct {
	UserID       uint64
	Name         string
	Role         model.Role
	Grade        *int
	ClassSection *string
	TotalPoints  int
	TotalWeight  int
	RecordCount  int
}

// TypeUsage aggregates one user's records per waste type.
type TypeUsage struct {
	TypeID   uint64
	TypeName string
	WeightG  int
	Points   int
}

// RecordTotals is the school-wide aggregate over a period.
type RecordTotals struct {
	Records int64
	WeightG int64
	Points  int64
}

// ExportRow is one CSV export line joined with user and type names.
type ExportRow struct {
	RecordDt     time.Time
	UserName     string
	Grade        *int
	ClassSection *string
	TypeName     string
	WeightG      int
	Points       int
}

type WasteRecordRepository interface {
	CreateBatch(ctx context.Context, records []*model.WasteRecord) error
	FindByID(ctx context.Context, id uint64) (*model.WasteRecord, error)
	Update(ctx context.Context, rec *model.WasteRecord) error
	Delete(ctx context.Context, id uint64) error
	CountForUserBetween(ctx context.Context, userID uint64, from, to time.Time) (int64, error)
	SumPointsByUser(ctx context.Context, userID uint64) (int, error)
	ListRecentWithType(ctx context.Context, userID uint64, limit int) ([]RecordWithType, error)
	ListForUserSince(ctx context.Context, userID uint64, since time.Time) ([]RecordWithType, error)
	SumByTypeForUser(ctx context.Context, userID uint64) ([]TypeUsage, error)
	PointSummaries(ctx context.Context, since *time.Time) ([]UserPointSummary, error)
	Totals(ctx context.Context, since *time.Time) (RecordTotals, error)
	ListForExport(ctx context.Context, start, end *time.Time, limit int) ([]ExportRow, error)
}

type wasteRecordRepository struct {
	db *gorm.DB
}

func NewWasteRecordRepository(db *gorm.DB) WasteRecordRepository {
	return &wasteRecordRepository{db: db}
}

// CreateBatch inserts the whole batch in one transaction; partial batches
// never persist.
func (r *wasteRecordRepository) CreateBatch(ctx context.Context, records []*model.WasteRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *wasteRecordRepository) FindByID(ctx context.Context, id uint64) (*model.WasteRecord, error) {
	var rec model.WasteRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *wasteRecordRepository) Update(ctx context.Context, rec *model.WasteRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *wasteRecordRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.WasteRecord{}, id).Error
}

func (r *wasteRecordRepository) CountForUserBetween(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Where("user_id = ? AND record_dt >= ? AND record_dt < ?", userID, from, to).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *wasteRecordRepository) SumPointsByUser(ctx context.Context, userID uint64) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *wasteRecordRepository) ListRecentWithType(ctx context.Context, userID uint64, limit int) ([]RecordWithType, error) {
	var rows []RecordWithType
	if err := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Select("waste_records.id, waste_records.type_id, waste_types.name AS type_name, waste_records.weight_g, waste_records.points, waste_records.record_dt").
		Joins("JOIN waste_types ON waste_types.id = waste_records.type_id").
		Where("waste_records.user_id = ?", userID).
		Order("waste_records.record_dt DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *wasteRecordRepository) ListForUserSince(ctx context.Context, userID uint64, since time.Time) ([]RecordWithType, error) {
	var rows []RecordWithType
	if err := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Select("waste_records.id, waste_records.type_id, waste_types.name AS type_name, waste_records.weight_g, waste_records.points, waste_records.record_dt").
		Joins("JOIN waste_types ON waste_types.id = waste_records.type_id").
		Where("waste_records.user_id = ? AND waste_records.record_dt >= ?", userID, since).
		Order("waste_records.record_dt ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *wasteRecordRepository) SumByTypeForUser(ctx context.Context, userID uint64) ([]TypeUsage, error) {
	var rows []TypeUsage
	if err := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Select("waste_records.type_id, waste_types.name AS type_name, COALESCE(SUM(waste_records.weight_g), 0) AS weight_g, COALESCE(SUM(waste_records.points), 0) AS points").
		Joins("JOIN waste_types ON waste_types.id = waste_records.type_id").
		Where("waste_records.user_id = ?", userID).
		Group("waste_records.type_id, waste_types.name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// PointSummaries returns per-user sums for everyone with at least one record
// in the period; since == nil means all time.
func (r *wasteRecordRepository) PointSummaries(ctx context.Context, since *time.Time) ([]UserPointSummary, error) {
	var rows []UserPointSummary
	q := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("users.id AS user_id, users.name, users.role, users.grade, users.class_section, COALESCE(SUM(waste_records.points), 0) AS total_points, COALESCE(SUM(waste_records.weight_g), 0) AS total_weight, COUNT(waste_records.id) AS record_count").
		Joins("JOIN waste_records ON waste_records.user_id = users.id")
	if since != nil {
		q = q.Where("waste_records.record_dt >= ?", *since)
	}
	if err := q.Group("users.id, users.name, users.role, users.grade, users.class_section").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *wasteRecordRepository) Totals(ctx context.Context, since *time.Time) (RecordTotals, error) {
	var t RecordTotals
	q := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Select("COUNT(*) AS records, COALESCE(SUM(weight_g), 0) AS weight_g, COALESCE(SUM(points), 0) AS points")
	if since != nil {
		q = q.Where("record_dt >= ?", *since)
	}
	if err := q.Scan(&t).Error; err != nil {
		return RecordTotals{}, err
	}
	return t, nil
}

func (r *wasteRecordRepository) ListForExport(ctx context.Context, start, end *time.Time, limit int) ([]ExportRow, error) {
	var rows []ExportRow
	q := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Select("waste_records.record_dt, users.name AS user_name, users.grade, users.class_section, waste_types.name AS type_name, waste_records.weight_g, waste_records.points").
		Joins("JOIN users ON users.id = waste_records.user_id").
		Joins("JOIN waste_types ON waste_types.id = waste_records.type_id")
	if start != nil && end != nil {
		q = q.Where("waste_records.record_dt >= ? AND waste_records.record_dt <= ?", *start, *end)
	}
	if err := q.Order("waste_records.record_dt DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
