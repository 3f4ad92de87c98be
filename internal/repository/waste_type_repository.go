package repository

import (
	"context"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"gorm.io/gorm"
)

type WasteTypeRepository interface {
	Create(ctx context.Context, t *model.WasteType) error
	Update(ctx context.Context, t *model.WasteType) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.WasteType, error)
	FindByName(ctx context.Context, name string) (*model.WasteType, error)
	List(ctx context.Context) ([]model.WasteType, error)
	CountRecords(ctx context.Context, typeID uint64) (int64, error)
	UsageCounts(ctx context.Context) (map[uint64]int64, error)
}

type wasteTypeRepository struct {
	db *gorm.DB
}

func NewWasteTypeRepository(db *gorm.DB) WasteTypeRepository {
	return &wasteTypeRepository{db: db}
}

func (r *wasteTypeRepository) Create(ctx context.Context, t *model.WasteType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *wasteTypeRepository) Update(ctx context.Context, t *model.WasteType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *wasteTypeRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.WasteType{}, id).Error
}

func (r *wasteTypeRepository) FindByID(ctx context.Context, id uint64) (*model.WasteType, error) {
	var t model.WasteType
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *wasteTypeRepository) FindByName(ctx context.Context, name string) (*model.WasteType, error) {
	var t model.WasteType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *wasteTypeRepository) List(ctx context.Context) ([]model.WasteType, error) {
	var types []model.WasteType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *wasteTypeRepository) CountRecords(ctx context.Context, typeID uint64) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Where("type_id = ?", typeID).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *wasteTypeRepository) UsageCounts(ctx context.Context) (map[uint64]int64, error) {
	var rows []struct {
		TypeID uint64
		Cnt    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.WasteRecord{}).
		Select("type_id, COUNT(*) AS cnt").
		Group("type_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.TypeID] = row.Cnt
	}
	return counts, nil
}
