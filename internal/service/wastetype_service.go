package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/greenschool/zerowaste-backend/internal/cache"
	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"gorm.io/gorm"
)

const catalogCacheKey = "waste_types:catalog"

// WasteTypeWithStats is a catalog entry with admin-facing usage data.
type WasteTypeWithStats struct {
	Type         model.WasteType
	Category     string
	TotalRecords int64
}

type WasteTypeService interface {
	// Catalog serves the type list through the TTL cache; reads may be up
	// to the cache TTL stale.
	Catalog(ctx context.Context) ([]model.WasteType, error)
	Get(ctx context.Context, id uint64) (*model.WasteType, error)
	ListWithStats(ctx context.Context) ([]WasteTypeWithStats, error)
	Create(ctx context.Context, adminID uint64, name string, description *string, pointFactor float64) (*model.WasteType, error)
	Update(ctx context.Context, adminID, id uint64, name string, description *string, pointFactor float64) (*model.WasteType, error)
	Delete(ctx context.Context, adminID, id uint64) error
}

type wasteTypeService struct {
	types   repository.WasteTypeRepository
	catalog *cache.TTLCache
	audit   AuditService
}

func NewWasteTypeService(types repository.WasteTypeRepository, catalog *cache.TTLCache, audit AuditService) WasteTypeService {
	return &wasteTypeService{types: types, catalog: catalog, audit: audit}
}

func (s *wasteTypeService) Catalog(ctx context.Context) ([]model.WasteType, error) {
	if v, ok := s.catalog.Get(catalogCacheKey); ok {
		if types, ok := v.([]model.WasteType); ok {
			return types, nil
		}
	}
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog.Set(catalogCacheKey, types)
	return types, nil
}

func (s *wasteTypeService) Get(ctx context.Context, id uint64) (*model.WasteType, error) {
	wt, err := s.types.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return wt, nil
}

func (s *wasteTypeService) ListWithStats(ctx context.Context) ([]WasteTypeWithStats, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.types.UsageCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]WasteTypeWithStats, 0, len(types))
	for _, t := range types {
		out = append(out, WasteTypeWithStats{
			Type:         t,
			Category:     categorize(t.Name),
			TotalRecords: counts[t.ID],
		})
	}
	return out, nil
}

func (s *wasteTypeService) Create(ctx context.Context, adminID uint64, name string, description *string, pointFactor float64) (*model.WasteType, error) {
	if name == "" || pointFactor < 0 {
		return nil, Invalid("กรุณากรอกข้อมูลให้ครบถ้วนและถูกต้อง")
	}
	if existing, err := s.types.FindByName(ctx, name); err == nil && existing != nil {
		return nil, Invalid("ประเภทขยะนี้มีอยู่แล้ว")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wt := &model.WasteType{Name: name, Description: description, PointFactor: pointFactor}
	if err := s.types.Create(ctx, wt); err != nil {
		return nil, err
	}
	s.catalog.Delete(catalogCacheKey)
	s.audit.Record(ctx, adminID, "waste_type.create", fmt.Sprintf("id=%d name=%s factor=%g", wt.ID, wt.Name, wt.PointFactor))
	return wt, nil
}

func (s *wasteTypeService) Update(ctx context.Context, adminID, id uint64, name string, description *string, pointFactor float64) (*model.WasteType, error) {
	if name == "" || pointFactor < 0 {
		return nil, Invalid("กรุณากรอกข้อมูลให้ครบถ้วนและถูกต้อง")
	}
	wt, err := s.types.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Invalid("ไม่พบประเภทขยะนี้")
		}
		return nil, err
	}
	if name != wt.Name {
		if existing, err := s.types.FindByName(ctx, name); err == nil && existing != nil && existing.ID != id {
			return nil, Invalid("ชื่อประเภทขยะนี้ถูกใช้งานแล้ว")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	wt.Name = name
	wt.Description = description
	wt.PointFactor = pointFactor
	if err := s.types.Update(ctx, wt); err != nil {
		return nil, err
	}
	s.catalog.Delete(catalogCacheKey)
	s.audit.Record(ctx, adminID, "waste_type.update", fmt.Sprintf("id=%d name=%s factor=%g", wt.ID, wt.Name, wt.PointFactor))
	return wt, nil
}

func (s *wasteTypeService) Delete(ctx context.Context, adminID, id uint64) error {
	if _, err := s.types.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Invalid("ไม่พบประเภทขยะนี้")
		}
		return err
	}
	inUse, err := s.types.CountRecords(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return Invalidf("ไม่สามารถลบประเภทขยะนี้ได้ เนื่องจากมีการใช้งานอยู่ %d รายการ", inUse)
	}
	if err := s.types.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.Delete(catalogCacheKey)
	s.audit.Record(ctx, adminID, "waste_type.delete", fmt.Sprintf("id=%d", id))
	return nil
}

// categorize derives the display category the legacy admin screen showed.
func categorize(name string) string {
	switch {
	case strings.Contains(name, "รีไซเคิล") || strings.Contains(name, "Recycle"):
		return "รีไซเคิล"
	case strings.Contains(name, "อินทรีย์") || strings.Contains(name, "Organic"):
		return "อินทรีย์"
	case strings.Contains(name, "อันตราย") || strings.Contains(name, "Hazard"):
		return "อันตราย"
	default:
		return "ทั่วไป"
	}
}
