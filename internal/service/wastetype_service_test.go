package service

import (
	"context"
	"testing"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/cache"
	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCatalogIsCached(t *testing.T) {
	listCalls := 0
	types := &stubTypeRepo{ListFn: func(ctx context.Context) ([]model.WasteType, error) {
		listCalls++
		return testCatalog, nil
	}}
	svc := NewWasteTypeService(types, cache.New(time.Minute, nil), &noopAudit{})

	for i := 0; i < 3; i++ {
		got, err := svc.Catalog(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
	assert.Equal(t, 1, listCalls, "repeat reads within the TTL hit the cache")
}

func TestCatalogRefreshesAfterTTL(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	listCalls := 0
	types := &stubTypeRepo{ListFn: func(ctx context.Context) ([]model.WasteType, error) {
		listCalls++
		return testCatalog, nil
	}}
	svc := NewWasteTypeService(types, cache.New(5*time.Minute, func() time.Time { return clock() }), &noopAudit{})

	_, err := svc.Catalog(context.Background())
	require.NoError(t, err)

	now = now.Add(6 * time.Minute)
	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls)
}

func TestCreateInvalidatesCache(t *testing.T) {
	listCalls := 0
	types := &stubTypeRepo{
		ListFn: func(ctx context.Context) ([]model.WasteType, error) {
			listCalls++
			return testCatalog, nil
		},
		FindByNameFn: func(ctx context.Context, name string) (*model.WasteType, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	audit := &noopAudit{}
	svc := NewWasteTypeService(types, cache.New(time.Minute, nil), audit)

	_, err := svc.Catalog(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, "ขวดแก้ว", nil, 0.04)
	require.NoError(t, err)
	assert.Equal(t, []string{"waste_type.create"}, audit.actions)

	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls, "the mutation evicted the cached catalog")
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	types := &stubTypeRepo{FindByNameFn: func(ctx context.Context, name string) (*model.WasteType, error) {
		return &model.WasteType{ID: 1, Name: name}, nil
	}}
	svc := NewWasteTypeService(types, cache.New(time.Minute, nil), &noopAudit{})

	_, err := svc.Create(context.Background(), 1, "ขวดพลาสติก", nil, 0.05)
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "ประเภทขยะนี้มีอยู่แล้ว", ve.Message)
}

func TestDeleteGuardsTypesInUse(t *testing.T) {
	types := &stubTypeRepo{
		FindByIDFn: func(ctx context.Context, id uint64) (*model.WasteType, error) {
			return &testCatalog[0], nil
		},
		CountRecordsFn: func(ctx context.Context, typeID uint64) (int64, error) {
			return 12, nil
		},
	}
	svc := NewWasteTypeService(types, cache.New(time.Minute, nil), &noopAudit{})

	err := svc.Delete(context.Background(), 1, 1)
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "ไม่สามารถลบประเภทขยะนี้ได้ เนื่องจากมีการใช้งานอยู่ 12 รายการ", ve.Message)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ขยะรีไซเคิล", "รีไซเคิล"},
		{"เศษอาหารอินทรีย์", "อินทรีย์"},
		{"ขยะอันตราย", "อันตราย"},
		{"ขวดพลาสติก", "ทั่วไป"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, categorize(tt.name), tt.name)
	}
}
