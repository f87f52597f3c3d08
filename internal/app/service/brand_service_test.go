package service

import (
	"testing"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBrandServiceTest(t *testing.T) (BrandService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewBrandService(repository.NewBrandRepository(testDB)), testDB
}

func TestBrandService_ListBrands(t *testing.T) {
	svc, testDB := setupBrandServiceTest(t)

	for _, name := range []string{"설화수", "이니스프리", "라네즈"} {
		require.NoError(t, testDB.Create(&model.Brand{Name: name}).Error)
	}

	brands, err := svc.ListBrands()
	require.NoError(t, err)
	require.Len(t, brands, 3)

	// 가나다순
	assert.Equal(t, "라네즈", brands[0].Name)
	assert.Equal(t, "설화수", brands[1].Name)
	assert.Equal(t, "이니스프리", brands[2].Name)
}

func TestBrandService_CreateBrand_Duplicate(t *testing.T) {
	svc, _ := setupBrandServiceTest(t)

	_, err := svc.CreateBrand("이니스프리")
	require.NoError(t, err)

	// 이름 유니크 제약 위반
	_, err = svc.CreateBrand("이니스프리")
	assert.Error(t, err)
}

func TestBrandService_UpdateBrand(t *testing.T) {
	svc, testDB := setupBrandServiceTest(t)

	brand := &model.Brand{Name: "이니스프리"}
	require.NoError(t, testDB.Create(brand).Error)

	require.NoError(t, svc.UpdateBrand(brand.BrandID, "이니스프리 리브랜딩"))

	var updated model.Brand
	require.NoError(t, testDB.First(&updated, "brand_id = ?", brand.BrandID).Error)
	assert.Equal(t, "이니스프리 리브랜딩", updated.Name)

	err := svc.UpdateBrand("00000000-0000-0000-0000-000000000000", "없는 브랜드")
	assert.ErrorIs(t, err, ErrBrandNotFound)
}

func TestBrandService_DeleteBrand(t *testing.T) {
	svc, testDB := setupBrandServiceTest(t)

	brand := &model.Brand{Name: "이니스프리"}
	require.NoError(t, testDB.Create(brand).Error)

	require.NoError(t, svc.DeleteBrand(brand.BrandID))

	var count int64
	require.NoError(t, testDB.Model(&model.Brand{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	err := svc.DeleteBrand(brand.BrandID)
	assert.ErrorIs(t, err, ErrBrandNotFound)
}
