package service

import (
	"testing"
	"time"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHomeCategoryServiceTest(t *testing.T) (HomeCategoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	homeRepo := repository.NewHomeCategoryOrderRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	return NewHomeCategoryService(homeRepo, categoryRepo), testDB
}

func seedRoots(t *testing.T, testDB *gorm.DB, names ...string) []model.Category {
	t.Helper()
	roots := make([]model.Category, 0, len(names))
	for _, name := range names {
		category := model.Category{Name: name}
		require.NoError(t, testDB.Create(&category).Error)
		roots = append(roots, category)
	}
	return roots
}

func TestHomeCategoryService_LoadCurrent_Empty(t *testing.T) {
	svc, _ := setupHomeCategoryServiceTest(t)

	version, err := svc.LoadCurrent()
	require.NoError(t, err)
	assert.Empty(t, version.VersionID)
	assert.Empty(t, version.Orders)
}

func TestHomeCategoryService_SaveVersion(t *testing.T) {
	svc, testDB := setupHomeCategoryServiceTest(t)
	roots := seedRoots(t, testDB, "뷰티", "패션", "식품", "리빙")

	// 식품, 뷰티만 이 순서로 노출
	version, err := svc.SaveVersion([]string{roots[2].ID, roots[0].ID})
	require.NoError(t, err)
	assert.NotEmpty(t, version.VersionID)
	require.Len(t, version.Orders, 4)

	orderByCategory := make(map[string]model.HomeCategoryOrder)
	for _, row := range version.Orders {
		orderByCategory[row.CategoryID] = row
	}

	// 선택된 카테고리: 1부터 빈틈없이
	assert.Equal(t, 1, orderByCategory[roots[2].ID].DisplayOrder)
	assert.True(t, orderByCategory[roots[2].ID].IsVisible)
	assert.Equal(t, 2, orderByCategory[roots[0].ID].DisplayOrder)
	assert.True(t, orderByCategory[roots[0].ID].IsVisible)

	// 선택되지 않은 카테고리: 999 + 비노출
	assert.Equal(t, model.HiddenDisplayOrder, orderByCategory[roots[1].ID].DisplayOrder)
	assert.False(t, orderByCategory[roots[1].ID].IsVisible)
	assert.Equal(t, model.HiddenDisplayOrder, orderByCategory[roots[3].ID].DisplayOrder)
	assert.False(t, orderByCategory[roots[3].ID].IsVisible)

	// 모든 행이 같은 버전 ID를 공유한다
	for _, row := range version.Orders {
		assert.Equal(t, version.VersionID, row.VersionID)
	}
}

func TestHomeCategoryService_SaveVersion_NoRoots(t *testing.T) {
	svc, _ := setupHomeCategoryServiceTest(t)

	_, err := svc.SaveVersion([]string{"anything"})
	assert.ErrorIs(t, err, ErrNoTopLevelCategories)
}

func TestHomeCategoryService_SaveIsAdditive(t *testing.T) {
	svc, testDB := setupHomeCategoryServiceTest(t)
	roots := seedRoots(t, testDB, "뷰티", "패션")

	first, err := svc.SaveVersion([]string{roots[0].ID})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := svc.SaveVersion([]string{roots[1].ID})
	require.NoError(t, err)

	assert.NotEqual(t, first.VersionID, second.VersionID)

	// 이전 버전의 행은 그대로 남는다
	var total int64
	require.NoError(t, testDB.Model(&model.HomeCategoryOrder{}).Count(&total).Error)
	assert.Equal(t, int64(4), total)

	// 현재 버전은 가장 최근 저장본
	current, err := svc.LoadCurrent()
	require.NoError(t, err)
	assert.Equal(t, second.VersionID, current.VersionID)
}

func TestHomeCategoryService_Rollback(t *testing.T) {
	svc, testDB := setupHomeCategoryServiceTest(t)
	roots := seedRoots(t, testDB, "뷰티", "패션", "식품")

	original, err := svc.SaveVersion([]string{roots[1].ID, roots[0].ID})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = svc.SaveVersion([]string{roots[2].ID})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	restored, err := svc.Rollback(original.VersionID)
	require.NoError(t, err)
	assert.NotEqual(t, original.VersionID, restored.VersionID)

	// (카테고리, 순서, 노출) 값이 그대로 복사된다
	require.Len(t, restored.Orders, len(original.Orders))
	originalByCategory := make(map[string]model.HomeCategoryOrder)
	for _, row := range original.Orders {
		originalByCategory[row.CategoryID] = row
	}
	for _, row := range restored.Orders {
		source := originalByCategory[row.CategoryID]
		assert.Equal(t, source.DisplayOrder, row.DisplayOrder)
		assert.Equal(t, source.IsVisible, row.IsVisible)
	}

	// 원본 버전은 변경되지 않는다
	var sourceRows []model.HomeCategoryOrder
	require.NoError(t, testDB.Where("version_id = ?", original.VersionID).Find(&sourceRows).Error)
	assert.Len(t, sourceRows, 3)

	// 롤백 결과가 현재 버전이 된다
	current, err := svc.LoadCurrent()
	require.NoError(t, err)
	assert.Equal(t, restored.VersionID, current.VersionID)
}

func TestHomeCategoryService_Rollback_NotFound(t *testing.T) {
	svc, _ := setupHomeCategoryServiceTest(t)

	_, err := svc.Rollback("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrHomeVersionNotFound)
}

func TestHomeCategoryService_ListVersions(t *testing.T) {
	svc, testDB := setupHomeCategoryServiceTest(t)
	roots := seedRoots(t, testDB, "뷰티", "패션")

	var versionIDs []string
	for i := 0; i < 3; i++ {
		version, err := svc.SaveVersion([]string{roots[i%2].ID})
		require.NoError(t, err)
		versionIDs = append(versionIDs, version.VersionID)
		time.Sleep(10 * time.Millisecond)
	}

	versions, err := svc.ListVersions()
	require.NoError(t, err)
	require.Len(t, versions, 3)

	// 최신순
	assert.Equal(t, versionIDs[2], versions[0].VersionID)
	assert.Equal(t, versionIDs[1], versions[1].VersionID)
	assert.Equal(t, versionIDs[0], versions[2].VersionID)

	// 버전마다 루트 수만큼 행
	for _, v := range versions {
		assert.Len(t, v.Orders, 2)
	}
}
