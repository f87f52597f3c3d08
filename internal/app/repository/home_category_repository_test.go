package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHomeCategoryRepoTest(t *testing.T) (HomeCategoryOrderRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return NewHomeCategoryOrderRepository(testDB), testDB
}

func createTestCategory(t *testing.T, gormDB *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, gormDB.Create(category).Error)
	return category
}

func TestHomeCategoryOrderRepository_LatestVersionID(t *testing.T) {
	repo, gormDB := setupHomeCategoryRepoTest(t)
	category := createTestCategory(t, gormDB, "뷰티")

	t.Run("Empty table returns empty string", func(t *testing.T) {
		versionID, err := repo.LatestVersionID()
		require.NoError(t, err)
		assert.Empty(t, versionID)
	})

	t.Run("Most recent version wins", func(t *testing.T) {
		older := uuid.NewString()
		newer := uuid.NewString()
		base := time.Now().Add(-time.Hour)

		require.NoError(t, repo.InsertVersion([]model.HomeCategoryOrder{
			{VersionID: older, CategoryID: category.ID, DisplayOrder: 1, IsVisible: true, CreatedAt: base},
		}))
		require.NoError(t, repo.InsertVersion([]model.HomeCategoryOrder{
			{VersionID: newer, CategoryID: category.ID, DisplayOrder: 1, IsVisible: true, CreatedAt: base.Add(time.Minute)},
		}))

		versionID, err := repo.LatestVersionID()
		require.NoError(t, err)
		assert.Equal(t, newer, versionID)
	})

	t.Run("Equal timestamps break tie on version_id", func(t *testing.T) {
		repo, gormDB := setupHomeCategoryRepoTest(t)
		category := createTestCategory(t, gormDB, "패션")

		sameTime := time.Now().Truncate(time.Second)
		require.NoError(t, repo.InsertVersion([]model.HomeCategoryOrder{
			{VersionID: "aaaaaaaa-0000-0000-0000-000000000000", CategoryID: category.ID, DisplayOrder: 1, IsVisible: true, CreatedAt: sameTime},
		}))
		require.NoError(t, repo.InsertVersion([]model.HomeCategoryOrder{
			{VersionID: "bbbbbbbb-0000-0000-0000-000000000000", CategoryID: category.ID, DisplayOrder: 1, IsVisible: true, CreatedAt: sameTime},
		}))

		versionID, err := repo.LatestVersionID()
		require.NoError(t, err)
		assert.Equal(t, "bbbbbbbb-0000-0000-0000-000000000000", versionID)
	})
}

func TestHomeCategoryOrderRepository_InsertVersion_Atomic(t *testing.T) {
	repo, gormDB := setupHomeCategoryRepoTest(t)
	category := createTestCategory(t, gormDB, "뷰티")

	versionID := uuid.NewString()
	duplicateID := uuid.NewString()
	rows := []model.HomeCategoryOrder{
		{ID: duplicateID, VersionID: versionID, CategoryID: category.ID, DisplayOrder: 1, IsVisible: true, CreatedAt: time.Now()},
		// 기본 키 충돌로 두 번째 행이 실패한다
		{ID: duplicateID, VersionID: versionID, CategoryID: category.ID, DisplayOrder: 2, IsVisible: true, CreatedAt: time.Now()},
	}

	err := repo.InsertVersion(rows)
	require.Error(t, err)

	// 트랜잭션 롤백으로 첫 행도 남지 않는다
	var count int64
	require.NoError(t, gormDB.Model(&model.HomeCategoryOrder{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHomeCategoryOrderRepository_FindByVersionID(t *testing.T) {
	repo, gormDB := setupHomeCategoryRepoTest(t)
	beauty := createTestCategory(t, gormDB, "뷰티")
	fashion := createTestCategory(t, gormDB, "패션")
	food := createTestCategory(t, gormDB, "식품")

	versionID := uuid.NewString()
	now := time.Now()
	require.NoError(t, repo.InsertVersion([]model.HomeCategoryOrder{
		{VersionID: versionID, CategoryID: food.ID, DisplayOrder: model.HiddenDisplayOrder, IsVisible: false, CreatedAt: now},
		{VersionID: versionID, CategoryID: fashion.ID, DisplayOrder: 2, IsVisible: true, CreatedAt: now},
		{VersionID: versionID, CategoryID: beauty.ID, DisplayOrder: 1, IsVisible: true, CreatedAt: now},
	}))

	rows, err := repo.FindByVersionID(versionID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// display_order 오름차순, 숨김 행은 맨 뒤
	assert.Equal(t, beauty.ID, rows[0].CategoryID)
	assert.Equal(t, fashion.ID, rows[1].CategoryID)
	assert.Equal(t, food.ID, rows[2].CategoryID)
	assert.False(t, rows[2].IsVisible)

	// 카테고리 이름이 함께 로드된다
	require.NotNil(t, rows[0].Category)
	assert.Equal(t, "뷰티", rows[0].Category.Name)

	t.Run("Unknown version returns empty", func(t *testing.T) {
		rows, err := repo.FindByVersionID(uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
