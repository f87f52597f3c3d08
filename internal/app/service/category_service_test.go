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

func setupCategoryServiceTest(t *testing.T) (CategoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	categoryRepo := repository.NewCategoryRepository(testDB)
	return NewCategoryService(categoryRepo), testDB
}

func createCategory(t *testing.T, testDB *gorm.DB, name string, parentID *string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, ParentID: parentID}
	require.NoError(t, testDB.Create(category).Error)
	return category
}

func TestCategoryService_ResolveHierarchy(t *testing.T) {
	svc, testDB := setupCategoryServiceTest(t)

	root := createCategory(t, testDB, "뷰티", nil)
	mid := createCategory(t, testDB, "스킨케어", &root.ID)
	leaf := createCategory(t, testDB, "토너", &mid.ID)

	t.Run("Leaf resolves full path", func(t *testing.T) {
		hierarchy, err := svc.ResolveHierarchy(leaf.ID)
		require.NoError(t, err)

		assert.Equal(t, leaf.ID, hierarchy.ID)
		assert.Equal(t, 2, hierarchy.Level)
		require.Len(t, hierarchy.Path, 3)
		assert.Equal(t, "뷰티", hierarchy.Path[0].Name)
		assert.Equal(t, "스킨케어", hierarchy.Path[1].Name)
		assert.Equal(t, "토너", hierarchy.Path[2].Name)
	})

	t.Run("Root has level zero", func(t *testing.T) {
		hierarchy, err := svc.ResolveHierarchy(root.ID)
		require.NoError(t, err)

		assert.Equal(t, 0, hierarchy.Level)
		require.Len(t, hierarchy.Path, 1)
	})

	t.Run("Unknown id is not found", func(t *testing.T) {
		_, err := svc.ResolveHierarchy("00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("Missing parent is treated as terminal", func(t *testing.T) {
		ghost := "11111111-1111-1111-1111-111111111111"
		orphan := createCategory(t, testDB, "고아", &ghost)

		hierarchy, err := svc.ResolveHierarchy(orphan.ID)
		require.NoError(t, err)

		// 끊어진 지점이 루트가 된다
		assert.Equal(t, 0, hierarchy.Level)
		require.Len(t, hierarchy.Path, 1)
		assert.Equal(t, orphan.ID, hierarchy.Path[0].ID)
	})
}

func TestCategoryService_ListCategoriesFlat(t *testing.T) {
	svc, testDB := setupCategoryServiceTest(t)

	fashion := createCategory(t, testDB, "패션", nil)
	beauty := createCategory(t, testDB, "뷰티", nil)
	createCategory(t, testDB, "스킨케어", &beauty.ID)
	createCategory(t, testDB, "메이크업", &beauty.ID)
	createCategory(t, testDB, "아우터", &fashion.ID)

	flat, err := svc.ListCategoriesFlat()
	require.NoError(t, err)
	require.Len(t, flat, 5)

	// 루트 가나다순, 각 루트 아래 자식도 가나다순으로 깊이 우선
	names := make([]string, 0, len(flat))
	levels := make([]int, 0, len(flat))
	for _, entry := range flat {
		names = append(names, entry.Name)
		levels = append(levels, entry.Level)
	}
	assert.Equal(t, []string{"뷰티", "메이크업", "스킨케어", "패션", "아우터"}, names)
	assert.Equal(t, []int{0, 1, 1, 0, 1}, levels)
}

func TestCategoryService_UpdateCategory_CycleCheck(t *testing.T) {
	svc, testDB := setupCategoryServiceTest(t)

	root := createCategory(t, testDB, "뷰티", nil)
	child := createCategory(t, testDB, "스킨케어", &root.ID)
	grandchild := createCategory(t, testDB, "토너", &child.ID)

	t.Run("Self as parent is rejected", func(t *testing.T) {
		err := svc.UpdateCategory(root.ID, "뷰티", &root.ID)
		assert.ErrorIs(t, err, ErrCategoryCycle)
	})

	t.Run("Descendant as parent is rejected", func(t *testing.T) {
		err := svc.UpdateCategory(root.ID, "뷰티", &grandchild.ID)
		assert.ErrorIs(t, err, ErrCategoryCycle)
	})

	t.Run("Valid reparent succeeds", func(t *testing.T) {
		other := createCategory(t, testDB, "패션", nil)
		err := svc.UpdateCategory(child.ID, "스킨케어", &other.ID)
		require.NoError(t, err)

		var updated model.Category
		require.NoError(t, testDB.First(&updated, "id = ?", child.ID).Error)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, other.ID, *updated.ParentID)
	})

	t.Run("Detach to root persists nil parent", func(t *testing.T) {
		err := svc.UpdateCategory(grandchild.ID, "토너", nil)
		require.NoError(t, err)

		var updated model.Category
		require.NoError(t, testDB.First(&updated, "id = ?", grandchild.ID).Error)
		assert.Nil(t, updated.ParentID)
	})
}

func TestCategoryService_CreateCategory(t *testing.T) {
	svc, testDB := setupCategoryServiceTest(t)

	root := createCategory(t, testDB, "뷰티", nil)

	t.Run("With existing parent", func(t *testing.T) {
		category, err := svc.CreateCategory("스킨케어", &root.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, category.ID)
		require.NotNil(t, category.ParentID)
		assert.Equal(t, root.ID, *category.ParentID)
	})

	t.Run("With unknown parent", func(t *testing.T) {
		ghost := "00000000-0000-0000-0000-000000000000"
		_, err := svc.CreateCategory("유령", &ghost)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("Empty parent string becomes root", func(t *testing.T) {
		empty := ""
		category, err := svc.CreateCategory("식품", &empty)
		require.NoError(t, err)
		assert.Nil(t, category.ParentID)
	})
}
