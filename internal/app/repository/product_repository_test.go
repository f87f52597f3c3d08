package repository

import (
	"testing"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductRepoTest(t *testing.T) (ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return NewProductRepository(testDB), testDB
}

func createTestProduct(t *testing.T, repo ProductRepository, name string, categoryID *string) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, Description: name + " 설명", CategoryID: categoryID}
	require.NoError(t, repo.Create(product))
	return product
}

func TestProductRepository_SearchByIDOrName(t *testing.T) {
	repo, _ := setupProductRepoTest(t)

	toner := createTestProduct(t, repo, "그린티 토너", nil)
	createTestProduct(t, repo, "수분 크림", nil)

	t.Run("Exact ID match", func(t *testing.T) {
		products, err := repo.SearchByIDOrName(toner.ProductID)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, toner.ProductID, products[0].ProductID)
	})

	t.Run("Name fragment match", func(t *testing.T) {
		products, err := repo.SearchByIDOrName("토너")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "그린티 토너", products[0].Name)
	})

	t.Run("Partial ID does not match", func(t *testing.T) {
		products, err := repo.SearchByIDOrName(toner.ProductID[:8])
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestProductRepository_CategoryFilter(t *testing.T) {
	repo, gormDB := setupProductRepoTest(t)

	category := &model.Category{Name: "뷰티"}
	require.NoError(t, gormDB.Create(category).Error)

	createTestProduct(t, repo, "토너", &category.ID)
	createTestProduct(t, repo, "크림", &category.ID)
	createTestProduct(t, repo, "미분류 상품", nil)

	t.Run("Without category", func(t *testing.T) {
		filter := ProductFilter{CategoryFilter: CategoryFilterWithout}

		count, err := repo.Count(filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		products, err := repo.FindWithFilter(filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "미분류 상품", products[0].Name)
	})

	t.Run("With specific category", func(t *testing.T) {
		filter := ProductFilter{CategoryFilter: CategoryFilterWith, CategoryID: &category.ID}

		count, err := repo.Count(filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("All", func(t *testing.T) {
		count, err := repo.Count(ProductFilter{CategoryFilter: CategoryFilterAll})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestProductRepository_BulkUpdateCategory(t *testing.T) {
	repo, gormDB := setupProductRepoTest(t)

	category := &model.Category{Name: "스킨케어"}
	require.NoError(t, gormDB.Create(category).Error)

	first := createTestProduct(t, repo, "토너", nil)
	second := createTestProduct(t, repo, "크림", nil)
	untouched := createTestProduct(t, repo, "에센스", nil)

	require.NoError(t, repo.BulkUpdateCategory([]string{first.ProductID, second.ProductID}, category.ID))

	for _, id := range []string{first.ProductID, second.ProductID} {
		product, err := repo.FindByID(id)
		require.NoError(t, err)
		require.NotNil(t, product.CategoryID)
		assert.Equal(t, category.ID, *product.CategoryID)
	}

	product, err := repo.FindByID(untouched.ProductID)
	require.NoError(t, err)
	assert.Nil(t, product.CategoryID)
}
