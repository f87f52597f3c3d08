package repository

import (
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortName      ProductSort = "name"
)

// CategoryFilterMode 카테고리 필터 모드
type CategoryFilterMode string

const (
	CategoryFilterAll     CategoryFilterMode = "all"     // 전체
	CategoryFilterWith    CategoryFilterMode = "with"    // 카테고리 있는 상품 (특정 카테고리 선택 가능)
	CategoryFilterWithout CategoryFilterMode = "without" // 카테고리 없는 상품
)

// ProductFilter 목록 조회 조건. created_at 정렬과 브랜드/카테고리 필터만
// 쿼리로 내려가고, 나머지(브랜드명 정렬, 자유 검색)는 서비스에서
// 가져온 페이지에 대해서만 적용된다.
type ProductFilter struct {
	BrandID        *string
	CategoryFilter CategoryFilterMode
	CategoryID     *string
	SortBy         ProductSort
	SortAscending  bool
	Limit          int
	Offset         int
}

type ProductRepository interface {
	Create(product *model.Product) error
	Count(filter ProductFilter) (int64, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	SearchByName(term string) ([]model.Product, error)
	SearchByIDOrName(term string) ([]model.Product, error)
	Update(product *model.Product) error
	UpdateImageURL(id string, imageURL string) error
	BulkUpdateCategory(ids []string, categoryID string) error
	Delete(id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"brand_id": product.BrandID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ProductID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.BrandID != nil && *filter.BrandID != "" {
		query = query.Where("products.brand_id = ?", *filter.BrandID)
	}

	switch filter.CategoryFilter {
	case CategoryFilterWith:
		if filter.CategoryID != nil && *filter.CategoryID != "" {
			query = query.Where("products.category_id = ?", *filter.CategoryID)
		} else {
			query = query.Where("products.category_id IS NOT NULL")
		}
	case CategoryFilterWithout:
		query = query.Where("products.category_id IS NULL")
	}

	return query
}

func (r *productRepository) Count(filter ProductFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.Model(&model.Product{}), filter)
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to count products", err)
		return 0, err
	}
	return count, nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"brand_id":        filter.BrandID,
		"category_filter": filter.CategoryFilter,
		"category_id":     filter.CategoryID,
		"sort_by":         filter.SortBy,
		"ascending":       filter.SortAscending,
		"limit":           filter.Limit,
		"offset":          filter.Offset,
	})

	query := r.applyFilter(
		r.db.Model(&model.Product{}).Preload("Brand").Preload("Category"),
		filter,
	)

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortName:
		query = query.Order("products.name " + direction)
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err)
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id string) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Brand").Preload("Category").
		First(&product, "product_id = ?", id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

// SearchByName 상품명 부분 일치 검색 (자동완성용)
func (r *productRepository) SearchByName(term string) ([]model.Product, error) {
	var products []model.Product
	like := "%" + term + "%"
	err := r.db.Where("lower(name) LIKE lower(?)", like).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to search products by name", err, map[string]interface{}{
			"term": term,
		})
		return nil, err
	}
	return products, nil
}

// SearchByIDOrName MD Pick 검색용. ID 완전 일치 또는 이름 부분 일치.
func (r *productRepository) SearchByIDOrName(term string) ([]model.Product, error) {
	var products []model.Product
	like := "%" + term + "%"
	err := r.db.Where("product_id = ? OR lower(name) LIKE lower(?)", term, like).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to search products by ID or name", err, map[string]interface{}{
			"term": term,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ProductID,
		"name":       product.Name,
	})

	err := r.db.Model(product).
		Select("name", "description", "brand_id", "category_id").
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"brand_id":    product.BrandID,
			"category_id": product.CategoryID,
		}).Error
	if err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ProductID,
		})
		return err
	}
	return nil
}

func (r *productRepository) UpdateImageURL(id string, imageURL string) error {
	logger.Debug("Updating product image URL in database", map[string]interface{}{
		"product_id": id,
		"image_url":  imageURL,
	})

	err := r.db.Model(&model.Product{}).
		Where("product_id = ?", id).
		Update("image_url", imageURL).Error
	if err != nil {
		logger.Error("Failed to update product image URL", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

// BulkUpdateCategory 선택한 상품들의 카테고리를 한 번의 UPDATE로 일괄 변경.
// 호출 단위로 전부 반영되거나 전부 실패한다.
func (r *productRepository) BulkUpdateCategory(ids []string, categoryID string) error {
	logger.Debug("Bulk updating product category in database", map[string]interface{}{
		"product_count": len(ids),
		"category_id":   categoryID,
	})

	err := r.db.Model(&model.Product{}).
		Where("product_id IN ?", ids).
		Update("category_id", categoryID).Error
	if err != nil {
		logger.Error("Failed to bulk update product category", err, map[string]interface{}{
			"product_count": len(ids),
			"category_id":   categoryID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id string) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, "product_id = ?", id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
