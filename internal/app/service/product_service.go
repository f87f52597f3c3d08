package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/internal/storage"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/util"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoProductsGiven = errors.New("no product ids given")
)

// ProductListSort 목록 정렬 기준. created_at만 쿼리로 내려가고
// name/brand는 가져온 페이지 안에서만 정렬된다.
type ProductListSort string

const (
	ProductListSortCreatedAt ProductListSort = "created_at"
	ProductListSortName      ProductListSort = "name"
	ProductListSortBrand     ProductListSort = "brand"
)

// ProductListParams 상품 목록 조회 파라미터
type ProductListParams struct {
	Page           int
	PerPage        int
	SortBy         ProductListSort
	SortAscending  bool
	BrandID        *string
	CategoryFilter repository.CategoryFilterMode
	CategoryID     *string
	Search         string
}

// ProductListResult 목록과 전체 건수 (검색어 적용 전 기준)
type ProductListResult struct {
	Items      []model.Product `json:"items"`
	Pagination util.Pagination `json:"pagination"`
}

// ProductImageUpload 생성 시 함께 올라오는 이미지
type ProductImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ProductSetWithPrice 상세 화면용: 세트 + 최신 가격
type ProductSetWithPrice struct {
	model.ProductSet
	LatestPrice *model.PriceHistory `json:"latest_price"`
}

// ProductDetail 상품 상세: 브랜드/카테고리 경로/세트까지 한 번에
type ProductDetail struct {
	Product   model.Product         `json:"product"`
	Hierarchy *CategoryHierarchy    `json:"category_hierarchy"`
	Sets      []ProductSetWithPrice `json:"product_sets"`
}

type ProductService interface {
	ListProducts(params ProductListParams) (*ProductListResult, error)
	SearchProducts(term string) ([]model.Product, error)
	GetProductDetail(id string) (*ProductDetail, error)
	CreateProduct(ctx context.Context, name, description string, brandID *string, image *ProductImageUpload) (*model.Product, error)
	UpdateProduct(id, name, description string, brandID, categoryID *string) error
	DeleteProduct(id string) error
	BulkAssignCategory(productIDs []string, categoryID string) error
}

type productService struct {
	productRepo      repository.ProductRepository
	productSetRepo   repository.ProductSetRepository
	priceHistoryRepo repository.PriceHistoryRepository
	categoryService  CategoryService
	imageStorage     storage.ImageStorage
	collator         *collate.Collator
}

func NewProductService(
	productRepo repository.ProductRepository,
	productSetRepo repository.ProductSetRepository,
	priceHistoryRepo repository.PriceHistoryRepository,
	categoryService CategoryService,
	imageStorage storage.ImageStorage,
) ProductService {
	return &productService{
		productRepo:      productRepo,
		productSetRepo:   productSetRepo,
		priceHistoryRepo: priceHistoryRepo,
		categoryService:  categoryService,
		imageStorage:     imageStorage,
		collator:         collate.New(language.Korean),
	}
}

// ListProducts 페이지 단위 목록 조회.
// created_at 정렬과 브랜드/카테고리 필터는 쿼리로 처리하고,
// 이름/브랜드 정렬과 자유 검색(이름, 설명, 브랜드명)은 가져온
// 페이지에 대해서만 적용된다. totalCount는 검색어 적용 전 기준이다.
func (s *productService) ListProducts(params ProductListParams) (*ProductListResult, error) {
	filter := repository.ProductFilter{
		BrandID:        params.BrandID,
		CategoryFilter: params.CategoryFilter,
		CategoryID:     params.CategoryID,
		SortBy:         repository.ProductSortCreatedAt,
		SortAscending:  params.SortAscending,
	}

	totalCount, err := s.productRepo.Count(filter)
	if err != nil {
		logger.Error("Failed to count products", err)
		return nil, err
	}

	pagination := util.NewPagination(params.Page, params.PerPage, totalCount)
	filter.Limit = pagination.PerPage
	filter.Offset = pagination.Offset()

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	if term := strings.TrimSpace(params.Search); term != "" {
		products = s.filterPage(products, term)
	}

	switch params.SortBy {
	case ProductListSortName:
		s.sortPage(products, params.SortAscending, func(p model.Product) string {
			return p.Name
		})
	case ProductListSortBrand:
		s.sortPage(products, params.SortAscending, func(p model.Product) string {
			if p.Brand != nil {
				return p.Brand.Name
			}
			return ""
		})
	}

	logger.Debug("Products listed", map[string]interface{}{
		"page":        pagination.Page,
		"total_count": totalCount,
		"returned":    len(products),
	})

	return &ProductListResult{
		Items:      products,
		Pagination: pagination,
	}, nil
}

// filterPage 현재 페이지 항목에 대한 자유 검색.
// 상품명, 설명, 브랜드명 중 하나라도 포함하면 남긴다.
func (s *productService) filterPage(products []model.Product, term string) []model.Product {
	lowered := strings.ToLower(term)
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lowered) ||
			strings.Contains(strings.ToLower(p.Description), lowered) ||
			(p.Brand != nil && strings.Contains(strings.ToLower(p.Brand.Name), lowered)) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (s *productService) sortPage(products []model.Product, ascending bool, key func(model.Product) string) {
	sort.SliceStable(products, func(i, j int) bool {
		cmp := s.collator.CompareString(key(products[i]), key(products[j]))
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}

// SearchProducts 상품명 자동완성 검색
func (s *productService) SearchProducts(term string) ([]model.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.Product{}, nil
	}
	return s.productRepo.SearchByName(term)
}

// GetProductDetail 상품 + 카테고리 경로 + 세트별 최신 가격
func (s *productService) GetProductDetail(id string) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	detail := &ProductDetail{Product: *product}

	if product.CategoryID != nil && *product.CategoryID != "" {
		hierarchy, err := s.categoryService.ResolveHierarchy(*product.CategoryID)
		if err != nil && !errors.Is(err, ErrCategoryNotFound) {
			return nil, err
		}
		detail.Hierarchy = hierarchy
	}

	sets, err := s.productSetRepo.FindByProductID(id)
	if err != nil {
		return nil, err
	}

	setIDs := make([]string, 0, len(sets))
	for _, set := range sets {
		setIDs = append(setIDs, set.ProductSetID)
	}
	latest, err := s.priceHistoryRepo.LatestByProductSetIDs(setIDs)
	if err != nil {
		return nil, err
	}

	detail.Sets = make([]ProductSetWithPrice, 0, len(sets))
	for _, set := range sets {
		entry := ProductSetWithPrice{ProductSet: set}
		if price, ok := latest[set.ProductSetID]; ok {
			p := price
			entry.LatestPrice = &p
		}
		detail.Sets = append(detail.Sets, entry)
	}

	return detail, nil
}

// CreateProduct 상품 생성. 이미지가 있으면 생성 후
// products/<product_id>.<확장자> 키로 업로드하고 image_url을 갱신한다.
// 업로드 실패는 로그만 남기고 상품은 이미지 없이 유지된다.
func (s *productService) CreateProduct(ctx context.Context, name, description string, brandID *string, image *ProductImageUpload) (*model.Product, error) {
	logger.Info("Creating new product", map[string]interface{}{
		"name":      name,
		"brand_id":  brandID,
		"has_image": image != nil,
	})

	if image != nil {
		if err := s.imageStorage.ValidateContentType(image.ContentType); err != nil {
			return nil, err
		}
		if err := s.imageStorage.ValidateFileSize(image.Size); err != nil {
			return nil, err
		}
	}

	product := &model.Product{
		Name:        name,
		Description: description,
		BrandID:     normalizeID(brandID),
	}
	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	if image != nil {
		fileURL, err := s.imageStorage.UploadProductImage(ctx, product.ProductID, image.Filename, image.ContentType, image.Body)
		if err != nil {
			// 이미지 없이 상품만 남긴다. 이미지는 수정 화면에서 다시 올릴 수 있다.
			logger.Warn("Product image upload failed, product saved without image", map[string]interface{}{
				"product_id": product.ProductID,
				"error":      err.Error(),
			})
		} else if err := s.productRepo.UpdateImageURL(product.ProductID, fileURL); err != nil {
			logger.Warn("Failed to persist product image URL", map[string]interface{}{
				"product_id": product.ProductID,
				"error":      err.Error(),
			})
		} else {
			product.ImageURL = &fileURL
		}
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ProductID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *productService) UpdateProduct(id, name, description string, brandID, categoryID *string) error {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
		"name":       name,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	product := &model.Product{
		ProductID:   id,
		Name:        name,
		Description: description,
		BrandID:     normalizeID(brandID),
		CategoryID:  normalizeID(categoryID),
	}
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) DeleteProduct(id string) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// BulkAssignCategory 선택한 상품들을 하나의 카테고리에 일괄 지정.
// 한 번의 UPDATE로 처리되어 호출 단위로 전부 반영되거나 전부 실패한다.
func (s *productService) BulkAssignCategory(productIDs []string, categoryID string) error {
	if len(productIDs) == 0 {
		return ErrNoProductsGiven
	}

	logger.Info("Bulk assigning product category", map[string]interface{}{
		"product_count": len(productIDs),
		"category_id":   categoryID,
	})

	if err := s.productRepo.BulkUpdateCategory(productIDs, categoryID); err != nil {
		logger.Error("Failed to bulk assign product category", err, map[string]interface{}{
			"product_count": len(productIDs),
			"category_id":   categoryID,
		})
		return err
	}

	logger.Info("Product categories assigned", map[string]interface{}{
		"product_count": len(productIDs),
		"category_id":   categoryID,
	})
	return nil
}

func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
