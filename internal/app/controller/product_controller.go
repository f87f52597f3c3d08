package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/service"
	apperrors "github.com/grandeclip/pickdrop-admin-backend/internal/errors"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	BrandID     *string `json:"brand_id"`
	CategoryID  *string `json:"category_id"`
}

type BulkCategoryRequest struct {
	ProductIDs []string `json:"product_ids" binding:"required"`
	CategoryID string   `json:"category_id" binding:"required"`
}

// ListProducts 상품 목록 (페이지네이션 + 필터 + 정렬 + 페이지 내 검색)
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	params := service.ProductListParams{
		Page:           page,
		PerPage:        perPage,
		SortBy:         service.ProductListSort(c.DefaultQuery("sort_by", "created_at")),
		SortAscending:  c.DefaultQuery("order", "desc") == "asc",
		CategoryFilter: repository.CategoryFilterMode(c.DefaultQuery("category_filter", "all")),
		Search:         c.Query("search"),
	}
	if brandID := c.Query("brand_id"); brandID != "" {
		params.BrandID = &brandID
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		params.CategoryID = &categoryID
	}

	result, err := ctrl.productService.ListProducts(params)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "상품 목록 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchProducts 상품명 자동완성 검색
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.SearchProducts(c.Query("q"))
	if err != nil {
		log.Error("Failed to search products", err, nil)
		apperrors.InternalError(c, "상품 검색 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct 상품 상세 (카테고리 경로, 세트, 최신 가격 포함)
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	detail, err := ctrl.productService.GetProductDetail(id)
	if err != nil {
		if err == service.ErrProductNotFound {
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch product detail", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateProduct 상품 등록. multipart/form-data로 이미지를 함께 받을 수 있다.
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	name := c.PostForm("name")
	description := c.PostForm("description")
	if name == "" || description == "" {
		apperrors.RespondWithValidationError(c, map[string]string{
			"name":        "상품명은 필수 항목입니다",
			"description": "상품 설명은 필수 항목입니다",
		})
		return
	}

	var brandID *string
	if v := c.PostForm("brand_id"); v != "" {
		brandID = &v
	}

	var image *service.ProductImageUpload
	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			log.Warn("Failed to open uploaded image", map[string]interface{}{
				"error": err.Error(),
			})
			apperrors.BadRequest(c, apperrors.UploadFailed, "이미지 파일을 읽을 수 없습니다")
			return
		}
		defer file.Close()

		image = &service.ProductImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Body:        file,
		}
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), name, description, brandID, image)
	if err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": name,
		})
		info := apperrors.ParseError(err, "product create")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "상품명과 설명이 필요합니다")
		return
	}

	if err := ctrl.productService.UpdateProduct(id, req.Name, req.Description, req.BrandID, req.CategoryID); err != nil {
		if err == service.ErrProductNotFound {
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		info := apperrors.ParseError(err, "product update")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "상품이 수정되었습니다",
	})
}

func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if err == service.ErrProductNotFound {
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		info := apperrors.ParseError(err, "product delete")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "상품이 삭제되었습니다",
	})
}

// BulkAssignCategory 선택 상품들의 카테고리 일괄 지정
func (ctrl *ProductController) BulkAssignCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "product_ids와 category_id가 필요합니다")
		return
	}

	if err := ctrl.productService.BulkAssignCategory(req.ProductIDs, req.CategoryID); err != nil {
		if err == service.ErrNoProductsGiven {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "선택된 상품이 없습니다")
			return
		}
		log.Error("Failed to bulk assign category", err, map[string]interface{}{
			"product_count": len(req.ProductIDs),
			"category_id":   req.CategoryID,
		})
		info := apperrors.ParseError(err, "product update")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "카테고리가 일괄 지정되었습니다",
		"count":   len(req.ProductIDs),
	})
}
