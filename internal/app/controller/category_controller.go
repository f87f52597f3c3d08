package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/service"
	apperrors "github.com/grandeclip/pickdrop-admin-backend/internal/errors"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CategoryRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parent_id"`
}

// ListCategories 전체 카테고리 목록.
// flat=true면 트리 표시 순서(이름순 깊이 우선)로 평탄화해 내려준다.
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if c.Query("flat") == "true" {
		flat, err := ctrl.categoryService.ListCategoriesFlat()
		if err != nil {
			log.Error("Failed to list categories", err, nil)
			apperrors.InternalError(c, "카테고리 목록 조회 중 오류가 발생했습니다")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"categories": flat,
			"count":      len(flat),
		})
		return
	}

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "카테고리 목록 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetHierarchy 카테고리의 루트→리프 경로 조회
func (ctrl *CategoryController) GetHierarchy(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	hierarchy, err := ctrl.categoryService.ResolveHierarchy(id)
	if err != nil {
		if err == service.ErrCategoryNotFound {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "카테고리를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to resolve category hierarchy", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, hierarchy)
}

func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "카테고리 이름이 필요합니다")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name, req.ParentID)
	if err != nil {
		if err == service.ErrCategoryNotFound {
			apperrors.BadRequest(c, apperrors.CategoryNotFound, "존재하지 않는 상위 카테고리입니다")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		info := apperrors.ParseError(err, "category create")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "카테고리 이름이 필요합니다")
		return
	}

	if err := ctrl.categoryService.UpdateCategory(id, req.Name, req.ParentID); err != nil {
		switch err {
		case service.ErrCategoryNotFound:
			apperrors.NotFound(c, apperrors.CategoryNotFound, "카테고리를 찾을 수 없습니다")
		case service.ErrCategoryCycle:
			apperrors.Conflict(c, apperrors.CategoryCycle, "자기 자신이나 하위 카테고리를 상위로 지정할 수 없습니다")
		default:
			log.Error("Failed to update category", err, map[string]interface{}{
				"category_id": id,
			})
			info := apperrors.ParseError(err, "category update")
			apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "카테고리가 수정되었습니다",
	})
}

func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		if err == service.ErrCategoryNotFound {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "카테고리를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		info := apperrors.ParseError(err, "category delete")
		statusCode := http.StatusInternalServerError
		if info.Code == apperrors.CategoryInUse {
			statusCode = http.StatusConflict
		}
		apperrors.RespondWithError(c, statusCode, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "카테고리가 삭제되었습니다",
	})
}
