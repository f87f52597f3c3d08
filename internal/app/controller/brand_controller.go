package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/service"
	apperrors "github.com/grandeclip/pickdrop-admin-backend/internal/errors"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
)

type BrandController struct {
	brandService service.BrandService
}

func NewBrandController(brandService service.BrandService) *BrandController {
	return &BrandController{brandService: brandService}
}

type BrandRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListBrands 브랜드 전체 목록 (자동완성용, 가나다순)
func (ctrl *BrandController) ListBrands(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if term := c.Query("q"); term != "" {
		brands, err := ctrl.brandService.SearchBrands(term)
		if err != nil {
			log.Error("Failed to search brands", err, nil)
			apperrors.InternalError(c, "브랜드 검색 중 오류가 발생했습니다")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"brands": brands,
			"count":  len(brands),
		})
		return
	}

	brands, err := ctrl.brandService.ListBrands()
	if err != nil {
		log.Error("Failed to list brands", err, nil)
		apperrors.InternalError(c, "브랜드 목록 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
		"count":  len(brands),
	})
}

func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "브랜드명이 필요합니다")
		return
	}

	brand, err := ctrl.brandService.CreateBrand(req.Name)
	if err != nil {
		log.Error("Failed to create brand", err, map[string]interface{}{
			"name": req.Name,
		})
		info := apperrors.ParseError(err, "brand create")
		statusCode := http.StatusInternalServerError
		if info.Code == apperrors.BrandAlreadyExists {
			statusCode = http.StatusConflict
		}
		apperrors.RespondWithError(c, statusCode, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"brand": brand,
	})
}

func (ctrl *BrandController) UpdateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "브랜드명이 필요합니다")
		return
	}

	if err := ctrl.brandService.UpdateBrand(id, req.Name); err != nil {
		if err == service.ErrBrandNotFound {
			apperrors.NotFound(c, apperrors.BrandNotFound, "브랜드를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to update brand", err, map[string]interface{}{
			"brand_id": id,
		})
		info := apperrors.ParseError(err, "brand update")
		statusCode := http.StatusInternalServerError
		if info.Code == apperrors.BrandAlreadyExists {
			statusCode = http.StatusConflict
		}
		apperrors.RespondWithError(c, statusCode, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "브랜드가 수정되었습니다",
	})
}

func (ctrl *BrandController) DeleteBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.brandService.DeleteBrand(id); err != nil {
		if err == service.ErrBrandNotFound {
			apperrors.NotFound(c, apperrors.BrandNotFound, "브랜드를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete brand", err, map[string]interface{}{
			"brand_id": id,
		})
		info := apperrors.ParseError(err, "brand delete")
		statusCode := http.StatusInternalServerError
		if info.Code == apperrors.ResourceConflict {
			statusCode = http.StatusConflict
		}
		apperrors.RespondWithError(c, statusCode, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "브랜드가 삭제되었습니다",
	})
}
