package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/service"
	apperrors "github.com/grandeclip/pickdrop-admin-backend/internal/errors"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
)

// 무효화 타입별 필수 파라미터
var invalidationTypes = map[string]string{
	"categories":        "",
	"products":          "",
	"category-products": "categoryId",
	"all":               "",
	"path":              "path",
}

type CacheController struct {
	cacheService service.CacheService
}

func NewCacheController(cacheService service.CacheService) *CacheController {
	return &CacheController{cacheService: cacheService}
}

// Usage 사용법 안내 (인증 없이 접근 가능)
func (ctrl *CacheController) Usage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"description": "운영 서비스 캐시 무효화 프록시",
		"usage":       "POST /api/cache?type=<type>",
		"types": gin.H{
			"categories":        "카테고리 캐시 무효화",
			"products":          "상품 캐시 무효화",
			"category-products": "특정 카테고리의 상품 캐시 무효화 (categoryId 필수)",
			"all":               "전체 캐시 무효화",
			"path":              "특정 경로 캐시 무효화 (path 필수)",
		},
		"examples": []string{
			"POST /api/cache?type=categories",
			"POST /api/cache?type=category-products&categoryId=<uuid>",
			"POST /api/cache?type=path&path=/products/123",
		},
	})
}

// Invalidate 무효화 요청을 운영 서비스로 전달
func (ctrl *CacheController) Invalidate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	req := service.CacheInvalidationRequest{
		Type:       c.Query("type"),
		CategoryID: c.Query("categoryId"),
		Path:       c.Query("path"),
	}

	required, known := invalidationTypes[req.Type]
	if !known {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "지원하지 않는 무효화 타입입니다")
		return
	}
	if required == "categoryId" && req.CategoryID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "categoryId가 필요합니다")
		return
	}
	if required == "path" && req.Path == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "path가 필요합니다")
		return
	}

	result, err := ctrl.cacheService.Invalidate(c.Request.Context(), req)
	if err != nil {
		log.Error("Cache invalidation failed", err, map[string]interface{}{
			"type": req.Type,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.InternalExternalAPI, "캐시 무효화 요청에 실패했습니다")
		return
	}

	// 업스트림 상태 코드를 그대로 전달
	c.JSON(result.StatusCode, result.Body)
}

// History 무효화 호출 이력 (최신순, 최대 50건)
func (ctrl *CacheController) History(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	entries, err := ctrl.cacheService.History(c.Request.Context())
	if err != nil {
		log.Error("Failed to load cache history", err, nil)
		apperrors.InternalError(c, "이력 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": entries,
		"count":   len(entries),
	})
}
