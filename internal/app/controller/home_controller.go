package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/service"
	apperrors "github.com/grandeclip/pickdrop-admin-backend/internal/errors"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
)

type HomeController struct {
	homeService service.HomeCategoryService
}

func NewHomeController(homeService service.HomeCategoryService) *HomeController {
	return &HomeController{homeService: homeService}
}

type SaveVersionRequest struct {
	// 노출할 1depth 카테고리 ID를 노출 순서대로
	CategoryIDs []string `json:"category_ids" binding:"required"`
}

// GetCurrent 현재(최신) 홈 카테고리 버전 조회
func (ctrl *HomeController) GetCurrent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	version, err := ctrl.homeService.LoadCurrent()
	if err != nil {
		log.Error("Failed to load current home category version", err, nil)
		apperrors.InternalError(c, "홈 카테고리 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, version)
}

// ListVersions 저장된 버전 이력 (최신순, 최대 20개)
func (ctrl *HomeController) ListVersions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	versions, err := ctrl.homeService.ListVersions()
	if err != nil {
		log.Error("Failed to list home category versions", err, nil)
		apperrors.InternalError(c, "버전 이력 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"versions": versions,
		"count":    len(versions),
	})
}

// SaveVersion 새 버전 저장 (전체 교체)
func (ctrl *HomeController) SaveVersion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SaveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "category_ids가 필요합니다")
		return
	}

	version, err := ctrl.homeService.SaveVersion(req.CategoryIDs)
	if err != nil {
		if err == service.ErrNoTopLevelCategories {
			apperrors.BadRequest(c, apperrors.CategoryNotRoot, "저장할 1depth 카테고리가 없습니다")
			return
		}
		log.Error("Failed to save home category version", err, nil)
		info := apperrors.ParseError(err, "home version create")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, version)
}

// Rollback 과거 버전을 복사해 새 버전으로 저장
func (ctrl *HomeController) Rollback(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	versionID := c.Param("version_id")

	version, err := ctrl.homeService.Rollback(versionID)
	if err != nil {
		if err == service.ErrHomeVersionNotFound {
			apperrors.NotFound(c, apperrors.HomeVersionNotFound, "선택한 시점의 데이터를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to rollback home category version", err, map[string]interface{}{
			"version_id": versionID,
		})
		info := apperrors.ParseError(err, "home version rollback")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, version)
}
