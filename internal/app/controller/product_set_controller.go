package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/service"
	apperrors "github.com/grandeclip/pickdrop-admin-backend/internal/errors"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/github"
)

type ProductSetController struct {
	productSetService service.ProductSetService
	dispatcher        github.WorkflowDispatcher
}

func NewProductSetController(
	productSetService service.ProductSetService,
	dispatcher github.WorkflowDispatcher,
) *ProductSetController {
	return &ProductSetController{
		productSetService: productSetService,
		dispatcher:        dispatcher,
	}
}

type RegisterLinksRequest struct {
	// 쉼표로 구분된 링크 문자열. 큰따옴표와 공백은 정리된다.
	Links string `json:"links" binding:"required"`
}

type MDPickRequest struct {
	MDPick bool `json:"md_pick"`
}

type RecordPriceRequest struct {
	OriginalPrice int64  `json:"original_price" binding:"required"`
	DiscountPrice *int64 `json:"discount_price"`
	ShippingFee   int64  `json:"shipping_fee"`
	PriceMetadata string `json:"price_metadata"`
}

type TriggerRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// RegisterLinks 상품에 판매 링크들을 세트로 일괄 등록하고 크롤링을 건다
func (ctrl *ProductSetController) RegisterLinks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	productID := c.Param("id")

	var req RegisterLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "links가 필요합니다")
		return
	}

	result, err := ctrl.productSetService.RegisterProductSets(c.Request.Context(), productID, req.Links)
	if err != nil {
		switch err {
		case service.ErrNoLinksGiven:
			apperrors.BadRequest(c, apperrors.ProductSetNoLinks, "등록할 링크가 없습니다")
		case service.ErrProductNotFound:
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
		default:
			log.Error("Failed to register product sets", err, map[string]interface{}{
				"product_id": productID,
			})
			info := apperrors.ParseError(err, "product_set create")
			apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// SearchMDPick MD Pick 관리 화면 검색
func (ctrl *ProductSetController) SearchMDPick(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	entries, err := ctrl.productSetService.SearchMDPick(c.Query("q"))
	if err != nil {
		log.Error("Failed to search product sets for MD pick", err, nil)
		apperrors.InternalError(c, "기획 세트 검색 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// SetMDPick 세트의 MD Pick 노출 여부 변경
func (ctrl *ProductSetController) SetMDPick(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req MDPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "md_pick 값이 필요합니다")
		return
	}

	if err := ctrl.productSetService.SetMDPick(id, req.MDPick); err != nil {
		if err == service.ErrProductSetNotFound {
			apperrors.NotFound(c, apperrors.ProductSetNotFound, "기획 세트를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to set MD pick", err, map[string]interface{}{
			"product_set_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "MD Pick 설정이 변경되었습니다",
	})
}

// RecordPrice 세트에 가격 이력 한 건 추가 (크롤러 연동용)
func (ctrl *ProductSetController) RecordPrice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req RecordPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "original_price가 필요합니다")
		return
	}

	history, err := ctrl.productSetService.RecordPrice(id, req.OriginalPrice, req.DiscountPrice, req.ShippingFee, req.PriceMetadata)
	if err != nil {
		if err == service.ErrProductSetNotFound {
			apperrors.NotFound(c, apperrors.ProductSetNotFound, "기획 세트를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to record price history", err, map[string]interface{}{
			"product_set_id": id,
		})
		info := apperrors.ParseError(err, "price create")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"price_history": history,
	})
}

// DeleteProductSet 세트 삭제
func (ctrl *ProductSetController) DeleteProductSet(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.productSetService.DeleteProductSet(id); err != nil {
		if err == service.ErrProductSetNotFound {
			apperrors.NotFound(c, apperrors.ProductSetNotFound, "기획 세트를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete product set", err, map[string]interface{}{
			"product_set_id": id,
		})
		info := apperrors.ParseError(err, "product_set delete")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "기획 세트가 삭제되었습니다",
	})
}

// TriggerCrawl 상품 단위 크롤링 워크플로 수동 실행
func (ctrl *ProductSetController) TriggerCrawl(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "productId가 필요합니다")
		return
	}

	if err := ctrl.dispatcher.DispatchCrawl(c.Request.Context(), req.ProductID); err != nil {
		log.Error("Failed to dispatch crawl workflow", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.InternalExternalAPI, "크롤링 실행 요청에 실패했습니다")
		return
	}

	log.Info("Crawl workflow dispatched", map[string]interface{}{
		"product_id": req.ProductID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":   "크롤링이 실행되었습니다",
		"productId": req.ProductID,
	})
}
