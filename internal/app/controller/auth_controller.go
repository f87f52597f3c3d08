package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/service"
	apperrors "github.com/grandeclip/pickdrop-admin-backend/internal/errors"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GoogleLogin Google ID 토큰으로 로그인하고 관리자 세션 토큰을 발급
func (ctrl *AuthController) GoogleLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid google login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "id_token이 필요합니다")
		return
	}

	result, err := ctrl.authService.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		switch err {
		case service.ErrInvalidGoogleToken:
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "유효하지 않은 인증 정보입니다")
		case service.ErrEmailNotVerified:
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthEmailNotVerified, "이메일 인증이 완료되지 않은 계정입니다")
		case service.ErrDomainNotAllowed:
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthDomainNotAllowed, "사내 계정으로만 로그인할 수 있습니다")
		default:
			log.Error("Google login failed", err, nil)
			apperrors.InternalError(c, "로그인 처리 중 오류가 발생했습니다")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me 현재 세션 정보 조회
func (ctrl *AuthController) Me(c *gin.Context) {
	email, exists := middleware.GetAdminEmail(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	name, _ := c.Get(middleware.AdminNameKey)
	c.JSON(http.StatusOK, gin.H{
		"email": email,
		"name":  name,
	})
}
