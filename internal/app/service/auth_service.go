package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grandeclip/pickdrop-admin-backend/config"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/util"
)

var (
	ErrInvalidGoogleToken = errors.New("invalid google id token")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrDomainNotAllowed   = errors.New("email domain is not allowed")
)

// googleTokenInfo Google tokeninfo 엔드포인트 응답 중 필요한 필드
type googleTokenInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"` // "true" / "false" 문자열로 온다
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
	Expiry        string `json:"exp"`
}

// LoginResult 로그인 성공 시 내려주는 세션 정보
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Picture     string `json:"picture,omitempty"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthService interface {
	LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error)
}

type authService struct {
	cfg        config.AuthConfig
	httpClient *http.Client
}

func NewAuthService(cfg config.AuthConfig) AuthService {
	return &authService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// LoginWithGoogle Google ID 토큰을 tokeninfo로 검증하고 사내 도메인
// 계정인지 확인한 뒤 관리자 세션 토큰을 발급한다.
// 이메일 미인증 계정과 외부 도메인 계정은 거부된다.
func (s *authService) LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error) {
	info, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	if info.EmailVerified != "true" {
		logger.Warn("Login rejected: email not verified", map[string]interface{}{
			"email": info.Email,
		})
		return nil, ErrEmailNotVerified
	}

	if !strings.HasSuffix(strings.ToLower(info.Email), strings.ToLower(s.cfg.AllowedEmailDomain)) {
		logger.Warn("Login rejected: email domain not allowed", map[string]interface{}{
			"email": info.Email,
		})
		return nil, ErrDomainNotAllowed
	}

	accessToken, err := util.GenerateAccessToken(info.Email, info.Name, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry)
	if err != nil {
		logger.Error("Failed to generate access token", err, map[string]interface{}{
			"email": info.Email,
		})
		return nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"email": info.Email,
	})

	return &LoginResult{
		AccessToken: accessToken,
		Email:       info.Email,
		Name:        info.Name,
		Picture:     info.Picture,
		ExpiresIn:   int64(s.cfg.AccessTokenExpiry.Seconds()),
	}, nil
}

func (s *authService) verifyIDToken(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	if idToken == "" {
		return nil, ErrInvalidGoogleToken
	}

	params := url.Values{}
	params.Set("id_token", idToken)
	requestURL := fmt.Sprintf("%s?%s", s.cfg.TokenInfoURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to call google tokeninfo", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// tokeninfo는 유효하지 않은 토큰에 4xx를 돌려준다
	if resp.StatusCode != http.StatusOK {
		logger.Warn("Google tokeninfo rejected token", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, ErrInvalidGoogleToken
	}

	var info googleTokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, ErrInvalidGoogleToken
	}
	if info.Email == "" {
		return nil, ErrInvalidGoogleToken
	}
	return &info, nil
}
