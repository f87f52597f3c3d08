package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grandeclip/pickdrop-admin-backend/config"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenInfoServer Google tokeninfo 흉내. id_token 값에 따라 응답이 달라진다.
func fakeTokenInfoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id_token") {
		case "valid-internal":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"email":"admin@grandeclip.com","email_verified":"true","name":"관리자"}`))
		case "valid-external":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"email":"someone@gmail.com","email_verified":"true","name":"외부인"}`))
		case "unverified":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"email":"new@grandeclip.com","email_verified":"false"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_token"}`))
		}
	}))
}

func setupAuthServiceTest(t *testing.T) (AuthService, config.AuthConfig) {
	server := fakeTokenInfoServer(t)
	t.Cleanup(server.Close)

	cfg := config.AuthConfig{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  time.Hour,
		AllowedEmailDomain: "@grandeclip.com",
		TokenInfoURL:       server.URL,
	}
	return NewAuthService(cfg), cfg
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	svc, cfg := setupAuthServiceTest(t)

	t.Run("Internal account succeeds", func(t *testing.T) {
		result, err := svc.LoginWithGoogle(context.Background(), "valid-internal")
		require.NoError(t, err)

		assert.Equal(t, "admin@grandeclip.com", result.Email)
		assert.Equal(t, int64(3600), result.ExpiresIn)

		claims, err := util.ValidateAccessToken(result.AccessToken, cfg.JWTSecret)
		require.NoError(t, err)
		assert.Equal(t, "admin@grandeclip.com", claims.Email)
	})

	t.Run("External domain is rejected", func(t *testing.T) {
		_, err := svc.LoginWithGoogle(context.Background(), "valid-external")
		assert.ErrorIs(t, err, ErrDomainNotAllowed)
	})

	t.Run("Unverified email is rejected", func(t *testing.T) {
		_, err := svc.LoginWithGoogle(context.Background(), "unverified")
		assert.ErrorIs(t, err, ErrEmailNotVerified)
	})

	t.Run("Invalid token is rejected", func(t *testing.T) {
		_, err := svc.LoginWithGoogle(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidGoogleToken)
	})

	t.Run("Empty token is rejected", func(t *testing.T) {
		_, err := svc.LoginWithGoogle(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidGoogleToken)
	})
}
