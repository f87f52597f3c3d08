package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCacheServiceTest(t *testing.T, upstream http.HandlerFunc) (CacheService, *[]url.Values) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	var received []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = append(received, r.URL.Query())
		upstream(w, r)
	}))
	t.Cleanup(server.Close)

	// Redis 없이도 동작해야 한다 (이력만 비활성화)
	svc := NewCacheService(server.URL, nil, repository.NewCategoryRepository(testDB))
	return svc, &received
}

func TestCacheService_Invalidate(t *testing.T) {
	svc, received := setupCacheServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"revalidated":["categories"]}`))
	})

	result, err := svc.Invalidate(context.Background(), CacheInvalidationRequest{Type: "categories"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, true, result.Body["success"])
	// 프록시 표시가 붙는다
	assert.Equal(t, true, result.Body["proxied"])

	// 쿼리 파라미터가 그대로 전달된다
	require.Len(t, *received, 1)
	assert.Equal(t, "categories", (*received)[0].Get("type"))
}

func TestCacheService_Invalidate_ForwardsParams(t *testing.T) {
	svc, received := setupCacheServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := svc.Invalidate(context.Background(), CacheInvalidationRequest{
		Type:       "category-products",
		CategoryID: "cat-123",
	})
	require.NoError(t, err)

	require.Len(t, *received, 1)
	assert.Equal(t, "category-products", (*received)[0].Get("type"))
	assert.Equal(t, "cat-123", (*received)[0].Get("categoryId"))
}

func TestCacheService_Invalidate_UpstreamErrorPassesThrough(t *testing.T) {
	svc, _ := setupCacheServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"revalidation failed"}`))
	})

	result, err := svc.Invalidate(context.Background(), CacheInvalidationRequest{Type: "all"})
	require.NoError(t, err)

	// 업스트림 상태 코드가 그대로 돌아온다
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.Equal(t, "revalidation failed", result.Body["error"])
	assert.Equal(t, true, result.Body["proxied"])
}

func TestCacheService_Invalidate_NonJSONBody(t *testing.T) {
	svc, _ := setupCacheServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	result, err := svc.Invalidate(context.Background(), CacheInvalidationRequest{Type: "products"})
	require.NoError(t, err)
	assert.Equal(t, "OK", result.Body["raw"])
	assert.Equal(t, true, result.Body["proxied"])
}

func TestCacheService_History_WithoutRedis(t *testing.T) {
	svc, _ := setupCacheServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	entries, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
