package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrCacheProxyFailed = errors.New("cache invalidation proxy failed")

// cacheHistoryKey Redis 리스트 키. 최신 항목이 머리에 온다.
const (
	cacheHistoryKey = "cache:invalidation:history"
	cacheHistoryMax = 50
)

// CacheInvalidationRequest /api/cache 쿼리 파라미터
type CacheInvalidationRequest struct {
	Type       string `form:"type" json:"type"`
	CategoryID string `form:"categoryId" json:"categoryId,omitempty"`
	Path       string `form:"path" json:"path,omitempty"`
}

// CacheProxyResult 업스트림 응답 + proxied 표시
type CacheProxyResult struct {
	StatusCode int
	Body       map[string]interface{}
}

// CacheHistoryEntry 무효화 호출 이력 한 건
type CacheHistoryEntry struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	CategoryID   string `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	Path         string `json:"path,omitempty"`
	Timestamp    string `json:"timestamp"`
	Status       string `json:"status"` // success | error
	Message      string `json:"message"`
}

type CacheService interface {
	Invalidate(ctx context.Context, req CacheInvalidationRequest) (*CacheProxyResult, error)
	History(ctx context.Context) ([]CacheHistoryEntry, error)
}

type cacheService struct {
	targetURL    string
	httpClient   *http.Client
	redisClient  *redis.Client
	categoryRepo repository.CategoryRepository
}

func NewCacheService(targetURL string, redisClient *redis.Client, categoryRepo repository.CategoryRepository) CacheService {
	return &cacheService{
		targetURL: targetURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		redisClient:  redisClient,
		categoryRepo: categoryRepo,
	}
}

// Invalidate 무효화 요청을 운영 서비스로 그대로 전달한다.
// 업스트림 상태 코드를 그대로 돌려주고 응답 JSON에 proxied: true를 붙인다.
// 호출 결과는 성공/실패 모두 이력에 남는다.
func (s *cacheService) Invalidate(ctx context.Context, req CacheInvalidationRequest) (*CacheProxyResult, error) {
	logger.Info("Proxying cache invalidation", map[string]interface{}{
		"type":        req.Type,
		"category_id": req.CategoryID,
		"path":        req.Path,
	})

	params := url.Values{}
	params.Set("type", req.Type)
	if req.CategoryID != "" {
		params.Set("categoryId", req.CategoryID)
	}
	if req.Path != "" {
		params.Set("path", req.Path)
	}

	result, err := s.forward(ctx, params)

	entry := CacheHistoryEntry{
		ID:         uuid.NewString(),
		Type:       req.Type,
		CategoryID: req.CategoryID,
		Path:       req.Path,
		Timestamp:  time.Now().Format(time.RFC3339),
	}
	if req.CategoryID != "" {
		entry.CategoryName = s.categoryName(req.CategoryID)
	}
	if err != nil {
		entry.Status = "error"
		entry.Message = err.Error()
	} else if result.StatusCode >= 200 && result.StatusCode < 300 {
		entry.Status = "success"
		entry.Message = fmt.Sprintf("캐시 무효화 완료 (%s)", req.Type)
	} else {
		entry.Status = "error"
		entry.Message = fmt.Sprintf("업스트림 응답 %d", result.StatusCode)
	}
	s.appendHistory(ctx, entry)

	if err != nil {
		logger.Error("Cache invalidation proxy failed", err, map[string]interface{}{
			"type": req.Type,
		})
		return nil, fmt.Errorf("%w: %v", ErrCacheProxyFailed, err)
	}
	return result, nil
}

func (s *cacheService) forward(ctx context.Context, params url.Values) (*CacheProxyResult, error) {
	requestURL := fmt.Sprintf("%s?%s", s.targetURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{}
	if len(rawBody) > 0 {
		if err := json.Unmarshal(rawBody, &body); err != nil {
			// JSON이 아니면 원문을 그대로 싣는다
			body = map[string]interface{}{"raw": string(rawBody)}
		}
	}
	body["proxied"] = true

	return &CacheProxyResult{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// appendHistory 이력을 Redis 리스트 머리에 넣고 50건으로 자른다.
// 이력 기록 실패가 무효화 자체를 막아서는 안 되므로 로그만 남긴다.
func (s *cacheService) appendHistory(ctx context.Context, entry CacheHistoryEntry) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		logger.Error("Failed to marshal cache history entry", err)
		return
	}

	pipe := s.redisClient.TxPipeline()
	pipe.LPush(ctx, cacheHistoryKey, payload)
	pipe.LTrim(ctx, cacheHistoryKey, 0, cacheHistoryMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Failed to append cache history", err)
	}
}

// History 기록된 이력을 최신순으로 반환
func (s *cacheService) History(ctx context.Context) ([]CacheHistoryEntry, error) {
	if s.redisClient == nil {
		return []CacheHistoryEntry{}, nil
	}

	raw, err := s.redisClient.LRange(ctx, cacheHistoryKey, 0, cacheHistoryMax-1).Result()
	if err != nil {
		logger.Error("Failed to load cache history", err)
		return nil, err
	}

	entries := make([]CacheHistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry CacheHistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *cacheService) categoryName(categoryID string) string {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Failed to resolve category name for cache history", map[string]interface{}{
				"category_id": categoryID,
			})
		}
		return ""
	}
	return category.Name
}
