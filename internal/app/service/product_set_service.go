package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/github"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	ErrProductSetNotFound = errors.New("product set not found")
	ErrNoLinksGiven       = errors.New("no valid links given")
)

// RegisterResult 링크 일괄 등록 결과
type RegisterResult struct {
	Registered int      `json:"registered"`
	Failed     int      `json:"failed"`
	FailedURLs []string `json:"failed_urls,omitempty"`
	Triggered  bool     `json:"triggered"`
}

// MDPickEntry MD Pick 관리 화면의 한 행: 세트 + 상품명 + 플랫폼 + 최신 가격
type MDPickEntry struct {
	ProductSet  model.ProductSet    `json:"product_set"`
	ProductName string              `json:"product_name"`
	LatestPrice *model.PriceHistory `json:"latest_price"`
}

type ProductSetService interface {
	RegisterProductSets(ctx context.Context, productID, rawLinks string) (*RegisterResult, error)
	SearchMDPick(term string) ([]MDPickEntry, error)
	SetMDPick(productSetID string, on bool) error
	RecordPrice(productSetID string, originalPrice int64, discountPrice *int64, shippingFee int64, metadata string) (*model.PriceHistory, error)
	DeleteProductSet(id string) error
}

type productSetService struct {
	productSetRepo    repository.ProductSetRepository
	productRepo       repository.ProductRepository
	priceHistoryRepo  repository.PriceHistoryRepository
	dispatcher        github.WorkflowDispatcher
	defaultPlatformID string
	collator          *collate.Collator
}

func NewProductSetService(
	productSetRepo repository.ProductSetRepository,
	productRepo repository.ProductRepository,
	priceHistoryRepo repository.PriceHistoryRepository,
	dispatcher github.WorkflowDispatcher,
	defaultPlatformID string,
) ProductSetService {
	return &productSetService{
		productSetRepo:    productSetRepo,
		productRepo:       productRepo,
		priceHistoryRepo:  priceHistoryRepo,
		dispatcher:        dispatcher,
		defaultPlatformID: defaultPlatformID,
		collator:          collate.New(language.Korean),
	}
}

// ParseLinks 쉼표로 구분된 링크 문자열을 URL 목록으로 변환한다.
// 큰따옴표 제거 후 공백을 다듬고 빈 항목은 버린다.
// 순서는 입력 그대로, 중복도 그대로 유지한다.
// 예: '"a, b" , c,,"d"' → ["a", "b", "c", "d"]
func ParseLinks(raw string) []string {
	parts := strings.Split(raw, ",")
	links := make([]string, 0, len(parts))
	for _, part := range parts {
		link := strings.TrimSpace(strings.ReplaceAll(part, `"`, ""))
		if link != "" {
			links = append(links, link)
		}
	}
	return links
}

// RegisterProductSets 상품에 링크들을 세트로 일괄 등록한다.
// 상품이 없으면 전체를 중단한다. 개별 링크 실패는 기록만 하고 다음
// 링크로 넘어간다. 등록 성공 여부와 무관하게 마지막에 크롤링
// 워크플로를 한 번 실행한다.
func (s *productSetService) RegisterProductSets(ctx context.Context, productID, rawLinks string) (*RegisterResult, error) {
	links := ParseLinks(rawLinks)
	if len(links) == 0 {
		return nil, ErrNoLinksGiven
	}

	logger.Info("Registering product sets", map[string]interface{}{
		"product_id": productID,
		"link_count": len(links),
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	result := &RegisterResult{}
	for _, link := range links {
		set := &model.ProductSet{
			ProductID:   product.ProductID,
			PlatformID:  s.defaultPlatformID,
			ProductName: product.Name,
			LinkURL:     link,
		}
		if err := s.productSetRepo.Create(set); err != nil {
			logger.Error("Failed to register product set, continuing", err, map[string]interface{}{
				"product_id": productID,
				"link_url":   link,
			})
			result.Failed++
			result.FailedURLs = append(result.FailedURLs, link)
			continue
		}
		result.Registered++
	}

	// 개별 실패와 무관하게 크롤링은 상품 단위로 한 번만 건다.
	if err := s.dispatcher.DispatchCrawl(ctx, productID); err != nil {
		logger.Error("Failed to dispatch crawl workflow", err, map[string]interface{}{
			"product_id": productID,
		})
	} else {
		result.Triggered = true
	}

	logger.Info("Product sets registered", map[string]interface{}{
		"product_id": productID,
		"registered": result.Registered,
		"failed":     result.Failed,
		"triggered":  result.Triggered,
	})
	return result, nil
}

// SearchMDPick 상품 ID 완전 일치 또는 이름 부분 일치로 상품을 찾고,
// 해당 상품들의 세트를 플랫폼/최신 가격과 함께 반환한다.
// 상품명, 세트명 순으로 정렬된다.
func (s *productSetService) SearchMDPick(term string) ([]MDPickEntry, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []MDPickEntry{}, nil
	}

	products, err := s.productRepo.SearchByIDOrName(term)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []MDPickEntry{}, nil
	}

	productIDs := make([]string, 0, len(products))
	nameByID := make(map[string]string, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ProductID)
		nameByID[p.ProductID] = p.Name
	}

	sets, err := s.productSetRepo.FindByProductIDs(productIDs)
	if err != nil {
		return nil, err
	}

	setIDs := make([]string, 0, len(sets))
	for _, set := range sets {
		setIDs = append(setIDs, set.ProductSetID)
	}
	latest, err := s.priceHistoryRepo.LatestByProductSetIDs(setIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]MDPickEntry, 0, len(sets))
	for _, set := range sets {
		entry := MDPickEntry{
			ProductSet:  set,
			ProductName: nameByID[set.ProductID],
		}
		if price, ok := latest[set.ProductSetID]; ok {
			p := price
			entry.LatestPrice = &p
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if cmp := s.collator.CompareString(entries[i].ProductName, entries[j].ProductName); cmp != 0 {
			return cmp < 0
		}
		return s.collator.CompareString(entries[i].ProductSet.ProductName, entries[j].ProductSet.ProductName) < 0
	})

	logger.Debug("MD pick search completed", map[string]interface{}{
		"term":    term,
		"matches": len(entries),
	})
	return entries, nil
}

func (s *productSetService) SetMDPick(productSetID string, on bool) error {
	logger.Info("Setting MD pick flag", map[string]interface{}{
		"product_set_id": productSetID,
		"md_pick":        on,
	})

	if err := s.productSetRepo.UpdateMDPick(productSetID, on); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductSetNotFound
		}
		logger.Error("Failed to set MD pick flag", err, map[string]interface{}{
			"product_set_id": productSetID,
		})
		return err
	}
	return nil
}

// RecordPrice 가격 이력 한 건 추가. 이력은 수정되지 않으며
// 최신 가격은 언제나 가장 최근 행이다.
func (s *productSetService) RecordPrice(productSetID string, originalPrice int64, discountPrice *int64, shippingFee int64, metadata string) (*model.PriceHistory, error) {
	if _, err := s.productSetRepo.FindByID(productSetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductSetNotFound
		}
		return nil, err
	}

	history := &model.PriceHistory{
		ProductSetID:  productSetID,
		OriginalPrice: originalPrice,
		DiscountPrice: discountPrice,
		ShippingFee:   shippingFee,
		PriceMetadata: metadata,
	}
	if err := s.priceHistoryRepo.Create(history); err != nil {
		return nil, err
	}

	logger.Info("Price history recorded", map[string]interface{}{
		"product_set_id": productSetID,
		"original_price": originalPrice,
	})
	return history, nil
}

func (s *productSetService) DeleteProductSet(id string) error {
	logger.Info("Deleting product set", map[string]interface{}{
		"product_set_id": id,
	})

	if _, err := s.productSetRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductSetNotFound
		}
		return err
	}
	return s.productSetRepo.Delete(id)
}
