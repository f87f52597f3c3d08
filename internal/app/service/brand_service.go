package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var ErrBrandNotFound = errors.New("brand not found")

type BrandService interface {
	ListBrands() ([]model.Brand, error)
	SearchBrands(term string) ([]model.Brand, error)
	CreateBrand(name string) (*model.Brand, error)
	UpdateBrand(id, name string) error
	DeleteBrand(id string) error
}

type brandService struct {
	brandRepo repository.BrandRepository
	collator  *collate.Collator
}

func NewBrandService(brandRepo repository.BrandRepository) BrandService {
	return &brandService{
		brandRepo: brandRepo,
		collator:  collate.New(language.Korean),
	}
}

// ListBrands 자동완성용 브랜드 전체 목록. 빈 이름은 제외되고
// 한글 가나다순으로 정렬된다.
func (s *brandService) ListBrands() ([]model.Brand, error) {
	brands, err := s.brandRepo.FindAll()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(brands, func(i, j int) bool {
		return s.collator.CompareString(brands[i].Name, brands[j].Name) < 0
	})
	return brands, nil
}

func (s *brandService) SearchBrands(term string) ([]model.Brand, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.Brand{}, nil
	}
	return s.brandRepo.SearchByName(term)
}

// CreateBrand 브랜드 생성. 이름 중복은 유니크 제약 위반으로
// 올라오며 호출부에서 충돌 응답으로 변환된다.
func (s *brandService) CreateBrand(name string) (*model.Brand, error) {
	logger.Info("Creating new brand", map[string]interface{}{
		"name": name,
	})

	brand := &model.Brand{Name: strings.TrimSpace(name)}
	if err := s.brandRepo.Create(brand); err != nil {
		logger.Error("Failed to create brand", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	logger.Info("Brand created successfully", map[string]interface{}{
		"brand_id": brand.BrandID,
		"name":     brand.Name,
	})
	return brand, nil
}

func (s *brandService) UpdateBrand(id, name string) error {
	logger.Info("Updating brand", map[string]interface{}{
		"brand_id": id,
		"name":     name,
	})

	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		return err
	}

	brand.Name = strings.TrimSpace(name)
	return s.brandRepo.Update(brand)
}

func (s *brandService) DeleteBrand(id string) error {
	logger.Info("Deleting brand", map[string]interface{}{
		"brand_id": id,
	})

	if _, err := s.brandRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		return err
	}
	return s.brandRepo.Delete(id)
}
