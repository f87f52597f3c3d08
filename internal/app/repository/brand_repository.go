package repository

import (
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindAll() ([]model.Brand, error)
	FindByID(id string) (*model.Brand, error)
	SearchByName(term string) ([]model.Brand, error)
	Update(brand *model.Brand) error
	Delete(id string) error
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(brand *model.Brand) error {
	logger.Debug("Creating brand in database", map[string]interface{}{
		"name": brand.Name,
	})

	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}

	logger.Debug("Brand created in database", map[string]interface{}{
		"brand_id": brand.BrandID,
		"name":     brand.Name,
	})
	return nil
}

func (r *brandRepository) FindAll() ([]model.Brand, error) {
	var brands []model.Brand
	// 빈 이름 브랜드는 검색 자동완성에서 제외
	err := r.db.Where("name <> ''").Order("name ASC").Find(&brands).Error
	if err != nil {
		logger.Error("Failed to find brands", err)
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) FindByID(id string) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.First(&brand, "brand_id = ?", id).Error; err != nil {
		logger.Error("Failed to find brand by ID in database", err, map[string]interface{}{
			"brand_id": id,
		})
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) SearchByName(term string) ([]model.Brand, error) {
	var brands []model.Brand
	like := "%" + term + "%"
	err := r.db.Where("lower(name) LIKE lower(?)", like).Order("name ASC").Find(&brands).Error
	if err != nil {
		logger.Error("Failed to search brands by name", err, map[string]interface{}{
			"term": term,
		})
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) Update(brand *model.Brand) error {
	logger.Debug("Updating brand in database", map[string]interface{}{
		"brand_id": brand.BrandID,
		"name":     brand.Name,
	})

	if err := r.db.Save(brand).Error; err != nil {
		logger.Error("Failed to update brand in database", err, map[string]interface{}{
			"brand_id": brand.BrandID,
		})
		return err
	}
	return nil
}

func (r *brandRepository) Delete(id string) error {
	logger.Debug("Deleting brand from database", map[string]interface{}{
		"brand_id": id,
	})

	if err := r.db.Delete(&model.Brand{}, "brand_id = ?", id).Error; err != nil {
		logger.Error("Failed to delete brand from database", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}
	return nil
}
