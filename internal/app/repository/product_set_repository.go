package repository

import (
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSetRepository interface {
	Create(set *model.ProductSet) error
	FindByID(id string) (*model.ProductSet, error)
	FindByProductID(productID string) ([]model.ProductSet, error)
	FindByProductIDs(productIDs []string) ([]model.ProductSet, error)
	UpdateMDPick(id string, mdPick bool) error
	Delete(id string) error
}

type productSetRepository struct {
	db *gorm.DB
}

func NewProductSetRepository(db *gorm.DB) ProductSetRepository {
	return &productSetRepository{db: db}
}

func (r *productSetRepository) Create(set *model.ProductSet) error {
	logger.Debug("Creating product set in database", map[string]interface{}{
		"product_id":  set.ProductID,
		"platform_id": set.PlatformID,
		"link_url":    set.LinkURL,
	})

	if err := r.db.Create(set).Error; err != nil {
		logger.Error("Failed to create product set in database", err, map[string]interface{}{
			"product_id": set.ProductID,
			"link_url":   set.LinkURL,
		})
		return err
	}

	logger.Debug("Product set created in database", map[string]interface{}{
		"product_set_id": set.ProductSetID,
	})
	return nil
}

func (r *productSetRepository) FindByID(id string) (*model.ProductSet, error) {
	var set model.ProductSet
	err := r.db.Preload("Platform").First(&set, "product_set_id = ?", id).Error
	if err != nil {
		logger.Error("Failed to find product set by ID in database", err, map[string]interface{}{
			"product_set_id": id,
		})
		return nil, err
	}
	return &set, nil
}

func (r *productSetRepository) FindByProductID(productID string) ([]model.ProductSet, error) {
	return r.FindByProductIDs([]string{productID})
}

func (r *productSetRepository) FindByProductIDs(productIDs []string) ([]model.ProductSet, error) {
	var sets []model.ProductSet
	err := r.db.Preload("Platform").
		Where("product_id IN ?", productIDs).
		Order("product_name ASC").
		Find(&sets).Error
	if err != nil {
		logger.Error("Failed to find product sets by product IDs", err, map[string]interface{}{
			"product_count": len(productIDs),
		})
		return nil, err
	}
	return sets, nil
}

func (r *productSetRepository) UpdateMDPick(id string, mdPick bool) error {
	logger.Debug("Updating MD pick flag in database", map[string]interface{}{
		"product_set_id": id,
		"md_pick":        mdPick,
	})

	result := r.db.Model(&model.ProductSet{}).
		Where("product_set_id = ?", id).
		Update("md_pick", mdPick)
	if result.Error != nil {
		logger.Error("Failed to update MD pick flag", result.Error, map[string]interface{}{
			"product_set_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productSetRepository) Delete(id string) error {
	logger.Debug("Deleting product set from database", map[string]interface{}{
		"product_set_id": id,
	})

	if err := r.db.Delete(&model.ProductSet{}, "product_set_id = ?", id).Error; err != nil {
		logger.Error("Failed to delete product set from database", err, map[string]interface{}{
			"product_set_id": id,
		})
		return err
	}
	return nil
}
