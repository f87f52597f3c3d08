package repository

import (
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"gorm.io/gorm"
)

type PriceHistoryRepository interface {
	Create(history *model.PriceHistory) error
	FindByProductSetID(productSetID string) ([]model.PriceHistory, error)
	LatestByProductSetIDs(productSetIDs []string) (map[string]model.PriceHistory, error)
}

type priceHistoryRepository struct {
	db *gorm.DB
}

func NewPriceHistoryRepository(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

func (r *priceHistoryRepository) Create(history *model.PriceHistory) error {
	logger.Debug("Recording price history in database", map[string]interface{}{
		"product_set_id": history.ProductSetID,
		"original_price": history.OriginalPrice,
	})

	if err := r.db.Create(history).Error; err != nil {
		logger.Error("Failed to record price history", err, map[string]interface{}{
			"product_set_id": history.ProductSetID,
		})
		return err
	}
	return nil
}

func (r *priceHistoryRepository) FindByProductSetID(productSetID string) ([]model.PriceHistory, error) {
	var histories []model.PriceHistory
	err := r.db.Where("product_set_id = ?", productSetID).
		Order("recorded_at DESC").
		Find(&histories).Error
	if err != nil {
		logger.Error("Failed to find price histories", err, map[string]interface{}{
			"product_set_id": productSetID,
		})
		return nil, err
	}
	return histories, nil
}

// LatestByProductSetIDs 세트별 최신 가격 한 건씩.
// recorded_at 내림차순으로 조회한 뒤 세트당 첫 행만 취한다.
func (r *priceHistoryRepository) LatestByProductSetIDs(productSetIDs []string) (map[string]model.PriceHistory, error) {
	if len(productSetIDs) == 0 {
		return map[string]model.PriceHistory{}, nil
	}

	var histories []model.PriceHistory
	err := r.db.Where("product_set_id IN ?", productSetIDs).
		Order("recorded_at DESC").
		Find(&histories).Error
	if err != nil {
		logger.Error("Failed to find latest price histories", err, map[string]interface{}{
			"set_count": len(productSetIDs),
		})
		return nil, err
	}

	latest := make(map[string]model.PriceHistory, len(productSetIDs))
	for _, h := range histories {
		if _, ok := latest[h.ProductSetID]; !ok {
			latest[h.ProductSetID] = h
		}
	}
	return latest, nil
}
