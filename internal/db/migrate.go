package db

import (
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Brand{},
		&model.Category{},
		&model.Platform{},
		&model.Product{},
		&model.ProductSet{},
		&model.PriceHistory{},
		&model.HomeCategoryOrder{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedPlatforms()
}

// seedPlatforms 기본 플랫폼 데이터 생성 (기획 세트 등록에 필요)
func seedPlatforms() error {
	var count int64
	if err := DB.Model(&model.Platform{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Platforms already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding platform data...")

	platforms := []model.Platform{
		{Name: "쿠팡"},
		{Name: "네이버 스토어"},
		{Name: "올리브영"},
		{Name: "무신사"},
		{Name: "29CM"},
	}

	for i := range platforms {
		if err := DB.Create(&platforms[i]).Error; err != nil {
			logger.Error("Failed to create platform", err, map[string]interface{}{
				"platform": platforms[i].Name,
			})
			return err
		}
	}

	logger.Info("Platforms seeded successfully", map[string]interface{}{
		"total_platforms": len(platforms),
	})
	return nil
}
