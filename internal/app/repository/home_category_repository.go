package repository

import (
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"gorm.io/gorm"
)

// HomeCategoryOrderRepository 홈 화면 카테고리 스냅샷 저장소.
// 행은 삽입만 가능하다. 수정/삭제 경로는 의도적으로 제공하지 않는다.
type HomeCategoryOrderRepository interface {
	InsertVersion(rows []model.HomeCategoryOrder) error
	LatestVersionID() (string, error)
	FindByVersionID(versionID string) ([]model.HomeCategoryOrder, error)
	FindAll() ([]model.HomeCategoryOrder, error)
}

type homeCategoryOrderRepository struct {
	db *gorm.DB
}

func NewHomeCategoryOrderRepository(db *gorm.DB) HomeCategoryOrderRepository {
	return &homeCategoryOrderRepository{db: db}
}

// InsertVersion 한 버전의 행 전체를 단일 트랜잭션으로 삽입.
// 중간 실패 시 아무 행도 남지 않아 이전 버전이 그대로 "현재"로 유지된다.
func (r *homeCategoryOrderRepository) InsertVersion(rows []model.HomeCategoryOrder) error {
	logger.Debug("Inserting home category version", map[string]interface{}{
		"row_count": len(rows),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to insert home category version", err, map[string]interface{}{
			"row_count": len(rows),
		})
		return err
	}

	logger.Debug("Home category version inserted", map[string]interface{}{
		"row_count": len(rows),
	})
	return nil
}

// LatestVersionID created_at이 가장 최근인 버전의 ID.
// 동률이면 version_id로 안정적으로 결정된다. 행이 없으면 빈 문자열.
func (r *homeCategoryOrderRepository) LatestVersionID() (string, error) {
	var row model.HomeCategoryOrder
	err := r.db.Order("created_at DESC, version_id DESC").First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		logger.Error("Failed to find latest home category version", err)
		return "", err
	}
	return row.VersionID, nil
}

func (r *homeCategoryOrderRepository) FindByVersionID(versionID string) ([]model.HomeCategoryOrder, error) {
	var rows []model.HomeCategoryOrder
	err := r.db.Preload("Category").
		Where("version_id = ?", versionID).
		Order("display_order ASC").
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to find home category version rows", err, map[string]interface{}{
			"version_id": versionID,
		})
		return nil, err
	}
	return rows, nil
}

func (r *homeCategoryOrderRepository) FindAll() ([]model.HomeCategoryOrder, error) {
	var rows []model.HomeCategoryOrder
	err := r.db.Preload("Category").
		Order("created_at DESC").
		Order("display_order ASC").
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to find home category order rows", err)
		return nil, err
	}
	return rows, nil
}
