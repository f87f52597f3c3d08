package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
)

var (
	ErrHomeVersionNotFound = errors.New("home category version not found")
	ErrNoTopLevelCategories = errors.New("no top-level categories to order")
)

// maxVersionHistory 버전 목록 조회 시 보여줄 최대 버전 수
const maxVersionHistory = 20

// HomeCategoryVersion 하나의 불변 버전 (version_id를 공유하는 행 묶음)
type HomeCategoryVersion struct {
	VersionID string                    `json:"version_id"`
	CreatedAt time.Time                 `json:"created_at"`
	Orders    []model.HomeCategoryOrder `json:"orders"`
}

type HomeCategoryService interface {
	LoadCurrent() (*HomeCategoryVersion, error)
	ListVersions() ([]HomeCategoryVersion, error)
	SaveVersion(orderedCategoryIDs []string) (*HomeCategoryVersion, error)
	Rollback(versionID string) (*HomeCategoryVersion, error)
}

type homeCategoryService struct {
	homeRepo     repository.HomeCategoryOrderRepository
	categoryRepo repository.CategoryRepository
}

func NewHomeCategoryService(
	homeRepo repository.HomeCategoryOrderRepository,
	categoryRepo repository.CategoryRepository,
) HomeCategoryService {
	return &homeCategoryService{
		homeRepo:     homeRepo,
		categoryRepo: categoryRepo,
	}
}

// LoadCurrent 가장 최근 버전을 조회한다. 스냅샷이 하나도 없으면
// 빈 버전(Orders 없음)을 반환한다.
func (s *homeCategoryService) LoadCurrent() (*HomeCategoryVersion, error) {
	versionID, err := s.homeRepo.LatestVersionID()
	if err != nil {
		logger.Error("Failed to resolve latest home category version", err)
		return nil, err
	}
	if versionID == "" {
		return &HomeCategoryVersion{}, nil
	}

	rows, err := s.homeRepo.FindByVersionID(versionID)
	if err != nil {
		return nil, err
	}

	version := &HomeCategoryVersion{
		VersionID: versionID,
		Orders:    rows,
	}
	if len(rows) > 0 {
		version.CreatedAt = rows[0].CreatedAt
	}
	return version, nil
}

// ListVersions 전체 스냅샷을 버전 단위로 묶어 최신순으로 반환.
// 최근 20개 버전까지만 보여준다.
func (s *homeCategoryService) ListVersions() ([]HomeCategoryVersion, error) {
	rows, err := s.homeRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list home category versions", err)
		return nil, err
	}

	grouped := make(map[string]*HomeCategoryVersion)
	var order []string
	for _, row := range rows {
		v, ok := grouped[row.VersionID]
		if !ok {
			v = &HomeCategoryVersion{
				VersionID: row.VersionID,
				CreatedAt: row.CreatedAt,
			}
			grouped[row.VersionID] = v
			order = append(order, row.VersionID)
		}
		v.Orders = append(v.Orders, row)
	}

	// FindAll이 created_at 내림차순이므로 order는 이미 최신순
	versions := make([]HomeCategoryVersion, 0, len(order))
	for _, id := range order {
		versions = append(versions, *grouped[id])
		if len(versions) >= maxVersionHistory {
			break
		}
	}

	logger.Debug("Home category versions listed", map[string]interface{}{
		"version_count": len(versions),
	})
	return versions, nil
}

// SaveVersion 사용자가 고른 순서대로 새 버전을 저장한다.
// 모든 1depth 카테고리에 대해 한 행씩 생성한다: 선택된 카테고리는
// 선택 순서(1부터)와 노출 true, 선택되지 않은 카테고리는 999와 노출 false.
// 저장은 언제나 전체 교체이며 기존 버전은 건드리지 않는다.
func (s *homeCategoryService) SaveVersion(orderedCategoryIDs []string) (*HomeCategoryVersion, error) {
	logger.Info("Saving home category version", map[string]interface{}{
		"selected_count": len(orderedCategoryIDs),
	})

	topLevel, err := s.categoryRepo.FindRoots()
	if err != nil {
		logger.Error("Failed to load top-level categories", err)
		return nil, err
	}
	if len(topLevel) == 0 {
		return nil, ErrNoTopLevelCategories
	}

	// 중복 ID는 첫 등장만 인정한다. 순번은 1부터 빈틈없이 매긴다.
	position := make(map[string]int, len(orderedCategoryIDs))
	next := 1
	for _, id := range orderedCategoryIDs {
		if _, seen := position[id]; !seen {
			position[id] = next
			next++
		}
	}

	versionID := uuid.NewString()
	now := time.Now()

	rows := make([]model.HomeCategoryOrder, 0, len(topLevel))
	for _, cat := range topLevel {
		displayOrder := model.HiddenDisplayOrder
		isVisible := false
		if pos, ok := position[cat.ID]; ok {
			displayOrder = pos
			isVisible = true
		}
		rows = append(rows, model.HomeCategoryOrder{
			VersionID:    versionID,
			CategoryID:   cat.ID,
			DisplayOrder: displayOrder,
			IsVisible:    isVisible,
			CreatedAt:    now,
		})
	}

	if err := s.homeRepo.InsertVersion(rows); err != nil {
		logger.Error("Failed to save home category version", err, map[string]interface{}{
			"version_id": versionID,
		})
		return nil, err
	}

	logger.Info("Home category version saved", map[string]interface{}{
		"version_id":    versionID,
		"row_count":     len(rows),
		"visible_count": len(position),
	})

	saved, err := s.homeRepo.FindByVersionID(versionID)
	if err != nil {
		return nil, err
	}
	return &HomeCategoryVersion{
		VersionID: versionID,
		CreatedAt: now,
		Orders:    saved,
	}, nil
}

// Rollback 과거 버전의 (카테고리, 순서, 노출) 값을 그대로 복사해
// 새 버전으로 삽입한다. 원본 버전의 행은 변경되지 않고 이력에 남는다.
func (s *homeCategoryService) Rollback(versionID string) (*HomeCategoryVersion, error) {
	logger.Info("Rolling back home category order", map[string]interface{}{
		"target_version_id": versionID,
	})

	source, err := s.homeRepo.FindByVersionID(versionID)
	if err != nil {
		return nil, err
	}
	if len(source) == 0 {
		logger.Warn("Rollback target version not found", map[string]interface{}{
			"target_version_id": versionID,
		})
		return nil, ErrHomeVersionNotFound
	}

	newVersionID := uuid.NewString()
	now := time.Now()

	rows := make([]model.HomeCategoryOrder, 0, len(source))
	for _, row := range source {
		rows = append(rows, model.HomeCategoryOrder{
			VersionID:    newVersionID,
			CategoryID:   row.CategoryID,
			DisplayOrder: row.DisplayOrder,
			IsVisible:    row.IsVisible,
			CreatedAt:    now,
		})
	}

	if err := s.homeRepo.InsertVersion(rows); err != nil {
		logger.Error("Failed to insert rollback version", err, map[string]interface{}{
			"target_version_id": versionID,
		})
		return nil, err
	}

	logger.Info("Home category order rolled back", map[string]interface{}{
		"target_version_id": versionID,
		"new_version_id":    newVersionID,
	})

	saved, err := s.homeRepo.FindByVersionID(newVersionID)
	if err != nil {
		return nil, err
	}
	return &HomeCategoryVersion{
		VersionID: newVersionID,
		CreatedAt: now,
		Orders:    saved,
	}, nil
}
