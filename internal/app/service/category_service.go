package service

import (
	"errors"
	"sort"

	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryCycle    = errors.New("category parent assignment creates a cycle")
)

// CategoryHierarchy 특정 카테고리의 루트→리프 경로
type CategoryHierarchy struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	ParentID *string          `json:"parent_id"`
	Level    int              `json:"level"`
	Path     []model.Category `json:"path"`
}

// FlatCategory 들여쓰기 표시용 평탄화 항목
type FlatCategory struct {
	model.Category
	Level int `json:"level"`
}

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	ListCategoriesFlat() ([]FlatCategory, error)
	ResolveHierarchy(categoryID string) (*CategoryHierarchy, error)
	CreateCategory(name string, parentID *string) (*model.Category, error)
	UpdateCategory(id string, name string, parentID *string) error
	DeleteCategory(id string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	collator     *collate.Collator
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		// 카테고리명은 한글 기준 가나다순으로 정렬
		collator: collate.New(language.Korean),
	}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

// ListCategoriesFlat 트리를 표시용 순서로 평탄화한다.
// 루트를 이름순으로 정렬하고, 각 루트 아래 자식들을 이름순으로
// 깊이 우선(pre-order) 순회하며 level을 붙인다.
func (s *categoryService) ListCategoriesFlat() ([]FlatCategory, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list categories for flat view", err)
		return nil, err
	}

	children := make(map[string][]model.Category)
	var roots []model.Category
	for _, cat := range categories {
		if cat.IsRoot() {
			roots = append(roots, cat)
		} else {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat)
		}
	}

	s.sortByName(roots)
	for parentID := range children {
		s.sortByName(children[parentID])
	}

	var result []FlatCategory
	var appendSubtree func(cat model.Category, level int)
	appendSubtree = func(cat model.Category, level int) {
		result = append(result, FlatCategory{Category: cat, Level: level})
		for _, child := range children[cat.ID] {
			appendSubtree(child, level+1)
		}
	}
	for _, root := range roots {
		appendSubtree(root, 0)
	}

	logger.Debug("Categories flattened for display", map[string]interface{}{
		"total": len(result),
		"roots": len(roots),
	})
	return result, nil
}

// ResolveHierarchy 대상 카테고리에서 parent를 따라 올라가며
// 루트→리프 경로를 만든다. 참조된 부모가 존재하지 않으면 그 지점을
// 루트로 취급한다. 시작 ID 자체가 없을 때만 not found.
func (s *categoryService) ResolveHierarchy(categoryID string) (*CategoryHierarchy, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to load categories for hierarchy", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}

	byID := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	start, ok := byID[categoryID]
	if !ok {
		logger.Warn("Category not found for hierarchy", map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, ErrCategoryNotFound
	}

	var path []model.Category
	current := start
	for {
		path = append([]model.Category{current}, path...)
		if current.IsRoot() {
			break
		}
		parent, ok := byID[*current.ParentID]
		if !ok {
			// 부모가 삭제된 고아 카테고리: 여기를 루트로 취급
			break
		}
		current = parent
	}

	return &CategoryHierarchy{
		ID:       start.ID,
		Name:     start.Name,
		ParentID: start.ParentID,
		Level:    len(path) - 1,
		Path:     path,
	}, nil
}

func (s *categoryService) CreateCategory(name string, parentID *string) (*model.Category, error) {
	logger.Info("Creating new category", map[string]interface{}{
		"name":      name,
		"parent_id": parentID,
	})

	if parentID != nil && *parentID != "" {
		if _, err := s.categoryRepo.FindByID(*parentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	category := &model.Category{Name: name, ParentID: normalizeID(parentID)}
	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

// UpdateCategory 이름/부모 변경. 부모 변경은 쓰기 시점에 순환을 검사하여
// 자기 자신 또는 자기 자손을 부모로 지정하는 요청을 거부한다.
func (s *categoryService) UpdateCategory(id string, name string, parentID *string) error {
	logger.Info("Updating category", map[string]interface{}{
		"category_id": id,
		"name":        name,
		"parent_id":   parentID,
	})

	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	parentID = normalizeID(parentID)
	if parentID != nil {
		if err := s.checkCycle(id, *parentID); err != nil {
			return err
		}
	}

	category := &model.Category{ID: id, Name: name, ParentID: parentID}
	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Category updated successfully", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

// checkCycle 제안된 부모의 조상 체인을 거슬러 올라가며 대상 카테고리가
// 나타나는지 확인한다. 나타나면 순환이다.
func (s *categoryService) checkCycle(categoryID, proposedParentID string) error {
	if categoryID == proposedParentID {
		return ErrCategoryCycle
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return err
	}
	byID := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	current, ok := byID[proposedParentID]
	if !ok {
		return ErrCategoryNotFound
	}
	for !current.IsRoot() {
		if *current.ParentID == categoryID {
			logger.Warn("Category parent assignment rejected: cycle", map[string]interface{}{
				"category_id":        categoryID,
				"proposed_parent_id": proposedParentID,
			})
			return ErrCategoryCycle
		}
		parent, ok := byID[*current.ParentID]
		if !ok {
			break
		}
		current = parent
	}
	return nil
}

func (s *categoryService) DeleteCategory(id string) error {
	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})

	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		logger.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Category deleted successfully", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

func (s *categoryService) sortByName(categories []model.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return s.collator.CompareString(categories[i].Name, categories[j].Name) < 0
	})
}
