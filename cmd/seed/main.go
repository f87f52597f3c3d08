package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/grandeclip/pickdrop-admin-backend/config"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/model"
	"github.com/grandeclip/pickdrop-admin-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// XLSX 컬럼 구성 (헤더 1행):
// 0: 상품명, 1: 설명, 2: 브랜드명, 3: 카테고리 경로 ("뷰티>스킨케어")
const minColumns = 2

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total rows to import: %d\n", len(rows))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported, skipped, err := importRows(db.GetDB(), rows)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Imported: %d, Skipped: %d\n", imported, skipped)
}

func readRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	fmt.Printf("Headers: %v\n", rows[0])
	return rows[1:], nil
}

// importRows 행 단위로 브랜드/카테고리를 찾거나 만들고 상품을 넣는다.
// 같은 브랜드명과 카테고리 경로는 재사용한다.
func importRows(gormDB *gorm.DB, rows [][]string) (int, int, error) {
	brandIDs := make(map[string]string)    // 브랜드명 → brand_id
	categoryIDs := make(map[string]string) // "상위>하위" 경로 → category id
	imported, skipped := 0, 0

	for _, row := range rows {
		if len(row) < minColumns {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(cell(row, 1))
		brandName := strings.TrimSpace(cell(row, 2))
		categoryPath := strings.TrimSpace(cell(row, 3))

		if name == "" {
			skipped++
			continue
		}

		product := model.Product{
			Name:        name,
			Description: description,
		}

		if brandName != "" {
			brandID, err := resolveBrand(gormDB, brandIDs, brandName)
			if err != nil {
				return imported, skipped, err
			}
			product.BrandID = &brandID
		}

		if categoryPath != "" {
			categoryID, err := resolveCategoryPath(gormDB, categoryIDs, categoryPath)
			if err != nil {
				return imported, skipped, err
			}
			product.CategoryID = &categoryID
		}

		if err := gormDB.Create(&product).Error; err != nil {
			return imported, skipped, fmt.Errorf("failed to create product %q: %w", name, err)
		}
		imported++
	}

	return imported, skipped, nil
}

// resolveBrand 브랜드를 이름으로 찾고 없으면 만든다
func resolveBrand(gormDB *gorm.DB, cache map[string]string, name string) (string, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	var brand model.Brand
	err := gormDB.Where("name = ?", name).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		brand = model.Brand{Name: name}
		if err := gormDB.Create(&brand).Error; err != nil {
			return "", fmt.Errorf("failed to create brand %q: %w", name, err)
		}
	} else if err != nil {
		return "", err
	}

	cache[name] = brand.BrandID
	return brand.BrandID, nil
}

// resolveCategoryPath ">"로 구분된 경로를 따라가며 각 단계를
// 찾거나 만들고 마지막 카테고리의 ID를 돌려준다.
func resolveCategoryPath(gormDB *gorm.DB, cache map[string]string, path string) (string, error) {
	if id, ok := cache[path]; ok {
		return id, nil
	}

	var parentID *string
	var currentID string
	var walked []string

	for _, segment := range strings.Split(path, ">") {
		name := strings.TrimSpace(segment)
		if name == "" {
			continue
		}
		walked = append(walked, name)
		key := strings.Join(walked, ">")

		if id, ok := cache[key]; ok {
			currentID = id
			pid := id
			parentID = &pid
			continue
		}

		var category model.Category
		query := gormDB.Where("name = ?", name)
		if parentID == nil {
			query = query.Where("parent_id IS NULL OR parent_id = ''")
		} else {
			query = query.Where("parent_id = ?", *parentID)
		}

		err := query.First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = model.Category{Name: name, ParentID: parentID}
			if err := gormDB.Create(&category).Error; err != nil {
				return "", fmt.Errorf("failed to create category %q: %w", name, err)
			}
		} else if err != nil {
			return "", err
		}

		currentID = category.ID
		cache[key] = currentID
		id := currentID
		parentID = &id
	}

	if currentID == "" {
		return "", fmt.Errorf("empty category path: %q", path)
	}
	return currentID, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
