package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HiddenDisplayOrder 노출되지 않는 카테고리에 부여하는 정렬 순서.
// 선택되지 않은 카테고리는 모두 이 값을 공유하며 뒤쪽으로 밀린다.
const HiddenDisplayOrder = 999

// HomeCategoryOrder 홈 화면 카테고리 노출 순서의 스냅샷 행.
// version_id를 공유하는 행 전체가 하나의 불변 버전이며, 수정은 언제나
// 새 버전 삽입으로만 이루어진다. 행 자체는 절대 갱신/삭제되지 않는다.
type HomeCategoryOrder struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	VersionID    string    `gorm:"type:uuid;not null;index" json:"version_id"`
	CategoryID   string    `gorm:"type:uuid;not null" json:"category_id"`
	DisplayOrder int       `gorm:"not null" json:"display_order"`
	IsVisible    bool      `gorm:"not null" json:"is_visible"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	Category *Category `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
}

func (HomeCategoryOrder) TableName() string {
	return "home_category_orders"
}

func (h *HomeCategoryOrder) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
