package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category 상품 카테고리. parent_id로 자기 참조하는 트리 구조이며
// 루트 카테고리는 parent_id가 없다.
type Category struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	ParentID *string `gorm:"type:uuid;index" json:"parent_id"`

	Parent *Category `gorm:"foreignKey:ParentID;references:ID" json:"-"`
}

func (Category) TableName() string {
	return "product_categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}
