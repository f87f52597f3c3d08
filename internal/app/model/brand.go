package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Brand struct {
	BrandID string `gorm:"primaryKey;type:uuid" json:"brand_id"`
	Name    string `gorm:"not null;uniqueIndex:idx_brands_name" json:"name"`
}

func (Brand) TableName() string {
	return "brands"
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.BrandID == "" {
		b.BrandID = uuid.NewString()
	}
	return nil
}
