package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ProductID   string    `gorm:"primaryKey;type:uuid" json:"product_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    *string   `json:"image_url"`
	BrandID     *string   `gorm:"type:uuid;index" json:"brand_id"`
	CategoryID  *string   `gorm:"type:uuid;index" json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Brand    *Brand    `gorm:"foreignKey:BrandID;references:BrandID" json:"brand,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`

	ProductSets []ProductSet `gorm:"foreignKey:ProductID;references:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ProductID == "" {
		p.ProductID = uuid.NewString()
	}
	return nil
}
