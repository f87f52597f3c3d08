package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductSet 특정 플랫폼에 등록된 상품 리스팅.
// 하나의 상품이 여러 플랫폼에 여러 세트로 걸릴 수 있다.
type ProductSet struct {
	ProductSetID          string    `gorm:"primaryKey;type:uuid" json:"product_set_id"`
	ProductID             string    `gorm:"type:uuid;not null;index" json:"product_id"`
	PlatformID            string    `gorm:"type:uuid;not null" json:"platform_id"`
	ProductName           string    `json:"product_name"`
	NormalizedProductName string    `json:"normalized_product_name"`
	LinkURL               string    `gorm:"not null" json:"link_url"`
	Label                 *string   `json:"label"`
	Thumbnail             *string   `json:"thumbnail"`
	MDPick                bool      `gorm:"column:md_pick;default:false" json:"md_pick"`
	CreatedAt             time.Time `json:"created_at"`

	Product  *Product  `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
	Platform *Platform `gorm:"foreignKey:PlatformID;references:PlatformID" json:"platform,omitempty"`

	PriceHistories []PriceHistory `gorm:"foreignKey:ProductSetID;references:ProductSetID" json:"-"`
}

func (ProductSet) TableName() string {
	return "product_sets"
}

func (ps *ProductSet) BeforeCreate(tx *gorm.DB) error {
	if ps.ProductSetID == "" {
		ps.ProductSetID = uuid.NewString()
	}
	return nil
}
