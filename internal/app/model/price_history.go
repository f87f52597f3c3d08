package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceHistory 크롤러가 쌓는 가격 이력. 행은 추가만 되고 수정/삭제되지 않으며
// 세트의 "현재 가격"은 recorded_at이 가장 최근인 행이다.
type PriceHistory struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	ProductSetID  string    `gorm:"type:uuid;not null;index" json:"product_set_id"`
	OriginalPrice int64     `gorm:"not null" json:"original_price"`
	DiscountPrice *int64    `json:"discount_price"`
	ShippingFee   int64     `gorm:"default:0" json:"shipping_fee"`
	PriceMetadata string    `gorm:"type:text" json:"price_metadata"`
	RecordedAt    time.Time `gorm:"index" json:"recorded_at"`
}

func (PriceHistory) TableName() string {
	return "product_price_histories"
}

func (p *PriceHistory) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now()
	}
	return nil
}
