package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform 외부 판매 플랫폼 (쿠팡, 네이버 스토어 등)
type Platform struct {
	PlatformID string `gorm:"primaryKey;type:uuid" json:"platform_id"`
	Name       string `gorm:"not null" json:"name"`
}

func (Platform) TableName() string {
	return "platforms"
}

func (p *Platform) BeforeCreate(tx *gorm.DB) error {
	if p.PlatformID == "" {
		p.PlatformID = uuid.NewString()
	}
	return nil
}
