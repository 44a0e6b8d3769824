package model

import (
	"time"

	"gorm.io/gorm"
)

type Voucher struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Code       string         `gorm:"uniqueIndex;not null" json:"code"`
	Type       DiscountType   `gorm:"type:varchar(20);not null" json:"type"`
	Value      float64        `gorm:"not null" json:"value"`
	StartDate  time.Time      `gorm:"not null" json:"start_date"`
	EndDate    time.Time      `gorm:"not null" json:"end_date"`
	UsageLimit int            `gorm:"default:1" json:"usage_limit"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Voucher) TableName() string {
	return "vouchers"
}
