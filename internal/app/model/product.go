package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CategoryID      *uint          `gorm:"index" json:"category_id,omitempty"`
	Name            string         `gorm:"not null" json:"name"`
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`
	Price           float64        `gorm:"not null" json:"price"`
	Description     string         `gorm:"type:text" json:"description"`
	Stock           int            `gorm:"default:0" json:"stock"`
	HotSale         bool           `gorm:"default:false" json:"hot_sale"`
	MetaTitle       string         `json:"meta_title,omitempty"`
	MetaDescription string         `json:"meta_description,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// DisplayImage is computed per request from the product's image
	// records, never stored.
	DisplayImage string `gorm:"-" json:"display_image,omitempty"`

	// Relationships
	Category  *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images    []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Discounts []Discount     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"discounts,omitempty"`
	CartItems []Cart         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Orders    []Order        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
