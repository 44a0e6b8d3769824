package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrImageSourceConflict = errors.New("only one of image path or image url may be set")
	ErrImageSourceMissing  = errors.New("either image path or image url must be set")
)

// ProductImage holds exactly one image source: a relative path to an
// uploaded object on the media host, or an external URL used verbatim.
type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	ImagePath string         `json:"image_path,omitempty"` // relative path on the media host
	ImageURL  string         `json:"image_url,omitempty"`  // external URL, used as-is
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

// Validate enforces the one-source invariant.
func (p *ProductImage) Validate() error {
	if p.ImagePath != "" && p.ImageURL != "" {
		return ErrImageSourceConflict
	}
	if p.ImagePath == "" && p.ImageURL == "" {
		return ErrImageSourceMissing
	}
	return nil
}
