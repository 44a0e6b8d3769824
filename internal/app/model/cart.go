package model

import "time"

// Cart is one user's cart row for one product. The composite unique
// index backs the atomic get-or-create on add. Rows are hard-deleted
// on removal so a later add for the same pair recreates the row.
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_carts_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_carts_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}
