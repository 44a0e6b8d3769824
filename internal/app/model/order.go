package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	ProductID  uint           `gorm:"not null;index" json:"product_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	Phone      string         `gorm:"not null" json:"phone"`
	AltPhone   string         `json:"alt_phone,omitempty"`
	Address    string         `gorm:"type:text;not null" json:"address"`
	OrderDate  time.Time      `json:"order_date"`
	TotalPrice float64        `gorm:"not null" json:"total_price"` // snapshot at creation time
	Status     OrderStatus    `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
