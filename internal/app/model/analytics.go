package model

import "time"

// AnalyticsSnapshot is the hourly refreshed storefront totals row.
type AnalyticsSnapshot struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	TotalSales  float64   `gorm:"not null;default:0" json:"total_sales"`
	TotalOrders int64     `gorm:"not null;default:0" json:"total_orders"`
	TotalUsers  int64     `gorm:"not null;default:0" json:"total_users"`
	LastUpdated time.Time `json:"last_updated"`
}

func (AnalyticsSnapshot) TableName() string {
	return "analytics_snapshots"
}
