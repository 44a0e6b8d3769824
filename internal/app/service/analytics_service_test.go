package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/internal/db"
)

func setupAnalyticsTest(t *testing.T) (*gorm.DB, AnalyticsService) {
	t.Helper()

	gdb, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gdb) })

	svc := NewAnalyticsService(
		repository.NewOrderRepository(gdb),
		repository.NewUserRepository(gdb),
		repository.NewAnalyticsRepository(gdb),
	)
	return gdb, svc
}

func seedOrders(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	user := model.User{Username: "daisy", Email: "daisy@flora.example", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&user).Error)
	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, gdb.Create(&product).Error)

	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{UserID: user.ID, ProductID: product.ID, Quantity: 1, Phone: "010", Address: "a", TotalPrice: 150, Status: model.OrderStatusPending, OrderDate: day1},
		{UserID: user.ID, ProductID: product.ID, Quantity: 2, Phone: "010", Address: "a", TotalPrice: 300, Status: model.OrderStatusPending, OrderDate: day1},
		{UserID: user.ID, ProductID: product.ID, Quantity: 1, Phone: "010", Address: "a", TotalPrice: 150, Status: model.OrderStatusShipped, OrderDate: day2},
	}
	for i := range orders {
		require.NoError(t, gdb.Create(&orders[i]).Error)
	}
}

func TestRefreshSnapshot(t *testing.T) {
	gdb, svc := setupAnalyticsTest(t)
	seedOrders(t, gdb)

	require.NoError(t, svc.RefreshSnapshot())

	var snapshot model.AnalyticsSnapshot
	require.NoError(t, gdb.First(&snapshot).Error)
	assert.Equal(t, 600.00, snapshot.TotalSales)
	assert.Equal(t, int64(3), snapshot.TotalOrders)
	assert.Equal(t, int64(1), snapshot.TotalUsers)
}

func TestRefreshSnapshot_SingleRow(t *testing.T) {
	gdb, svc := setupAnalyticsTest(t)
	seedOrders(t, gdb)

	require.NoError(t, svc.RefreshSnapshot())
	require.NoError(t, svc.RefreshSnapshot())

	var count int64
	require.NoError(t, gdb.Model(&model.AnalyticsSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDashboard(t *testing.T) {
	gdb, svc := setupAnalyticsTest(t)
	seedOrders(t, gdb)

	data, err := svc.Dashboard()
	require.NoError(t, err)

	statusCounts := make(map[model.OrderStatus]int64)
	for _, sc := range data.OrdersByStatus {
		statusCounts[sc.Status] = sc.Count
	}
	assert.Equal(t, int64(2), statusCounts[model.OrderStatusPending])
	assert.Equal(t, int64(1), statusCounts[model.OrderStatusShipped])

	require.Len(t, data.SalesByDate, 2)
	assert.Equal(t, "2026-08-01", data.SalesByDate[0].Date)
	assert.Equal(t, 450.00, data.SalesByDate[0].Total)
	assert.Equal(t, "2026-08-02", data.SalesByDate[1].Date)
	assert.Equal(t, 150.00, data.SalesByDate[1].Total)
}

func TestDashboard_Empty(t *testing.T) {
	_, svc := setupAnalyticsTest(t)

	data, err := svc.Dashboard()
	require.NoError(t, err)
	assert.Zero(t, data.Snapshot.TotalOrders)
	assert.Empty(t, data.SalesByDate)
}
