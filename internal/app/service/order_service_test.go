package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/internal/db"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderService, model.User, model.Product) {
	t.Helper()

	gdb, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gdb) })

	user := model.User{Username: "daisy", Email: "daisy@flora.example", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&user).Error)

	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150.00}
	require.NoError(t, gdb.Create(&product).Error)

	svc := NewOrderService(
		repository.NewOrderRepository(gdb),
		repository.NewProductRepository(gdb),
	)
	return gdb, svc, user, product
}

func TestPlaceOrder(t *testing.T) {
	gdb, svc, user, _ := setupOrderTest(t)

	order, err := svc.PlaceOrder(user.ID, "red-rose", PlaceOrderInput{
		Quantity: 3,
		Phone:    "0101234567",
		Address:  "1 Garden Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, 450.00, order.TotalPrice)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	var persisted model.Order
	require.NoError(t, gdb.First(&persisted, order.ID).Error)
	assert.Equal(t, 450.00, persisted.TotalPrice)
	assert.Equal(t, model.OrderStatusPending, persisted.Status)
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	gdb, svc, user, _ := setupOrderTest(t)

	tests := []struct {
		name  string
		input PlaceOrderInput
	}{
		{"zero quantity", PlaceOrderInput{Quantity: 0, Phone: "010", Address: "addr"}},
		{"no phone", PlaceOrderInput{Quantity: 1, Address: "addr"}},
		{"no address", PlaceOrderInput{Quantity: 1, Phone: "010"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(user.ID, "red-rose", tt.input)
			assert.ErrorIs(t, err, ErrMissingOrderFields)
		})
	}

	var count int64
	require.NoError(t, gdb.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrder_AltPhoneOptional(t *testing.T) {
	_, svc, user, _ := setupOrderTest(t)

	order, err := svc.PlaceOrder(user.ID, "red-rose", PlaceOrderInput{
		Quantity: 1,
		Phone:    "0101234567",
		AltPhone: "0107654321",
		Address:  "1 Garden Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, "0107654321", order.AltPhone)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	_, svc, user, _ := setupOrderTest(t)

	_, err := svc.PlaceOrder(user.ID, "missing", PlaceOrderInput{
		Quantity: 1,
		Phone:    "0101234567",
		Address:  "1 Garden Lane",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPlaceOrder_FractionalPriceTruncated(t *testing.T) {
	// The total is quantity times the whole-unit price.
	gdb, svc, user, _ := setupOrderTest(t)

	product := model.Product{Name: "Fern", Slug: "fern", Price: 19.99}
	require.NoError(t, gdb.Create(&product).Error)

	order, err := svc.PlaceOrder(user.ID, "fern", PlaceOrderInput{
		Quantity: 2,
		Phone:    "0101234567",
		Address:  "1 Garden Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, 38.00, order.TotalPrice)
}

func TestListUserOrders(t *testing.T) {
	gdb, svc, user, product := setupOrderTest(t)

	other := model.User{Username: "tulip", Email: "tulip@flora.example", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&other).Error)

	_, err := svc.PlaceOrder(user.ID, product.Slug, PlaceOrderInput{Quantity: 1, Phone: "010", Address: "a"})
	require.NoError(t, err)
	_, err = svc.PlaceOrder(other.ID, product.Slug, PlaceOrderInput{Quantity: 2, Phone: "010", Address: "b"})
	require.NoError(t, err)

	orders, err := svc.ListUserOrders(user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, user.ID, orders[0].UserID)
}
