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

func setupAdminTest(t *testing.T) (*gorm.DB, AdminService) {
	t.Helper()

	gdb, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gdb) })

	svc := NewAdminService(
		repository.NewProductRepository(gdb),
		repository.NewCategoryRepository(gdb),
		repository.NewProductImageRepository(gdb),
		repository.NewDiscountRepository(gdb),
		repository.NewVoucherRepository(gdb),
		repository.NewCartRepository(gdb),
		repository.NewOrderRepository(gdb),
		repository.NewContactRepository(gdb),
		"https://media.flora.example",
	)
	return gdb, svc
}

func TestCreateProduct_DerivesSlug(t *testing.T) {
	_, svc := setupAdminTest(t)

	product, err := svc.CreateProduct(ProductInput{Name: "Red Rose", Price: 150})
	require.NoError(t, err)
	assert.Equal(t, "red-rose", product.Slug)
}

func TestCreateProduct_SlugCollision(t *testing.T) {
	_, svc := setupAdminTest(t)

	first, err := svc.CreateProduct(ProductInput{Name: "Red Rose", Price: 150})
	require.NoError(t, err)
	assert.Equal(t, "red-rose", first.Slug)

	second, err := svc.CreateProduct(ProductInput{Name: "Red Rose", Price: 120})
	require.NoError(t, err)
	assert.Equal(t, "red-rose-2", second.Slug)
}

func TestCreateProduct_NegativeStockRejected(t *testing.T) {
	gdb, svc := setupAdminTest(t)

	_, err := svc.CreateProduct(ProductInput{Name: "Tulip", Price: 80, Stock: -5})
	assert.ErrorIs(t, err, ErrNegativeStock)

	var count int64
	require.NoError(t, gdb.Model(&model.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateProduct_NegativeStockRejected(t *testing.T) {
	gdb, svc := setupAdminTest(t)

	product, err := svc.CreateProduct(ProductInput{Name: "Tulip", Price: 80, Stock: 10})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(product.ID, ProductInput{Name: "Tulip", Price: 80, Stock: -1})
	assert.ErrorIs(t, err, ErrNegativeStock)

	var stored model.Product
	require.NoError(t, gdb.First(&stored, product.ID).Error)
	assert.Equal(t, 10, stored.Stock)
}

func TestAddProductImage_ExclusivityEnforced(t *testing.T) {
	_, svc := setupAdminTest(t)

	product, err := svc.CreateProduct(ProductInput{Name: "Red Rose", Price: 150})
	require.NoError(t, err)

	err = svc.AddProductImage(&model.ProductImage{
		ProductID: product.ID,
		ImagePath: "products/rose.jpg",
		ImageURL:  "https://cdn.other.example/rose.jpg",
	})
	assert.ErrorIs(t, err, model.ErrImageSourceConflict)

	err = svc.AddProductImage(&model.ProductImage{ProductID: product.ID})
	assert.ErrorIs(t, err, model.ErrImageSourceMissing)

	err = svc.AddProductImage(&model.ProductImage{
		ProductID: product.ID,
		ImagePath: "products/rose.jpg",
	})
	assert.NoError(t, err)

	images, err := svc.ListProductImages(product.ID)
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestCreateDiscount_WindowEnforced(t *testing.T) {
	_, svc := setupAdminTest(t)

	product, err := svc.CreateProduct(ProductInput{Name: "Red Rose", Price: 150})
	require.NoError(t, err)

	now := time.Now()
	err = svc.CreateDiscount(&model.Discount{
		ProductID: product.ID,
		Type:      model.DiscountPercentage,
		Value:     10,
		StartDate: now,
		EndDate:   now.Add(-24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidDiscountWindow)

	err = svc.CreateDiscount(&model.Discount{
		ProductID: product.ID,
		Type:      model.DiscountPercentage,
		Value:     10,
		StartDate: now,
		EndDate:   now.Add(24 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestCreateDiscount_InvalidType(t *testing.T) {
	_, svc := setupAdminTest(t)

	product, err := svc.CreateProduct(ProductInput{Name: "Red Rose", Price: 150})
	require.NoError(t, err)

	now := time.Now()
	err = svc.CreateDiscount(&model.Discount{
		ProductID: product.ID,
		Type:      model.DiscountType("bogo"),
		Value:     10,
		StartDate: now,
		EndDate:   now.Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidDiscountType)
}

func TestCreateVoucher_InvalidType(t *testing.T) {
	_, svc := setupAdminTest(t)

	now := time.Now()
	err := svc.CreateVoucher(&model.Voucher{
		Code:      "MYSTERY",
		Type:      model.DiscountType("loyalty"),
		Value:     5,
		StartDate: now,
		EndDate:   now.Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidDiscountType)
}

func TestCreateVoucher_NegativeUsageLimit(t *testing.T) {
	gdb, svc := setupAdminTest(t)

	now := time.Now()
	err := svc.CreateVoucher(&model.Voucher{
		Code:       "SPRING10",
		Type:       model.DiscountPercentage,
		Value:      10,
		StartDate:  now,
		EndDate:    now.Add(24 * time.Hour),
		UsageLimit: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidUsageLimit)

	var count int64
	require.NoError(t, gdb.Model(&model.Voucher{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateVoucher_DuplicateCode(t *testing.T) {
	_, svc := setupAdminTest(t)

	now := time.Now()
	voucher := model.Voucher{
		Code:      "SPRING10",
		Type:      model.DiscountPercentage,
		Value:     10,
		StartDate: now,
		EndDate:   now.Add(24 * time.Hour),
	}
	require.NoError(t, svc.CreateVoucher(&voucher))

	dup := model.Voucher{
		Code:      "SPRING10",
		Type:      model.DiscountFixed,
		Value:     5,
		StartDate: now,
		EndDate:   now.Add(24 * time.Hour),
	}
	assert.ErrorIs(t, svc.CreateVoucher(&dup), ErrVoucherCodeExists)
}

func TestUpdateOrderStatus(t *testing.T) {
	gdb, svc := setupAdminTest(t)

	user := model.User{Username: "daisy", Email: "daisy@flora.example", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&user).Error)
	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, gdb.Create(&product).Error)
	order := model.Order{
		UserID: user.ID, ProductID: product.ID, Quantity: 1,
		Phone: "010", Address: "a", TotalPrice: 150,
		Status: model.OrderStatusPending, OrderDate: time.Now(),
	}
	require.NoError(t, gdb.Create(&order).Error)

	require.NoError(t, svc.UpdateOrderStatus(order.ID, model.OrderStatusShipped))

	var updated model.Order
	require.NoError(t, gdb.First(&updated, order.ID).Error)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	_, svc := setupAdminTest(t)

	err := svc.UpdateOrderStatus(1, model.OrderStatus("Returned"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	_, svc := setupAdminTest(t)

	err := svc.UpdateOrderStatus(999, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestExportOrdersExcel(t *testing.T) {
	gdb, svc := setupAdminTest(t)

	user := model.User{Username: "daisy", Email: "daisy@flora.example", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&user).Error)
	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, gdb.Create(&product).Error)
	order := model.Order{
		UserID: user.ID, ProductID: product.ID, Quantity: 2,
		Phone: "010", Address: "a", TotalPrice: 300,
		Status: model.OrderStatusPending, OrderDate: time.Now(),
	}
	require.NoError(t, gdb.Create(&order).Error)

	f, err := svc.ExportOrdersExcel()
	require.NoError(t, err)

	name, err := f.GetCellValue("Orders", "B2")
	require.NoError(t, err)
	assert.Equal(t, "daisy", name)

	productName, err := f.GetCellValue("Orders", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Red Rose", productName)
}

func TestDeleteCategory_CascadesToProducts(t *testing.T) {
	gdb, svc := setupAdminTest(t)

	category, err := svc.CreateCategory("Roses")
	require.NoError(t, err)

	product, err := svc.CreateProduct(ProductInput{Name: "Red Rose", Price: 150, CategoryID: &category.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(category.ID))

	var count int64
	require.NoError(t, gdb.Model(&model.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}
