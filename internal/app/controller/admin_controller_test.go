package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/internal/app/service"
	"github.com/florashop/flora-backend/internal/db"
	"github.com/florashop/flora-backend/internal/storage"
)

func setupAdminControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	imageRepo := repository.NewProductImageRepository(testDB)
	discountRepo := repository.NewDiscountRepository(testDB)
	voucherRepo := repository.NewVoucherRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	contactRepo := repository.NewContactRepository(testDB)
	analyticsRepo := repository.NewAnalyticsRepository(testDB)

	adminService := service.NewAdminService(
		productRepo,
		categoryRepo,
		imageRepo,
		discountRepo,
		voucherRepo,
		cartRepo,
		orderRepo,
		contactRepo,
		"https://media.flora.example",
	)
	analyticsService := service.NewAnalyticsService(orderRepo, userRepo, analyticsRepo)
	mediaStorage := storage.NewMediaStorage("eu-west-1", "flora-test", "test-key", "test-secret", "https://media.flora.example")

	ctrl := NewAdminController(adminService, analyticsService, mediaStorage)

	router := gin.New()
	admin := router.Group("/admin")
	{
		admin.POST("/products", ctrl.CreateProduct)
		admin.POST("/categories", ctrl.CreateCategory)
		admin.POST("/product-images", ctrl.AddProductImage)
		admin.POST("/discounts", ctrl.CreateDiscount)
		admin.POST("/vouchers", ctrl.CreateVoucher)
		admin.GET("/carts", ctrl.ListCarts)
		admin.GET("/contacts", ctrl.ListContacts)
		admin.GET("/orders", ctrl.ListOrders)
		admin.PATCH("/orders/:id/status", ctrl.UpdateOrderStatus)
		admin.GET("/orders/export", ctrl.ExportOrders)
		admin.POST("/uploads/product-image", ctrl.PresignProductImageUpload)
		admin.GET("/analytics/dashboard", ctrl.AnalyticsDashboard)
	}

	return router, testDB
}

func adminJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminController_CreateProduct_DerivesSlug(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	w := adminJSON(t, router, "POST", "/admin/products", map[string]interface{}{
		"name":  "White Rose",
		"price": 140,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	product := response["product"].(map[string]interface{})
	assert.Equal(t, "white-rose", product["slug"])
}

func TestAdminController_AddProductImage_BothSources(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, testDB.Create(&product).Error)

	w := adminJSON(t, router, "POST", "/admin/product-images", productImageRequest{
		ProductID: product.ID,
		ImagePath: "products/red-rose.jpg",
		ImageURL:  "https://cdn.example.com/red-rose.jpg",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CATALOG_IMAGE_SOURCE_CONFLICT", response["error"])
}

func TestAdminController_AddProductImage_NoSource(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, testDB.Create(&product).Error)

	w := adminJSON(t, router, "POST", "/admin/product-images", productImageRequest{
		ProductID: product.ID,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CATALOG_IMAGE_SOURCE_MISSING", response["error"])
}

func TestAdminController_CreateDiscount_InvalidWindow(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, testDB.Create(&product).Error)

	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	w := adminJSON(t, router, "POST", "/admin/discounts", discountRequest{
		ProductID: product.ID,
		Type:      "percentage",
		Value:     10,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -5),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PROMO_INVALID_WINDOW", response["error"])
}

func TestAdminController_CreateDiscount_InvalidType(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, testDB.Create(&product).Error)

	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	w := adminJSON(t, router, "POST", "/admin/discounts", discountRequest{
		ProductID: product.ID,
		Type:      "bogo",
		Value:     10,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 5),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PROMO_INVALID_TYPE", response["error"])
	assert.Equal(t, "Type must be percentage or fixed", response["message"])
}

func TestAdminController_CreateVoucher_DuplicateCode(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	payload := voucherRequest{
		Code:      "SPRING10",
		Type:      "percentage",
		Value:     10,
		StartDate: start,
		EndDate:   start.AddDate(0, 1, 0),
	}

	first := adminJSON(t, router, "POST", "/admin/vouchers", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := adminJSON(t, router, "POST", "/admin/vouchers", payload)
	assert.Equal(t, http.StatusConflict, second.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &response))
	assert.Equal(t, "PROMO_VOUCHER_CODE_EXISTS", response["error"])
}

func seedOrder(t *testing.T, testDB *gorm.DB) model.Order {
	t.Helper()

	user := model.User{Username: "daisy", Email: "daisy@example.com", PasswordHash: "x"}
	require.NoError(t, testDB.Create(&user).Error)
	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, testDB.Create(&product).Error)

	order := model.Order{
		UserID:     user.ID,
		ProductID:  product.ID,
		Quantity:   2,
		Phone:      "0123456789",
		Address:    "12 Garden Lane",
		TotalPrice: 300,
		Status:     model.OrderStatusPending,
		OrderDate:  time.Now(),
	}
	require.NoError(t, testDB.Create(&order).Error)
	return order
}

func TestAdminController_UpdateOrderStatus(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)
	order := seedOrder(t, testDB)

	w := adminJSON(t, router, "PATCH", fmt.Sprintf("/admin/orders/%d/status", order.ID), orderStatusRequest{Status: "Shipped"})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Order
	require.NoError(t, testDB.First(&updated, order.ID).Error)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)
}

func TestAdminController_UpdateOrderStatus_Invalid(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)
	order := seedOrder(t, testDB)

	w := adminJSON(t, router, "PATCH", fmt.Sprintf("/admin/orders/%d/status", order.ID), orderStatusRequest{Status: "Teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ORDER_INVALID_STATUS", response["error"])
}

func TestAdminController_UpdateOrderStatus_Unknown(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	w := adminJSON(t, router, "PATCH", "/admin/orders/999/status", orderStatusRequest{Status: "Shipped"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminController_ExportOrders(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)
	seedOrder(t, testDB)

	w := adminJSON(t, router, "GET", "/admin/orders/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}

func TestAdminController_PresignUpload_InvalidContentType(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	w := adminJSON(t, router, "POST", "/admin/uploads/product-image", presignUploadRequest{
		Filename:    "catalogue.pdf",
		ContentType: "application/pdf",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "UPLOAD_INVALID_FILE_TYPE", response["error"])
}

func TestAdminController_AnalyticsDashboard(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)
	seedOrder(t, testDB)

	w := adminJSON(t, router, "GET", "/admin/analytics/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	snapshot := response["snapshot"].(map[string]interface{})
	assert.Equal(t, float64(300), snapshot["total_sales"])
	assert.Equal(t, float64(1), snapshot["total_orders"])
}

func TestAdminController_ListContacts_ReadOnlySurface(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	require.NoError(t, testDB.Create(&model.Contact{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Do you deliver on Sundays?",
	}).Error)

	w := adminJSON(t, router, "GET", "/admin/contacts", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}
