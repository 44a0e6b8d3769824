package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/internal/app/service"
	apperrors "github.com/florashop/flora-backend/internal/errors"
	"github.com/florashop/flora-backend/internal/middleware"
	"github.com/florashop/flora-backend/internal/storage"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// AdminController is the back-office surface. Carts and contact
// messages are list-only; orders allow status changes but never
// creation.
type AdminController struct {
	adminService     service.AdminService
	analyticsService service.AnalyticsService
	mediaStorage     *storage.MediaStorage
}

func NewAdminController(
	adminService service.AdminService,
	analyticsService service.AnalyticsService,
	mediaStorage *storage.MediaStorage,
) *AdminController {
	return &AdminController{
		adminService:     adminService,
		analyticsService: analyticsService,
		mediaStorage:     mediaStorage,
	}
}

// ==================== Products ====================

// POST /admin/products
func (ctrl *AdminController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product input")
		return
	}

	product, err := ctrl.adminService.CreateProduct(input)
	if err != nil {
		if errors.Is(err, service.ErrNegativeStock) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Stock must not be negative")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		info := apperrors.ParseError(err, "create product")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// PUT /admin/products/:id
func (ctrl *AdminController) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product input")
		return
	}

	product, err := ctrl.adminService.UpdateProduct(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNegativeStock):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Stock must not be negative")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DELETE /admin/products/:id
func (ctrl *AdminController) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.adminService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GET /admin/products?q=&category_id=&hot_sale=
func (ctrl *AdminController) ListProducts(c *gin.Context) {
	filter := repository.ProductFilter{Search: c.Query("q")}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category_id parameter")
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("hot_sale"); raw != "" {
		hotSale, err := strconv.ParseBool(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "hot_sale must be true or false")
			return
		}
		filter.HotSale = &hotSale
	}

	products, err := ctrl.adminService.ListProducts(filter)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GET /admin/products/:id
func (ctrl *AdminController) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.adminService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ==================== Categories ====================

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// POST /admin/categories
func (ctrl *AdminController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Category name is required")
		return
	}

	category, err := ctrl.adminService.CreateCategory(req.Name)
	if err != nil {
		info := apperrors.ParseError(err, "create category")
		apperrors.RespondWithError(c, http.StatusConflict, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// PUT /admin/categories/:id
func (ctrl *AdminController) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Category name is required")
		return
	}

	category, err := ctrl.adminService.UpdateCategory(id, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DELETE /admin/categories/:id
func (ctrl *AdminController) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.adminService.DeleteCategory(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// GET /admin/categories
func (ctrl *AdminController) ListCategories(c *gin.Context) {
	categories, err := ctrl.adminService.ListCategories()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ==================== Product images ====================

type productImageRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	ImagePath string `json:"image_path"`
	ImageURL  string `json:"image_url"`
}

// POST /admin/product-images
func (ctrl *AdminController) AddProductImage(c *gin.Context) {
	var req productImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product image input")
		return
	}

	image := &model.ProductImage{
		ProductID: req.ProductID,
		ImagePath: req.ImagePath,
		ImageURL:  req.ImageURL,
	}

	if err := ctrl.adminService.AddProductImage(image); err != nil {
		switch {
		case errors.Is(err, model.ErrImageSourceConflict):
			apperrors.BadRequest(c, apperrors.CatalogImageConflict, "Set either an uploaded image path or an external URL, not both")
		case errors.Is(err, model.ErrImageSourceMissing):
			apperrors.BadRequest(c, apperrors.CatalogImageMissing, "An uploaded image path or an external URL is required")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": image})
}

// PUT /admin/product-images/:id
func (ctrl *AdminController) UpdateProductImage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req productImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product image input")
		return
	}

	image, err := ctrl.adminService.UpdateProductImage(id, req.ImagePath, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrImageSourceConflict):
			apperrors.BadRequest(c, apperrors.CatalogImageConflict, "Set either an uploaded image path or an external URL, not both")
		case errors.Is(err, model.ErrImageSourceMissing):
			apperrors.BadRequest(c, apperrors.CatalogImageMissing, "An uploaded image path or an external URL is required")
		case errors.Is(err, service.ErrImageNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product image not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": image})
}

// DELETE /admin/product-images/:id
func (ctrl *AdminController) DeleteProductImage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.adminService.DeleteProductImage(id); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product image not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product image deleted"})
}

// GET /admin/products/:id/images
func (ctrl *AdminController) ListProductImages(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	images, err := ctrl.adminService.ListProductImages(id)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

// ==================== Uploads ====================

type presignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignProductImageUpload hands the client a short-lived PUT URL for
// the media bucket
// POST /admin/uploads/product-image
func (ctrl *AdminController) PresignProductImageUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req presignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "filename and content_type are required")
		return
	}

	if err := ctrl.mediaStorage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Unsupported image content type")
		return
	}

	resp, err := ctrl.mediaStorage.PresignProductImageUpload(req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to presign upload", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ==================== Discounts ====================

type discountRequest struct {
	ProductID uint      `json:"product_id" binding:"required"`
	Type      string    `json:"type" binding:"required"`
	Value     float64   `json:"value" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// POST /admin/discounts
func (ctrl *AdminController) CreateDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid discount input")
		return
	}

	discount := &model.Discount{
		ProductID: req.ProductID,
		Type:      model.DiscountType(req.Type),
		Value:     req.Value,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if err := ctrl.adminService.CreateDiscount(discount); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDiscountType):
			apperrors.BadRequest(c, apperrors.PromoInvalidType, "Type must be percentage or fixed")
		case errors.Is(err, service.ErrInvalidDiscountWindow):
			apperrors.BadRequest(c, apperrors.PromoInvalidWindow, "End date must not be before start date")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"discount": discount})
}

// PUT /admin/discounts/:id
func (ctrl *AdminController) UpdateDiscount(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid discount input")
		return
	}

	discount, err := ctrl.adminService.UpdateDiscount(id, model.Discount{
		Type:      model.DiscountType(req.Type),
		Value:     req.Value,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDiscountType):
			apperrors.BadRequest(c, apperrors.PromoInvalidType, "Type must be percentage or fixed")
		case errors.Is(err, service.ErrInvalidDiscountWindow):
			apperrors.BadRequest(c, apperrors.PromoInvalidWindow, "End date must not be before start date")
		case errors.Is(err, service.ErrDiscountNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Discount not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"discount": discount})
}

// DELETE /admin/discounts/:id
func (ctrl *AdminController) DeleteDiscount(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.adminService.DeleteDiscount(id); err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Discount not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Discount deleted"})
}

// GET /admin/discounts
func (ctrl *AdminController) ListDiscounts(c *gin.Context) {
	discounts, err := ctrl.adminService.ListDiscounts()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": discounts})
}

// ==================== Vouchers ====================

type voucherRequest struct {
	Code       string    `json:"code" binding:"required"`
	Type       string    `json:"type" binding:"required"`
	Value      float64   `json:"value" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
	UsageLimit int       `json:"usage_limit"`
}

// POST /admin/vouchers
func (ctrl *AdminController) CreateVoucher(c *gin.Context) {
	var req voucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid voucher input")
		return
	}

	voucher := &model.Voucher{
		Code:       req.Code,
		Type:       model.DiscountType(req.Type),
		Value:      req.Value,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		UsageLimit: req.UsageLimit,
	}

	if err := ctrl.adminService.CreateVoucher(voucher); err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherCodeExists):
			apperrors.Conflict(c, apperrors.PromoVoucherCodeExists, "A voucher with this code already exists")
		case errors.Is(err, service.ErrInvalidDiscountType):
			apperrors.BadRequest(c, apperrors.PromoInvalidType, "Type must be percentage or fixed")
		case errors.Is(err, service.ErrInvalidDiscountWindow):
			apperrors.BadRequest(c, apperrors.PromoInvalidWindow, "End date must not be before start date")
		case errors.Is(err, service.ErrInvalidUsageLimit):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Usage limit must be a positive integer")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"voucher": voucher})
}

// PUT /admin/vouchers/:id
func (ctrl *AdminController) UpdateVoucher(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req voucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid voucher input")
		return
	}

	voucher, err := ctrl.adminService.UpdateVoucher(id, model.Voucher{
		Code:       req.Code,
		Type:       model.DiscountType(req.Type),
		Value:      req.Value,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		UsageLimit: req.UsageLimit,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherCodeExists):
			apperrors.Conflict(c, apperrors.PromoVoucherCodeExists, "A voucher with this code already exists")
		case errors.Is(err, service.ErrInvalidDiscountType):
			apperrors.BadRequest(c, apperrors.PromoInvalidType, "Type must be percentage or fixed")
		case errors.Is(err, service.ErrInvalidDiscountWindow):
			apperrors.BadRequest(c, apperrors.PromoInvalidWindow, "End date must not be before start date")
		case errors.Is(err, service.ErrInvalidUsageLimit):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Usage limit must be a positive integer")
		case errors.Is(err, service.ErrVoucherNotFound):
			apperrors.NotFound(c, apperrors.PromoVoucherNotFound, "Voucher not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"voucher": voucher})
}

// DELETE /admin/vouchers/:id
func (ctrl *AdminController) DeleteVoucher(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.adminService.DeleteVoucher(id); err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			apperrors.NotFound(c, apperrors.PromoVoucherNotFound, "Voucher not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Voucher deleted"})
}

// GET /admin/vouchers
func (ctrl *AdminController) ListVouchers(c *gin.Context) {
	vouchers, err := ctrl.adminService.ListVouchers()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": vouchers})
}

// ==================== Read-only entities ====================

// GET /admin/carts
func (ctrl *AdminController) ListCarts(c *gin.Context) {
	carts, err := ctrl.adminService.ListCarts()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"carts": carts, "count": len(carts)})
}

// GET /admin/contacts
func (ctrl *AdminController) ListContacts(c *gin.Context) {
	contacts, err := ctrl.adminService.ListContacts()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}

// ==================== Orders ====================

// GET /admin/orders?status=
func (ctrl *AdminController) ListOrders(c *gin.Context) {
	orders, err := ctrl.adminService.ListOrders(model.OrderStatus(c.Query("status")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Status must be Pending, Shipped or Delivered")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /admin/orders/:id/status
func (ctrl *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	err := ctrl.adminService.UpdateOrderStatus(id, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Status must be Pending, Shipped or Delivered")
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

// ExportOrders streams all orders as a spreadsheet
// GET /admin/orders/export
func (ctrl *AdminController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	f, err := ctrl.adminService.ExportOrdersExcel()
	if err != nil {
		log.Error("Failed to export orders", err)
		apperrors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write spreadsheet response", err)
	}
}

// ==================== Analytics ====================

// GET /admin/analytics/dashboard
func (ctrl *AdminController) AnalyticsDashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.analyticsService.Dashboard()
	if err != nil {
		log.Error("Failed to build analytics dashboard", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, data)
}

// POST /admin/analytics/refresh
func (ctrl *AdminController) RefreshAnalytics(c *gin.Context) {
	if err := ctrl.analyticsService.RefreshSnapshot(); err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Analytics snapshot refreshed"})
}
