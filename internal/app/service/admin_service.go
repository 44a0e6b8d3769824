package service

import (
	"errors"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/pkg/logger"
	"github.com/florashop/flora-backend/pkg/util"
)

var (
	ErrInvalidDiscountWindow = errors.New("discount end date must not be before start date")
	ErrInvalidDiscountType   = errors.New("discount type must be percentage or fixed")
	ErrVoucherCodeExists     = errors.New("voucher code already exists")
	ErrInvalidUsageLimit     = errors.New("voucher usage limit must be a positive integer")
	ErrNegativeStock         = errors.New("stock must not be negative")
	ErrInvalidOrderStatus    = errors.New("invalid order status")
	ErrDiscountNotFound      = errors.New("discount not found")
	ErrVoucherNotFound       = errors.New("voucher not found")
	ErrImageNotFound         = errors.New("product image not found")
	ErrOrderNotFound         = errors.New("order not found")
)

// ProductInput is the admin create/update payload for a product. A
// blank slug is derived from the name.
type ProductInput struct {
	Name            string  `json:"name" binding:"required"`
	Slug            string  `json:"slug"`
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
	Stock           int     `json:"stock"`
	HotSale         bool    `json:"hot_sale"`
	MetaTitle       string  `json:"meta_title"`
	MetaDescription string  `json:"meta_description"`
	CategoryID      *uint   `json:"category_id"`
}

type AdminService interface {
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)

	CreateCategory(name string) (*model.Category, error)
	UpdateCategory(id uint, name string) (*model.Category, error)
	DeleteCategory(id uint) error
	ListCategories() ([]model.Category, error)

	AddProductImage(image *model.ProductImage) error
	UpdateProductImage(id uint, imagePath, imageURL string) (*model.ProductImage, error)
	DeleteProductImage(id uint) error
	ListProductImages(productID uint) ([]model.ProductImage, error)

	CreateDiscount(discount *model.Discount) error
	UpdateDiscount(id uint, update model.Discount) (*model.Discount, error)
	DeleteDiscount(id uint) error
	ListDiscounts() ([]model.Discount, error)

	CreateVoucher(voucher *model.Voucher) error
	UpdateVoucher(id uint, update model.Voucher) (*model.Voucher, error)
	DeleteVoucher(id uint) error
	ListVouchers() ([]model.Voucher, error)

	// Carts and contacts are read-only in the back-office.
	ListCarts() ([]model.Cart, error)
	ListContacts() ([]model.Contact, error)

	// Orders can only change status; the back-office never creates them.
	ListOrders(status model.OrderStatus) ([]model.Order, error)
	UpdateOrderStatus(id uint, status model.OrderStatus) error
	ExportOrdersExcel() (*excelize.File, error)
}

type adminService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageRepo    repository.ProductImageRepository
	discountRepo repository.DiscountRepository
	voucherRepo  repository.VoucherRepository
	cartRepo     repository.CartRepository
	orderRepo    repository.OrderRepository
	contactRepo  repository.ContactRepository
	mediaBaseURL string
}

func NewAdminService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	imageRepo repository.ProductImageRepository,
	discountRepo repository.DiscountRepository,
	voucherRepo repository.VoucherRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	contactRepo repository.ContactRepository,
	mediaBaseURL string,
) AdminService {
	return &adminService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		discountRepo: discountRepo,
		voucherRepo:  voucherRepo,
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		contactRepo:  contactRepo,
		mediaBaseURL: mediaBaseURL,
	}
}

// ==================== Products ====================

func (s *adminService) CreateProduct(input ProductInput) (*model.Product, error) {
	if input.Stock < 0 {
		return nil, ErrNegativeStock
	}

	slug := input.Slug
	if slug == "" {
		var err error
		slug, err = util.UniqueSlug(input.Name, s.productRepo.SlugExists)
		if err != nil {
			return nil, err
		}
	}

	product := &model.Product{
		Name:            input.Name,
		Slug:            slug,
		Price:           input.Price,
		Description:     input.Description,
		Stock:           input.Stock,
		HotSale:         input.HotSale,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		CategoryID:      input.CategoryID,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return product, nil
}

func (s *adminService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	if input.Stock < 0 {
		return nil, ErrNegativeStock
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Description = input.Description
	product.Stock = input.Stock
	product.HotSale = input.HotSale
	product.MetaTitle = input.MetaTitle
	product.MetaDescription = input.MetaDescription
	product.CategoryID = input.CategoryID
	if input.Slug != "" {
		product.Slug = input.Slug
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *adminService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

// ListProducts mirrors the storefront listing for the back-office,
// including the derived preview image per product.
func (s *adminService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].DisplayImage = ResolveDisplayImage(s.mediaBaseURL, products[i].Images)
	}
	return products, nil
}

func (s *adminService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ==================== Categories ====================

func (s *adminService) CreateCategory(name string) (*model.Category, error) {
	slug, err := util.UniqueSlug(name, s.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	category := &model.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *adminService) UpdateCategory(id uint, name string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *adminService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *adminService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

// ==================== Product images ====================

func (s *adminService) AddProductImage(image *model.ProductImage) error {
	if err := image.Validate(); err != nil {
		return err
	}
	if _, err := s.productRepo.FindByID(image.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.imageRepo.Create(image)
}

func (s *adminService) UpdateProductImage(id uint, imagePath, imageURL string) (*model.ProductImage, error) {
	image, err := s.imageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}

	image.ImagePath = imagePath
	image.ImageURL = imageURL
	if err := image.Validate(); err != nil {
		return nil, err
	}

	if err := s.imageRepo.Update(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *adminService) DeleteProductImage(id uint) error {
	if _, err := s.imageRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	return s.imageRepo.Delete(id)
}

func (s *adminService) ListProductImages(productID uint) ([]model.ProductImage, error) {
	return s.imageRepo.FindByProductID(productID)
}

// ==================== Discounts ====================

func (s *adminService) CreateDiscount(discount *model.Discount) error {
	if !discount.Type.Valid() {
		return ErrInvalidDiscountType
	}
	if discount.EndDate.Before(discount.StartDate) {
		return ErrInvalidDiscountWindow
	}
	if _, err := s.productRepo.FindByID(discount.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.discountRepo.Create(discount)
}

func (s *adminService) UpdateDiscount(id uint, update model.Discount) (*model.Discount, error) {
	if !update.Type.Valid() {
		return nil, ErrInvalidDiscountType
	}
	if update.EndDate.Before(update.StartDate) {
		return nil, ErrInvalidDiscountWindow
	}

	discount, err := s.discountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}

	discount.Type = update.Type
	discount.Value = update.Value
	discount.StartDate = update.StartDate
	discount.EndDate = update.EndDate

	if err := s.discountRepo.Update(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *adminService) DeleteDiscount(id uint) error {
	if _, err := s.discountRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscountNotFound
		}
		return err
	}
	return s.discountRepo.Delete(id)
}

func (s *adminService) ListDiscounts() ([]model.Discount, error) {
	return s.discountRepo.FindAll()
}

// ==================== Vouchers ====================

func (s *adminService) CreateVoucher(voucher *model.Voucher) error {
	if !voucher.Type.Valid() {
		return ErrInvalidDiscountType
	}
	if voucher.EndDate.Before(voucher.StartDate) {
		return ErrInvalidDiscountWindow
	}
	// Zero falls through to the stored default of 1.
	if voucher.UsageLimit < 0 {
		return ErrInvalidUsageLimit
	}

	exists, err := s.voucherRepo.CodeExists(voucher.Code)
	if err != nil {
		return err
	}
	if exists {
		return ErrVoucherCodeExists
	}
	return s.voucherRepo.Create(voucher)
}

func (s *adminService) UpdateVoucher(id uint, update model.Voucher) (*model.Voucher, error) {
	if !update.Type.Valid() {
		return nil, ErrInvalidDiscountType
	}
	if update.EndDate.Before(update.StartDate) {
		return nil, ErrInvalidDiscountWindow
	}
	if update.UsageLimit < 1 {
		return nil, ErrInvalidUsageLimit
	}

	voucher, err := s.voucherRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}

	if update.Code != "" && update.Code != voucher.Code {
		exists, err := s.voucherRepo.CodeExists(update.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrVoucherCodeExists
		}
		voucher.Code = update.Code
	}
	voucher.Type = update.Type
	voucher.Value = update.Value
	voucher.StartDate = update.StartDate
	voucher.EndDate = update.EndDate
	voucher.UsageLimit = update.UsageLimit

	if err := s.voucherRepo.Update(voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

func (s *adminService) DeleteVoucher(id uint) error {
	if _, err := s.voucherRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}
	return s.voucherRepo.Delete(id)
}

func (s *adminService) ListVouchers() ([]model.Voucher, error) {
	return s.voucherRepo.FindAll()
}

// ==================== Read-only entities ====================

func (s *adminService) ListCarts() ([]model.Cart, error) {
	return s.cartRepo.FindAll()
}

func (s *adminService) ListContacts() ([]model.Contact, error) {
	return s.contactRepo.FindAll()
}

// ==================== Orders ====================

func (s *adminService) ListOrders(status model.OrderStatus) ([]model.Order, error) {
	if status == "" {
		return s.orderRepo.FindAll()
	}
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	return s.orderRepo.FindByStatus(status)
}

func (s *adminService) UpdateOrderStatus(id uint, status model.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return nil
}

// ExportOrdersExcel builds a spreadsheet with one row per order.
func (s *adminService) ExportOrdersExcel() (*excelize.File, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "User", "Product", "Quantity", "Phone", "Address", "Total Price", "Status", "Order Date"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		values := []interface{}{
			order.ID,
			order.User.Username,
			order.Product.Name,
			order.Quantity,
			order.Phone,
			order.Address,
			order.TotalPrice,
			string(order.Status),
			order.OrderDate.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	logger.Info("Orders exported to spreadsheet", map[string]interface{}{
		"count": len(orders),
	})
	return f, nil
}
