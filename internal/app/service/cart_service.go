package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/pkg/logger"
)

type CartService interface {
	AddBySlug(userID uint, slug string) (created bool, err error)
	ListItems(userID uint) ([]model.Cart, error)
	RemoveItem(userID, cartID uint) error
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	mediaBaseURL string
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	mediaBaseURL string,
) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		mediaBaseURL: mediaBaseURL,
	}
}

// AddBySlug puts a product in the user's cart. Adding the same product
// twice keeps a single row; the return value reports whether this call
// created it.
func (s *cartService) AddBySlug(userID uint, slug string) (bool, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"user_id": userID,
		"slug":    slug,
	})

	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart add failed: product not found", map[string]interface{}{
				"slug": slug,
			})
			return false, ErrProductNotFound
		}
		return false, err
	}

	_, created, err := s.cartRepo.GetOrCreate(userID, product.ID)
	if err != nil {
		logger.Error("Failed to add product to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": product.ID,
		})
		return false, err
	}

	logger.Info("Product added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": product.ID,
		"created":    created,
	})
	return created, nil
}

func (s *cartService) ListItems(userID uint) ([]model.Cart, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Product.DisplayImage = ResolveDisplayImage(s.mediaBaseURL, items[i].Product.Images)
	}
	return items, nil
}

func (s *cartService) RemoveItem(userID, cartID uint) error {
	item, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	if item.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	return s.cartRepo.Delete(cartID)
}
