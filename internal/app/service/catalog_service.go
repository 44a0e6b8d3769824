package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/pkg/logger"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// MaxSuggestions caps the type-ahead result size.
const MaxSuggestions = 5

type CatalogService interface {
	ListProducts(search, categorySlug string) ([]model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	SearchSuggestions(query string) ([]repository.Suggestion, error)
	ListCategories() ([]model.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	mediaBaseURL string
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	mediaBaseURL string,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mediaBaseURL: mediaBaseURL,
	}
}

// ResolveDisplayImage picks a product's single display image. An
// uploaded image wins over an external URL even when both are present;
// uploaded paths are resolved against the media host base URL while
// external URLs pass through verbatim. No image yields "".
func ResolveDisplayImage(mediaBaseURL string, images []model.ProductImage) string {
	for _, img := range images {
		if img.ImagePath != "" {
			return strings.TrimRight(mediaBaseURL, "/") + "/" + strings.TrimLeft(img.ImagePath, "/")
		}
	}
	for _, img := range images {
		if img.ImageURL != "" {
			return img.ImageURL
		}
	}
	return ""
}

func (s *catalogService) ListProducts(search, categorySlug string) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"search":   search,
		"category": categorySlug,
	})

	filter := repository.ProductFilter{Search: search}
	if categorySlug != "" {
		category, err := s.categoryRepo.FindBySlug(categorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		filter.CategoryID = &category.ID
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].DisplayImage = ResolveDisplayImage(s.mediaBaseURL, products[i].Images)
	}
	return products, nil
}

func (s *catalogService) GetProductBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.DisplayImage = ResolveDisplayImage(s.mediaBaseURL, product.Images)
	return product, nil
}

// SearchSuggestions returns up to MaxSuggestions name/slug pairs for a
// type-ahead query. An empty query yields an empty list.
func (s *catalogService) SearchSuggestions(query string) ([]repository.Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return []repository.Suggestion{}, nil
	}
	suggestions, err := s.productRepo.FindSuggestions(query, MaxSuggestions)
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []repository.Suggestion{}
	}
	return suggestions, nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}
