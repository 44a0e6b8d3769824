package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/pkg/logger"
)

// ProductFilter narrows the catalog listing. Search is a
// case-insensitive substring match against the product name.
type ProductFilter struct {
	Search     string
	CategoryID *uint
	HotSale    *bool
}

// Suggestion is the reduced shape returned to type-ahead clients.
type Suggestion struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	FindSuggestions(query string, limit int) ([]Suggestion, error)
	SlugExists(slug string) (bool, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name": product.Name,
		"slug": product.Slug,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Images")
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"search":      filter.Search,
		"category_id": filter.CategoryID,
		"hot_sale":    filter.HotSale,
	})

	query := r.baseQuery()

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("LOWER(products.name) LIKE LOWER(?)", like)
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.HotSale != nil {
		query = query.Where("products.hot_sale = ?", *filter.HotSale)
	}

	var products []model.Product
	if err := query.Order("products.created_at DESC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery().Preload("Discounts").First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	logger.Debug("Finding product by slug in database", map[string]interface{}{
		"slug": slug,
	})

	var product model.Product
	err := r.baseQuery().Preload("Discounts").
		Where("products.slug = ?", slug).
		First(&product).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find product by slug in database", err, map[string]interface{}{
				"slug": slug,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindSuggestions(query string, limit int) ([]Suggestion, error) {
	var suggestions []Suggestion
	like := fmt.Sprintf("%%%s%%", query)
	err := r.db.Model(&model.Product{}).
		Select("name, slug").
		Where("LOWER(name) LIKE LOWER(?)", like).
		Order("name ASC").
		Limit(limit).
		Scan(&suggestions).Error
	if err != nil {
		logger.Error("Failed to find product suggestions in database", err, map[string]interface{}{
			"query": query,
		})
		return nil, err
	}
	return suggestions, nil
}

func (r *productRepository) SlugExists(slug string) (bool, error) {
	var product model.Product
	err := r.db.Select("id").Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// Delete removes the product and everything hanging off it.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteProductDependents(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

func deleteProductDependents(tx *gorm.DB, productIDs []uint) error {
	if err := tx.Where("product_id IN ?", productIDs).Delete(&model.ProductImage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", productIDs).Delete(&model.Discount{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", productIDs).Delete(&model.Cart{}).Error; err != nil {
		return err
	}
	return tx.Where("product_id IN ?", productIDs).Delete(&model.Order{}).Error
}
