package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/florashop/flora-backend/internal/app/service"
	apperrors "github.com/florashop/flora-backend/internal/errors"
	"github.com/florashop/flora-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// Home returns the catalog listing with optional search and category
// filters
// GET /?q=&category=
func (ctrl *CatalogController) Home(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	search := c.Query("q")
	category := c.Query("category")

	products, err := ctrl.catalogService.ListProducts(search, category)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to list products", err, map[string]interface{}{
			"search":   search,
			"category": category,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// ProductDetail returns one product by slug
// GET /product_detail/:slug/
func (ctrl *CatalogController) ProductDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	product, err := ctrl.catalogService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// SearchSuggestions returns up to 5 type-ahead matches
// GET /search-suggestions/?q=
func (ctrl *CatalogController) SearchSuggestions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	suggestions, err := ctrl.catalogService.SearchSuggestions(c.Query("q"))
	if err != nil {
		log.Error("Failed to fetch search suggestions", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// ListCategories returns all categories
// GET /categories/
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.catalogService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// About is the static informational page
// GET /about/
func (ctrl *CatalogController) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Flora",
		"description": "A small storefront for flowers and botanical goods.",
		"contact":     "hello@flora.example",
	})
}
