package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/florashop/flora-backend/internal/app/service"
	apperrors "github.com/florashop/flora-backend/internal/errors"
	"github.com/florashop/flora-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type addToCartRequest struct {
	ProductSlug string `json:"product_slug"`
}

// AddToCart puts a product in the authenticated user's cart. The slug
// arrives as a query parameter on GET or a JSON body on POST; every
// other method is rejected with 405. The operation is idempotent and
// the response reports whether a new row was created.
// GET,POST /cart/add/
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	var slug string
	switch c.Request.Method {
	case http.MethodGet:
		slug = c.Query("product_slug")
	case http.MethodPost:
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warn("Malformed cart add body", map[string]interface{}{
				"error": err.Error(),
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Request body must be valid JSON")
			return
		}
		slug = req.ProductSlug
	default:
		apperrors.MethodNotAllowed(c, "Method not allowed")
		return
	}

	if slug == "" {
		apperrors.BadRequest(c, apperrors.CartMissingProduct, "product_slug is required")
		return
	}

	created, err := ctrl.cartService.AddBySlug(userID, slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add product to cart", err, map[string]interface{}{
			"user_id": userID,
			"slug":    slug,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"created": created,
	})
}

// ViewCart lists the authenticated user's cart rows
// GET /cart/
func (ctrl *CartController) ViewCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	items, err := ctrl.cartService.ListItems(userID)
	if err != nil {
		log.Error("Failed to list cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// RemoveFromCart deletes one of the user's cart rows
// DELETE /cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	cartID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, cartID); err != nil {
		apperrors.NotFound(c, apperrors.CartNotFound, "Cart item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}
