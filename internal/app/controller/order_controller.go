package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/florashop/flora-backend/internal/app/service"
	apperrors "github.com/florashop/flora-backend/internal/errors"
	"github.com/florashop/flora-backend/internal/middleware"
)

type OrderController struct {
	orderService   service.OrderService
	catalogService service.CatalogService
}

func NewOrderController(orderService service.OrderService, catalogService service.CatalogService) *OrderController {
	return &OrderController{
		orderService:   orderService,
		catalogService: catalogService,
	}
}

// OrderForm returns the product being ordered so the client can render
// the checkout form
// GET /order/:slug
func (ctrl *OrderController) OrderForm(c *gin.Context) {
	slug := c.Param("slug")
	product, err := ctrl.catalogService.GetProductBySlug(slug)
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

// PlaceOrder creates an order for one product
// POST /order/:slug
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	var input service.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Malformed order body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Request body must be valid JSON")
		return
	}

	order, err := ctrl.orderService.PlaceOrder(userID, c.Param("slug"), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingOrderFields):
			apperrors.BadRequest(c, apperrors.OrderMissingFields, "Quantity, phone and address are required")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		default:
			log.Error("Failed to place order", err, map[string]interface{}{
				"user_id": userID,
				"slug":    c.Param("slug"),
			})
			apperrors.InternalError(c, "Your order could not be placed. Please try again later")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// MyOrders lists the authenticated user's orders
// GET /orders/
func (ctrl *OrderController) MyOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	orders, err := ctrl.orderService.ListUserOrders(userID)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}
