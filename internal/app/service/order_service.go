package service

import (
	"errors"
	"time"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/pkg/logger"
)

var ErrMissingOrderFields = errors.New("quantity, phone and address are required")

// PlaceOrderInput carries the checkout form fields. AltPhone is the
// only optional field.
type PlaceOrderInput struct {
	Quantity int    `json:"quantity"`
	Phone    string `json:"phone"`
	AltPhone string `json:"alt_phone"`
	Address  string `json:"address"`
}

type OrderService interface {
	PlaceOrder(userID uint, slug string, input PlaceOrderInput) (*model.Order, error)
	ListUserOrders(userID uint) ([]model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// PlaceOrder persists one order for one product. The total is a
// snapshot taken now: quantity times the whole-unit price. The write is
// a single insert, so a failure leaves nothing behind.
func (s *orderService) PlaceOrder(userID uint, slug string, input PlaceOrderInput) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"user_id":  userID,
		"slug":     slug,
		"quantity": input.Quantity,
	})

	if input.Quantity <= 0 || input.Phone == "" || input.Address == "" {
		logger.Warn("Order rejected: missing required fields", map[string]interface{}{
			"user_id": userID,
			"slug":    slug,
		})
		return nil, ErrMissingOrderFields
	}

	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		logger.Warn("Order rejected: product not found", map[string]interface{}{
			"slug": slug,
		})
		return nil, ErrProductNotFound
	}

	order := &model.Order{
		UserID:     userID,
		ProductID:  product.ID,
		Quantity:   input.Quantity,
		Phone:      input.Phone,
		AltPhone:   input.AltPhone,
		Address:    input.Address,
		OrderDate:  time.Now(),
		TotalPrice: float64(input.Quantity * int(product.Price)),
		Status:     model.OrderStatusPending,
	}

	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to place order", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": product.ID,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"order_id":    order.ID,
		"total_price": order.TotalPrice,
	})
	return order, nil
}

func (s *orderService) ListUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}
