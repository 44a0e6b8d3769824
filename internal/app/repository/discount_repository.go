package repository

import (
	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/pkg/logger"
)

type DiscountRepository interface {
	Create(discount *model.Discount) error
	FindAll() ([]model.Discount, error)
	FindByID(id uint) (*model.Discount, error)
	FindByProductID(productID uint) ([]model.Discount, error)
	Update(discount *model.Discount) error
	Delete(id uint) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(discount *model.Discount) error {
	logger.Debug("Creating discount in database", map[string]interface{}{
		"product_id": discount.ProductID,
		"type":       discount.Type,
		"value":      discount.Value,
	})

	if err := r.db.Create(discount).Error; err != nil {
		logger.Error("Failed to create discount in database", err, map[string]interface{}{
			"product_id": discount.ProductID,
		})
		return err
	}
	return nil
}

func (r *discountRepository) FindAll() ([]model.Discount, error) {
	var discounts []model.Discount
	if err := r.db.Preload("Product").Order("start_date DESC").Find(&discounts).Error; err != nil {
		logger.Error("Failed to find discounts in database", err)
		return nil, err
	}
	return discounts, nil
}

func (r *discountRepository) FindByID(id uint) (*model.Discount, error) {
	var discount model.Discount
	if err := r.db.First(&discount, id).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) FindByProductID(productID uint) ([]model.Discount, error) {
	var discounts []model.Discount
	if err := r.db.Where("product_id = ?", productID).Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *discountRepository) Update(discount *model.Discount) error {
	if err := r.db.Save(discount).Error; err != nil {
		logger.Error("Failed to update discount in database", err, map[string]interface{}{
			"discount_id": discount.ID,
		})
		return err
	}
	return nil
}

func (r *discountRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Discount{}, id).Error; err != nil {
		logger.Error("Failed to delete discount from database", err, map[string]interface{}{
			"discount_id": id,
		})
		return err
	}
	return nil
}
