package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/pkg/logger"
)

type CartRepository interface {
	GetOrCreate(userID, productID uint) (*model.Cart, bool, error)
	FindByUserID(userID uint) ([]model.Cart, error)
	FindAll() ([]model.Cart, error)
	FindByID(id uint) (*model.Cart, error)
	Delete(id uint) error
	DeleteByUserID(userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetOrCreate returns the (user, product) cart row, inserting it with
// quantity 1 when absent. The second return reports whether a new row
// was created. The insert is a single statement so concurrent adds for
// the same pair cannot duplicate the row.
func (r *cartRepository) GetOrCreate(userID, productID uint) (*model.Cart, bool, error) {
	logger.Debug("Getting or creating cart item in database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	cart := model.Cart{UserID: userID, ProductID: productID, Quantity: 1}
	result := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&cart)
	if result.Error != nil {
		logger.Error("Failed to get or create cart item in database", result.Error, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, false, result.Error
	}

	created := result.RowsAffected > 0
	if !created {
		if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
			First(&cart).Error; err != nil {
			return nil, false, err
		}
	}

	logger.Debug("Cart item resolved in database", map[string]interface{}{
		"cart_id": cart.ID,
		"created": created,
	})
	return &cart, created, nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.Cart, error) {
	logger.Debug("Finding cart items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var items []model.Cart
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Images").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindAll() ([]model.Cart, error) {
	var items []model.Cart
	err := r.db.Preload("Product").Preload("User").Find(&items).Error
	if err != nil {
		logger.Error("Failed to find all cart items in database", err)
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindByID(id uint) (*model.Cart, error) {
	var item model.Cart
	if err := r.db.Preload("Product").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Cart{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.Cart{}).Error; err != nil {
		logger.Error("Failed to delete cart items by user ID from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
