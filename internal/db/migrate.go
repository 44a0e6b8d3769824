package db

import (
	"github.com/florashop/flora-backend/config"
	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/pkg/logger"
	"github.com/florashop/flora-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Discount{},
		&model.Voucher{},
		&model.Cart{},
		&model.Order{},
		&model.Contact{},
		&model.AnalyticsSnapshot{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedAdminUser creates the bootstrap back-office account when it does
// not exist yet. A blank configured password skips seeding.
func SeedAdminUser(cfg *config.AdminConfig) error {
	if cfg.Password == "" {
		logger.Info("No admin password configured, skipping admin seeding")
		return nil
	}

	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Admin user already exists, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		logger.Error("Failed to create admin user", err)
		return err
	}

	logger.Info("Admin user seeded successfully", map[string]interface{}{
		"username": cfg.Username,
	})
	return nil
}
