package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/pkg/logger"
)

type AnalyticsRepository interface {
	Save(snapshot *model.AnalyticsSnapshot) error
	Latest() (*model.AnalyticsSnapshot, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// Save keeps a single snapshot row, updating it in place.
func (r *analyticsRepository) Save(snapshot *model.AnalyticsSnapshot) error {
	var existing model.AnalyticsSnapshot
	err := r.db.First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(snapshot).Error; err != nil {
				logger.Error("Failed to create analytics snapshot in database", err)
				return err
			}
			return nil
		}
		return err
	}

	snapshot.ID = existing.ID
	if err := r.db.Save(snapshot).Error; err != nil {
		logger.Error("Failed to update analytics snapshot in database", err)
		return err
	}
	return nil
}

func (r *analyticsRepository) Latest() (*model.AnalyticsSnapshot, error) {
	var snapshot model.AnalyticsSnapshot
	if err := r.db.Order("last_updated DESC").First(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}
