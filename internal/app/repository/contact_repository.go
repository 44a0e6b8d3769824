package repository

import (
	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/pkg/logger"
)

type ContactRepository interface {
	Create(contact *model.Contact) error
	FindAll() ([]model.Contact, error)
	FindByID(id uint) (*model.Contact, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	logger.Debug("Creating contact message in database", map[string]interface{}{
		"email": contact.Email,
	})

	if err := r.db.Create(contact).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": contact.Email,
		})
		return err
	}
	return nil
}

func (r *contactRepository) FindAll() ([]model.Contact, error) {
	var contacts []model.Contact
	if err := r.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		logger.Error("Failed to find contact messages in database", err)
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) FindByID(id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}
