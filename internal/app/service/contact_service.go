package service

import (
	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/pkg/logger"
)

type ContactService interface {
	Submit(name, email, message string) (*model.Contact, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

// Submit stores the message as-is. Visitor messages are accepted
// without field validation.
func (s *contactService) Submit(name, email, message string) (*model.Contact, error) {
	contact := &model.Contact{
		Name:    name,
		Email:   email,
		Message: message,
	}

	if err := s.contactRepo.Create(contact); err != nil {
		logger.Error("Failed to store contact message", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("Contact message stored", map[string]interface{}{
		"contact_id": contact.ID,
	})
	return contact, nil
}
