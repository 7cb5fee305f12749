package repositories

import "shopx/internal/models"

// ContactRepository defines the interface for contact-form data access.
type ContactRepository interface {
	Create(contact *models.Contact) error
	GetByID(id int) (*models.Contact, error)
	List(page, pageSize int) ([]models.Contact, int64, error)
	Delete(id int) error
	ListSubjects() ([]models.Subject, error)
	GetSubject(id int) (*models.Subject, error)
}
