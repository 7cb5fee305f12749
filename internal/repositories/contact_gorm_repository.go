package repositories

import (
	"errors"
	"fmt"

	"shopx/internal/models"

	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{db: db}
}

// Create stores a new contact message.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// GetByID retrieves a contact with its subject.
func (r *GORMContactRepository) GetByID(id int) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.Preload("Subject").First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact by ID %d: %w", id, err)
	}
	return &contact, nil
}

// List returns a page of contacts ordered newest first, plus the total count.
func (r *GORMContactRepository) List(page, pageSize int) ([]models.Contact, int64, error) {
	var count int64
	if err := r.db.Model(&models.Contact{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var contacts []models.Contact
	err := r.db.Preload("Subject").
		Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, count, nil
}

// Delete removes a contact message.
func (r *GORMContactRepository) Delete(id int) error {
	res := r.db.Delete(&models.Contact{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListSubjects returns every contact-form subject.
func (r *GORMContactRepository) ListSubjects() ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.db.Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// GetSubject retrieves a subject by its ID.
func (r *GORMContactRepository) GetSubject(id int) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.First(&subject, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subject with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subject by ID %d: %w", id, err)
	}
	return &subject, nil
}
