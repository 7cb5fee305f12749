package services

import (
	"errors"
	"log"
	"math"
	"time"

	"shopx/internal/models"
	"shopx/internal/repositories"
	"shopx/pkg/mailer"
)

// ContactPage is one page of a contact listing.
type ContactPage struct {
	Contacts   []models.Contact `json:"contacts"`
	TotalPages int              `json:"total_pages"`
	PageSize   int              `json:"page_size"`
	Page       int              `json:"page"`
}

// ContactService handles contact-form submissions.
type ContactService struct {
	repo repositories.ContactRepository
	mail mailer.Mailer
}

// NewContactService creates a new ContactService. mail may be nil; the
// confirmation email is then skipped.
func NewContactService(repo repositories.ContactRepository, mail mailer.Mailer) *ContactService {
	return &ContactService{repo: repo, mail: mail}
}

// Subjects returns every contact-form subject.
func (s *ContactService) Subjects() ([]models.Subject, error) {
	return s.repo.ListSubjects()
}

// Create stores a contact message after validating the subject, then sends
// a confirmation email fire-and-forget.
func (s *ContactService) Create(contact *models.Contact) error {
	subject, err := s.repo.GetSubject(contact.SubjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewValidationError("subject", "please select a valid subject")
		}
		return err
	}
	contact.Subject = *subject
	contact.CreatedAt = time.Now()

	if err := s.repo.Create(contact); err != nil {
		return err
	}

	if s.mail != nil {
		name := contact.FirstName + " " + contact.LastName
		body := "Dear " + name + "\n" +
			"We received your message, thank you for contacting us.\n" +
			"Our team will contact you very soon.\n\n" +
			"Best Regards\n"
		if err := s.mail.Send("Contact Confirmation", contact.Email, name, body); err != nil {
			log.Printf("Warning: failed to send contact confirmation to %s: %v", contact.Email, err)
		}
	}

	return nil
}

// List returns a page of contact messages, newest first.
func (s *ContactService) List(page int) (*ContactPage, error) {
	if page < 1 {
		page = 1
	}

	contacts, count, err := s.repo.List(page, defaultPageSize)
	if err != nil {
		return nil, err
	}

	return &ContactPage{
		Contacts:   contacts,
		TotalPages: int(math.Ceil(float64(count) / float64(defaultPageSize))),
		PageSize:   defaultPageSize,
		Page:       page,
	}, nil
}

// Get retrieves a single contact message.
func (s *ContactService) Get(id int) (*models.Contact, error) {
	return s.repo.GetByID(id)
}

// Delete removes a contact message.
func (s *ContactService) Delete(id int) error {
	return s.repo.Delete(id)
}
