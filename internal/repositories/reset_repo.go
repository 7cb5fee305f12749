package repositories

import "shopx/internal/models"

// PasswordResetRepository defines the interface for password-reset token
// data access. Replace and Consume are each atomic: concurrent requests for
// the same email can never leave two live tokens, and a token can be
// consumed at most once.
type PasswordResetRepository interface {
	// Replace deletes any existing token for the email and stores a new one.
	Replace(reset *models.PasswordReset) error
	// Consume finds a token, deletes it and returns the stored record.
	Consume(token string) (*models.PasswordReset, error)
}
