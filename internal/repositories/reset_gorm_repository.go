package repositories

import (
	"errors"
	"fmt"

	"shopx/internal/models"

	"gorm.io/gorm"
)

// GORMPasswordResetRepository is a GORM implementation of PasswordResetRepository.
type GORMPasswordResetRepository struct {
	db *gorm.DB
}

// NewGORMPasswordResetRepository creates a new instance of GORMPasswordResetRepository.
func NewGORMPasswordResetRepository(db *gorm.DB) *GORMPasswordResetRepository {
	return &GORMPasswordResetRepository{db: db}
}

// Replace deletes any existing token for the email and inserts the new one
// in a single transaction, keeping at most one live token per email.
func (r *GORMPasswordResetRepository) Replace(reset *models.PasswordReset) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PasswordReset{}, "email = ?", reset.Email).Error; err != nil {
			return err
		}
		return tx.Create(reset).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace password reset for %s: %w", reset.Email, err)
	}
	return nil
}

// Consume looks up a token and deletes it in a single transaction, so a
// token can be redeemed at most once.
func (r *GORMPasswordResetRepository) Consume(token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reset, "token = ?", token).Error; err != nil {
			return err
		}
		return tx.Delete(&reset).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("password reset token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to consume password reset token: %w", err)
	}
	return &reset, nil
}
