package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"shopx/internal/models"
	"shopx/internal/repositories"
	"shopx/pkg/mailer"
	"shopx/pkg/password"
	"shopx/pkg/token"

	"github.com/google/uuid"
)

// AuthService handles registration, login, profile management and the
// password-reset flow.
type AuthService struct {
	userRepo  repositories.UserRepository
	resetRepo repositories.PasswordResetRepository
	hasher    *password.Hasher
	tokens    *token.Manager
	mail      mailer.Mailer
}

// NewAuthService creates a new AuthService. mail may be nil; reset emails
// are then skipped.
func NewAuthService(userRepo repositories.UserRepository, resetRepo repositories.PasswordResetRepository, hasher *password.Hasher, tokens *token.Manager, mail mailer.Mailer) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		hasher:    hasher,
		tokens:    tokens,
		mail:      mail,
	}
}

// Register creates a new client account. user.Password carries the
// plaintext on input and is replaced with its hash before storage. On
// success the signed identity token for the new account is returned.
func (s *AuthService) Register(user *models.User) (string, error) {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return "", NewValidationError("email", "this email is already used")
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	user.Role = models.RoleClient
	user.CreatedAt = time.Now()

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	jwt, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return jwt, nil
}

// Login verifies the credentials and returns the user with a fresh identity
// token. Every failure maps to ErrInvalidCredentials.
func (s *AuthService) Login(email, plaintext string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !s.hasher.Check(user.Password, plaintext) {
		return nil, "", ErrInvalidCredentials
	}

	jwt, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, jwt, nil
}

// VerifyToken validates an identity token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*token.Claims, error) {
	return s.tokens.Verify(tokenString)
}

// GetProfile returns the user behind an id.
func (s *AuthService) GetProfile(userID int) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile overwrites the mutable profile fields of a user.
func (s *AuthService) UpdateProfile(userID int, firstName, lastName, email, phone, address string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	user.Phone = phone
	user.Address = address

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces the password hash of an authenticated user.
func (s *AuthService) UpdatePassword(userID int, plaintext string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	return s.userRepo.Update(user)
}

// ForgotPassword issues a single-use reset token for the email and mails it
// to the user. A previous token for the same email is superseded, keeping at
// most one live token per email. The email send is fire-and-forget: a
// delivery failure is logged and the request still succeeds.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}

	// Two concatenated UUIDs, 256 bits of randomness.
	resetToken := uuid.New().String() + "-" + uuid.New().String()

	reset := &models.PasswordReset{
		Email:     email,
		Token:     resetToken,
		CreatedAt: time.Now(),
	}
	if err := s.resetRepo.Replace(reset); err != nil {
		return err
	}

	if s.mail != nil {
		name := user.FirstName + " " + user.LastName
		body := "Dear " + name + "\n" +
			"We received your password reset request.\n" +
			"Please copy the following token and paste it in the Password Reset Form:\n" +
			resetToken + "\n\n" +
			"Best Regards\n"
		if err := s.mail.Send("Password Reset", email, name, body); err != nil {
			log.Printf("Warning: failed to send password reset email to %s: %v", email, err)
		}
	}

	return nil
}

// ResetPassword redeems a reset token and stores the new password hash. The
// token is deleted on consumption, so it works at most once. Unknown,
// already-used and orphaned tokens all produce the same vague error to avoid
// leaking token state.
func (s *AuthService) ResetPassword(resetToken, plaintext string) error {
	wrongToken := NewValidationError("token", "wrong or expired token")

	reset, err := s.resetRepo.Consume(resetToken)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return wrongToken
		}
		return err
	}

	user, err := s.userRepo.GetByEmail(reset.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return wrongToken
		}
		return err
	}

	hashed, err := s.hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	return s.userRepo.Update(user)
}
