package handlers

import (
	"shopx/internal/middleware"
	"shopx/internal/models"
	"shopx/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public account routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/account")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/forgot-password", h.HandleForgotPassword)
	authRoutes.Post("/reset-password", h.HandleResetPassword)
}

// RegisterProtectedRoutes registers the routes requiring authentication.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	authRoutes := router.Group("/account")
	authRoutes.Get("/profile", h.HandleGetProfile)
	authRoutes.Put("/profile", h.HandleUpdateProfile)
	authRoutes.Put("/password", h.HandleUpdatePassword)
}

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Password  string `json:"password" validate:"required,min=8,max=100"`
}

// HandleRegister creates a new client account and returns its token and profile.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	}
	jwt, err := h.authService.Register(user)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": jwt,
		"user":  user.ToProfile(),
	})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and returns a fresh token and profile.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, jwt, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": jwt,
		"user":  user.ToProfile(),
	})
}

// ForgotPasswordRequest is the request body for requesting a reset token.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleForgotPassword issues a password-reset token for the email.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// ResetPasswordRequest is the request body for redeeming a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// HandleResetPassword redeems a reset token and stores the new password.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleGetProfile returns the authenticated caller's profile.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(middleware.CallerID(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user.ToProfile())
}

// UpdateProfileRequest is the request body for profile updates.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Address   string `json:"address" validate:"omitempty,max=100"`
}

// HandleUpdateProfile overwrites the caller's profile fields.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.authService.UpdateProfile(middleware.CallerID(c), req.FirstName, req.LastName, req.Email, req.Phone, req.Address)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user.ToProfile())
}

// UpdatePasswordRequest is the request body for password updates.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// HandleUpdatePassword replaces the caller's password.
func (h *AuthHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.UpdatePassword(middleware.CallerID(c), req.Password); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
