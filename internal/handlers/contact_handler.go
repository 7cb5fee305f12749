package handlers

import (
	"shopx/internal/middleware"
	"shopx/internal/models"
	"shopx/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for the contact form.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public contact routes.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	contactRoutes := router.Group("/contacts")
	contactRoutes.Get("/subjects", h.HandleGetSubjects)
	contactRoutes.Post("/", h.HandleCreateContact)
}

// RegisterProtectedRoutes registers the contact administration routes,
// admin only.
func (h *ContactHandler) RegisterProtectedRoutes(router fiber.Router) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	contactRoutes := router.Group("/contacts")
	contactRoutes.Get("/", admin, h.HandleListContacts)
	contactRoutes.Get("/:id", admin, h.HandleGetContact)
	contactRoutes.Delete("/:id", admin, h.HandleDeleteContact)
}

// HandleGetSubjects returns the contact-form subjects.
func (h *ContactHandler) HandleGetSubjects(c *fiber.Ctx) error {
	subjects, err := h.service.Subjects()
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(subjects)
}

// ContactRequest is the request body for a contact-form submission.
type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	SubjectID int    `json:"subject_id" validate:"required"`
	Message   string `json:"message" validate:"required,max=4000"`
}

// HandleCreateContact stores a contact message and triggers the
// confirmation email.
func (h *ContactHandler) HandleCreateContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	contact := &models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		SubjectID: req.SubjectID,
		Message:   req.Message,
	}
	if err := h.service.Create(contact); err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// HandleListContacts returns a page of contact messages.
func (h *ContactHandler) HandleListContacts(c *fiber.Ctx) error {
	page, err := h.service.List(c.QueryInt("page", 1))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(page)
}

// HandleGetContact returns a single contact message.
func (h *ContactHandler) HandleGetContact(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	contact, err := h.service.Get(id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(contact)
}

// HandleDeleteContact removes a contact message.
func (h *ContactHandler) HandleDeleteContact(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
