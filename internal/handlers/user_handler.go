package handlers

import (
	"shopx/internal/middleware"
	"shopx/internal/models"
	"shopx/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the admin-only user directory.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers the user directory routes, admin only.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users", middleware.RequireRoles(models.RoleAdmin))
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
}

// HandleListUsers returns a page of user profiles.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	page, err := h.service.List(c.QueryInt("page", 1))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(page)
}

// HandleGetUser returns the profile of a single user.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	profile, err := h.service.Get(id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(profile)
}
