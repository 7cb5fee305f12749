package handlers

import (
	"shopx/internal/models"
	"shopx/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for cart previews.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes. Carts live entirely on the
// client; these routes are read-only and public.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/payment-methods", h.HandleGetPaymentMethods)
}

// HandleGetCart prices the identifier string from the query against the
// current catalog.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.Preview(c.Query("identifiers"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(cart)
}

// HandleGetPaymentMethods returns the accepted payment methods with their
// display names.
func (h *CartHandler) HandleGetPaymentMethods(c *fiber.Ctx) error {
	return c.JSON(models.PaymentMethods)
}
