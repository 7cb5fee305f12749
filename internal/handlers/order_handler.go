package handlers

import (
	"shopx/internal/middleware"
	"shopx/internal/models"
	"shopx/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders. All routes require
// authentication; update and delete additionally require the admin role.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Put("/:id", middleware.RequireRoles(models.RoleAdmin), h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", middleware.RequireRoles(models.RoleAdmin), h.HandleDeleteOrder)
}

// CreateOrderRequest is the request body for order creation.
type CreateOrderRequest struct {
	ProductIdentifiers string `json:"product_identifiers" validate:"required"`
	DeliveryAddress    string `json:"delivery_address" validate:"required,max=100"`
	PaymentMethod      string `json:"payment_method" validate:"required,max=30"`
}

// HandleCreateOrder creates an order for the authenticated caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	order, err := h.service.Create(middleware.CallerID(c), req.ProductIdentifiers, req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders returns a page of the caller's orders, or of all orders
// for admins.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	page, err := h.service.List(middleware.CallerID(c), middleware.CallerRole(c), c.QueryInt("page", 1))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(page)
}

// HandleGetOrder returns a single order, subject to tenancy checks.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	order, err := h.service.Get(id, middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(order)
}

// UpdateOrderRequest is the request body for order status updates. Nil
// fields are left untouched; at least one must be supplied.
type UpdateOrderRequest struct {
	PaymentStatus *string `json:"payment_status"`
	OrderStatus   *string `json:"order_status"`
}

// HandleUpdateOrder sets the payment and/or order status of an order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	order, err := h.service.Update(id, req.PaymentStatus, req.OrderStatus)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
