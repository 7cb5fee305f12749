package handlers

import (
	"time"

	"shopx/internal/middleware"
	"shopx/internal/models"
	"shopx/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
}

// RegisterProtectedRoutes registers the catalog management routes,
// restricted to admins and sellers.
func (h *ProductHandler) RegisterProtectedRoutes(router fiber.Router) {
	manage := middleware.RequireRoles(models.RoleAdmin, models.RoleSeller)
	productRoutes := router.Group("/products")
	productRoutes.Post("/", manage, h.HandleCreateProduct)
	productRoutes.Put("/:id", manage, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", manage, h.HandleDeleteProduct)
}

// HandleListProducts returns a page of products, optionally filtered by a
// search term.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page, err := h.service.List(c.QueryInt("page", 1), c.Query("search"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(page)
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	product, err := h.service.Get(id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(product)
}

// ProductRequest is the request body for creating or updating a product.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Brand       string          `json:"brand" validate:"omitempty,max=100"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" validate:"required"`
}

// HandleCreateProduct adds a product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product := &models.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		CreatedAt:   time.Now(),
	}
	if err := h.service.Create(product); err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.service.Get(id)
	if err != nil {
		return handleServiceError(c, err)
	}

	product.Name = req.Name
	product.Brand = req.Brand
	product.Category = req.Category
	product.Description = req.Description
	product.Price = req.Price

	if err := h.service.Update(product); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product from the catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
