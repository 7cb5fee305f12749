package services

import (
	"math"

	"shopx/internal/models"
	"shopx/internal/repositories"
)

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []models.Product `json:"products"`
	TotalPages int              `json:"total_pages"`
	PageSize   int              `json:"page_size"`
	Page       int              `json:"page"`
}

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List returns a page of products, newest first, optionally filtered by a
// search term matching name or brand.
func (s *ProductService) List(page int, search string) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}

	products, count, err := s.repo.List(page, defaultPageSize, search)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:   products,
		TotalPages: int(math.Ceil(float64(count) / float64(defaultPageSize))),
		PageSize:   defaultPageSize,
		Page:       page,
	}, nil
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(id int) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create adds a new product to the catalog.
func (s *ProductService) Create(product *models.Product) error {
	if product.Price.IsNegative() {
		return NewValidationError("price", "the price must not be negative")
	}
	return s.repo.Create(product)
}

// Update overwrites an existing product.
func (s *ProductService) Update(product *models.Product) error {
	if product.Price.IsNegative() {
		return NewValidationError("price", "the price must not be negative")
	}
	return s.repo.Update(product)
}

// Delete removes a product from the catalog. Existing order items keep
// their frozen unit prices.
func (s *ProductService) Delete(id int) error {
	return s.repo.Delete(id)
}
