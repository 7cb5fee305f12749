package repositories

import "shopx/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(page, pageSize int, search string) ([]models.Product, int64, error)
	GetByID(id int) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id int) error
}
