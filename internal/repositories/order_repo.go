package repositories

import "shopx/internal/models"

// OrderRepository defines the interface for order data access. Create must
// persist the order and its items atomically.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id int) (*models.Order, error)
	List(page, pageSize int) ([]models.Order, int64, error)
	ListByUser(userID, page, pageSize int) ([]models.Order, int64, error)
	Update(order *models.Order) error
	Delete(id int) error
}
