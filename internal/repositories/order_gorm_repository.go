package repositories

import (
	"errors"
	"fmt"

	"shopx/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create persists an order and its items in a single transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its items.
func (r *GORMOrderRepository) GetByID(id int) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// List returns a page of all orders, newest first, plus the total count.
func (r *GORMOrderRepository) List(page, pageSize int) ([]models.Order, int64, error) {
	return r.list(r.db, page, pageSize)
}

// ListByUser returns a page of one user's orders, newest first, plus the
// total count of that user's orders.
func (r *GORMOrderRepository) ListByUser(userID, page, pageSize int) ([]models.Order, int64, error) {
	return r.list(r.db.Where("user_id = ?", userID), page, pageSize)
}

func (r *GORMOrderRepository) list(query *gorm.DB, page, pageSize int) ([]models.Order, int64, error) {
	// New session, so the count and the page query don't share statement state.
	query = query.Session(&gorm.Session{})

	var count int64
	if err := query.Model(&models.Order{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	err := query.Preload("Items").
		Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, count, nil
}

// Update saves the mutable columns of an existing order.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"payment_status": order.PaymentStatus,
			"order_status":   order.OrderStatus,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", order.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an order and its items in a single transaction.
func (r *GORMOrderRepository) Delete(id int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
