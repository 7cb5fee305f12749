package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"shopx/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository,
// used by unit tests to assert what was persisted.
type MockOrderRepository struct {
	orders map[int]models.Order
	nextID int
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[int]models.Order),
		nextID: 1,
	}
}

// Create stores a new order, assigning it the next free ID.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id int) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
	}
	return &order, nil
}

// List returns a page of all orders, newest first.
func (r *MockOrderRepository) List(page, pageSize int) ([]models.Order, int64, error) {
	return r.page(func(models.Order) bool { return true }, page, pageSize)
}

// ListByUser returns a page of one user's orders, newest first.
func (r *MockOrderRepository) ListByUser(userID, page, pageSize int) ([]models.Order, int64, error) {
	return r.page(func(o models.Order) bool { return o.UserID == userID }, page, pageSize)
}

func (r *MockOrderRepository) page(keep func(models.Order) bool, page, pageSize int) ([]models.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []models.Order
	for _, order := range r.orders {
		if keep(order) {
			all = append(all, order)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	count := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []models.Order{}, count, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], count, nil
}

// Update replaces the status fields of a stored order.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("order with ID %d: %w", order.ID, ErrNotFound)
	}
	stored.PaymentStatus = order.PaymentStatus
	stored.OrderStatus = order.OrderStatus
	r.orders[order.ID] = stored
	return nil
}

// Delete removes a stored order.
func (r *MockOrderRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}
