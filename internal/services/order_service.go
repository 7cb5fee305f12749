package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"shopx/internal/models"
	"shopx/internal/repositories"
	"shopx/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// Listing page size, shared by every paginated endpoint.
const defaultPageSize = 5

// OrderPage is one page of an order listing.
type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	TotalPages int            `json:"total_pages"`
	PageSize   int            `json:"page_size"`
	Page       int            `json:"page"`
}

// OrderService handles order creation, status updates and tenancy-scoped
// reads.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	mqClient    *rabbitmq.Client
	shippingFee decimal.Decimal
}

// NewOrderService creates a new OrderService. mqClient may be nil; order
// events are then skipped.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client, shippingFee decimal.Decimal) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
		shippingFee: shippingFee,
	}
}

// Create converts a cart identifier string into a persisted order for the
// given user. Unlike the cart preview, creation is strict: every decoded
// product id must resolve, otherwise the whole creation fails and nothing is
// persisted. Unit prices are frozen into the order items at this point.
func (s *OrderService) Create(userID int, identifiers, deliveryAddress, paymentMethod string) (*models.Order, error) {
	if _, ok := models.PaymentMethods[paymentMethod]; !ok {
		return nil, NewValidationError("payment_method", "please select a valid payment method")
	}

	counts := DecodeIdentifiers(identifiers)

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var items []models.OrderItem
	for _, id := range ids {
		product, err := s.productRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, NewValidationError("product", fmt.Sprintf("product with id %d is not available", id))
			}
			return nil, fmt.Errorf("failed to resolve product %d: %w", id, err)
		}
		items = append(items, models.OrderItem{
			ProductID: id,
			Quantity:  counts[id],
			UnitPrice: product.Price,
		})
	}

	if len(items) < 1 {
		return nil, NewValidationError("order", "unable to create the order")
	}

	order := &models.Order{
		UserID:          userID,
		CreatedAt:       time.Now(),
		ShippingFee:     s.shippingFee,
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   models.PaymentStatuses[0], // Pending
		OrderStatus:     models.OrderStatuses[0],   // Created
		Items:           items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishOrderCreated(order)

	return order, nil
}

// publishOrderCreated emits an order.created event. Publishing is
// fire-and-forget: a broker failure is logged and the order stands.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event":          "order.created",
		"order_id":       order.ID,
		"user_id":        order.UserID,
		"payment_status": order.PaymentStatus,
		"order_status":   order.OrderStatus,
		"total":          order.Total(),
	})
	if err != nil {
		log.Printf("Failed to marshal order event for order %d: %v", order.ID, err)
		return
	}

	if err := s.mqClient.Publish(rabbitmq.OrderQueue, payload); err != nil {
		log.Printf("Warning: failed to publish order created event for order %d: %v", order.ID, err)
	}
}

// Get returns an order by id. Non-admin callers can only read their own
// orders; a foreign order is reported as not found, never returned.
func (s *OrderService) Get(id, userID int, role string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && order.UserID != userID {
		return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
	}
	return order, nil
}

// List returns a page of orders, newest first. Admins see every order,
// other callers only their own.
func (s *OrderService) List(userID int, role string, page int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}

	var (
		orders []models.Order
		count  int64
		err    error
	)
	if role == models.RoleAdmin {
		orders, count, err = s.orderRepo.List(page, defaultPageSize)
	} else {
		orders, count, err = s.orderRepo.ListByUser(userID, page, defaultPageSize)
	}
	if err != nil {
		return nil, err
	}

	return &OrderPage{
		Orders:     orders,
		TotalPages: int(math.Ceil(float64(count) / float64(defaultPageSize))),
		PageSize:   defaultPageSize,
		Page:       page,
	}, nil
}

// Update sets the payment status and/or order status of an order. At least
// one of the two must be supplied; each supplied value must belong to its
// enumeration. Any enumerated value may be set from any state.
func (s *OrderService) Update(id int, paymentStatus, orderStatus *string) (*models.Order, error) {
	if paymentStatus == nil && orderStatus == nil {
		return nil, NewValidationError("order", "there is nothing to update")
	}
	if paymentStatus != nil && !models.ValidPaymentStatus(*paymentStatus) {
		return nil, NewValidationError("payment_status", "the payment status is not valid")
	}
	if orderStatus != nil && !models.ValidOrderStatus(*orderStatus) {
		return nil, NewValidationError("order_status", "the order status is not valid")
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if paymentStatus != nil {
		order.PaymentStatus = *paymentStatus
	}
	if orderStatus != nil {
		order.OrderStatus = *orderStatus
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(id int) error {
	return s.orderRepo.Delete(id)
}
