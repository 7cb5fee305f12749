package services

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"shopx/internal/models"
	"shopx/internal/repositories"

	"github.com/shopspring/decimal"
)

// DecodeIdentifiers parses a cart identifier string ("id-id-id") into a map
// of product id to quantity. Each occurrence of an id adds one to its
// quantity. Malformed tokens are skipped silently: a bad token must not fail
// the whole cart. The empty string decodes to an empty map.
func DecodeIdentifiers(identifiers string) map[int]int {
	counts := make(map[int]int)
	if identifiers == "" {
		return counts
	}
	for _, token := range strings.Split(identifiers, "-") {
		id, err := strconv.Atoi(token)
		if err != nil || id < 0 {
			continue
		}
		counts[id]++
	}
	return counts
}

// CartService prices cart identifier strings against the current catalog.
type CartService struct {
	productRepo repositories.ProductRepository
	shippingFee decimal.Decimal
}

// NewCartService creates a new CartService with the process-wide shipping fee.
func NewCartService(productRepo repositories.ProductRepository, shippingFee decimal.Decimal) *CartService {
	return &CartService{
		productRepo: productRepo,
		shippingFee: shippingFee,
	}
}

// Preview decodes the identifier string and prices it against the catalog.
// Ids that do not resolve to a product are dropped silently, matching the
// decoder's tolerance: the preview path never fails on user input. Lines are
// ordered by ascending product id.
func (s *CartService) Preview(identifiers string) (*models.Cart, error) {
	counts := DecodeIdentifiers(identifiers)

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	cart := &models.Cart{
		Items:       []models.CartItem{},
		Subtotal:    decimal.Zero,
		ShippingFee: s.shippingFee,
	}

	for _, id := range ids {
		product, err := s.productRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}

		quantity := counts[id]
		cart.Items = append(cart.Items, models.CartItem{
			Product:  *product,
			Quantity: quantity,
		})
		cart.Subtotal = cart.Subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(quantity))))
	}

	cart.Total = cart.Subtotal.Add(cart.ShippingFee)
	return cart, nil
}
