// Package sale orchestrates the checkout flow: resolving scanned codes
// into cart lines and turning a finished cart into a backend sale.
package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/bakdaulet/kassa/internal/api"
	"github.com/bakdaulet/kassa/internal/cart"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrDebtWithoutCustomer is returned when any line is flagged as debt
	// but no customer is attached to the cart.
	ErrDebtWithoutCustomer = errors.New("debt sale requires a customer")
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=sale
type Backend interface {
	ProductByBarcode(ctx context.Context, barcode string) (*api.Product, error)
	CreateSale(ctx context.Context, params api.CreateSaleParams) (*api.Sale, error)
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// ResolveScan looks up a scanned or typed code and returns the product
// together with a ready-to-add cart line. The line snapshots the catalog
// price into OriginalPriceCents; later price overrides on the line do not
// touch it. A catalog miss surfaces as api.ErrNotFound.
func (s *Service) ResolveScan(ctx context.Context, code string) (*api.Product, cart.LineCandidate, error) {
	product, err := s.backend.ProductByBarcode(ctx, code)
	if err != nil {
		return nil, cart.LineCandidate{}, err
	}

	candidate := cart.LineCandidate{
		ProductID:          product.Barcode,
		Name:               product.Name,
		PriceCents:         product.PriceCents,
		OriginalPriceCents: product.PriceCents,
		Quantity:           1,
	}

	return product, candidate, nil
}

// Checkout submits the cart as a sale. The cart itself is never mutated
// here: on success the caller clears it, on failure it stays intact so
// the cashier can retry.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart) (*api.Sale, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	isDebt := c.HasDebt()

	customer := c.Customer()
	if isDebt && customer == nil {
		return nil, ErrDebtWithoutCustomer
	}

	params := api.CreateSaleParams{
		Items:  make([]api.SaleItem, 0, len(lines)),
		IsDebt: isDebt,
	}

	for _, line := range lines {
		params.Items = append(params.Items, api.SaleItem{
			ItemBarcode: line.ProductID,
			PriceCents:  line.PriceCents,
			Quantity:    line.Quantity,
			Description: line.Name,
		})
	}

	if customer != nil {
		params.Customer = &api.Customer{
			Name:    customer.Name,
			Phone:   customer.Phone,
			Comment: customer.Comment,
		}
	}

	created, err := s.backend.CreateSale(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("submitting sale: %w", err)
	}

	return created, nil
}
