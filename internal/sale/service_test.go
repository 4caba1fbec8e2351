package sale_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bakdaulet/kassa/internal/api"
	"github.com/bakdaulet/kassa/internal/cart"
	"github.com/bakdaulet/kassa/internal/sale"
)

func TestService_ResolveScan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := sale.NewMockBackend(ctrl)
	backend.EXPECT().
		ProductByBarcode(gomock.Any(), "4600000000017").
		Return(&api.Product{Barcode: "4600000000017", Name: "Milk 1L", PriceCents: 450, Stock: 12}, nil)

	svc := sale.NewService(backend)

	product, candidate, err := svc.ResolveScan(context.Background(), "4600000000017")
	require.NoError(t, err)
	assert.Equal(t, "Milk 1L", product.Name)
	assert.Equal(t, "4600000000017", candidate.ProductID)
	assert.Equal(t, int64(450), candidate.PriceCents)
	assert.Equal(t, int64(450), candidate.OriginalPriceCents)
	assert.Equal(t, 1, candidate.Quantity)
	assert.False(t, candidate.IsDebt)
}

func TestService_ResolveScan_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := sale.NewMockBackend(ctrl)
	backend.EXPECT().
		ProductByBarcode(gomock.Any(), "000").
		Return(nil, api.ErrNotFound)

	svc := sale.NewService(backend)

	_, _, err := svc.ResolveScan(context.Background(), "000")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestService_Checkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := sale.NewMockBackend(ctrl)
	svc := sale.NewService(backend)

	c := cart.New()
	c.AddLine(cart.LineCandidate{ProductID: "a", Name: "Milk 1L", PriceCents: 450, OriginalPriceCents: 450, Quantity: 2})
	c.AddLine(cart.LineCandidate{ProductID: "b", Name: "Bread", PriceCents: 120, OriginalPriceCents: 120, Quantity: 1})

	backend.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params api.CreateSaleParams) (*api.Sale, error) {
			require.Len(t, params.Items, 2)
			assert.Equal(t, api.SaleItem{ItemBarcode: "a", PriceCents: 450, Quantity: 2, Description: "Milk 1L"}, params.Items[0])
			assert.False(t, params.IsDebt)
			assert.Nil(t, params.Customer)

			return &api.Sale{ID: "s1", TotalCents: 1020}, nil
		})

	created, err := svc.Checkout(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "s1", created.ID)

	// Clearing after a successful sale is the caller's job.
	assert.Equal(t, 2, c.Len())
}

func TestService_Checkout_DebtSaleCarriesCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := sale.NewMockBackend(ctrl)
	svc := sale.NewService(backend)

	c := cart.New()
	c.AddLine(cart.LineCandidate{ProductID: "a", Name: "Milk 1L", PriceCents: 450, OriginalPriceCents: 450, Quantity: 1, IsDebt: true})
	c.SetCustomer(&cart.Customer{Name: "Aigerim", Phone: "+7 700 000 00 00", Comment: "regular"})

	backend.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params api.CreateSaleParams) (*api.Sale, error) {
			assert.True(t, params.IsDebt)
			require.NotNil(t, params.Customer)
			assert.Equal(t, "Aigerim", params.Customer.Name)
			assert.Equal(t, "regular", params.Customer.Comment)

			return &api.Sale{ID: "s2", IsDebt: true}, nil
		})

	_, err := svc.Checkout(context.Background(), c)
	require.NoError(t, err)
}

func TestService_Checkout_DebtWithoutCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := sale.NewService(sale.NewMockBackend(ctrl))

	c := cart.New()
	c.AddLine(cart.LineCandidate{ProductID: "a", Name: "A", PriceCents: 100, OriginalPriceCents: 100, Quantity: 1, IsDebt: true})

	_, err := svc.Checkout(context.Background(), c)
	assert.ErrorIs(t, err, sale.ErrDebtWithoutCustomer)
}

func TestService_Checkout_EmptyCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := sale.NewService(sale.NewMockBackend(ctrl))

	_, err := svc.Checkout(context.Background(), cart.New())
	assert.ErrorIs(t, err, sale.ErrEmptyCart)
}

func TestService_Checkout_BackendFailureLeavesCartIntact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := sale.NewMockBackend(ctrl)
	backend.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("backend down"))

	svc := sale.NewService(backend)

	c := cart.New()
	c.AddLine(cart.LineCandidate{ProductID: "a", Name: "A", PriceCents: 100, OriginalPriceCents: 100, Quantity: 3})
	c.SetCustomer(&cart.Customer{Name: "Aigerim", Phone: "x"})

	_, err := svc.Checkout(context.Background(), c)
	require.Error(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.ItemCount())
	assert.NotNil(t, c.Customer())
}
