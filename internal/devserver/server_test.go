package devserver_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakdaulet/kassa/internal/api"
	"github.com/bakdaulet/kassa/internal/devserver"
)

// newTestClient spins up the in-memory server and returns a client
// pointed at it, already logged in as the given account.
func newTestClient(t *testing.T, login, password string) *api.Client {
	t.Helper()

	srv := devserver.New(devserver.NewStore(), "test-secret", time.Hour)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL+"/api/v1", 5*time.Second)

	if login != "" {
		resp, err := client.Login(context.Background(), login, password)
		require.NoError(t, err)
		client.SetToken(resp.Token)
	}

	return client
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, "", "")

	resp, err := client.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, api.RoleAdmin, resp.User.Role)
	assert.Equal(t, "admin", resp.User.Login)
}

func TestLoginBadPassword(t *testing.T) {
	client := newTestClient(t, "", "")

	_, err := client.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestRequestWithoutToken(t *testing.T) {
	client := newTestClient(t, "", "")

	_, err := client.ListProducts(context.Background(), 1, 10)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestProductLookup(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")

	product, err := client.ProductByBarcode(context.Background(), "4600000000017")
	require.NoError(t, err)
	assert.Equal(t, "Молоко 1л", product.Name)
	assert.Equal(t, int64(450), product.PriceCents)

	_, err = client.ProductByBarcode(context.Background(), "0000000000000")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestProductSearch(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")

	products, err := client.SearchProducts(context.Background(), api.ProductSearchParams{Name: "молоко"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "4600000000017", products[0].Barcode)
}

func TestProductPagination(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")

	page, err := client.ListProducts(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Len(t, page, 3)

	page, err = client.ListProducts(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestProductCRUDRequiresAdmin(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")

	_, err := client.CreateProduct(context.Background(), api.ProductCreateParams{
		Barcode: "1112223334445", Name: "Чай", PriceCents: 300, Stock: 10,
	})

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 403, statusErr.Code)
}

func TestProductCRUD(t *testing.T) {
	client := newTestClient(t, "admin", "admin")
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, api.ProductCreateParams{
		Barcode: "1112223334445", Name: "Чай", PriceCents: 300, Stock: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Чай", created.Name)

	// Duplicate barcode is rejected.
	_, err = client.CreateProduct(ctx, api.ProductCreateParams{
		Barcode: "1112223334445", Name: "Другой чай", PriceCents: 350,
	})
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 409, statusErr.Code)

	newPrice := int64(280)
	updated, err := client.UpdateProduct(ctx, "1112223334445", api.ProductUpdateParams{PriceCents: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(280), updated.PriceCents)
	assert.Equal(t, "Чай", updated.Name)

	require.NoError(t, client.DeleteProduct(ctx, "1112223334445"))

	_, err = client.ProductByBarcode(ctx, "1112223334445")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")
	ctx := context.Background()

	sale, err := client.CreateSale(ctx, api.CreateSaleParams{
		Items: []api.SaleItem{
			{ItemBarcode: "4600000000017", PriceCents: 450, Quantity: 2, Description: "Молоко 1л"},
			{ItemBarcode: "4600000000024", PriceCents: 120, Quantity: 1, Description: "Хлеб белый"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1020), sale.TotalCents)
	assert.Equal(t, "u-kassir", sale.CashierID)

	product, err := client.ProductByBarcode(ctx, "4600000000017")
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)

	daily, err := client.DailySales(ctx)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, sale.ID, daily[0].ID)
}

func TestDebtSaleOpensDebt(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")
	ctx := context.Background()

	sale, err := client.CreateSale(ctx, api.CreateSaleParams{
		Items:    []api.SaleItem{{ItemBarcode: "4600000000048", PriceCents: 1650, Quantity: 1, Description: "Сыр 300г"}},
		IsDebt:   true,
		Customer: &api.Customer{Name: "Бакытжан", Phone: "+7 700 123 45 67"},
	})
	require.NoError(t, err)

	debts, err := client.ListDebts(ctx)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.Equal(t, sale.ID, debts[0].SaleID)
	assert.Equal(t, int64(1650), debts[0].AmountCents)
	assert.False(t, debts[0].IsPaid)

	paid, err := client.MarkDebtPaid(ctx, debts[0].ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaymentDate)
}

func TestDebtSaleWithoutCustomerRejected(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")

	_, err := client.CreateSale(context.Background(), api.CreateSaleParams{
		Items:  []api.SaleItem{{ItemBarcode: "4600000000017", PriceCents: 450, Quantity: 1}},
		IsDebt: true,
	})

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 400, statusErr.Code)
}

func TestBranchCRUD(t *testing.T) {
	client := newTestClient(t, "admin", "admin")
	ctx := context.Background()

	created, err := client.CreateBranch(ctx, api.BranchParams{Name: "Южный", Address: "ул. Жандосова 5"})
	require.NoError(t, err)

	created.Address = "ул. Жандосова 7"
	updated, err := client.UpdateBranch(ctx, created.ID, api.BranchParams{Name: created.Name, Address: created.Address})
	require.NoError(t, err)
	assert.Equal(t, "ул. Жандосова 7", updated.Address)

	branches, err := client.ListBranches(ctx)
	require.NoError(t, err)
	assert.Len(t, branches, 2)

	require.NoError(t, client.DeleteBranch(ctx, created.ID))

	branches, err = client.ListBranches(ctx)
	require.NoError(t, err)
	assert.Len(t, branches, 1)
}

func TestCashierEndpointsAdminOnly(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")

	_, err := client.ListCashiers(context.Background())

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 403, statusErr.Code)
}

func TestReturnRestocks(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")
	ctx := context.Background()

	reasons, err := client.ReturnReasons(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, reasons)

	ret, err := client.CreateReturn(ctx, api.CreateReturnParams{
		Barcode: "4600000000031", Quantity: 2, ReasonID: reasons[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ret.Quantity)

	product, err := client.ProductByBarcode(ctx, "4600000000031")
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)
}

func TestReturnUnknownProduct(t *testing.T) {
	client := newTestClient(t, "kassir", "kassir")

	_, err := client.CreateReturn(context.Background(), api.CreateReturnParams{
		Barcode: "0000000000000", Quantity: 1, ReasonID: "r1",
	})
	assert.ErrorIs(t, err, api.ErrNotFound)
}
