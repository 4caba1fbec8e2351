package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakdaulet/kassa/internal/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return api.NewClient(srv.URL, 5*time.Second)
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Login    string `json:"login"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "aset", req.Login)
		assert.Equal(t, "secret", req.Password)

		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: "tok-123",
			User:  api.User{ID: "u1", Name: "Aset", Role: api.RoleCashier, BranchID: 1},
		})
	})

	resp, err := client.Login(context.Background(), "aset", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, api.RoleCashier, resp.User.Role)
}

func TestClient_ProductByBarcode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/product/4600000000017", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(api.Product{
			Barcode:    "4600000000017",
			Name:       "Milk 1L",
			PriceCents: 450,
			Stock:      12,
		})
	})
	client.SetToken("tok-123")

	p, err := client.ProductByBarcode(context.Background(), "4600000000017")
	require.NoError(t, err)
	assert.Equal(t, "Milk 1L", p.Name)
	assert.Equal(t, int64(450), p.PriceCents)
}

func TestClient_ProductByBarcode_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such product"}`, http.StatusNotFound)
	})

	_, err := client.ProductByBarcode(context.Background(), "000")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
	})

	_, err := client.DailySales(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestClient_StatusErrorCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "barcode already exists"})
	})

	_, err := client.CreateProduct(context.Background(), api.ProductCreateParams{Barcode: "1"})
	require.Error(t, err)

	var statusErr *api.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusConflict, statusErr.Code)
	assert.Contains(t, statusErr.Message, "barcode already exists")
}

func TestClient_CreateSale(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sale/create", r.URL.Path)

		var req api.CreateSaleParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		assert.Equal(t, "4600000000017", req.Items[0].ItemBarcode)
		assert.Equal(t, 2, req.Items[0].Quantity)
		assert.True(t, req.IsDebt)
		require.NotNil(t, req.Customer)
		assert.Equal(t, "Aigerim", req.Customer.Name)

		json.NewEncoder(w).Encode(api.Sale{ID: "s1", TotalCents: 900, IsDebt: true})
	})

	sale, err := client.CreateSale(context.Background(), api.CreateSaleParams{
		Items: []api.SaleItem{{
			ItemBarcode: "4600000000017",
			PriceCents:  450,
			Quantity:    2,
			Description: "Milk 1L",
		}},
		IsDebt:   true,
		Customer: &api.Customer{Name: "Aigerim", Phone: "+7 700 000 00 00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", sale.ID)
}

func TestClient_ListProducts_QueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))

		json.NewEncoder(w).Encode([]api.Product{{Barcode: "1"}, {Barcode: "2"}})
	})

	products, err := client.ListProducts(context.Background(), 2, 25)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestClient_DeleteBranch_NoBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/branch/delete/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteBranch(context.Background(), 7))
}
