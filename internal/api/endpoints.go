package api

import (
	"context"
	"net/url"
	"strconv"
)

// Login authenticates with login and password and returns the token plus
// the user record. The caller is responsible for calling SetToken.
func (c *Client) Login(ctx context.Context, login, password string) (*LoginResponse, error) {
	body := struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}{Login: login, Password: password}

	var out LoginResponse
	if err := c.post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListProducts returns one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, page, pageSize int) ([]Product, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var out []Product
	if err := c.get(ctx, "/product/list", query, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ProductByBarcode resolves a scanned or typed identifier. A miss is
// reported as ErrNotFound.
func (c *Client) ProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	var out Product
	if err := c.get(ctx, "/product/"+url.PathEscape(barcode), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SearchProducts filters the catalog by name or category.
func (c *Client) SearchProducts(ctx context.Context, params ProductSearchParams) ([]Product, error) {
	query := url.Values{}

	if params.Name != "" {
		query.Set("name", params.Name)
	}

	if params.Category != "" {
		query.Set("category", params.Category)
	}

	var out []Product
	if err := c.get(ctx, "/product/search", query, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, params ProductCreateParams) (*Product, error) {
	var out Product
	if err := c.post(ctx, "/product/create", params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, barcode string, params ProductUpdateParams) (*Product, error) {
	var out Product
	if err := c.put(ctx, "/product/update/"+url.PathEscape(barcode), params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, barcode string) error {
	return c.delete(ctx, "/product/delete/"+url.PathEscape(barcode))
}

// DailySales returns the sales recorded today for the current branch.
func (c *Client) DailySales(ctx context.Context) ([]Sale, error) {
	var out []Sale
	if err := c.get(ctx, "/sale/daily", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// CreateSale persists a finished sale. On failure the caller keeps its
// cart intact and retries.
func (c *Client) CreateSale(ctx context.Context, params CreateSaleParams) (*Sale, error) {
	var out Sale
	if err := c.post(ctx, "/sale/create", params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListBranches(ctx context.Context) ([]Branch, error) {
	var out []Branch
	if err := c.get(ctx, "/branch/all", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateBranch(ctx context.Context, params BranchParams) (*Branch, error) {
	var out Branch
	if err := c.post(ctx, "/branch/create", params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateBranch(ctx context.Context, id int64, params BranchParams) (*Branch, error) {
	var out Branch
	if err := c.put(ctx, "/branch/update/"+strconv.FormatInt(id, 10), params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteBranch(ctx context.Context, id int64) error {
	return c.delete(ctx, "/branch/delete/"+strconv.FormatInt(id, 10))
}

func (c *Client) ListCashiers(ctx context.Context) ([]Cashier, error) {
	var out []Cashier
	if err := c.get(ctx, "/cashier/all", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateCashier(ctx context.Context, params CashierParams) (*Cashier, error) {
	var out Cashier
	if err := c.post(ctx, "/cashier/create", params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateCashier(ctx context.Context, id int64, params CashierParams) (*Cashier, error) {
	var out Cashier
	if err := c.put(ctx, "/cashier/update/"+strconv.FormatInt(id, 10), params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteCashier(ctx context.Context, id int64) error {
	return c.delete(ctx, "/cashier/delete/"+strconv.FormatInt(id, 10))
}

// ListDebts returns all debt sales, settled ones included.
func (c *Client) ListDebts(ctx context.Context) ([]Debt, error) {
	var out []Debt
	if err := c.get(ctx, "/debt/all", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// MarkDebtPaid settles a debt.
func (c *Client) MarkDebtPaid(ctx context.Context, id string) (*Debt, error) {
	var out Debt
	if err := c.post(ctx, "/debt/"+url.PathEscape(id)+"/pay", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ReturnReasons(ctx context.Context) ([]ReturnReason, error) {
	var out []ReturnReason
	if err := c.get(ctx, "/return/reasons", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateReturn(ctx context.Context, params CreateReturnParams) (*Return, error) {
	var out Return
	if err := c.post(ctx, "/return/create", params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
