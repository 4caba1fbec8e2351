package api

import "time"

// Role is the backend-assigned access level of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// User is the authenticated account as the backend reports it.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Login    string `json:"login"`
	Role     Role   `json:"role"`
	BranchID int64  `json:"branch_id"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Product is a catalog entry keyed by barcode. Prices are in cents.
type Product struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description,omitempty"`
	BranchID    int64  `json:"branch_id,omitempty"`
}

// ProductCreateParams carries the fields for a new catalog entry.
type ProductCreateParams struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description,omitempty"`
}

// ProductUpdateParams is a partial product update; nil fields are not sent.
type ProductUpdateParams struct {
	Name        *string `json:"name,omitempty"`
	PriceCents  *int64  `json:"price,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProductSearchParams filters the catalog search.
type ProductSearchParams struct {
	Name     string
	Category string
}

// Customer identifies the buyer on a debt sale.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Comment string `json:"comment,omitempty"`
}

// SaleItem is one sold line as the backend stores it.
type SaleItem struct {
	ItemBarcode string `json:"item_barcode"`
	PriceCents  int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// Sale is a persisted sale.
type Sale struct {
	ID         string     `json:"id"`
	Items      []SaleItem `json:"items"`
	TotalCents int64      `json:"total"`
	Date       time.Time  `json:"date"`
	CashierID  string     `json:"cashier_id"`
	BranchID   int64      `json:"branch_id"`
	IsDebt     bool       `json:"is_debt"`
	Customer   *Customer  `json:"customer,omitempty"`
}

// CreateSaleParams is the payload for POST /sale/create.
type CreateSaleParams struct {
	Items    []SaleItem `json:"items"`
	IsDebt   bool       `json:"is_debt"`
	Customer *Customer  `json:"customer,omitempty"`
}

// Branch is a store location.
type Branch struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact,omitempty"`
}

// BranchParams carries the writable branch fields.
type BranchParams struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact,omitempty"`
}

// Cashier is an operator account managed by the admin.
type Cashier struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	BranchID int64  `json:"branch_id,omitempty"`
}

// CashierParams carries the writable cashier fields.
type CashierParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	BranchID int64  `json:"branch_id,omitempty"`
}

// Debt is an unpaid (or settled) deferred-payment sale.
type Debt struct {
	ID          string     `json:"id"`
	SaleID      string     `json:"sale_id"`
	Customer    Customer   `json:"customer"`
	AmountCents int64      `json:"amount"`
	Date        time.Time  `json:"date"`
	IsPaid      bool       `json:"is_paid"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

// ReturnReason is a backend-configured reason for a product return.
type ReturnReason struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateReturnParams is the payload for POST /return/create.
type CreateReturnParams struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
	ReasonID string `json:"reason_id"`
}

// Return is a persisted product return.
type Return struct {
	ID       string    `json:"id"`
	Barcode  string    `json:"barcode"`
	Quantity int       `json:"quantity"`
	ReasonID string    `json:"reason_id"`
	Date     time.Time `json:"date"`
}
