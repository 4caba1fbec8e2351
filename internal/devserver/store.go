package devserver

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bakdaulet/kassa/internal/api"
)

// Store is the in-memory state of the development server. It exists so
// the terminal can be exercised without the production backend; nothing
// survives a restart, which is the point.
type Store struct {
	mu sync.Mutex

	users    map[string]User
	products []api.Product
	branches []api.Branch
	cashiers []api.Cashier
	sales    []api.Sale
	debts    []api.Debt
	returns  []api.Return
	reasons  []api.ReturnReason

	nextBranchID  int64
	nextCashierID int64
}

// User is a login account with its plaintext password. Development only.
type User struct {
	Password string
	User     api.User
}

func NewStore() *Store {
	s := &Store{
		users: map[string]User{
			"admin": {
				Password: "admin",
				User:     api.User{ID: "u-admin", Name: "Администратор", Login: "admin", Role: api.RoleAdmin, BranchID: 1},
			},
			"kassir": {
				Password: "kassir",
				User:     api.User{ID: "u-kassir", Name: "Айгерим", Login: "kassir", Role: api.RoleCashier, BranchID: 1},
			},
		},
		products: []api.Product{
			{Barcode: "4600000000017", Name: "Молоко 1л", PriceCents: 450, Stock: 12, BranchID: 1},
			{Barcode: "4600000000024", Name: "Хлеб белый", PriceCents: 120, Stock: 40, BranchID: 1},
			{Barcode: "4600000000031", Name: "Масло 180г", PriceCents: 780, Stock: 8, BranchID: 1},
			{Barcode: "4600000000048", Name: "Сыр 300г", PriceCents: 1650, Stock: 5, BranchID: 1},
		},
		branches: []api.Branch{
			{ID: 1, Name: "Центральный", Address: "пр. Абая 10", Contact: "+7 727 000 00 00"},
		},
		cashiers: []api.Cashier{
			{ID: 1, Name: "Айгерим", Email: "aigerim@example.com", BranchID: 1},
		},
		reasons: []api.ReturnReason{
			{ID: "r1", Name: "Брак"},
			{ID: "r2", Name: "Не тот товар"},
			{ID: "r3", Name: "Передумал"},
			{ID: "r4", Name: "Другое"},
		},
		nextBranchID:  2,
		nextCashierID: 2,
	}

	return s
}

func (s *Store) Authenticate(login, password string) (api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.users[login]
	if !ok || account.Password != password {
		return api.User{}, false
	}

	return account.User, true
}

func (s *Store) Products(page, pageSize int) []api.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}

	if pageSize < 1 {
		pageSize = 10
	}

	start := (page - 1) * pageSize
	if start >= len(s.products) {
		return []api.Product{}
	}

	end := min(start+pageSize, len(s.products))

	out := make([]api.Product, end-start)
	copy(out, s.products[start:end])

	return out
}

func (s *Store) ProductByBarcode(barcode string) (api.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findProduct(barcode)
}

func (s *Store) findProduct(barcode string) (api.Product, bool) {
	for _, p := range s.products {
		if p.Barcode == barcode {
			return p, true
		}
	}

	return api.Product{}, false
}

func (s *Store) SearchProducts(name string) []api.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []api.Product

	for _, p := range s.products {
		if name == "" || containsFold(p.Name, name) {
			out = append(out, p)
		}
	}

	return out
}

func (s *Store) CreateProduct(params api.ProductCreateParams) (api.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findProduct(params.Barcode); exists {
		return api.Product{}, fmt.Errorf("barcode %s already exists", params.Barcode)
	}

	p := api.Product{
		Barcode:     params.Barcode,
		Name:        params.Name,
		PriceCents:  params.PriceCents,
		Stock:       params.Stock,
		Description: params.Description,
		BranchID:    1,
	}
	s.products = append(s.products, p)

	return p, nil
}

func (s *Store) UpdateProduct(barcode string, params api.ProductUpdateParams) (api.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].Barcode != barcode {
			continue
		}

		if params.Name != nil {
			s.products[i].Name = *params.Name
		}

		if params.PriceCents != nil {
			s.products[i].PriceCents = *params.PriceCents
		}

		if params.Stock != nil {
			s.products[i].Stock = *params.Stock
		}

		if params.Description != nil {
			s.products[i].Description = *params.Description
		}

		return s.products[i], true
	}

	return api.Product{}, false
}

func (s *Store) DeleteProduct(barcode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].Barcode == barcode {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}

	return false
}

// CreateSale records the sale, decrements stock, and opens a debt when
// the sale is deferred.
func (s *Store) CreateSale(params api.CreateSaleParams, cashierID string) api.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale := api.Sale{
		ID:        uuid.NewString(),
		Items:     params.Items,
		Date:      time.Now(),
		CashierID: cashierID,
		BranchID:  1,
		IsDebt:    params.IsDebt,
		Customer:  params.Customer,
	}

	for _, item := range params.Items {
		sale.TotalCents += item.PriceCents * int64(item.Quantity)

		for i := range s.products {
			if s.products[i].Barcode == item.ItemBarcode {
				s.products[i].Stock -= item.Quantity
			}
		}
	}

	s.sales = append(s.sales, sale)

	if sale.IsDebt && sale.Customer != nil {
		s.debts = append(s.debts, api.Debt{
			ID:          uuid.NewString(),
			SaleID:      sale.ID,
			Customer:    *sale.Customer,
			AmountCents: sale.TotalCents,
			Date:        sale.Date,
		})
	}

	return sale
}

func (s *Store) DailySales() []api.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Truncate(24 * time.Hour)

	var out []api.Sale

	for _, sale := range s.sales {
		if !sale.Date.Before(cutoff) {
			out = append(out, sale)
		}
	}

	return out
}

func (s *Store) Branches() []api.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Branch, len(s.branches))
	copy(out, s.branches)

	return out
}

func (s *Store) CreateBranch(params api.BranchParams) api.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := api.Branch{ID: s.nextBranchID, Name: params.Name, Address: params.Address, Contact: params.Contact}
	s.nextBranchID++
	s.branches = append(s.branches, b)

	return b
}

func (s *Store) UpdateBranch(id int64, params api.BranchParams) (api.Branch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.branches {
		if s.branches[i].ID == id {
			s.branches[i].Name = params.Name
			s.branches[i].Address = params.Address
			s.branches[i].Contact = params.Contact

			return s.branches[i], true
		}
	}

	return api.Branch{}, false
}

func (s *Store) DeleteBranch(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.branches {
		if s.branches[i].ID == id {
			s.branches = append(s.branches[:i], s.branches[i+1:]...)
			return true
		}
	}

	return false
}

func (s *Store) Cashiers() []api.Cashier {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Cashier, len(s.cashiers))
	copy(out, s.cashiers)

	return out
}

func (s *Store) CreateCashier(params api.CashierParams) api.Cashier {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := api.Cashier{ID: s.nextCashierID, Name: params.Name, Email: params.Email, BranchID: params.BranchID}
	s.nextCashierID++
	s.cashiers = append(s.cashiers, c)

	return c
}

func (s *Store) UpdateCashier(id int64, params api.CashierParams) (api.Cashier, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cashiers {
		if s.cashiers[i].ID == id {
			s.cashiers[i].Name = params.Name
			s.cashiers[i].Email = params.Email
			s.cashiers[i].BranchID = params.BranchID

			return s.cashiers[i], true
		}
	}

	return api.Cashier{}, false
}

func (s *Store) DeleteCashier(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cashiers {
		if s.cashiers[i].ID == id {
			s.cashiers = append(s.cashiers[:i], s.cashiers[i+1:]...)
			return true
		}
	}

	return false
}

func (s *Store) Debts() []api.Debt {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Debt, len(s.debts))
	copy(out, s.debts)

	return out
}

func (s *Store) MarkDebtPaid(id string) (api.Debt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.debts {
		if s.debts[i].ID == id {
			now := time.Now()
			s.debts[i].IsPaid = true
			s.debts[i].PaymentDate = &now

			return s.debts[i], true
		}
	}

	return api.Debt{}, false
}

func (s *Store) ReturnReasons() []api.ReturnReason {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.ReturnReason, len(s.reasons))
	copy(out, s.reasons)

	return out
}

// CreateReturn records the return and puts the quantity back in stock.
func (s *Store) CreateReturn(params api.CreateReturnParams) (api.Return, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findProduct(params.Barcode); !ok {
		return api.Return{}, false
	}

	for i := range s.products {
		if s.products[i].Barcode == params.Barcode {
			s.products[i].Stock += params.Quantity
		}
	}

	ret := api.Return{
		ID:       uuid.NewString(),
		Barcode:  params.Barcode,
		Quantity: params.Quantity,
		ReasonID: params.ReasonID,
		Date:     time.Now(),
	}
	s.returns = append(s.returns, ret)

	return ret, true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
