package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bakdaulet/kassa/internal/api"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, ok := s.store.Authenticate(req.Login, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "bad login or password")
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "signing token")
		return
	}

	writeJSON(w, http.StatusOK, api.LoginResponse{Token: token, User: user})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	writeJSON(w, http.StatusOK, s.store.Products(page, pageSize))
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.SearchProducts(r.URL.Query().Get("name")))
}

func (s *Server) productByBarcode(w http.ResponseWriter, r *http.Request) {
	product, ok := s.store.ProductByBarcode(chi.URLParam(r, "barcode"))
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var params api.ProductCreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if params.Barcode == "" || params.Name == "" {
		writeError(w, http.StatusBadRequest, "barcode and name are required")
		return
	}

	product, err := s.store.CreateProduct(params)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var params api.ProductUpdateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, ok := s.store.UpdateProduct(chi.URLParam(r, "barcode"), params)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteProduct(chi.URLParam(r, "barcode")) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dailySales(w http.ResponseWriter, r *http.Request) {
	sales := s.store.DailySales()
	if sales == nil {
		sales = []api.Sale{}
	}

	writeJSON(w, http.StatusOK, sales)
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var params api.CreateSaleParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(params.Items) == 0 {
		writeError(w, http.StatusBadRequest, "sale has no items")
		return
	}

	if params.IsDebt && params.Customer == nil {
		writeError(w, http.StatusBadRequest, "debt sale requires a customer")
		return
	}

	sale := s.store.CreateSale(params, userFrom(r.Context()).ID)

	writeJSON(w, http.StatusCreated, sale)
}

func (s *Server) listBranches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Branches())
}

func (s *Server) createBranch(w http.ResponseWriter, r *http.Request) {
	var params api.BranchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, s.store.CreateBranch(params))
}

func (s *Server) updateBranch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var params api.BranchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	branch, ok := s.store.UpdateBranch(id, params)
	if !ok {
		writeError(w, http.StatusNotFound, "branch not found")
		return
	}

	writeJSON(w, http.StatusOK, branch)
}

func (s *Server) deleteBranch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if !s.store.DeleteBranch(id) {
		writeError(w, http.StatusNotFound, "branch not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCashiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Cashiers())
}

func (s *Server) createCashier(w http.ResponseWriter, r *http.Request) {
	var params api.CashierParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, s.store.CreateCashier(params))
}

func (s *Server) updateCashier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var params api.CashierParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cashier, ok := s.store.UpdateCashier(id, params)
	if !ok {
		writeError(w, http.StatusNotFound, "cashier not found")
		return
	}

	writeJSON(w, http.StatusOK, cashier)
}

func (s *Server) deleteCashier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if !s.store.DeleteCashier(id) {
		writeError(w, http.StatusNotFound, "cashier not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDebts(w http.ResponseWriter, r *http.Request) {
	debts := s.store.Debts()
	if debts == nil {
		debts = []api.Debt{}
	}

	writeJSON(w, http.StatusOK, debts)
}

func (s *Server) markDebtPaid(w http.ResponseWriter, r *http.Request) {
	debt, ok := s.store.MarkDebtPaid(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "debt not found")
		return
	}

	writeJSON(w, http.StatusOK, debt)
}

func (s *Server) returnReasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ReturnReasons())
}

func (s *Server) createReturn(w http.ResponseWriter, r *http.Request) {
	var params api.CreateReturnParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if params.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	ret, ok := s.store.CreateReturn(params)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	writeJSON(w, http.StatusCreated, ret)
}
