// Package devserver is an in-memory stand-in for the production
// point-of-sale backend, implementing every endpoint the terminal
// calls. It exists for local development and the end-to-end tests;
// nothing here persists.
package devserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	store     *Store
	jwtSecret []byte
	tokenTTL  time.Duration
}

func New(store *Store, jwtSecret string, tokenTTL time.Duration) *Server {
	return &Server{store: store, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

// Router builds the full API surface under /api/v1.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.withAuth)

			r.Route("/product", func(r chi.Router) {
				r.Get("/list", s.listProducts)
				r.Get("/search", s.searchProducts)
				r.Get("/{barcode}", s.productByBarcode)

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Post("/create", s.createProduct)
					r.Put("/update/{barcode}", s.updateProduct)
					r.Delete("/delete/{barcode}", s.deleteProduct)
				})
			})

			r.Route("/sale", func(r chi.Router) {
				r.Get("/daily", s.dailySales)
				r.Post("/create", s.createSale)
			})

			r.Route("/branch", func(r chi.Router) {
				r.Get("/all", s.listBranches)

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Post("/create", s.createBranch)
					r.Put("/update/{id}", s.updateBranch)
					r.Delete("/delete/{id}", s.deleteBranch)
				})
			})

			r.Route("/cashier", func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/all", s.listCashiers)
				r.Post("/create", s.createCashier)
				r.Put("/update/{id}", s.updateCashier)
				r.Delete("/delete/{id}", s.deleteCashier)
			})

			r.Route("/debt", func(r chi.Router) {
				r.Get("/all", s.listDebts)
				r.Post("/{id}/pay", s.markDebtPaid)
			})

			r.Route("/return", func(r chi.Router) {
				r.Get("/reasons", s.returnReasons)
				r.Post("/create", s.createReturn)
			})
		})
	})

	return router
}
