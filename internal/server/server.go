// Package server is a stub storefront backend for local development and
// end-to-end testing of the client. It implements the same HTTP contract as
// the production API: credential exchange, session verify/refresh/logout,
// and the per-user cart, all in memory.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/me/unishop/internal/config"
	"github.com/me/unishop/pkg/model"
)

// Server is the stub storefront API server.
type Server struct {
	router chi.Router
	logger *slog.Logger
	config config.DevServerConfig

	mu       sync.Mutex
	sessions map[string]*model.UserProfile // token -> user
	carts    map[string][]model.CartItem   // user ID -> cart lines
	catalog  []model.Product
}

// New creates a Server with all routes registered.
func New(cfg config.DevServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger.With("component", "devserver"),
		config:   cfg,
		sessions: make(map[string]*model.UserProfile),
		carts:    make(map[string][]model.CartItem),
		catalog:  defaultCatalog(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(chimiddleware.Recoverer)
	r.Use(loggingMiddleware(s.logger))
	if s.config.RateLimit > 0 {
		r.Use(rateLimitMiddleware(s.config.RateLimit, s.config.RateBurst))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/google", s.handleGoogleAuth)
		r.Get("/products", s.handleListProducts)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/auth/verify", s.handleVerify)
			r.Post("/auth/refresh", s.handleRefresh)
			r.Post("/auth/logout", s.handleLogout)

			r.Get("/cart", s.handleGetCart)
			r.Post("/cart/add", s.handleAddItem)
			r.Delete("/cart/remove/{productID}", s.handleRemoveItem)
			r.Put("/cart/update", s.handleUpdateQuantity)
			r.Delete("/cart/clear", s.handleClearCart)
		})
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server on the configured address.
func (s *Server) ListenAndServe() error {
	s.logger.Info("devserver listening", "addr", s.config.Addr)
	return http.ListenAndServe(s.config.Addr, s.router)
}
