package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/invoice-dashboard/internal/auth"
	"github.com/hongminglow/invoice-dashboard/internal/config"
	"github.com/hongminglow/invoice-dashboard/internal/http/handlers"
	"github.com/hongminglow/invoice-dashboard/internal/invoices"
	"github.com/hongminglow/invoice-dashboard/internal/middleware"
	"github.com/hongminglow/invoice-dashboard/internal/storage"
)

// Store is everything the HTTP layer reads from and writes to.
type Store interface {
	storage.InvoiceStore
	storage.CustomerStore
	storage.DashboardStore
	storage.UserStore
	storage.Pinger
}

// Views is the view cache shared by list reads and mutation invalidation.
type Views interface {
	handlers.ViewCache
	invoices.ViewInvalidator
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Store  Store
	Views  Views
	Seeder handlers.Seeder
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Routes(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Routes builds the full handler tree. Dashboard routes require a bearer token.
func Routes(cfg config.Config, deps Deps) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), deps.Store).Register(mux)
	handlers.NewSeedHandler(deps.Seeder).Register(mux)
	handlers.NewAuthHandler(deps.Store, tokens).Register(mux)

	dashboard := http.NewServeMux()
	mutations := invoices.NewService(deps.Store, deps.Views, nil)
	handlers.NewInvoiceHandler(mutations, deps.Store, deps.Views).Register(dashboard)
	handlers.NewDashboardHandler(deps.Store, deps.Store).Register(dashboard)

	protected := middleware.RequireToken(tokens, dashboard)
	mux.Handle("/dashboard", protected)
	mux.Handle("/dashboard/", protected)

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
