package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hongminglow/invoice-dashboard/internal/http/respond"
	"github.com/hongminglow/invoice-dashboard/internal/models"
	"github.com/hongminglow/invoice-dashboard/internal/storage"
)

// DashboardHandler serves the overview page and the customer listings.
type DashboardHandler struct {
	stats     storage.DashboardStore
	customers storage.CustomerStore
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(stats storage.DashboardStore, customers storage.CustomerStore) *DashboardHandler {
	return &DashboardHandler{stats: stats, customers: customers}
}

// Register attaches dashboard routes to the mux.
func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /dashboard", h.handleOverview)
	mux.HandleFunc("GET /dashboard/customers", h.handleCustomers)
	mux.HandleFunc("GET /dashboard/customers/options", h.handleCustomerOptions)
}

func (h *DashboardHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var out models.Overview
	var err error

	if out.Cards, err = h.stats.CardData(ctx); err != nil {
		h.fail(w, r, "card data", err)
		return
	}
	if out.Revenue, err = h.stats.Revenue(ctx); err != nil {
		h.fail(w, r, "revenue", err)
		return
	}
	if out.LatestInvoices, err = h.stats.LatestInvoices(ctx); err != nil {
		h.fail(w, r, "latest invoices", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", out)
}

func (h *DashboardHandler) handleCustomers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	list, err := h.customers.FilterCustomers(r.Context(), query)
	if err != nil {
		h.fail(w, r, "customer table", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

func (h *DashboardHandler) handleCustomerOptions(w http.ResponseWriter, r *http.Request) {
	list, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		h.fail(w, r, "all customers", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, what string, err error) {
	slog.ErrorContext(r.Context(), "dashboard query failed", "what", what, "err", err)
	respond.Error(w, http.StatusInternalServerError, "Database Error: Failed to fetch "+what+".")
}
