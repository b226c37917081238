package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hongminglow/invoice-dashboard/internal/http/respond"
	"github.com/hongminglow/invoice-dashboard/internal/invoices"
	"github.com/hongminglow/invoice-dashboard/internal/models"
	"github.com/hongminglow/invoice-dashboard/internal/storage"
)

// InvoiceMutator applies validated invoice writes.
type InvoiceMutator interface {
	Create(ctx context.Context, form invoices.Form, nav invoices.Navigator) error
	Update(ctx context.Context, id string, form invoices.Form, nav invoices.Navigator) error
	Delete(ctx context.Context, id string) error
}

// ViewCache reads and writes cached view data.
type ViewCache interface {
	Get(ctx context.Context, path, variant string, dst any) (bool, error)
	Generation(ctx context.Context, path string) (int64, error)
	Set(ctx context.Context, path, variant string, gen int64, value any) error
}

// InvoiceHandler serves the invoice list and the create, edit and delete form actions.
type InvoiceHandler struct {
	mutations InvoiceMutator
	store     storage.InvoiceStore
	views     ViewCache
}

// NewInvoiceHandler constructs the handler.
func NewInvoiceHandler(mutations InvoiceMutator, store storage.InvoiceStore, views ViewCache) *InvoiceHandler {
	return &InvoiceHandler{mutations: mutations, store: store, views: views}
}

// Register attaches invoice routes to the mux.
func (h *InvoiceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+invoices.ListPath, h.handleList)
	mux.HandleFunc("POST "+invoices.ListPath, h.handleCreate)
	mux.HandleFunc("GET "+invoices.ListPath+"/{id}", h.handleGet)
	mux.HandleFunc("POST "+invoices.ListPath+"/{id}/edit", h.handleUpdate)
	mux.HandleFunc("POST "+invoices.ListPath+"/{id}/delete", h.handleDelete)
}

func (h *InvoiceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := parsePage(r.URL.Query().Get("page"))
	variant := fmt.Sprintf("query=%s&page=%d", query, page)

	gen, genErr := h.views.Generation(ctx, invoices.ListPath)
	if genErr != nil {
		slog.WarnContext(ctx, "invoice list cache generation read failed", "err", genErr)
	}

	var out models.InvoicePage
	hit, err := h.views.Get(ctx, invoices.ListPath, variant, &out)
	if err != nil {
		slog.WarnContext(ctx, "invoice list cache read failed", "err", err)
	}
	if hit {
		respond.JSON(w, http.StatusOK, "ok", out)
		return
	}

	rows, err := h.store.FilterInvoices(ctx, query, page)
	if err != nil {
		slog.ErrorContext(ctx, "filter invoices", "err", err)
		respond.Error(w, http.StatusInternalServerError, "Database Error: Failed to fetch invoices.")
		return
	}
	pages, err := h.store.CountInvoicePages(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "count invoice pages", "err", err)
		respond.Error(w, http.StatusInternalServerError, "Database Error: Failed to fetch total number of invoices.")
		return
	}
	out = models.InvoicePage{Invoices: rows, Page: page, TotalPages: pages}

	if genErr == nil {
		if err := h.views.Set(ctx, invoices.ListPath, variant, gen, out); err != nil {
			slog.WarnContext(ctx, "invoice list cache write failed", "err", err)
		}
	}
	respond.JSON(w, http.StatusOK, "ok", out)
}

func (h *InvoiceHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	form, err := h.store.FindInvoice(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "invoice not found")
			return
		}
		slog.ErrorContext(r.Context(), "find invoice", "id", r.PathValue("id"), "err", err)
		respond.Error(w, http.StatusInternalServerError, "Database Error: Failed to fetch invoice.")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", form)
}

func (h *InvoiceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}
	nav := &redirector{w: w, r: r}
	if err := h.mutations.Create(r.Context(), r.PostForm, nav); err != nil {
		h.mutationFailed(w, r, err, "Create")
		return
	}
	nav.finish()
}

func (h *InvoiceHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}
	nav := &redirector{w: w, r: r}
	if err := h.mutations.Update(r.Context(), r.PathValue("id"), r.PostForm, nav); err != nil {
		h.mutationFailed(w, r, err, "Update")
		return
	}
	nav.finish()
}

func (h *InvoiceHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.mutations.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.mutationFailed(w, r, err, "Delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InvoiceHandler) mutationFailed(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verr *invoices.ValidationError
	if errors.As(err, &verr) {
		respond.JSON(w, http.StatusBadRequest,
			fmt.Sprintf("Missing Fields. Failed to %s Invoice.", action),
			map[string]invoices.FieldErrors{"errors": verr.Errors})
		return
	}
	slog.ErrorContext(r.Context(), "invoice mutation failed", "action", action, "err", err)
	respond.Error(w, http.StatusInternalServerError, fmt.Sprintf("Database Error: Failed to %s Invoice.", action))
}

// redirector turns a Navigator call into a 303 so browsers follow it with GET.
type redirector struct {
	w    http.ResponseWriter
	r    *http.Request
	done bool
}

func (rd *redirector) Redirect(path string) {
	http.Redirect(rd.w, rd.r, path, http.StatusSeeOther)
	rd.done = true
}

func (rd *redirector) finish() {
	if !rd.done {
		rd.w.WriteHeader(http.StatusNoContent)
	}
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(1 << 20)
	}
	return r.ParseForm()
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
