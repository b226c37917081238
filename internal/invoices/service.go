package invoices

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/invoice-dashboard/internal/models"
	"github.com/hongminglow/invoice-dashboard/internal/storage"
)

// ListPath is the invoice list view refreshed after every mutation.
const ListPath = "/dashboard/invoices"

// ViewInvalidator drops cached renderings of a view.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// Navigator sends the caller to another view.
type Navigator interface {
	Redirect(path string)
}

// Service validates invoice forms and applies single-row mutations.
type Service struct {
	store  storage.InvoiceStore
	views  ViewInvalidator
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs the mutation service.
func NewService(store storage.InvoiceStore, views ViewInvalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, views: views, logger: logger, now: time.Now}
}

// Create validates form and inserts a new invoice dated today.
func (s *Service) Create(ctx context.Context, form Form, nav Navigator) error {
	fields, err := ParseForm(form)
	if err != nil {
		return err
	}

	inv := models.Invoice{
		CustomerID: fields.CustomerID,
		Amount:     ToCents(fields.Amount),
		Status:     fields.Status,
		Date:       today(s.now()),
	}
	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	s.logger.InfoContext(ctx, "invoice created", "customer_id", inv.CustomerID, "amount", inv.Amount)

	return s.refreshList(ctx, nav)
}

// Update validates form and overwrites the invoice with id. A missing invoice is not an error.
func (s *Service) Update(ctx context.Context, id string, form Form, nav Navigator) error {
	fields, err := ParseForm(form)
	if err != nil {
		return err
	}

	if isInvoiceID(id) {
		inv := models.Invoice{
			ID:         id,
			CustomerID: fields.CustomerID,
			Amount:     ToCents(fields.Amount),
			Status:     fields.Status,
		}
		rows, err := s.store.UpdateInvoice(ctx, inv)
		if err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		if rows == 0 {
			s.logger.DebugContext(ctx, "invoice update matched no rows", "id", id)
		}
	} else {
		s.logger.DebugContext(ctx, "invoice update skipped: malformed id", "id", id)
	}

	return s.refreshList(ctx, nav)
}

// Delete removes the invoice with id if it exists and refreshes the list view.
func (s *Service) Delete(ctx context.Context, id string) error {
	if isInvoiceID(id) {
		if err := s.store.DeleteInvoice(ctx, id); err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}
	}
	return s.refreshList(ctx, nil)
}

func (s *Service) refreshList(ctx context.Context, nav Navigator) error {
	if s.views != nil {
		if err := s.views.Invalidate(ctx, ListPath); err != nil {
			return fmt.Errorf("invalidate %s: %w", ListPath, err)
		}
	}
	if nav != nil {
		nav.Redirect(ListPath)
	}
	return nil
}

// isInvoiceID reports whether id could name an invoice row.
func isInvoiceID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
