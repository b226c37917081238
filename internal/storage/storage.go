package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/invoice-dashboard/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// InvoicesPerPage is the page size of the filtered invoice list.
const InvoicesPerPage = 6

// InvoiceStore captures invoice reads and single-row writes.
type InvoiceStore interface {
	CreateInvoice(ctx context.Context, inv models.Invoice) error
	// UpdateInvoice returns the number of rows it changed.
	UpdateInvoice(ctx context.Context, inv models.Invoice) (int64, error)
	DeleteInvoice(ctx context.Context, id string) error
	FindInvoice(ctx context.Context, id string) (models.InvoiceForm, error)
	FilterInvoices(ctx context.Context, query string, page int) ([]models.InvoiceRow, error)
	CountInvoicePages(ctx context.Context, query string) (int, error)
}

// CustomerStore captures customer reads.
type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]models.CustomerField, error)
	FilterCustomers(ctx context.Context, query string) ([]models.CustomerSummary, error)
}

// DashboardStore captures the aggregate reads behind the overview page.
type DashboardStore interface {
	Revenue(ctx context.Context) ([]models.Revenue, error)
	LatestInvoices(ctx context.Context) ([]models.LatestInvoice, error)
	CardData(ctx context.Context) (models.CardData, error)
}

// UserStore captures the user lookups needed by login.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// SeedStore creates the schema and inserts seed rows with conflict-skip semantics.
// Inserting a row whose key already exists is not an error and changes nothing.
type SeedStore interface {
	EnsureSchema(ctx context.Context) error
	InsertUser(ctx context.Context, user models.User) error
	InsertCustomer(ctx context.Context, customer models.Customer) error
	InsertInvoice(ctx context.Context, inv models.Invoice) error
	InsertRevenue(ctx context.Context, rev models.Revenue) error
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
