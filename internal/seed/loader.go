package seed

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/invoice-dashboard/internal/models"
	"github.com/hongminglow/invoice-dashboard/internal/storage"
)

// DefaultCost is the bcrypt work factor applied to seed passwords.
const DefaultCost = 10

// Summary counts the rows the loader attempted per table. Rows skipped on conflict are included.
type Summary struct {
	Users     int `json:"users"`
	Customers int `json:"customers"`
	Invoices  int `json:"invoices"`
	Revenue   int `json:"revenue"`
}

// Loader creates the schema and writes the seed data. Running it again changes nothing.
type Loader struct {
	store  storage.SeedStore
	data   Data
	cost   int
	logger *slog.Logger
}

// NewLoader constructs a loader. A cost of zero selects DefaultCost.
func NewLoader(store storage.SeedStore, data Data, cost int, logger *slog.Logger) *Loader {
	if cost == 0 {
		cost = DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, data: data, cost: cost, logger: logger}
}

// Run ensures the schema exists, then inserts each table's rows concurrently.
// It waits for every insert of a table to settle and returns the first failure.
func (l *Loader) Run(ctx context.Context) (Summary, error) {
	if err := l.store.EnsureSchema(ctx); err != nil {
		return Summary{}, err
	}

	var sum Summary
	var err error

	if sum.Users, err = insertAll(ctx, l.data.Users, l.insertUser); err != nil {
		return Summary{}, fmt.Errorf("seed users: %w", err)
	}
	l.logger.InfoContext(ctx, "seeded users", "count", sum.Users)

	if sum.Customers, err = insertAll(ctx, l.data.Customers, l.store.InsertCustomer); err != nil {
		return Summary{}, fmt.Errorf("seed customers: %w", err)
	}
	l.logger.InfoContext(ctx, "seeded customers", "count", sum.Customers)

	if sum.Invoices, err = insertAll(ctx, l.data.Invoices, l.store.InsertInvoice); err != nil {
		return Summary{}, fmt.Errorf("seed invoices: %w", err)
	}
	l.logger.InfoContext(ctx, "seeded invoices", "count", sum.Invoices)

	if sum.Revenue, err = insertAll(ctx, l.data.Revenue, l.store.InsertRevenue); err != nil {
		return Summary{}, fmt.Errorf("seed revenue: %w", err)
	}
	l.logger.InfoContext(ctx, "seeded revenue", "count", sum.Revenue)

	return sum, nil
}

func (l *Loader) insertUser(ctx context.Context, user models.User) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), l.cost)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", user.Email, err)
	}
	user.Password = string(hash)
	return l.store.InsertUser(ctx, user)
}

// insertAll fires one insert per row and waits for all of them.
// A failing row does not cancel its siblings.
func insertAll[T any](ctx context.Context, rows []T, insert func(context.Context, T) error) (int, error) {
	var g errgroup.Group
	for _, row := range rows {
		g.Go(func() error {
			return insert(ctx, row)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(rows), nil
}
