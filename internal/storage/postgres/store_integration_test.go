package postgres

import (
	"context"
	"net/url"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/invoice-dashboard/internal/invoices"
	"github.com/hongminglow/invoice-dashboard/internal/models"
	"github.com/hongminglow/invoice-dashboard/internal/seed"
)

// TestSeedAndMutateIntegration exercises the loader and invoice writes against a live Postgres.
func TestSeedAndMutateIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	data, err := seed.Default()
	if err != nil {
		t.Fatalf("load seed data: %v", err)
	}
	loader := seed.NewLoader(store, data, bcrypt.MinCost, nil)

	if _, err := loader.Run(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	once := countRows(t, store)
	if _, err := loader.Run(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if twice := countRows(t, store); twice != once {
		t.Fatalf("seed is not idempotent: once=%v twice=%v", once, twice)
	}

	user, err := store.FindUserByEmail(ctx, data.Users[0].Email)
	if err != nil {
		t.Fatalf("find seeded user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Users[0].Password)) != nil {
		t.Fatal("seeded password does not match its hash")
	}

	svc := invoices.NewService(store, nil, nil)
	customerID := data.Customers[0].ID
	marker := "9999.99"
	if err := svc.Create(ctx, url.Values{"customerId": {customerID}, "amount": {marker}, "status": {"pending"}}, nil); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	rows, err := store.FilterInvoices(ctx, "999999", 1)
	if err != nil {
		t.Fatalf("filter invoices: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("created invoice not found by amount search")
	}
	created := rows[0]
	t.Cleanup(func() { _ = store.DeleteInvoice(context.Background(), created.ID) })
	if created.Amount != 999999 || created.Status != models.StatusPending {
		t.Fatalf("unexpected created row: %+v", created)
	}

	if err := svc.Update(ctx, created.ID, url.Values{"customerId": {customerID}, "amount": {marker}, "status": {"paid"}}, nil); err != nil {
		t.Fatalf("update invoice: %v", err)
	}
	form, err := store.FindInvoice(ctx, created.ID)
	if err != nil {
		t.Fatalf("find invoice: %v", err)
	}
	if form.Status != models.StatusPaid || form.Amount != 9999.99 {
		t.Fatalf("update not applied: %+v", form)
	}

	before := countRows(t, store)
	if err := svc.Delete(ctx, uuid.NewString()); err != nil {
		t.Fatalf("delete missing invoice: %v", err)
	}
	if after := countRows(t, store); after != before {
		t.Fatalf("deleting a missing invoice changed rows: before=%v after=%v", before, after)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}
	if _, err := store.FindInvoice(ctx, created.ID); err == nil {
		t.Fatal("invoice still present after delete")
	}
}

func countRows(t *testing.T, s *Store) [4]int64 {
	t.Helper()
	var out [4]int64
	for i, table := range []string{"users", "customers", "invoices", "revenue"} {
		if err := s.pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&out[i]); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
	}
	return out
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
