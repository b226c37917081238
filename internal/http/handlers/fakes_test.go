package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/invoice-dashboard/internal/models"
	"github.com/hongminglow/invoice-dashboard/internal/seed"
	"github.com/hongminglow/invoice-dashboard/internal/storage"
)

// memInvoices is an in-memory storage.InvoiceStore. reads counts list queries.
type memInvoices struct {
	mu       sync.Mutex
	invoices map[string]models.Invoice
	reads    int
	err      error
	onFilter func()
}

func newMemInvoices() *memInvoices {
	return &memInvoices{invoices: map[string]models.Invoice{}}
}

func (m *memInvoices) CreateInvoice(_ context.Context, inv models.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	inv.ID = uuid.NewString()
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memInvoices) UpdateInvoice(_ context.Context, inv models.Invoice) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	cur, ok := m.invoices[inv.ID]
	if !ok {
		return 0, nil
	}
	cur.CustomerID, cur.Amount, cur.Status = inv.CustomerID, inv.Amount, inv.Status
	m.invoices[inv.ID] = cur
	return 1, nil
}

func (m *memInvoices) DeleteInvoice(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.invoices, id)
	return nil
}

func (m *memInvoices) FindInvoice(_ context.Context, id string) (models.InvoiceForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	if !ok {
		return models.InvoiceForm{}, storage.ErrNotFound
	}
	return models.InvoiceForm{ID: inv.ID, CustomerID: inv.CustomerID, Amount: float64(inv.Amount) / 100, Status: inv.Status}, nil
}

func (m *memInvoices) matching(query string) []models.InvoiceRow {
	var rows []models.InvoiceRow
	for _, inv := range m.invoices {
		if query != "" && !strings.Contains(string(inv.Status), query) && !strings.Contains(inv.CustomerID, query) {
			continue
		}
		rows = append(rows, models.InvoiceRow{ID: inv.ID, CustomerID: inv.CustomerID, Date: inv.Date, Amount: inv.Amount, Status: inv.Status})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
	return rows
}

func (m *memInvoices) FilterInvoices(_ context.Context, query string, page int) ([]models.InvoiceRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	if m.onFilter != nil {
		m.onFilter()
	}
	rows := m.matching(query)
	start := (page - 1) * storage.InvoicesPerPage
	if start >= len(rows) {
		return []models.InvoiceRow{}, nil
	}
	end := min(start+storage.InvoicesPerPage, len(rows))
	return rows[start:end], nil
}

func (m *memInvoices) CountInvoicePages(_ context.Context, query string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := len(m.matching(query))
	return (n + storage.InvoicesPerPage - 1) / storage.InvoicesPerPage, nil
}

func (m *memInvoices) put(amount int64, status models.InvoiceStatus) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.invoices[id] = models.Invoice{ID: id, CustomerID: "c1", Amount: amount, Status: status, Date: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)}
	return id
}

type stubDashboard struct {
	cards     models.CardData
	revenue   []models.Revenue
	latest    []models.LatestInvoice
	customers []models.CustomerSummary
	options   []models.CustomerField
	query     string
	err       error
}

func (s *stubDashboard) CardData(context.Context) (models.CardData, error) { return s.cards, s.err }

func (s *stubDashboard) Revenue(context.Context) ([]models.Revenue, error) { return s.revenue, s.err }

func (s *stubDashboard) LatestInvoices(context.Context) ([]models.LatestInvoice, error) {
	return s.latest, s.err
}

func (s *stubDashboard) FilterCustomers(_ context.Context, query string) ([]models.CustomerSummary, error) {
	s.query = query
	return s.customers, s.err
}

func (s *stubDashboard) ListCustomers(context.Context) ([]models.CustomerField, error) {
	return s.options, s.err
}

type stubUsers map[string]models.User

func (s stubUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := s[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

type stubSeeder struct {
	calls int
	err   error
}

func (s *stubSeeder) Run(context.Context) (seed.Summary, error) {
	s.calls++
	if s.err != nil {
		return seed.Summary{}, s.err
	}
	return seed.Summary{Users: 1}, nil
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

var errBoom = errors.New("boom")
