package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/invoice-dashboard/internal/models"
)

// ListCustomers returns every customer's id and name ordered by name.
func (s *Store) ListCustomers(ctx context.Context) ([]models.CustomerField, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM customers ORDER BY name ASC;`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	list := []models.CustomerField{}
	for rows.Next() {
		var c models.CustomerField
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// FilterCustomers returns customers whose name or email matches query, with invoice totals.
func (s *Store) FilterCustomers(ctx context.Context, query string) ([]models.CustomerSummary, error) {
	const sql = `
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE customers.name ILIKE $1 OR customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC;`
	rows, err := s.pool.Query(ctx, sql, likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("filter customers: %w", err)
	}
	defer rows.Close()

	list := []models.CustomerSummary{}
	for rows.Next() {
		var c models.CustomerSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL, &c.TotalInvoices, &c.TotalPending, &c.TotalPaid); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
