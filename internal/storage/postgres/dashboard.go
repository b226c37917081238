package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/invoice-dashboard/internal/models"
)

// Revenue returns the monthly revenue series.
func (s *Store) Revenue(ctx context.Context) ([]models.Revenue, error) {
	rows, err := s.pool.Query(ctx, `SELECT month, revenue FROM revenue;`)
	if err != nil {
		return nil, fmt.Errorf("fetch revenue: %w", err)
	}
	defer rows.Close()

	list := []models.Revenue{}
	for rows.Next() {
		var r models.Revenue
		if err := rows.Scan(&r.Month, &r.Revenue); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// LatestInvoices returns the five most recent invoices with their customers.
func (s *Store) LatestInvoices(ctx context.Context) ([]models.LatestInvoice, error) {
	const query = `
		SELECT invoices.id, customers.name, customers.email, customers.image_url, invoices.amount
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC
		LIMIT 5;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch latest invoices: %w", err)
	}
	defer rows.Close()

	list := []models.LatestInvoice{}
	for rows.Next() {
		var l models.LatestInvoice
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.ImageURL, &l.Amount); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// CardData returns the summary counters shown on the dashboard.
func (s *Store) CardData(ctx context.Context) (models.CardData, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM invoices),
			(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'paid'),
			(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'pending');`
	var out models.CardData
	err := s.pool.QueryRow(ctx, query).Scan(&out.NumberOfCustomers, &out.NumberOfInvoices, &out.TotalPaidInvoices, &out.TotalPendingInvoices)
	if err != nil {
		return models.CardData{}, fmt.Errorf("fetch card data: %w", err)
	}
	return out, nil
}
