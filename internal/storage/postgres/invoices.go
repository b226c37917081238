package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/invoice-dashboard/internal/models"
	"github.com/hongminglow/invoice-dashboard/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const invoiceFilter = `
	customers.name ILIKE $1 OR
	customers.email ILIKE $1 OR
	invoices.amount::text ILIKE $1 OR
	invoices.date::text ILIKE $1 OR
	invoices.status ILIKE $1`

// CreateInvoice inserts a new invoice; the database assigns its id.
func (s *Store) CreateInvoice(ctx context.Context, inv models.Invoice) error {
	const query = `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4);`
	if _, err := s.pool.Exec(ctx, query, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// UpdateInvoice overwrites customer, amount and status of the invoice with inv.ID.
func (s *Store) UpdateInvoice(ctx context.Context, inv models.Invoice) (int64, error) {
	const query = `
		UPDATE invoices
		SET customer_id = $2, amount = $3, status = $4
		WHERE id = $1;`
	tag, err := s.pool.Exec(ctx, query, inv.ID, inv.CustomerID, inv.Amount, string(inv.Status))
	if err != nil {
		return 0, fmt.Errorf("update invoice %s: %w", inv.ID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteInvoice removes the invoice with id if present.
func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return nil
}

// FindInvoice loads an invoice for the edit form.
func (s *Store) FindInvoice(ctx context.Context, id string) (models.InvoiceForm, error) {
	const query = `
		SELECT id, customer_id, amount, status
		FROM invoices
		WHERE id = $1;`
	var (
		form   models.InvoiceForm
		cents  int64
		status string
	)
	err := s.pool.QueryRow(ctx, query, id).Scan(&form.ID, &form.CustomerID, &cents, &status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
			return models.InvoiceForm{}, storage.ErrNotFound
		}
		return models.InvoiceForm{}, translate(err)
	}
	form.Amount = float64(cents) / 100
	form.Status = models.InvoiceStatus(status)
	return form, nil
}

// FilterInvoices returns one page of invoices matching query, newest first.
func (s *Store) FilterInvoices(ctx context.Context, query string, page int) ([]models.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * storage.InvoicesPerPage
	sql := `
		SELECT invoices.id, invoices.customer_id, customers.name, customers.email, customers.image_url,
			invoices.date, invoices.amount, invoices.status
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE` + invoiceFilter + `
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3;`
	rows, err := s.pool.Query(ctx, sql, likePattern(query), storage.InvoicesPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("filter invoices: %w", err)
	}
	defer rows.Close()

	list := []models.InvoiceRow{}
	for rows.Next() {
		row, err := scanInvoiceRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountInvoicePages returns how many pages FilterInvoices has for query.
func (s *Store) CountInvoicePages(ctx context.Context, query string) (int, error) {
	sql := `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE` + invoiceFilter + `;`
	var count int64
	if err := s.pool.QueryRow(ctx, sql, likePattern(query)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return int((count + storage.InvoicesPerPage - 1) / storage.InvoicesPerPage), nil
}

func scanInvoiceRow(row pgx.Row) (models.InvoiceRow, error) {
	var (
		out    models.InvoiceRow
		status string
	)
	if err := row.Scan(&out.ID, &out.CustomerID, &out.Name, &out.Email, &out.ImageURL, &out.Date, &out.Amount, &status); err != nil {
		return models.InvoiceRow{}, err
	}
	out.Status = models.InvoiceStatus(status)
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring match for ILIKE. Wildcards typed by the user match literally;
// backslash is the default LIKE escape character in Postgres.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
