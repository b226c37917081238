package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/invoice-dashboard/internal/models"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		image_url VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
		customer_id UUID NOT NULL,
		amount INT NOT NULL,
		status VARCHAR(255) NOT NULL CHECK (status IN ('pending', 'paid')),
		date DATE NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS revenue (
		month VARCHAR(4) NOT NULL UNIQUE,
		revenue INT NOT NULL
	);`,
}

// EnsureSchema creates the dashboard tables when they are missing. Existing tables are left alone.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// InsertUser stores a user unless its id or email is already taken.
func (s *Store) InsertUser(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (id, name, email, password)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING;`
	if _, err := s.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.Password); err != nil {
		return fmt.Errorf("insert user %s: %w", user.ID, err)
	}
	return nil
}

// InsertCustomer stores a customer unless its id exists.
func (s *Store) InsertCustomer(ctx context.Context, customer models.Customer) error {
	const query = `
		INSERT INTO customers (id, name, email, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING;`
	if _, err := s.pool.Exec(ctx, query, customer.ID, customer.Name, customer.Email, customer.ImageURL); err != nil {
		return fmt.Errorf("insert customer %s: %w", customer.ID, err)
	}
	return nil
}

// InsertInvoice stores a seed invoice unless its id exists.
func (s *Store) InsertInvoice(ctx context.Context, inv models.Invoice) error {
	const query = `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING;`
	if _, err := s.pool.Exec(ctx, query, inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date); err != nil {
		return fmt.Errorf("insert invoice %s: %w", inv.ID, err)
	}
	return nil
}

// InsertRevenue stores a month's revenue unless the month exists.
func (s *Store) InsertRevenue(ctx context.Context, rev models.Revenue) error {
	const query = `
		INSERT INTO revenue (month, revenue)
		VALUES ($1, $2)
		ON CONFLICT (month) DO NOTHING;`
	if _, err := s.pool.Exec(ctx, query, rev.Month, rev.Revenue); err != nil {
		return fmt.Errorf("insert revenue %s: %w", rev.Month, err)
	}
	return nil
}
