package models

import "time"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// DateLayout is the calendar-day format invoices are stamped with.
const DateLayout = "2006-01-02"

// Invoice is a persisted invoice row. Amount is in cents.
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       time.Time     `json:"date"`
}

// InvoiceRow is an invoices-table row joined with its customer.
type InvoiceRow struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	ImageURL   string        `json:"image_url"`
	Date       time.Time     `json:"date"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// InvoiceForm pre-fills the edit form. Amount is in currency units, not cents.
type InvoiceForm struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     float64       `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// LatestInvoice is a row of the dashboard's latest-invoices widget.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   int64  `json:"amount"`
}

// InvoicePage is one page of the filtered invoice list.
type InvoicePage struct {
	Invoices   []InvoiceRow `json:"invoices"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}
