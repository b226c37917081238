package models

// Customer is a billed party referenced by invoices.
type Customer struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	ImageURL string `json:"image_url" yaml:"image_url"`
}

// CustomerField is the id/name pair used to populate the invoice form.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerSummary is a customers-table row with invoice aggregates in cents.
type CustomerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  int64  `json:"total_pending"`
	TotalPaid     int64  `json:"total_paid"`
}
