package models

// Revenue is the booked revenue for a month, keyed by a short month code such as "Jan".
type Revenue struct {
	Month   string `json:"month" yaml:"month"`
	Revenue int64  `json:"revenue" yaml:"revenue"`
}

// CardData holds the dashboard summary counters. Totals are in cents.
type CardData struct {
	NumberOfCustomers    int64 `json:"number_of_customers"`
	NumberOfInvoices     int64 `json:"number_of_invoices"`
	TotalPaidInvoices    int64 `json:"total_paid_invoices"`
	TotalPendingInvoices int64 `json:"total_pending_invoices"`
}

// Overview is everything the dashboard landing page shows.
type Overview struct {
	Cards          CardData        `json:"cards"`
	Revenue        []Revenue       `json:"revenue"`
	LatestInvoices []LatestInvoice `json:"latest_invoices"`
}
