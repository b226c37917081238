package seed

import (
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hongminglow/invoice-dashboard/internal/models"
)

//go:embed placeholder.yaml
var placeholder []byte

// invoiceNamespace scopes the derived ids of seed invoices.
var invoiceNamespace = uuid.MustParse("6f1c1d0e-4b8a-4a53-9d5e-3f0f6f5d6a10")

// Data is the fixed reference set the loader writes.
type Data struct {
	Users     []models.User
	Customers []models.Customer
	Invoices  []models.Invoice
	Revenue   []models.Revenue
}

type rawInvoice struct {
	ID         string `yaml:"id"`
	CustomerID string `yaml:"customer_id"`
	Amount     int64  `yaml:"amount"`
	Status     string `yaml:"status"`
	Date       string `yaml:"date"`
}

type rawData struct {
	Users     []models.User     `yaml:"users"`
	Customers []models.Customer `yaml:"customers"`
	Invoices  []rawInvoice      `yaml:"invoices"`
	Revenue   []models.Revenue  `yaml:"revenue"`
}

// Default returns the embedded placeholder data set.
func Default() (Data, error) {
	return Parse(placeholder)
}

// Parse decodes a YAML seed document and checks every row.
func Parse(doc []byte) (Data, error) {
	var raw rawData
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return Data{}, fmt.Errorf("decode seed data: %w", err)
	}

	data := Data{
		Users:     raw.Users,
		Customers: raw.Customers,
		Revenue:   raw.Revenue,
		Invoices:  make([]models.Invoice, 0, len(raw.Invoices)),
	}

	for i, u := range data.Users {
		if _, err := uuid.Parse(u.ID); err != nil {
			return Data{}, fmt.Errorf("user %d: invalid id %q", i, u.ID)
		}
		if u.Email == "" || u.Password == "" {
			return Data{}, fmt.Errorf("user %d: email and password are required", i)
		}
	}
	for i, c := range data.Customers {
		if _, err := uuid.Parse(c.ID); err != nil {
			return Data{}, fmt.Errorf("customer %d: invalid id %q", i, c.ID)
		}
	}
	for i, r := range data.Revenue {
		if r.Month == "" || len(r.Month) > 4 {
			return Data{}, fmt.Errorf("revenue %d: month must be 1-4 characters, got %q", i, r.Month)
		}
	}

	for i, ri := range raw.Invoices {
		inv, err := ri.toInvoice(i)
		if err != nil {
			return Data{}, fmt.Errorf("invoice %d: %w", i, err)
		}
		data.Invoices = append(data.Invoices, inv)
	}

	return data, nil
}

func (ri rawInvoice) toInvoice(pos int) (models.Invoice, error) {
	status := models.InvoiceStatus(ri.Status)
	if !status.Valid() {
		return models.Invoice{}, fmt.Errorf("unknown status %q", ri.Status)
	}
	if _, err := uuid.Parse(ri.CustomerID); err != nil {
		return models.Invoice{}, fmt.Errorf("invalid customer id %q", ri.CustomerID)
	}
	date, err := time.Parse(models.DateLayout, ri.Date)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("invalid date %q: %w", ri.Date, err)
	}

	id := ri.ID
	if id == "" {
		id = uuid.NewSHA1(invoiceNamespace, []byte(strconv.Itoa(pos))).String()
	} else if _, err := uuid.Parse(id); err != nil {
		return models.Invoice{}, fmt.Errorf("invalid id %q", id)
	}

	return models.Invoice{
		ID:         id,
		CustomerID: ri.CustomerID,
		Amount:     ri.Amount,
		Status:     status,
		Date:       date,
	}, nil
}
