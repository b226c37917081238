package invoices

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hongminglow/invoice-dashboard/internal/models"
)

// Form is untrusted form input. url.Values satisfies it.
type Form interface {
	Get(key string) string
}

// Fields is a validated and coerced invoice form.
type Fields struct {
	CustomerID string               `form:"customerId" validate:"required"`
	Amount     float64              `form:"amount" validate:"gt=0"`
	Status     models.InvoiceStatus `form:"status" validate:"required,oneof=pending paid"`
}

// FieldErrors maps a form field name to its problems.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// ValidationError reports form input that was rejected before touching the store.
type ValidationError struct {
	Errors FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid invoice form: " + strings.Join(fields, ", ")
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

var messages = map[string]string{
	"customerId": "Please select a customer.",
	"amount":     "Please enter an amount greater than $0.",
	"status":     "Please select an invoice status.",
}

// ParseForm coerces and validates form input. On failure the error is a *ValidationError.
func ParseForm(form Form) (Fields, error) {
	errs := FieldErrors{}
	fields := Fields{
		CustomerID: strings.TrimSpace(form.Get("customerId")),
		Status:     models.InvoiceStatus(strings.TrimSpace(form.Get("status"))),
	}

	amount, err := coerceNumber(form.Get("amount"))
	if err != nil {
		errs.add("amount", err.Error())
	}
	fields.Amount = amount

	if err := validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Fields{}, err
		}
		for _, fe := range verrs {
			name := fe.Field()
			if _, seen := errs[name]; seen {
				continue
			}
			errs.add(name, messages[name])
		}
	}

	if _, seen := errs["amount"]; !seen && !centsInRange(fields.Amount) {
		errs.add("amount", fmt.Sprintf("Please enter an amount between $0.01 and $%.2f.", float64(MaxCents)/100))
	}

	if len(errs) > 0 {
		return Fields{}, &ValidationError{Errors: errs}
	}
	return fields, nil
}

// MaxCents is the largest amount the invoices.amount INT column holds.
const MaxCents = math.MaxInt32

// centsInRange reports whether amount converts to between 1 and MaxCents cents.
func centsInRange(amount float64) bool {
	cents := math.Round(amount * 100)
	return cents >= 1 && cents <= MaxCents
}

// coerceNumber follows form-number semantics: blank input is zero, anything else must be a finite number.
func coerceNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("expected number, received %q", raw)
	}
	return n, nil
}

// ToCents converts a currency amount to integer minor units.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
