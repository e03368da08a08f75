package entity

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Violation reasons reported by the validators.
const (
	ReasonRequired   = "required"
	ReasonNotANumber = "not_a_number"
	ReasonNegative   = "negative"
	ReasonBadStatus  = "unknown_status"
)

// FieldError describes a single per-field validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Reason }

// ValidateOrder normalizes a draft into an order without an ID. Customer and
// address are trimmed and must be non-empty; the product name must be set and
// the status must belong to the recognized set.
func ValidateOrder(d OrderDraft) (Order, []FieldError) {
	var errs []FieldError

	customer := strings.TrimSpace(d.Customer)
	if customer == "" {
		errs = append(errs, FieldError{Field: "customer", Reason: ReasonRequired})
	}
	address := strings.TrimSpace(d.Address)
	if address == "" {
		errs = append(errs, FieldError{Field: "address", Reason: ReasonRequired})
	}
	product := strings.TrimSpace(d.Product)
	if product == "" {
		errs = append(errs, FieldError{Field: "product", Reason: ReasonRequired})
	}
	status, ok := ParseStatus(string(d.Status))
	if !ok {
		errs = append(errs, FieldError{Field: "status", Reason: ReasonBadStatus})
	}
	if len(errs) > 0 {
		return Order{}, errs
	}
	return Order{Customer: customer, Address: address, Product: product, Status: status}, nil
}

// ValidateProduct normalizes a draft into a product without an ID. The price
// buffer must parse as a non-negative decimal.
func ValidateProduct(d ProductDraft) (Product, []FieldError) {
	var errs []FieldError

	name := strings.TrimSpace(d.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Reason: ReasonRequired})
	}

	priceBuf := strings.TrimSpace(d.Price)
	var price decimal.Decimal
	if priceBuf == "" {
		errs = append(errs, FieldError{Field: "price", Reason: ReasonRequired})
	} else {
		p, err := decimal.NewFromString(strings.TrimSuffix(priceBuf, "."))
		switch {
		case err != nil:
			errs = append(errs, FieldError{Field: "price", Reason: ReasonNotANumber})
		case p.IsNegative():
			errs = append(errs, FieldError{Field: "price", Reason: ReasonNegative})
		default:
			price = p
		}
	}

	if len(errs) > 0 {
		return Product{}, errs
	}
	return Product{Name: name, Price: price, Available: d.Available}, nil
}

// CoercePrice applies the dialog's clear-on-invalid policy to a price buffer:
// the buffer is kept only while it parses as a non-negative finite number,
// otherwise the field resets to empty.
func CoercePrice(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return ""
	}
	return s
}
