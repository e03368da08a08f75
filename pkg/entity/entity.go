// Package entity defines the order and product records exchanged with the
// snack-shop API, plus their validation and coercion rules.
package entity

import "github.com/shopspring/decimal"

// Order is a customer order. The ID is assigned by the server and immutable
// once set; Product holds the chosen product's name.
type Order struct {
	ID       int64  `json:"id"`
	Customer string `json:"customer"`
	Address  string `json:"address"`
	Product  string `json:"product"`
	Status   Status `json:"status"`
}

// Key returns the collection key for reconciliation.
func (o Order) Key() int64 { return o.ID }

// Product is a menu item. Price marshals as a decimal string on the wire.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

// Key returns the collection key for reconciliation.
func (p Product) Key() int64 { return p.ID }

// OrderDraft is the editable shape of an order before it has been validated
// and accepted by the server.
type OrderDraft struct {
	Customer string `json:"customer"`
	Address  string `json:"address"`
	Product  string `json:"product"`
	Status   Status `json:"status"`
}

// ProductDraft is the editable shape of a product. Price stays a raw string
// buffer so a dialog can hold partially typed input.
type ProductDraft struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
}

// DraftOf returns a draft seeded from an existing order, copied by value.
func DraftOf(o Order) OrderDraft {
	return OrderDraft{Customer: o.Customer, Address: o.Address, Product: o.Product, Status: o.Status}
}

// ProductDraftOf returns a draft seeded from an existing product.
func ProductDraftOf(p Product) ProductDraft {
	return ProductDraft{Name: p.Name, Price: p.Price.String(), Available: p.Available}
}
