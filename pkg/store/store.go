// Package store defines the persistence contracts behind the snack-shop API.
package store

import (
	"context"
	"errors"

	"snackshop/pkg/entity"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a uniqueness violation, e.g. a registered email.
var ErrDuplicate = errors.New("record already exists")

// Orders persists orders. Create assigns the identifier; List preserves
// insertion order.
type Orders interface {
	Create(ctx context.Context, o entity.Order) (entity.Order, error)
	List(ctx context.Context) ([]entity.Order, error)
	Update(ctx context.Context, o entity.Order) (entity.Order, error)
	Delete(ctx context.Context, id int64) error
}

// Products persists products.
type Products interface {
	Create(ctx context.Context, p entity.Product) (entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, p entity.Product) (entity.Product, error)
	Delete(ctx context.Context, id int64) error
}

// User is a registered account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
}

// Users persists accounts.
type Users interface {
	Create(ctx context.Context, u User) (User, error)
	ByEmail(ctx context.Context, email string) (User, error)
}
