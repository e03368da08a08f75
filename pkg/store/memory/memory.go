// Package memory implements the store contracts with in-memory slices,
// preserving insertion order. Used for local runs and tests.
package memory

import (
	"context"
	"sync"

	"snackshop/pkg/entity"
	"snackshop/pkg/store"
)

// Store backs all three repositories with one mutex-guarded state.
type Store struct {
	mu       sync.Mutex
	orders   []entity.Order
	products []entity.Product
	users    []store.User
	nextID   int64
}

// New creates an empty store.
func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) assign() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Orders offers the order repository view of the store.
func (s *Store) Orders() store.Orders { return orderRepo{s} }

// Products offers the product repository view of the store.
func (s *Store) Products() store.Products { return productRepo{s} }

// Users offers the user repository view of the store.
func (s *Store) Users() store.Users { return userRepo{s} }

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, o entity.Order) (entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.assign()
	r.s.orders = append(r.s.orders, o)
	return o, nil
}

func (r orderRepo) List(_ context.Context) ([]entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]entity.Order(nil), r.s.orders...), nil
}

func (r orderRepo) Update(_ context.Context, o entity.Order) (entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.orders {
		if r.s.orders[i].ID == o.ID {
			r.s.orders[i] = o
			return o, nil
		}
	}
	return entity.Order{}, store.ErrNotFound
}

func (r orderRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.orders {
		if r.s.orders[i].ID == id {
			r.s.orders = append(r.s.orders[:i], r.s.orders[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p entity.Product) (entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.assign()
	r.s.products = append(r.s.products, p)
	return p, nil
}

func (r productRepo) List(_ context.Context) ([]entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]entity.Product(nil), r.s.products...), nil
}

func (r productRepo) Update(_ context.Context, p entity.Product) (entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == p.ID {
			r.s.products[i] = p
			return p, nil
		}
	}
	return entity.Product{}, store.ErrNotFound
}

func (r productRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u store.User) (store.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return store.User{}, store.ErrDuplicate
		}
	}
	u.ID = r.s.assign()
	r.s.users = append(r.s.users, u)
	return u, nil
}

func (r userRepo) ByEmail(_ context.Context, email string) (store.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return store.User{}, store.ErrNotFound
}
