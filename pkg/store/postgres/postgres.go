// Package postgres implements the store contracts on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"snackshop/pkg/entity"
	"snackshop/pkg/store"
)

// Schema creates the tables this package expects.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id SERIAL PRIMARY KEY,
	customer TEXT NOT NULL,
	address TEXT NOT NULL,
	product TEXT NOT NULL,
	status TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS products (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	price NUMERIC NOT NULL,
	available BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);`

// Store implements the repositories over a shared *sql.DB.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate applies the schema.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, Schema)
	return err
}

// Orders offers the order repository view of the store.
func (s *Store) Orders() store.Orders { return orderRepo{s.db} }

// Products offers the product repository view of the store.
func (s *Store) Products() store.Products { return productRepo{s.db} }

// Users offers the user repository view of the store.
func (s *Store) Users() store.Users { return userRepo{s.db} }

type orderRepo struct{ db *sql.DB }

func (r orderRepo) Create(ctx context.Context, o entity.Order) (entity.Order, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO orders (customer, address, product, status) VALUES ($1,$2,$3,$4) RETURNING id",
		o.Customer, o.Address, o.Product, string(o.Status)).Scan(&o.ID)
	return o, err
}

func (r orderRepo) List(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, customer, address, product, status FROM orders ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		var status string
		if err := rows.Scan(&o.ID, &o.Customer, &o.Address, &o.Product, &status); err != nil {
			return nil, err
		}
		o.Status, _ = entity.ParseStatus(status)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r orderRepo) Update(ctx context.Context, o entity.Order) (entity.Order, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET customer=$2, address=$3, product=$4, status=$5 WHERE id=$1",
		o.ID, o.Customer, o.Address, o.Product, string(o.Status))
	if err != nil {
		return entity.Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.Order{}, store.ErrNotFound
	}
	return o, nil
}

func (r orderRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id=$1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type productRepo struct{ db *sql.DB }

func (r productRepo) Create(ctx context.Context, p entity.Product) (entity.Product, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO products (name, price, available) VALUES ($1,$2,$3) RETURNING id",
		p.Name, p.Price.String(), p.Available).Scan(&p.ID)
	return p, err
}

func (r productRepo) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, price, available FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Available); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r productRepo) Update(ctx context.Context, p entity.Product) (entity.Product, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET name=$2, price=$3, available=$4 WHERE id=$1",
		p.ID, p.Name, p.Price.String(), p.Available)
	if err != nil {
		return entity.Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (r productRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id=$1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type userRepo struct{ db *sql.DB }

func (r userRepo) Create(ctx context.Context, u store.User) (store.User, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES ($1,$2) RETURNING id",
		u.Email, u.PasswordHash).Scan(&u.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return store.User{}, store.ErrDuplicate
	}
	if err != nil {
		return store.User{}, err
	}
	return u, nil
}

func (r userRepo) ByEmail(ctx context.Context, email string) (store.User, error) {
	var u store.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash FROM users WHERE email=$1", email).
		Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return store.User{}, store.ErrNotFound
	}
	return u, err
}
