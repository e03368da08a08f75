package client

import (
	"context"
	"fmt"
	"net/http"

	"snackshop/pkg/entity"
)

// ListProducts fetches every product.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct submits a draft; the server assigns the identifier.
func (c *Client) CreateProduct(ctx context.Context, draft entity.ProductDraft) (entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, http.MethodPost, "/products", draft, &out, nil); err != nil {
		return entity.Product{}, err
	}
	return out, nil
}

// UpdateProduct replaces the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id int64, draft entity.ProductDraft) (entity.Product, error) {
	var out entity.Product
	nf := &NotFoundError{Resource: "product", ID: id}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), draft, &out, nf); err != nil {
		return entity.Product{}, err
	}
	return out, nil
}

// DeleteProduct removes the product with the given id, tolerating an already
// deleted one.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, &NotFoundError{Resource: "product", ID: id})
	if IsNotFound(err) {
		return nil
	}
	return err
}
