package client

import (
	"context"
	"fmt"
	"net/http"

	"snackshop/pkg/entity"
)

// ListOrders fetches every order. Ordering is whatever the server returned;
// callers must not assume it is stable across calls.
func (c *Client) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder submits a draft; the server assigns the identifier.
func (c *Client) CreateOrder(ctx context.Context, draft entity.OrderDraft) (entity.Order, error) {
	var out entity.Order
	if err := c.do(ctx, http.MethodPost, "/orders", draft, &out, nil); err != nil {
		return entity.Order{}, err
	}
	return out, nil
}

// UpdateOrder replaces the order with the given id. A stale id comes back as
// a NotFoundError.
func (c *Client) UpdateOrder(ctx context.Context, id int64, draft entity.OrderDraft) (entity.Order, error) {
	var out entity.Order
	nf := &NotFoundError{Resource: "order", ID: id}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), draft, &out, nf); err != nil {
		return entity.Order{}, err
	}
	return out, nil
}

// DeleteOrder removes the order with the given id. Deleting an id the server
// no longer knows is treated as success, so the call is idempotent for the
// caller.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil, &NotFoundError{Resource: "order", ID: id})
	if IsNotFound(err) {
		return nil
	}
	return err
}
