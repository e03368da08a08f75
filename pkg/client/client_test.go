package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"snackshop/pkg/entity"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestListOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]entity.Order{{ID: 1, Customer: "Ana", Status: "Entregue"}})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	orders, err := c.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 1 || orders[0].Customer != "Ana" {
		t.Fatalf("orders = %+v", orders)
	}
	if orders[0].Status != entity.StatusDelivered {
		t.Fatalf("legacy status not normalized on read: %q", orders[0].Status)
	}
}

func TestCreateOrderValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "validation failed"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.CreateOrder(context.Background(), entity.OrderDraft{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if ve.Message != "validation failed" {
		t.Fatalf("message = %q", ve.Message)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.UpdateOrder(context.Background(), 42, entity.OrderDraft{Customer: "x"})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if nf.ID != 42 || nf.Resource != "order" {
		t.Fatalf("not found = %+v", nf)
	}
}

func TestServerErrorMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.ListProducts(context.Background())
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want ServerError", err)
	}
}

func TestNetworkErrorMapped(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, nil)
	_, err := c.ListOrders(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
}

func TestDeleteTolerates404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if err := c.DeleteOrder(context.Background(), 42); err != nil {
		t.Fatalf("DeleteOrder on missing id: %v", err)
	}
	if err := c.DeleteProduct(context.Background(), 42); err != nil {
		t.Fatalf("DeleteProduct on missing id: %v", err)
	}
}
