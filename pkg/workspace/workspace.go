// Package workspace wires the dialog forms, the collection reconciler, and
// the remote store adapter into the main order-management screen. It is the
// sole owner of the order and product collections: they change only when a
// confirmed server response is reconciled in, never optimistically.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"snackshop/pkg/collection"
	"snackshop/pkg/entity"
	"snackshop/pkg/form"
	"snackshop/pkg/session"
)

// Store is the remote adapter contract the workspace drives. client.Client
// satisfies it; tests substitute a stub.
type Store interface {
	ListOrders(ctx context.Context) ([]entity.Order, error)
	CreateOrder(ctx context.Context, draft entity.OrderDraft) (entity.Order, error)
	UpdateOrder(ctx context.Context, id int64, draft entity.OrderDraft) (entity.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	ListProducts(ctx context.Context) ([]entity.Product, error)
	CreateProduct(ctx context.Context, draft entity.ProductDraft) (entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, draft entity.ProductDraft) (entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ErrSubmitPending rejects a submit issued while the previous one for the
// same dialog has not settled yet.
var ErrSubmitPending = errors.New("submit already in flight")

// ErrUnknownEntity rejects an edit request for an id that is not in the
// local collection.
var ErrUnknownEntity = errors.New("entity not in workspace")

// StaleEntityError reports that the server confirmed an update for a record
// the local collection no longer holds, e.g. it was deleted between open and
// submit.
type StaleEntityError struct {
	Resource string
	ID       int64
}

func (e *StaleEntityError) Error() string {
	return fmt.Sprintf("%s %d is no longer in the local collection", e.Resource, e.ID)
}

// ValidationFailedError carries the per-field violations that stopped a
// submit before any network call.
type ValidationFailedError struct {
	Fields []entity.FieldError
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("draft rejected: %d field violation(s)", len(e.Fields))
}

// Workspace is the orchestrator behind the main screen.
type Workspace struct {
	mu sync.Mutex

	store Store
	sess  *session.Session
	log   *zap.SugaredLogger

	orders   []entity.Order
	products []entity.Product

	orderForm   form.OrderForm
	productForm form.ProductForm

	orderPending   bool
	productPending bool
	mounted        bool
}

// New builds a workspace over the given adapter and session. The session is
// passed in explicitly; the workspace never consults ambient state.
func New(store Store, sess *session.Session, log *zap.SugaredLogger) *Workspace {
	return &Workspace{store: store, sess: sess, log: log}
}

// Mount fetches both collections exactly once. A failed fetch leaves that
// collection empty and is only logged; the screen renders with what it got.
func (w *Workspace) Mount(ctx context.Context) {
	w.mu.Lock()
	if w.mounted {
		w.mu.Unlock()
		return
	}
	w.mounted = true
	w.mu.Unlock()

	orders, err := w.store.ListOrders(ctx)
	if err != nil {
		w.log.Errorw("fetch orders", "error", err)
		orders = nil
	}
	products, err := w.store.ListProducts(ctx)
	if err != nil {
		w.log.Errorw("fetch products", "error", err)
		products = nil
	}

	w.mu.Lock()
	w.orders = orders
	w.products = products
	w.mu.Unlock()
}

// Orders returns a copy of the current order collection.
func (w *Workspace) Orders() []entity.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]entity.Order(nil), w.orders...)
}

// Products returns a copy of the current product collection.
func (w *Workspace) Products() []entity.Product {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]entity.Product(nil), w.products...)
}

// SelectableProducts derives the product choices offered by the order
// dialog: only available products. Recomputed from current state on every
// call, intentionally uncached, so a product toggled unavailable after the
// dialog opened disappears without any invalidation step.
func (w *Workspace) SelectableProducts() []entity.Product {
	w.mu.Lock()
	defer w.mu.Unlock()
	return collection.Filter(w.products, func(p entity.Product) bool { return p.Available })
}

// OrderForm exposes the order dialog's buffer for field edits.
func (w *Workspace) OrderForm() *form.OrderForm { return &w.orderForm }

// ProductForm exposes the product dialog's buffer for field edits.
func (w *Workspace) ProductForm() *form.ProductForm { return &w.productForm }

// OpenOrderCreate opens the order dialog in create mode.
func (w *Workspace) OpenOrderCreate() {
	w.orderForm.OpenCreate()
}

// OpenOrderEdit opens the order dialog seeded from the order with the given
// id. The order must be in the local collection.
func (w *Workspace) OpenOrderEdit(id int64) error {
	w.mu.Lock()
	o, ok := collection.Find(w.orders, id)
	w.mu.Unlock()
	if !ok {
		return ErrUnknownEntity
	}
	w.orderForm.OpenEdit(o)
	return nil
}

// CloseOrderDialog discards the order buffer. Idempotent.
func (w *Workspace) CloseOrderDialog() {
	w.orderForm.Close()
}

// OpenProductCreate opens the product dialog in create mode.
func (w *Workspace) OpenProductCreate() {
	w.productForm.OpenCreate()
}

// OpenProductEdit opens the product dialog seeded from the product with the
// given id.
func (w *Workspace) OpenProductEdit(id int64) error {
	w.mu.Lock()
	p, ok := collection.Find(w.products, id)
	w.mu.Unlock()
	if !ok {
		return ErrUnknownEntity
	}
	w.productForm.OpenEdit(p)
	return nil
}

// CloseProductDialog discards the product buffer. Idempotent.
func (w *Workspace) CloseProductDialog() {
	w.productForm.Close()
}

// SubmitOrder validates a snapshot of the order buffer and sends it to the
// server. In edit mode the confirmed entity replaces its element in place;
// in create mode it is appended. On failure the dialog stays open with the
// buffer intact, so re-submitting is the implicit retry.
func (w *Workspace) SubmitOrder(ctx context.Context) error {
	w.mu.Lock()
	if w.orderPending {
		w.mu.Unlock()
		return ErrSubmitPending
	}
	w.orderPending = true
	mode := w.orderForm.Mode()
	pinned := w.orderForm.PinnedID()
	draft := w.orderForm.Snapshot()
	w.mu.Unlock()

	err := w.submitOrder(ctx, mode, pinned, draft)

	w.mu.Lock()
	w.orderPending = false
	w.mu.Unlock()
	return err
}

func (w *Workspace) submitOrder(ctx context.Context, mode form.Mode, pinned int64, draft entity.OrderDraft) error {
	if _, violations := entity.ValidateOrder(draft); violations != nil {
		w.log.Warnw("order draft invalid", "violations", violations)
		return &ValidationFailedError{Fields: violations}
	}

	if mode == form.ModeEdit {
		updated, err := w.store.UpdateOrder(ctx, pinned, draft)
		if err != nil {
			w.log.Errorw("update order", "id", pinned, "error", err)
			return err
		}
		w.mu.Lock()
		stale := !collection.ContainsKey(w.orders, updated.ID)
		if !stale {
			w.orders = collection.ApplyUpdated(w.orders, updated)
		}
		w.mu.Unlock()
		if stale {
			err := &StaleEntityError{Resource: "order", ID: updated.ID}
			w.log.Warnw("stale order update", "error", err)
			return err
		}
	} else {
		created, err := w.store.CreateOrder(ctx, draft)
		if err != nil {
			w.log.Errorw("create order", "error", err)
			return err
		}
		w.mu.Lock()
		w.orders = collection.ApplyCreated(w.orders, created)
		w.mu.Unlock()
	}

	w.orderForm.Close()
	return nil
}

// SubmitProduct is the product dialog's counterpart of SubmitOrder.
func (w *Workspace) SubmitProduct(ctx context.Context) error {
	w.mu.Lock()
	if w.productPending {
		w.mu.Unlock()
		return ErrSubmitPending
	}
	w.productPending = true
	mode := w.productForm.Mode()
	pinned := w.productForm.PinnedID()
	draft := w.productForm.Snapshot()
	w.mu.Unlock()

	err := w.submitProduct(ctx, mode, pinned, draft)

	w.mu.Lock()
	w.productPending = false
	w.mu.Unlock()
	return err
}

func (w *Workspace) submitProduct(ctx context.Context, mode form.Mode, pinned int64, draft entity.ProductDraft) error {
	if _, violations := entity.ValidateProduct(draft); violations != nil {
		w.log.Warnw("product draft invalid", "violations", violations)
		return &ValidationFailedError{Fields: violations}
	}

	if mode == form.ModeEdit {
		updated, err := w.store.UpdateProduct(ctx, pinned, draft)
		if err != nil {
			w.log.Errorw("update product", "id", pinned, "error", err)
			return err
		}
		w.mu.Lock()
		stale := !collection.ContainsKey(w.products, updated.ID)
		if !stale {
			w.products = collection.ApplyUpdated(w.products, updated)
		}
		w.mu.Unlock()
		if stale {
			err := &StaleEntityError{Resource: "product", ID: updated.ID}
			w.log.Warnw("stale product update", "error", err)
			return err
		}
	} else {
		created, err := w.store.CreateProduct(ctx, draft)
		if err != nil {
			w.log.Errorw("create product", "error", err)
			return err
		}
		w.mu.Lock()
		w.products = collection.ApplyCreated(w.products, created)
		w.mu.Unlock()
	}

	w.productForm.Close()
	return nil
}

// DeleteOrder removes an order. There is no confirmation step; a failure
// leaves the row visible and is only logged.
func (w *Workspace) DeleteOrder(ctx context.Context, id int64) error {
	if err := w.store.DeleteOrder(ctx, id); err != nil {
		w.log.Errorw("delete order", "id", id, "error", err)
		return err
	}
	w.mu.Lock()
	w.orders = collection.ApplyRemoved(w.orders, id)
	w.mu.Unlock()
	return nil
}

// DeleteProduct removes a product.
func (w *Workspace) DeleteProduct(ctx context.Context, id int64) error {
	if err := w.store.DeleteProduct(ctx, id); err != nil {
		w.log.Errorw("delete product", "id", id, "error", err)
		return err
	}
	w.mu.Lock()
	w.products = collection.ApplyRemoved(w.products, id)
	w.mu.Unlock()
	return nil
}

// Session returns the injected session value.
func (w *Workspace) Session() *session.Session { return w.sess }

// Logout tears the session down and drops both collections.
func (w *Workspace) Logout() {
	w.sess.Teardown()
	w.mu.Lock()
	w.orders = nil
	w.products = nil
	w.mounted = false
	w.mu.Unlock()
	w.orderForm.Close()
	w.productForm.Close()
}
