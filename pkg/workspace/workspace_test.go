package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snackshop/pkg/entity"
	"snackshop/pkg/session"
)

// fakeStore scripts the remote adapter. Unset hooks fall back to returning
// the seeded lists or echoing the draft.
type fakeStore struct {
	orders   []entity.Order
	products []entity.Product

	listOrdersErr   error
	listProductsErr error

	createOrderFn func(entity.OrderDraft) (entity.Order, error)
	updateOrderFn func(int64, entity.OrderDraft) (entity.Order, error)
	deleteOrderFn func(int64) error

	createProductFn func(entity.ProductDraft) (entity.Product, error)
	updateProductFn func(int64, entity.ProductDraft) (entity.Product, error)
	deleteProductFn func(int64) error
}

func (f *fakeStore) ListOrders(context.Context) ([]entity.Order, error) {
	return f.orders, f.listOrdersErr
}

func (f *fakeStore) CreateOrder(_ context.Context, d entity.OrderDraft) (entity.Order, error) {
	if f.createOrderFn != nil {
		return f.createOrderFn(d)
	}
	return entity.Order{}, errors.New("unexpected CreateOrder")
}

func (f *fakeStore) UpdateOrder(_ context.Context, id int64, d entity.OrderDraft) (entity.Order, error) {
	if f.updateOrderFn != nil {
		return f.updateOrderFn(id, d)
	}
	return entity.Order{}, errors.New("unexpected UpdateOrder")
}

func (f *fakeStore) DeleteOrder(_ context.Context, id int64) error {
	if f.deleteOrderFn != nil {
		return f.deleteOrderFn(id)
	}
	return nil
}

func (f *fakeStore) ListProducts(context.Context) ([]entity.Product, error) {
	return f.products, f.listProductsErr
}

func (f *fakeStore) CreateProduct(_ context.Context, d entity.ProductDraft) (entity.Product, error) {
	if f.createProductFn != nil {
		return f.createProductFn(d)
	}
	return entity.Product{}, errors.New("unexpected CreateProduct")
}

func (f *fakeStore) UpdateProduct(_ context.Context, id int64, d entity.ProductDraft) (entity.Product, error) {
	if f.updateProductFn != nil {
		return f.updateProductFn(id, d)
	}
	return entity.Product{}, errors.New("unexpected UpdateProduct")
}

func (f *fakeStore) DeleteProduct(_ context.Context, id int64) error {
	if f.deleteProductFn != nil {
		return f.deleteProductFn(id)
	}
	return nil
}

func newWorkspace(store *fakeStore) *Workspace {
	return New(store, session.New(), zap.NewNop().Sugar())
}

func seededOrders() []entity.Order {
	return []entity.Order{
		{ID: 4, Customer: "Bia", Address: "Rua B", Product: "Soda", Status: entity.StatusShipping},
		{ID: 5, Customer: "Ana", Address: "Rua A", Product: "Burger", Status: entity.StatusPreparing},
		{ID: 6, Customer: "Caio", Address: "Rua C", Product: "Fries", Status: entity.StatusDelivered},
	}
}

func TestMountSeedsBothCollections(t *testing.T) {
	store := &fakeStore{
		orders:   seededOrders(),
		products: []entity.Product{{ID: 1, Name: "Burger", Available: true}},
	}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	assert.Len(t, ws.Orders(), 3)
	assert.Len(t, ws.Products(), 1)
}

func TestMountFailureLeavesCollectionsEmpty(t *testing.T) {
	store := &fakeStore{
		orders:        seededOrders(),
		listOrdersErr: errors.New("boom"),
		products:      []entity.Product{{ID: 1, Name: "Burger", Available: true}},
	}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	assert.Empty(t, ws.Orders(), "failed fetch must leave the collection empty")
	assert.Len(t, ws.Products(), 1, "the other fetch is independent")
}

func TestSelectableProductsFiltersUnavailable(t *testing.T) {
	store := &fakeStore{products: []entity.Product{
		{ID: 1, Name: "Burger", Available: true},
		{ID: 2, Name: "Soda", Available: false},
	}}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	got := ws.SelectableProducts()
	require.Len(t, got, 1)
	assert.Equal(t, entity.Product{ID: 1, Name: "Burger", Available: true}, got[0])
}

func TestEditSubmitReconcilesInPlace(t *testing.T) {
	store := &fakeStore{orders: seededOrders()}
	store.updateOrderFn = func(id int64, d entity.OrderDraft) (entity.Order, error) {
		require.EqualValues(t, 5, id)
		return entity.Order{ID: id, Customer: d.Customer, Address: d.Address, Product: d.Product, Status: d.Status}, nil
	}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	require.NoError(t, ws.OpenOrderEdit(5))
	ws.OrderForm().SetField("customer", "Ana Maria")
	require.NoError(t, ws.SubmitOrder(context.Background()))

	orders := ws.Orders()
	require.Len(t, orders, 3)
	assert.EqualValues(t, 5, orders[1].ID, "updated order keeps its position")
	assert.Equal(t, "Ana Maria", orders[1].Customer)
	assert.Equal(t, "Bia", orders[0].Customer, "other elements untouched")
	assert.False(t, ws.OrderForm().Open(), "dialog closes on success")
}

func TestCreateSubmitAppends(t *testing.T) {
	store := &fakeStore{
		orders:   seededOrders(),
		products: []entity.Product{{ID: 1, Name: "Burger", Available: true}},
	}
	store.createOrderFn = func(d entity.OrderDraft) (entity.Order, error) {
		return entity.Order{ID: 9, Customer: d.Customer, Address: d.Address, Product: d.Product, Status: d.Status}, nil
	}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	ws.OpenOrderCreate()
	f := ws.OrderForm()
	f.SetField("customer", "Davi")
	f.SetField("address", "Rua D")
	f.SetProduct("Burger")
	require.NoError(t, ws.SubmitOrder(context.Background()))

	orders := ws.Orders()
	require.Len(t, orders, 4)
	assert.EqualValues(t, 9, orders[3].ID, "created order appended at the end")
	assert.False(t, ws.OrderForm().Open())
}

func TestSubmitFailureKeepsDialogOpen(t *testing.T) {
	store := &fakeStore{orders: seededOrders()}
	store.updateOrderFn = func(int64, entity.OrderDraft) (entity.Order, error) {
		return entity.Order{}, errors.New("boom")
	}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	require.NoError(t, ws.OpenOrderEdit(5))
	ws.OrderForm().SetField("customer", "Ana Maria")
	require.Error(t, ws.SubmitOrder(context.Background()))

	assert.True(t, ws.OrderForm().Open(), "dialog stays open so re-submit retries")
	assert.Equal(t, "Ana Maria", ws.OrderForm().Snapshot().Customer, "buffer intact")
	assert.Equal(t, "Ana", ws.Orders()[1].Customer, "collection untouched on failure")
}

func TestSubmitValidationStopsBeforeNetwork(t *testing.T) {
	called := false
	store := &fakeStore{}
	store.createOrderFn = func(entity.OrderDraft) (entity.Order, error) {
		called = true
		return entity.Order{}, nil
	}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	ws.OpenOrderCreate()
	err := ws.SubmitOrder(context.Background())

	var vf *ValidationFailedError
	require.ErrorAs(t, err, &vf)
	assert.False(t, called, "invalid draft must not reach the adapter")
	assert.True(t, ws.OrderForm().Open())
}

func TestStaleUpdateSurfacesError(t *testing.T) {
	store := &fakeStore{orders: seededOrders()}
	store.updateOrderFn = func(id int64, d entity.OrderDraft) (entity.Order, error) {
		return entity.Order{ID: id, Customer: d.Customer, Address: d.Address, Product: d.Product, Status: d.Status}, nil
	}
	store.deleteOrderFn = func(int64) error { return nil }
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	require.NoError(t, ws.OpenOrderEdit(5))
	// The order disappears locally between open and submit.
	require.NoError(t, ws.DeleteOrder(context.Background(), 5))

	err := ws.SubmitOrder(context.Background())
	var stale *StaleEntityError
	require.ErrorAs(t, err, &stale)
	assert.EqualValues(t, 5, stale.ID)
	assert.Len(t, ws.Orders(), 2, "collection unchanged by the stale confirmation")
}

func TestSubmitPendingGuard(t *testing.T) {
	enter := make(chan struct{})
	release := make(chan struct{})
	store := &fakeStore{orders: seededOrders()}
	store.updateOrderFn = func(id int64, d entity.OrderDraft) (entity.Order, error) {
		close(enter)
		<-release
		return entity.Order{ID: id, Customer: d.Customer, Address: d.Address, Product: d.Product, Status: d.Status}, nil
	}
	ws := newWorkspace(store)
	ws.Mount(context.Background())
	require.NoError(t, ws.OpenOrderEdit(5))

	done := make(chan error, 1)
	go func() { done <- ws.SubmitOrder(context.Background()) }()
	<-enter

	// Second click while the first request is in flight.
	assert.ErrorIs(t, ws.SubmitOrder(context.Background()), ErrSubmitPending)

	close(release)
	require.NoError(t, <-done)
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	store := &fakeStore{orders: seededOrders()}
	// Adapter already treats a 404 on delete as success.
	store.deleteOrderFn = func(int64) error { return nil }
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	require.NoError(t, ws.DeleteOrder(context.Background(), 42))
	assert.Equal(t, seededOrders(), ws.Orders(), "collection content unchanged")
}

func TestDeleteRemovesRow(t *testing.T) {
	store := &fakeStore{orders: seededOrders()}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	require.NoError(t, ws.DeleteOrder(context.Background(), 5))
	orders := ws.Orders()
	require.Len(t, orders, 2)
	assert.EqualValues(t, 4, orders[0].ID)
	assert.EqualValues(t, 6, orders[1].ID)
}

func TestProductCreateFlow(t *testing.T) {
	store := &fakeStore{}
	store.createProductFn = func(d entity.ProductDraft) (entity.Product, error) {
		p, violations := entity.ValidateProduct(d)
		require.Nil(t, violations)
		p.ID = 3
		return p, nil
	}
	ws := newWorkspace(store)
	ws.Mount(context.Background())

	ws.OpenProductCreate()
	f := ws.ProductForm()
	f.SetField("name", "Juice")
	f.SetField("price", "7.25")
	require.NoError(t, ws.SubmitProduct(context.Background()))

	products := ws.Products()
	require.Len(t, products, 1)
	assert.EqualValues(t, 3, products[0].ID)
	assert.True(t, products[0].Available, "dialog default carried through")
	assert.False(t, ws.ProductForm().Open())
}

func TestLogoutTearsDownSessionAndState(t *testing.T) {
	store := &fakeStore{orders: seededOrders()}
	sess := session.New()
	sess.Init("tok")
	ws := New(store, sess, zap.NewNop().Sugar())
	ws.Mount(context.Background())
	require.NoError(t, ws.OpenOrderEdit(5))

	ws.Logout()

	assert.False(t, sess.Authenticated())
	assert.Empty(t, ws.Orders())
	assert.Empty(t, ws.Products())
	assert.False(t, ws.OrderForm().Open())
}
