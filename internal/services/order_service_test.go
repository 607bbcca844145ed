package services_test

import (
	"context"
	"testing"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture() (*services.OrderService, *fakeOrders, *fakeCatalog) {
	catalog := newFakeCatalog()
	orders := newFakeOrders()
	return services.NewOrderService(orders, catalog), orders, catalog
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Name: "Starfall Tactics", Price: 10.00})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, user, order.UserID)
	assert.False(t, order.IsPaid)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, 2, order.Amount())
	assert.Equal(t, 20.00, order.TotalAmount())
	require.Len(t, order.Items, 1)
	assert.Equal(t, 10.00, order.Items[0].Price)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc, _, _ := newOrderFixture()

	_, err := svc.CreateOrder(context.Background(), uuid.New(), []model.OrderItemInput{
		{ProductID: 99, Quantity: 1},
	})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestCreateOrderInvalidInput(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 5})

	_, err := svc.CreateOrder(context.Background(), uuid.New(), nil)
	assert.True(t, apperr.Is(err, apperr.InvalidData))

	_, err = svc.CreateOrder(context.Background(), uuid.New(), []model.OrderItemInput{
		{ProductID: 1, Quantity: 0},
	})
	assert.True(t, apperr.Is(err, apperr.InvalidData))
}

func TestTotalAmountStableAfterCatalogPriceChange(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	product := catalog.addProduct(model.Product{ID: 1, Name: "Neon Drift", Price: 19.99})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)

	product.Price = 49.99
	require.NoError(t, catalog.SaveProduct(context.Background(), product))

	got, err := svc.GetOrders(context.Background(), user, order.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3*19.99, got[0].TotalAmount())
}

func TestUpdateOrderItemsOverwritesQuantity(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 10})
	catalog.addProduct(model.Product{ID: 2, Price: 20})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOrderItems(context.Background(), user, order.ID, []model.OrderItemInput{
		{ProductID: 1, Quantity: 5},
	})
	require.NoError(t, err)

	item := updated.Item(1)
	require.NotNil(t, item)
	assert.Equal(t, 5, item.Quantity, "quantity is overwritten, not summed")

	untouched := updated.Item(2)
	require.NotNil(t, untouched)
	assert.Equal(t, 1, untouched.Quantity)
}

func TestUpdateOrderItemsIgnoresUnknownProduct(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 10})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)

	// product 7 is not in the order: the pair is a no-op, not an error,
	// and no item is added
	updated, err := svc.UpdateOrderItems(context.Background(), user, order.ID, []model.OrderItemInput{
		{ProductID: 7, Quantity: 4},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, 2, updated.Item(1).Quantity)
}

func TestUpdateOrderItemsZeroQuantityRemoves(t *testing.T) {
	svc, orders, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 10})
	catalog.addProduct(model.Product{ID: 2, Price: 20})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOrderItems(context.Background(), user, order.ID, []model.OrderItemInput{
		{ProductID: 1, Quantity: 0},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Items, 1)
	assert.Nil(t, updated.Item(1))

	// emptying the order via updates deletes it
	_, err = svc.UpdateOrderItems(context.Background(), user, order.ID, []model.OrderItemInput{
		{ProductID: 2, Quantity: 0},
	})
	require.NoError(t, err)
	stored, err := orders.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestPaidOrderRejectsAllMutations(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 10})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, svc.BuyItems(context.Background(), user, order.ID))

	_, err = svc.UpdateOrderItems(context.Background(), user, order.ID, []model.OrderItemInput{
		{ProductID: 1, Quantity: 3},
	})
	assert.True(t, apperr.Is(err, apperr.InvalidOperation))

	err = svc.RemoveOrderItems(context.Background(), user, order.ID, []int64{1})
	assert.True(t, apperr.Is(err, apperr.InvalidOperation))

	// buying again is rejected the same way
	err = svc.BuyItems(context.Background(), user, order.ID)
	assert.True(t, apperr.Is(err, apperr.InvalidOperation))

	got, err := svc.GetOrders(context.Background(), user, order.ID)
	require.NoError(t, err)
	assert.True(t, got[0].IsPaid)
	assert.Equal(t, model.OrderCompleted, got[0].Status)
	assert.Equal(t, 1, got[0].Item(1).Quantity)
}

func TestMutationsFoldOwnershipAndExistence(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 10})
	owner := uuid.New()
	stranger := uuid.New()

	order, err := svc.CreateOrder(context.Background(), owner, []model.OrderItemInput{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err)

	// someone else's order and a missing order produce the same error kind
	_, err = svc.UpdateOrderItems(context.Background(), stranger, order.ID, nil)
	assert.True(t, apperr.Is(err, apperr.InvalidOperation))
	_, err = svc.UpdateOrderItems(context.Background(), owner, 9999, nil)
	assert.True(t, apperr.Is(err, apperr.InvalidOperation))

	err = svc.BuyItems(context.Background(), stranger, order.ID)
	assert.True(t, apperr.Is(err, apperr.InvalidOperation))
	err = svc.RemoveOrderItems(context.Background(), stranger, order.ID, []int64{1})
	assert.True(t, apperr.Is(err, apperr.InvalidOperation))
}

func TestRemoveOrderItems(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 10})
	catalog.addProduct(model.Product{ID: 2, Price: 20})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 2},
	})
	require.NoError(t, err)

	// absent ids are ignored
	require.NoError(t, svc.RemoveOrderItems(context.Background(), user, order.ID, []int64{1, 77}))

	got, err := svc.GetOrders(context.Background(), user, order.ID)
	require.NoError(t, err)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, int64(2), got[0].Items[0].ProductID)
}

func TestRemoveLastItemDeletesOrder(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 10})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOrderItems(context.Background(), user, order.ID, []int64{1}))

	_, err = svc.GetOrders(context.Background(), user, order.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	list, err := svc.GetOrders(context.Background(), user, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetOrdersListsOnlyOwn(t *testing.T) {
	svc, _, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Price: 10})
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.CreateOrder(context.Background(), alice, []model.OrderItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)
	bobOrder, err := svc.CreateOrder(context.Background(), bob, []model.OrderItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	list, err := svc.GetOrders(context.Background(), alice, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// fetching someone else's order by id reads as "does not exist"
	_, err = svc.GetOrders(context.Background(), alice, bobOrder.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestCreateOrderRejectsDuplicateProducts(t *testing.T) {
	svc, orders, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Name: "Starfall Tactics", Price: 10.00})

	_, err := svc.CreateOrder(context.Background(), uuid.New(), []model.OrderItemInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 1, Quantity: 2},
	})
	assert.True(t, apperr.Is(err, apperr.InvalidData))
	assert.Empty(t, orders.orders)
}

func TestOrderMutationsLockTheOrderRow(t *testing.T) {
	svc, orders, catalog := newOrderFixture()
	catalog.addProduct(model.Product{ID: 1, Name: "Neon Drift", Price: 5.00})
	user := uuid.New()

	order, err := svc.CreateOrder(context.Background(), user, []model.OrderItemInput{
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Zero(t, orders.orderLocks, "creation has no row to lock yet")

	_, err = svc.UpdateOrderItems(context.Background(), user, order.ID, []model.OrderItemInput{
		{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, orders.orderLocks)

	require.NoError(t, svc.BuyItems(context.Background(), user, order.ID))
	assert.Equal(t, 2, orders.orderLocks)
}
