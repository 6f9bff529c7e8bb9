package order_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/idempotency"
	"github.com/vladislavdragonenkov/catalog/internal/service/order"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "order_service_test")
}

type fixture struct {
	store   *memory.Store
	keys    *idempotency.Store
	service *order.Service
}

func newFixture(t *testing.T, publisher domain.OrderEventPublisher) *fixture {
	t.Helper()

	store := memory.NewStore()
	keys := idempotency.NewStore()
	service := order.NewServiceWithoutMetrics(
		store.UnitOfWork(),
		store.Orders(),
		keys,
		publisher,
		loggerForTests(),
	)
	return &fixture{store: store, keys: keys, service: service}
}

func (f *fixture) seedCustomer(t *testing.T) domain.Customer {
	t.Helper()

	customer, err := f.store.Customers().Create(context.Background(), domain.Customer{
		Name:     "Joao Silva",
		Email:    "joao@example.com",
		Document: "52998224725",
	})
	require.NoError(t, err)
	return customer
}

func (f *fixture) seedProduct(t *testing.T, name, sku string, price float64, stock int64) domain.Product {
	t.Helper()

	product, err := f.store.Products().Create(context.Background(), domain.Product{
		Name:     name,
		SKU:      sku,
		Price:    price,
		StockQty: stock,
		IsActive: true,
	})
	require.NoError(t, err)
	return product
}

func TestCreateOrder_Success(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	keyboard := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)
	mouse := f.seedProduct(t, "Mouse", "SKU-MS", 15.5, 5)

	created, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: keyboard.ID, Quantity: 2},
		{ProductID: mouse.ID, Quantity: 3},
	}, "")
	require.NoError(t, err)

	require.NotZero(t, created.ID)
	require.Equal(t, domain.OrderStatusCreated, created.Status)
	require.Len(t, created.Items, 2)
	require.Equal(t, 67.5, created.TotalAmount)
	require.Equal(t, keyboard.ID, created.Items[0].ProductID)
	require.Equal(t, 10.5, created.Items[0].UnitPrice)

	gotKeyboard, err := f.store.Products().GetByID(context.Background(), keyboard.ID)
	require.NoError(t, err)
	require.Equal(t, int64(8), gotKeyboard.StockQty)

	gotMouse, err := f.store.Products().GetByID(context.Background(), mouse.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), gotMouse.StockQty)
}

func TestCreateOrder_IdempotentReplay(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	first, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 2},
	}, "key-1")
	require.NoError(t, err)

	second, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 2},
	}, "key-1")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	// Повтор не списывает остаток второй раз.
	got, err := f.store.Products().GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(8), got.StockQty)
}

func TestCreateOrder_StaleIdempotencyKeyFallsThrough(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	first, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "key-1")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteOrder(context.Background(), first.ID))

	second, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "key-1")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestCreateOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	plenty := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)
	scarce := f.seedProduct(t, "Mouse", "SKU-MS", 15.5, 1)

	_, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: plenty.ID, Quantity: 2},
		{ProductID: scarce.ID, Quantity: 5},
	}, "key-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Contains(t, err.Error(), "Mouse")
	require.Contains(t, err.Error(), "available 1")
	require.Contains(t, err.Error(), "requested 5")

	// Списание первой позиции откатилось вместе с заказом.
	got, err := f.store.Products().GetByID(context.Background(), plenty.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), got.StockQty)

	_, total, err := f.store.Orders().List(context.Background(), domain.OrderListQuery{
		ListQuery: domain.ListQuery{Limit: 10},
	})
	require.NoError(t, err)
	require.Zero(t, total)

	// Неудачное оформление не резервирует idempotency-ключ.
	require.False(t, f.keys.Exists("key-1"))
}

func TestCreateOrder_InactiveProductIsRejected(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	product.IsActive = false
	_, err := f.store.Products().Update(context.Background(), product)
	require.NoError(t, err)

	_, err = f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateOrder_ValidationAndLookupErrors(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	_, err := f.service.CreateOrder(context.Background(), customer.ID, nil, "")
	require.ErrorIs(t, err, domain.ErrItemsRequired)

	_, err = f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 0},
	}, "")
	require.ErrorIs(t, err, domain.ErrItemQtyInvalid)

	_, err = f.service.CreateOrder(context.Background(), 404, []order.ItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "")
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: 404, Quantity: 1},
	}, "")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateOrderStatus_Lifecycle(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	created, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)

	paid, err := f.service.UpdateOrderStatus(context.Background(), created.ID, "PAID")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPaid, paid.Status)

	// Оплаченный заказ нельзя ни оплатить повторно, ни отменить.
	_, err = f.service.UpdateOrderStatus(context.Background(), created.ID, "PAID")
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = f.service.UpdateOrderStatus(context.Background(), created.ID, "CANCELLED")
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = f.service.UpdateOrderStatus(context.Background(), created.ID, "SHIPPED")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.service.UpdateOrderStatus(context.Background(), 404, "PAID")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatus_CancelKeepsStockReduced(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	created, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 4},
	}, "")
	require.NoError(t, err)

	cancelled, err := f.service.UpdateOrderStatus(context.Background(), created.ID, "CANCELLED")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	got, err := f.store.Products().GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(6), got.StockQty)
}

func TestListOrders_FiltersAndInvalidStatus(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 100)

	first, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)
	_, err = f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 2},
	}, "")
	require.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(context.Background(), first.ID, "PAID")
	require.NoError(t, err)

	orders, total, err := f.service.ListOrders(context.Background(), domain.OrderListQuery{
		ListQuery:  domain.ListQuery{Limit: 10},
		CustomerID: customer.ID,
		Status:     "PAID",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	require.Equal(t, first.ID, orders[0].ID)

	_, _, err = f.service.ListOrders(context.Background(), domain.OrderListQuery{
		ListQuery: domain.ListQuery{Limit: 10},
		Status:    "SHIPPED",
	})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestDeleteOrder(t *testing.T) {
	f := newFixture(t, nil)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	created, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 3},
	}, "")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteOrder(context.Background(), created.ID))

	_, err = f.service.GetOrder(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	// Удаление заказа не возвращает списанный остаток.
	got, err := f.store.Products().GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.StockQty)

	require.ErrorIs(t, f.service.DeleteOrder(context.Background(), created.ID), domain.ErrOrderNotFound)
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *capturingPublisher) PublishOrderEvent(eventType string, _ domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return p.err
}

func TestOrderEventsArePublished(t *testing.T) {
	publisher := &capturingPublisher{}
	f := newFixture(t, publisher)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	created, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(context.Background(), created.ID, "PAID")
	require.NoError(t, err)

	require.Equal(t, []string{domain.OrderEventCreated, domain.OrderEventPaid}, publisher.events)
}

func TestPublisherFailureDoesNotFailTheOrder(t *testing.T) {
	publisher := &capturingPublisher{err: context.DeadlineExceeded}
	f := newFixture(t, publisher)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Teclado", "SKU-KB", 10.5, 10)

	created, err := f.service.CreateOrder(context.Background(), customer.ID, []order.ItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}
