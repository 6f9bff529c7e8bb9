package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/metrics"
)

// Service реализует оформление и жизненный цикл заказов.
// Создание заказа атомарно: списание остатков и вставка заказа происходят
// в одной единице работы, сбой любого шага откатывает всё.
type Service struct {
	uow         domain.UnitOfWork
	orders      domain.OrderRepository
	idempotency domain.IdempotencyStore
	publisher   domain.OrderEventPublisher
	logger      *log.Entry
	metrics     *metrics.OrderMetrics
}

// NewService создаёт сервис заказов. publisher опционален: nil отключает
// публикацию событий.
func NewService(
	uow domain.UnitOfWork,
	orders domain.OrderRepository,
	idempotency domain.IdempotencyStore,
	publisher domain.OrderEventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order_service")
	}
	return &Service{
		uow:         uow,
		orders:      orders,
		idempotency: idempotency,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics.NewOrderMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	uow domain.UnitOfWork,
	orders domain.OrderRepository,
	idempotency domain.IdempotencyStore,
	publisher domain.OrderEventPublisher,
	logger *log.Entry,
) *Service {
	service := NewService(uow, orders, idempotency, publisher, logger)
	service.metrics = nil
	return service
}

// ItemInput — позиция запроса на оформление заказа.
type ItemInput struct {
	ProductID int64
	Quantity  int64
}

// CreateOrder оформляет заказ: проверяет клиента и товары, списывает остатки
// и сохраняет заказ с позициями в одной транзакции.
//
// idempotencyKey, под которым уже был создан заказ, возвращает этот заказ
// без повторного списания. Ключ, указывающий на уже удалённый заказ,
// обрабатывается как новый.
func (s *Service) CreateOrder(ctx context.Context, customerID int64, items []ItemInput, idempotencyKey string) (domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordOrderInFlightStarted()
	}
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOrderInFlightFinished()
			s.metrics.RecordCreateDuration(time.Since(start))
		}
	}()

	if idempotencyKey != "" && s.idempotency != nil {
		if orderID, ok := s.idempotency.Get(idempotencyKey); ok {
			existing, err := s.orders.GetByID(ctx, orderID)
			if err == nil {
				if s.metrics != nil {
					s.metrics.RecordOrderReplayed()
				}
				s.logger.WithFields(log.Fields{
					"order_id":        existing.ID,
					"idempotency_key": idempotencyKey,
				}).Info("order creation replayed from idempotency key")
				return existing, nil
			}
			if !errors.Is(err, domain.ErrOrderNotFound) {
				return domain.Order{}, fmt.Errorf("resolve idempotent order: %w", err)
			}
			// Заказ по ключу уже удалён: ключ устарел, оформляем заново.
		}
	}

	if len(items) == 0 {
		s.recordFailure(domain.ErrItemsRequired)
		return domain.Order{}, domain.ErrItemsRequired
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			s.recordFailure(domain.ErrItemQtyInvalid)
			return domain.Order{}, fmt.Errorf("%w: product %d", domain.ErrItemQtyInvalid, item.ProductID)
		}
	}

	var created domain.Order
	err := s.uow.Do(ctx, func(repos domain.Repositories) error {
		if _, err := repos.Customers.GetByID(ctx, customerID); err != nil {
			return err
		}

		ids := make([]int64, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		products, err := repos.Products.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		byID := make(map[int64]domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		order := domain.Order{
			CustomerID: customerID,
			Status:     domain.OrderStatusCreated,
			CreatedAt:  time.Now().UTC(),
		}

		for _, input := range items {
			product, ok := byID[input.ProductID]
			if !ok {
				return fmt.Errorf("%w: %d", domain.ErrProductNotFound, input.ProductID)
			}
			if !product.HasSufficientStock(input.Quantity) {
				return fmt.Errorf("%w for product %s: available %d, requested %d",
					domain.ErrInsufficientStock, product.Name, product.StockQty, input.Quantity)
			}

			item := domain.OrderItem{
				ProductID: product.ID,
				UnitPrice: product.Price,
				Quantity:  input.Quantity,
			}

			if err := product.ReduceStock(input.Quantity); err != nil {
				return err
			}
			if _, err := repos.Products.Update(ctx, product); err != nil {
				return fmt.Errorf("update product stock: %w", err)
			}
			byID[product.ID] = product

			order.Items = append(order.Items, item)
		}

		order.TotalAmount = order.TotalFromItems()
		if errs := order.Validate(); len(errs) > 0 {
			return errs[0]
		}

		created, err = repos.Orders.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		s.recordFailure(err)
		return domain.Order{}, err
	}

	if idempotencyKey != "" && s.idempotency != nil {
		s.idempotency.Set(idempotencyKey, created.ID)
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.logger.WithFields(log.Fields{
		"order_id":     created.ID,
		"customer_id":  created.CustomerID,
		"total_amount": created.TotalAmount,
		"items":        len(created.Items),
	}).Info("order created")

	s.publishEvent(domain.OrderEventCreated, created)

	return created, nil
}

// GetOrder возвращает заказ с позициями.
func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders возвращает страницу заказов и общее число подходящих записей.
func (s *Service) ListOrders(ctx context.Context, query domain.OrderListQuery) ([]domain.Order, int64, error) {
	if query.Status != "" && !domain.OrderStatus(query.Status).Valid() {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrInvalidStatus, query.Status)
	}
	return s.orders.List(ctx, query)
}

// UpdateOrderStatus переводит заказ в новый статус по правилам жизненного
// цикла: PAID достижим только из CREATED, CANCELLED — из любого неоплаченного
// и неотменённого статуса.
func (s *Service) UpdateOrderStatus(ctx context.Context, id int64, status string) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration("update_status", time.Since(start))
		}
	}()

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	var eventType string
	switch domain.OrderStatus(status) {
	case domain.OrderStatusPaid:
		if err := order.MarkAsPaid(); err != nil {
			return domain.Order{}, err
		}
		eventType = domain.OrderEventPaid
	case domain.OrderStatusCancelled:
		if err := order.Cancel(); err != nil {
			return domain.Order{}, err
		}
		eventType = domain.OrderEventCancelled
	default:
		return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrInvalidStatus, status)
	}

	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}
	updated.Items = order.Items

	if s.metrics != nil {
		switch updated.Status {
		case domain.OrderStatusPaid:
			s.metrics.RecordOrderPaid()
		case domain.OrderStatusCancelled:
			s.metrics.RecordOrderCancelled()
		}
	}
	s.logger.WithFields(log.Fields{
		"order_id": updated.ID,
		"status":   updated.Status,
	}).Info("order status updated")

	s.publishEvent(eventType, updated)

	return updated, nil
}

// DeleteOrder удаляет заказ вместе с позициями. Списанный остаток товаров
// не восстанавливается.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if !deleted {
		return domain.ErrOrderNotFound
	}

	s.logger.WithField("order_id", id).Info("order deleted")

	return nil
}

func (s *Service) recordFailure(err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOrderFailed()
	if errors.Is(err, domain.ErrInsufficientStock) {
		s.metrics.RecordInsufficientStock()
	}
}

func (s *Service) publishEvent(eventType string, order domain.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(eventType, order); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   order.ID,
			"event_type": eventType,
		}).Warn("failed to publish order event")
	}
}
