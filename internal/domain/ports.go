package domain

// Типы событий жизненного цикла заказа.
const (
	OrderEventCreated   = "order.created"
	OrderEventPaid      = "order.paid"
	OrderEventCancelled = "order.cancelled"
)

// OrderEventPublisher публикует события жизненного цикла заказа во внешнюю шину.
// Публикация не участвует в транзакции заказа: её сбой логируется, но не
// откатывает уже зафиксированный заказ.
type OrderEventPublisher interface {
	PublishOrderEvent(eventType string, order Order) error
}
