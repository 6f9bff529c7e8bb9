package kafka

import (
	"strconv"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// OrderEventPublisher адаптирует Producer к доменному порту публикации событий.
type OrderEventPublisher struct {
	producer *Producer
}

// NewOrderEventPublisher создаёт адаптер публикации событий заказа.
func NewOrderEventPublisher(producer *Producer) *OrderEventPublisher {
	return &OrderEventPublisher{producer: producer}
}

// PublishOrderEvent публикует событие заказа в топик событий каталога.
// Ключом служит ID заказа, чтобы события одного заказа сохраняли порядок.
func (p *OrderEventPublisher) PublishOrderEvent(eventType string, order domain.Order) error {
	event := NewOrderEvent(eventType, order)
	return p.producer.PublishEvent(TopicOrderEvents, strconv.FormatInt(order.ID, 10), event)
}

var _ domain.OrderEventPublisher = (*OrderEventPublisher)(nil)
