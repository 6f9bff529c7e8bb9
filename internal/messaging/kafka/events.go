package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// Topics для Kafka
const (
	TopicOrderEvents = "catalog.order.events"
)

// OrderEvent представляет событие жизненного цикла заказа
type OrderEvent struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	OrderID     int64           `json:"order_id"`
	CustomerID  int64           `json:"customer_id"`
	Status      string          `json:"status"`
	TotalAmount float64         `json:"total_amount"`
	Items       []OrderItemData `json:"items,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// OrderItemData — позиция заказа в составе события
type OrderItemData struct {
	ProductID int64   `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// NewOrderEvent создает событие заказа с уникальным event_id
func NewOrderEvent(eventType string, order domain.Order) *OrderEvent {
	items := make([]OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemData{
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}

	return &OrderEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Items:       items,
		Timestamp:   time.Now().UTC(),
	}
}
