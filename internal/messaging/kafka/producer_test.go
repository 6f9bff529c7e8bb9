package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

func sampleEventOrder() domain.Order {
	return domain.Order{
		ID:         10,
		CustomerID: 3,
		Status:     domain.OrderStatusCreated,
		Items: []domain.OrderItem{
			{ProductID: 1, UnitPrice: 10.5, Quantity: 2},
		},
		TotalAmount: 21,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		sync:   mockProducer,
		logger: log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndSucceed()

	event := NewOrderEvent(domain.OrderEventCreated, sampleEventOrder())

	if err := producer.PublishEvent(TopicOrderEvents, "10", event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		sync:   mockProducer,
		logger: log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	event := NewOrderEvent(domain.OrderEventCreated, sampleEventOrder())

	if err := producer.PublishEvent(TopicOrderEvents, "10", event); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderEvent(t *testing.T) {
	order := sampleEventOrder()

	event := NewOrderEvent(domain.OrderEventPaid, order)

	if event.EventType != domain.OrderEventPaid {
		t.Errorf("expected event type %s, got %s", domain.OrderEventPaid, event.EventType)
	}
	if event.EventID == "" {
		t.Error("event id should not be empty")
	}
	if event.OrderID != order.ID {
		t.Errorf("expected order id %d, got %d", order.ID, event.OrderID)
	}
	if event.CustomerID != order.CustomerID {
		t.Errorf("expected customer id %d, got %d", order.CustomerID, event.CustomerID)
	}
	if event.Status != string(order.Status) {
		t.Errorf("expected status %s, got %s", order.Status, event.Status)
	}
	if len(event.Items) != 1 || event.Items[0].LineTotal != 21 {
		t.Errorf("unexpected items payload: %+v", event.Items)
	}
	if event.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}
	if time.Since(event.Timestamp) > time.Second {
		t.Error("timestamp should be close to current time")
	}

	second := NewOrderEvent(domain.OrderEventPaid, order)
	if second.EventID == event.EventID {
		t.Error("event ids must be unique per event")
	}
}

func TestOrderEventPublisher_PublishOrderEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		sync:   mockProducer,
		logger: log.WithField("component", "kafka-producer-test"),
	}
	publisher := NewOrderEventPublisher(producer)

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.EventType != domain.OrderEventCreated {
			t.Errorf("unexpected event type: %s", event.EventType)
		}
		if event.OrderID != 10 {
			t.Errorf("unexpected order id: %d", event.OrderID)
		}
		return nil
	})

	if err := publisher.PublishOrderEvent(domain.OrderEventCreated, sampleEventOrder()); err != nil {
		t.Fatalf("publish order event: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
