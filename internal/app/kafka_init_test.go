package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitKafkaPublisher_EmptyBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	producer, publisher := initKafkaPublisher("", logger)

	if producer != nil {
		t.Error("expected nil producer for empty brokers")
	}

	if publisher != nil {
		t.Error("expected nil publisher for empty brokers")
	}
}

func TestInitKafkaPublisher_UnreachableBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	// Несуществующий broker: сервис продолжает работу без Kafka.
	producer, publisher := initKafkaPublisher("invalid-broker:9999", logger)

	if producer != nil {
		t.Error("expected nil producer for unreachable brokers")
	}

	if publisher != nil {
		t.Error("expected nil publisher for unreachable brokers")
	}
}

func TestCloseKafka_NilProducer(t *testing.T) {
	logger := log.WithField("test", "kafka")

	// Не должно паниковать.
	closeKafka(nil, logger)
}
