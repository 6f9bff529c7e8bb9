package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/messaging/kafka"
)

// initKafkaPublisher создаёт publisher событий заказов, если задан список
// брокеров. Пустой brokers отключает публикацию: возвращается nil publisher.
func initKafkaPublisher(brokers string, logger *log.Entry) (*kafka.Producer, *kafka.OrderEventPublisher) {
	if brokers == "" {
		logger.Info("KAFKA_BROKERS не задан, события заказов публиковаться не будут")
		return nil, nil
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, nil
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer, kafka.NewOrderEventPublisher(producer)
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
