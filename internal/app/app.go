// Package app собирает сервис каталога: хранилище, сервисы, HTTP API,
// метрики и фоновые воркеры.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/health"
	"github.com/vladislavdragonenkov/catalog/internal/service/customer"
	"github.com/vladislavdragonenkov/catalog/internal/service/idempotency"
	"github.com/vladislavdragonenkov/catalog/internal/service/order"
	"github.com/vladislavdragonenkov/catalog/internal/service/product"
	transport "github.com/vladislavdragonenkov/catalog/internal/transport/http"
)

const (
	pingTimeout     = 3 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Run запускает сервис и блокируется до отмены ctx или фатальной ошибки
// HTTP-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	// Kafka опционален: без брокеров сервис работает, но событий не шлёт.
	producer, kafkaPublisher := initKafkaPublisher(cfg.KafkaBrokers, logger)
	var publisher domain.OrderEventPublisher
	if kafkaPublisher != nil {
		publisher = kafkaPublisher
	}

	productSvc := product.NewService(deps.Products, deps.Orders, logger.WithField("component", "product_service"))
	customerSvc := customer.NewService(deps.Customers, logger.WithField("component", "customer_service"))
	orderSvc := order.NewService(deps.UnitOfWork, deps.Orders, deps.Idempotency, publisher, logger.WithField("component", "order_service"))

	cleanupWorker := idempotency.NewCleanupWorker(deps.Idempotency,
		idempotency.WithLogger(logger.WithField("component", "idempotency_cleanup")),
	)
	go cleanupWorker.Run(ctx)

	router := transport.NewRouter(transport.RouterOptions{
		Products:  productSvc,
		Customers: customerSvc,
		Orders:    orderSvc,
		Health:    deps.Health,
		Logger:    logger.WithField("component", "http"),
	})

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, deps.Health)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		closeKafka(producer, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		closeKafka(producer, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", health.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
