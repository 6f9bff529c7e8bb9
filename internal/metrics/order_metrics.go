package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики оформления заказов.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated     prometheus.Counter
	ordersReplayed    prometheus.Counter
	ordersPaid        prometheus.Counter
	ordersCancelled   prometheus.Counter
	ordersFailed      prometheus.Counter
	insufficientStock prometheus.Counter

	// Гистограммы времени выполнения
	createDuration prometheus.Histogram
	opDuration     *prometheus.HistogramVec

	// Gauge для заказов в обработке
	inFlightOrders prometheus.Gauge
}

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersReplayed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_orders_replayed_total",
			Help: "Total number of order creations answered from an idempotency key",
		}),
		ordersPaid: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_orders_paid_total",
			Help: "Total number of orders marked as paid",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_orders_cancelled_total",
			Help: "Total number of orders cancelled",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_orders_failed_total",
			Help: "Total number of order creations that failed",
		}),
		insufficientStock: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_orders_insufficient_stock_total",
			Help: "Total number of order creations rejected for insufficient stock",
		}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "catalog_order_create_duration_seconds",
			Help:    "Duration of order creation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "catalog_order_operation_duration_seconds",
			Help:    "Duration of individual order operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		inFlightOrders: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "catalog_orders_in_flight",
			Help: "Number of order creations currently in progress",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderReplayed увеличивает счётчик идемпотентных повторов.
func (m *OrderMetrics) RecordOrderReplayed() {
	m.ordersReplayed.Inc()
}

// RecordOrderPaid увеличивает счётчик оплаченных заказов.
func (m *OrderMetrics) RecordOrderPaid() {
	m.ordersPaid.Inc()
}

// RecordOrderCancelled увеличивает счётчик отменённых заказов.
func (m *OrderMetrics) RecordOrderCancelled() {
	m.ordersCancelled.Inc()
}

// RecordOrderFailed увеличивает счётчик неудачных оформлений.
func (m *OrderMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordInsufficientStock увеличивает счётчик отказов из-за нехватки остатка.
func (m *OrderMetrics) RecordInsufficientStock() {
	m.insufficientStock.Inc()
}

// RecordCreateDuration записывает время оформления заказа.
func (m *OrderMetrics) RecordCreateDuration(duration time.Duration) {
	m.createDuration.Observe(duration.Seconds())
}

// RecordOperationDuration записывает время выполнения операции с заказом.
func (m *OrderMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.opDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordOrderInFlightStarted увеличивает число заказов в обработке.
func (m *OrderMetrics) RecordOrderInFlightStarted() {
	m.inFlightOrders.Inc()
}

// RecordOrderInFlightFinished уменьшает число заказов в обработке.
func (m *OrderMetrics) RecordOrderInFlightFinished() {
	m.inFlightOrders.Dec()
}
