// Package http реализует HTTP-границу сервиса каталога: маршрутизацию,
// envelope-формат ответов и разбор параметров запросов.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/health"
	"github.com/vladislavdragonenkov/catalog/internal/service/customer"
	"github.com/vladislavdragonenkov/catalog/internal/service/order"
	"github.com/vladislavdragonenkov/catalog/internal/service/product"
)

const defaultRequestTimeout = 30 * time.Second

// RouterOptions — зависимости HTTP-слоя.
type RouterOptions struct {
	Products  *product.Service
	Customers *customer.Service
	Orders    *order.Service
	Health    *health.Handler
	Logger    *log.Entry
}

// NewRouter собирает chi-роутер со всеми маршрутами API и служебными
// эндпоинтами.
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))
	r.Use(requestLogger(logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", newProductHandler(opts.Products, logger).routes)
		r.Route("/customers", newCustomerHandler(opts.Customers, logger).routes)
		r.Route("/orders", newOrderHandler(opts.Orders, logger).routes)
	})

	if opts.Health != nil {
		r.Get("/healthz", opts.Health.ServeHTTP)
		r.Get("/readyz", opts.Health.ReadinessHandler)
	}
	r.Get("/livez", health.LivenessHandler)

	return r
}
