package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/health"
	"github.com/vladislavdragonenkov/catalog/internal/service/idempotency"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
	"github.com/vladislavdragonenkov/catalog/internal/storage/postgres"
	"github.com/vladislavdragonenkov/catalog/internal/version"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Products    domain.ProductRepository
	Customers   domain.CustomerRepository
	Orders      domain.OrderRepository
	UnitOfWork  domain.UnitOfWork
	Idempotency *idempotency.Store
	Health      *health.Handler
	Logger      *log.Entry

	store *postgres.Store
}

// NewDependencies создаёт и инициализирует все зависимости приложения.
// При непустом PostgresDSN хранилище — PostgreSQL с применением миграций,
// иначе — in-memory (для разработки и демо).
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Idempotency: idempotency.NewStoreWithTTL(cfg.IdempotencyTTL),
		Health:      health.NewHandler(version.GetVersion()),
		Logger:      logger,
	}

	if cfg.PostgresDSN == "" {
		logger.Info("PostgresDSN не задан, используем in-memory хранилище")
		store := memory.NewStore()
		deps.Products = store.Products()
		deps.Customers = store.Customers()
		deps.Orders = store.Orders()
		deps.UnitOfWork = store.UnitOfWork()
		return deps, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("подключение к PostgreSQL установлено, миграции применены")

	deps.store = store
	deps.Products = postgres.NewProductRepository(store)
	deps.Customers = postgres.NewCustomerRepository(store)
	deps.Orders = postgres.NewOrderRepository(store)
	deps.UnitOfWork = postgres.NewUnitOfWork(store)
	deps.Health.RegisterChecker("postgres", health.NewSimpleChecker("postgres", func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return store.Ping(pingCtx)
	}))
	return deps, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
