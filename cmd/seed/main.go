// Команда seed наполняет каталог демонстрационными товарами и клиентами.
// Данные проходят через сервисный слой, поэтому повторный запуск безопасен:
// существующие записи пропускаются.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/customer"
	"github.com/vladislavdragonenkov/catalog/internal/service/product"
	"github.com/vladislavdragonenkov/catalog/internal/storage/postgres"
)

const defaultTimeout = 60 * time.Second

var seedProducts = []product.CreateInput{
	{Name: "Termômetro Digital", SKU: "TERM-001", Price: 29.90, StockQty: 150, IsActive: true},
	{Name: "Medidor de Pressão Arterial", SKU: "MED-001", Price: 89.90, StockQty: 75, IsActive: true},
	{Name: "Oxímetro de Pulso", SKU: "OXI-001", Price: 119.90, StockQty: 60, IsActive: true},
	{Name: "Estetoscópio Profissional", SKU: "ESTE-001", Price: 159.90, StockQty: 40, IsActive: true},
	{Name: "Luva de Procedimento (Caixa)", SKU: "LUV-001", Price: 24.90, StockQty: 300, IsActive: true},
	{Name: "Máscara Cirúrgica (Pacote 50un)", SKU: "MASC-001", Price: 19.90, StockQty: 500, IsActive: true},
	{Name: "Álcool em Gel 70% (500ml)", SKU: "ALC-001", Price: 12.90, StockQty: 200, IsActive: true},
	{Name: "Seringa Descartável 5ml (Pacote)", SKU: "SER-001", Price: 8.90, StockQty: 250, IsActive: true},
	{Name: "Atadura de Crepom (Pacote 12un)", SKU: "ATAD-001", Price: 15.90, StockQty: 180, IsActive: true},
	{Name: "Gaze Estéril (Pacote 10un)", SKU: "GAZE-001", Price: 6.90, StockQty: 400, IsActive: true},
	{Name: "Micropore 2,5cm x 10m", SKU: "MICRO-001", Price: 4.90, StockQty: 350, IsActive: true},
	{Name: "Algodão Hidrófilo (500g)", SKU: "ALG-001", Price: 9.90, StockQty: 220, IsActive: true},
	{Name: "Compressa de Gaze (Pacote 500un)", SKU: "COMP-001", Price: 45.90, StockQty: 100, IsActive: true},
	{Name: "Nebulizador Portátil", SKU: "NEB-001", Price: 179.90, StockQty: 35, IsActive: true},
	{Name: "Glicosímetro Digital", SKU: "GLIC-001", Price: 79.90, StockQty: 55, IsActive: true},
	{Name: "Tiras de Glicose (Caixa 50un)", SKU: "TIRA-001", Price: 89.90, StockQty: 80, IsActive: true},
	{Name: "Lancetas para Glicose (Caixa 100un)", SKU: "LANC-001", Price: 18.90, StockQty: 150, IsActive: true},
	{Name: "Bolsa Térmica Grande", SKU: "BOLS-001", Price: 34.90, StockQty: 90, IsActive: true},
	{Name: "Kit Primeiros Socorros", SKU: "KIT-001", Price: 129.90, StockQty: 45, IsActive: true},
	{Name: "Touca Descartável (Pacote 100un)", SKU: "TOUC-001", Price: 22.90, StockQty: 280, IsActive: true},
}

var seedCustomers = []customer.CreateInput{
	{Name: "Maria Silva Santos", Email: "maria.silva@email.com", Document: "12345678901"},
	{Name: "João Pedro Oliveira", Email: "joao.pedro@email.com", Document: "23456789012"},
	{Name: "Ana Paula Costa", Email: "ana.costa@email.com", Document: "34567890123"},
	{Name: "Carlos Eduardo Souza", Email: "carlos.souza@email.com", Document: "45678901234"},
	{Name: "Fernanda Lima Rocha", Email: "fernanda.lima@email.com", Document: "56789012345"},
	{Name: "Roberto Carlos Alves", Email: "roberto.alves@email.com", Document: "67890123456"},
	{Name: "Juliana Martins Pereira", Email: "juliana.martins@email.com", Document: "78901234567"},
	{Name: "Ricardo Mendes Barbosa", Email: "ricardo.mendes@email.com", Document: "89012345678"},
	{Name: "Patricia Fernandes Dias", Email: "patricia.dias@email.com", Document: "90123456789"},
	{Name: "Hospital Boa Saúde LTDA", Email: "contato@boasaude.com.br", Document: "12345678000190"},
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger := log.WithField("component", "seed")

	var dsn string
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: CATALOG_POSTGRES_DSN)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("CATALOG_POSTGRES_DSN"))
	}
	if dsn == "" {
		logger.Fatal("CATALOG_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		logger.WithError(err).Fatal("open postgres store")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Fatal("ensure schema")
	}

	productSvc := product.NewService(postgres.NewProductRepository(store), postgres.NewOrderRepository(store), logger)
	customerSvc := customer.NewService(postgres.NewCustomerRepository(store), logger)

	created := 0
	for _, input := range seedProducts {
		if _, err := productSvc.Create(ctx, input); err != nil {
			if errors.Is(err, domain.ErrDuplicateSKU) {
				logger.WithField("sku", input.SKU).Warn("product already exists, skipping")
				continue
			}
			logger.WithError(err).WithField("sku", input.SKU).Fatal("create product")
		}
		created++
	}
	logger.WithField("created", created).Info("products seeded")

	created = 0
	for _, input := range seedCustomers {
		if _, err := customerSvc.Create(ctx, input); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateDocument) {
				logger.WithField("email", input.Email).Warn("customer already exists, skipping")
				continue
			}
			logger.WithError(err).WithField("email", input.Email).Fatal("create customer")
		}
		created++
	}
	logger.WithField("created", created).Info("customers seeded")

	logger.Info("seeding completed")
}
