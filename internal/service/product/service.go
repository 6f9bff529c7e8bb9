package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

const defaultSearchLimit = 10

// Service реализует прикладные сценарии каталога товаров.
type Service struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	logger   *log.Entry
}

// NewService создаёт сервис каталога. orders нужен для защиты от удаления
// товара, на который ссылаются позиции заказов.
func NewService(products domain.ProductRepository, orders domain.OrderRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "product_service")
	}
	return &Service{
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// CreateInput — данные нового товара.
type CreateInput struct {
	Name     string
	SKU      string
	Price    float64
	StockQty int64
	IsActive bool
}

// Create валидирует и сохраняет новый товар. SKU должен быть уникален.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Product, error) {
	product := domain.Product{
		Name:      input.Name,
		SKU:       input.SKU,
		Price:     domain.Round2(input.Price),
		StockQty:  input.StockQty,
		IsActive:  input.IsActive,
		CreatedAt: time.Now().UTC(),
	}

	if errs := product.Validate(); len(errs) > 0 {
		return domain.Product{}, errs[0]
	}

	if _, err := s.products.GetBySKU(ctx, product.SKU); err == nil {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU)
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return domain.Product{}, fmt.Errorf("check sku uniqueness: %w", err)
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": created.ID,
		"sku":        created.SKU,
	}).Info("product created")

	return created, nil
}

// Get возвращает товар по идентификатору.
func (s *Service) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// List возвращает страницу товаров и общее число подходящих записей.
func (s *Service) List(ctx context.Context, query domain.ProductListQuery) ([]domain.Product, int64, error) {
	return s.products.List(ctx, query)
}

// Search ищет активные товары по подстроке имени или SKU.
// limit<=0 заменяется значением по умолчанию.
func (s *Service) Search(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	active := true
	products, _, err := s.products.List(ctx, domain.ProductListQuery{
		ListQuery: domain.ListQuery{
			Limit:  limit,
			Search: term,
		},
		IsActive: &active,
	})
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// UpdateInput — частичное обновление: nil-поле оставляет текущее значение.
type UpdateInput struct {
	Name     *string
	SKU      *string
	Price    *float64
	StockQty *int64
	IsActive *bool
}

// Update применяет частичное обновление товара. Новый SKU проверяется на
// уникальность, только если он действительно меняется.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if input.SKU != nil && *input.SKU != product.SKU {
		if _, err := s.products.GetBySKU(ctx, *input.SKU); err == nil {
			return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, *input.SKU)
		} else if !errors.Is(err, domain.ErrProductNotFound) {
			return domain.Product{}, fmt.Errorf("check sku uniqueness: %w", err)
		}
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = domain.Round2(*input.Price)
	}
	if input.StockQty != nil {
		product.StockQty = *input.StockQty
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if errs := product.Validate(); len(errs) > 0 {
		return domain.Product{}, errs[0]
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	s.logger.WithField("product_id", updated.ID).Info("product updated")

	return updated, nil
}

// Delete удаляет товар. Товар, на который ссылаются позиции заказов,
// удалить нельзя: вместо удаления его следует деактивировать.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.orders.CountItemsByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("count order items: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: referenced by %d order item(s), deactivate it instead", domain.ErrProductInUse, count)
	}

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return domain.ErrProductNotFound
	}

	s.logger.WithField("product_id", id).Info("product deleted")

	return nil
}
