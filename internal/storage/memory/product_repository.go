package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type productRepository struct {
	store *Store
}

func (r *productRepository) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.productSeq++
	product.ID = r.store.productSeq
	r.store.products[product.ID] = product
	return product, nil
}

func (r *productRepository) GetByID(_ context.Context, id int64) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *productRepository) GetBySKU(_ context.Context, sku string) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, product := range r.store.products {
		if product.SKU == sku {
			return product, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (r *productRepository) GetByIDs(_ context.Context, ids []int64) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.store.products[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

func (r *productRepository) List(_ context.Context, query domain.ProductListQuery) ([]domain.Product, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := make([]domain.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		if query.Search != "" &&
			!containsFold(product.Name, query.Search) &&
			!containsFold(product.SKU, query.Search) {
			continue
		}
		if query.IsActive != nil && product.IsActive != *query.IsActive {
			continue
		}
		filtered = append(filtered, product)
	}

	total := int64(len(filtered))
	sortProducts(filtered, query.OrderBy, descending(query.OrderDir))

	start, end := pageBounds(len(filtered), query.Offset, query.Limit)
	return filtered[start:end], total, nil
}

func (r *productRepository) Update(_ context.Context, product domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[product.ID]; !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	r.store.products[product.ID] = product
	return product, nil
}

func (r *productRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return false, nil
	}
	delete(r.store.products, id)
	return true, nil
}

// sortProducts сортирует по явно перечисленным полям; неизвестное поле
// откатывается к created_at. Вторичный ключ — ID для стабильного порядка.
func sortProducts(products []domain.Product, orderBy string, desc bool) {
	less := func(a, b domain.Product) bool {
		switch orderBy {
		case "id":
			return a.ID < b.ID
		case "name":
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case "sku":
			if a.SKU != b.SKU {
				return a.SKU < b.SKU
			}
		case "price":
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case "stock_qty":
			if a.StockQty != b.StockQty {
				return a.StockQty < b.StockQty
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

var _ domain.ProductRepository = (*productRepository)(nil)
