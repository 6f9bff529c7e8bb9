package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type orderRepository struct {
	store *Store
}

func (r *orderRepository) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.orderSeq++
	order = cloneOrder(order)
	order.ID = r.store.orderSeq
	for i := range order.Items {
		r.store.itemSeq++
		order.Items[i].ID = r.store.itemSeq
		order.Items[i].OrderID = order.ID
	}
	r.store.orders[order.ID] = order
	return cloneOrder(order), nil
}

func (r *orderRepository) GetByID(_ context.Context, id int64) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *orderRepository) List(_ context.Context, query domain.OrderListQuery) ([]domain.Order, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := make([]domain.Order, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		if query.CustomerID != 0 && order.CustomerID != query.CustomerID {
			continue
		}
		if query.Status != "" && string(order.Status) != query.Status {
			continue
		}
		filtered = append(filtered, cloneOrder(order))
	}

	total := int64(len(filtered))
	sortOrders(filtered, query.OrderBy, descending(query.OrderDir))

	start, end := pageBounds(len(filtered), query.Offset, query.Limit)
	return filtered[start:end], total, nil
}

// Update перезаписывает статус и сумму; позиции после создания неизменны.
func (r *orderRepository) Update(_ context.Context, order domain.Order) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.orders[order.ID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	current.Status = order.Status
	current.TotalAmount = order.TotalAmount
	r.store.orders[order.ID] = current
	return cloneOrder(current), nil
}

// Delete удаляет заказ вместе с позициями (позиции встроены в запись заказа).
func (r *orderRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[id]; !ok {
		return false, nil
	}
	delete(r.store.orders, id)
	return true, nil
}

func (r *orderRepository) CountItemsByProduct(_ context.Context, productID int64) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, order := range r.store.orders {
		for i := range order.Items {
			if order.Items[i].ProductID == productID {
				count++
			}
		}
	}
	return count, nil
}

func sortOrders(orders []domain.Order, orderBy string, desc bool) {
	less := func(a, b domain.Order) bool {
		switch orderBy {
		case "id":
			return a.ID < b.ID
		case "customer_id":
			if a.CustomerID != b.CustomerID {
				return a.CustomerID < b.CustomerID
			}
		case "status":
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		case "total_amount":
			if a.TotalAmount != b.TotalAmount {
				return a.TotalAmount < b.TotalAmount
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if desc {
			return less(orders[j], orders[i])
		}
		return less(orders[i], orders[j])
	})
}

var _ domain.OrderRepository = (*orderRepository)(nil)
