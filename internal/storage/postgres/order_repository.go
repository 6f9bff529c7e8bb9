package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type orderRepository struct {
	q querier
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
// Атомарность вставки заказа с позициями обеспечивает unit of work:
// создание заказа выполняется внутри его транзакции.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{q: store.DB()}
}

var orderSortColumns = map[string]string{
	"id":           "id",
	"customer_id":  "customer_id",
	"status":       "status",
	"total_amount": "total_amount",
	"created_at":   "created_at",
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		order.CustomerID, string(order.Status), order.TotalAmount, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		// line_total персистится для аудита, хотя всегда выводим из цены и количества.
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, unit_price, quantity, line_total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			item.OrderID, item.ProductID, item.UnitPrice, item.Quantity, item.LineTotal(),
		).Scan(&item.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order item: %w", err)
		}
	}

	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	var status string
	err := r.q.QueryRowContext(ctx, `
		SELECT id, customer_id, status, total_amount, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &status, &order.TotalAmount, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) List(ctx context.Context, query domain.OrderListQuery) ([]domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if query.CustomerID != 0 {
		args = append(args, query.CustomerID)
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if query.Status != "" {
		args = append(args, query.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, query.Limit, query.Offset)
	rows, err := r.q.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, customer_id, status, total_amount, created_at
		FROM orders%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderClause(orderSortColumns, query.OrderBy, query.OrderDir), len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		var status string
		if err := rows.Scan(&order.ID, &order.CustomerID, &status, &order.TotalAmount, &order.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	// Позиции подтягиваются к каждому заказу страницы.
	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Items = items
	}

	return orders, total, nil
}

func (r *orderRepository) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    total_amount = $2
		WHERE id = $3
	`,
		string(order.Status), order.TotalAmount, order.ID,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Order{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	return order, nil
}

// Delete удаляет заказ; позиции уходят каскадом (FK ON DELETE CASCADE).
func (r *orderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *orderRepository) CountItemsByProduct(ctx context.Context, productID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var count int64
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM order_items
		WHERE product_id = $1
	`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count order items by product: %w", err)
	}
	return count, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, order_id, product_id, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
