package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type productRepository struct {
	q querier
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{q: store.DB()}
}

// productSortColumns — явный whitelist полей сортировки.
// Всё, чего здесь нет, откатывается к created_at.
var productSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"sku":        "sku",
	"price":      "price",
	"stock_qty":  "stock_qty",
	"is_active":  "is_active",
	"created_at": "created_at",
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, `
		INSERT INTO products (name, sku, price, stock_qty, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		product.Name, product.SKU, product.Price, product.StockQty, product.IsActive, product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU)
		}
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.scanOne(r.q.QueryRowContext(ctx, `
		SELECT id, name, sku, price, stock_qty, is_active, created_at
		FROM products
		WHERE id = $1
	`, id))
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.scanOne(r.q.QueryRowContext(ctx, `
		SELECT id, name, sku, price, stock_qty, is_active, created_at
		FROM products
		WHERE sku = $1
	`, sku))
}

// GetByIDs читает товары одним запросом. Внутри unit of work строки
// блокируются (FOR UPDATE): это защита от конкурентного пересписания
// остатка двумя одновременными заказами.
func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := r.q.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, sku, price, stock_qty, is_active, created_at
		FROM products
		WHERE id IN (%s)
		ORDER BY id
		FOR UPDATE
	`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return nil, fmt.Errorf("select products by ids: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, len(ids))
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.StockQty, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) List(ctx context.Context, query domain.ProductListQuery) ([]domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	where := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if query.Search != "" {
		args = append(args, "%"+query.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", n, n))
	}
	if query.IsActive != nil {
		args = append(args, *query.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, query.Limit, query.Offset)
	rows, err := r.q.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, sku, price, stock_qty, is_active, created_at
		FROM products%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderClause(productSortColumns, query.OrderBy, query.OrderDir), len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.StockQty, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET name = $1,
		    sku = $2,
		    price = $3,
		    stock_qty = $4,
		    is_active = $5
		WHERE id = $6
	`,
		product.Name, product.SKU, product.Price, product.StockQty, product.IsActive, product.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU)
		}
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *productRepository) scanOne(row *sql.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.StockQty, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

// orderClause строит ORDER BY по whitelist колонок: неизвестное поле
// откатывается к created_at, направление, отличное от desc, — к ASC.
func orderClause(columns map[string]string, orderBy, orderDir string) string {
	column, ok := columns[orderBy]
	if !ok {
		column = "created_at"
	}
	dir := "ASC"
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id %s", column, dir, dir)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// constraintName возвращает имя нарушенного ограничения уникальности.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

var _ domain.ProductRepository = (*productRepository)(nil)
