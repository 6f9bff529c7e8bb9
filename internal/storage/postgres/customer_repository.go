package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type customerRepository struct {
	q querier
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{q: store.DB()}
}

var customerSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"document":   "document",
	"created_at": "created_at",
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, `
		INSERT INTO customers (name, email, document, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		customer.Name, customer.Email, customer.Document, customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		if uniqueErr := customerUniqueError(err, customer); uniqueErr != nil {
			return domain.Customer{}, uniqueErr
		}
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.scanOne(r.q.QueryRowContext(ctx, `
		SELECT id, name, email, document, created_at
		FROM customers
		WHERE id = $1
	`, id))
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.scanOne(r.q.QueryRowContext(ctx, `
		SELECT id, name, email, document, created_at
		FROM customers
		WHERE email = $1
	`, email))
}

func (r *customerRepository) GetByDocument(ctx context.Context, document string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.scanOne(r.q.QueryRowContext(ctx, `
		SELECT id, name, email, document, created_at
		FROM customers
		WHERE document = $1
	`, document))
}

func (r *customerRepository) List(ctx context.Context, query domain.CustomerListQuery) ([]domain.Customer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	whereClause := ""
	args := make([]any, 0, 3)
	if query.Search != "" {
		args = append(args, "%"+query.Search+"%")
		whereClause = " WHERE (name ILIKE $1 OR email ILIKE $1 OR document ILIKE $1)"
	}

	var total int64
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	args = append(args, query.Limit, query.Offset)
	rows, err := r.q.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, email, document, created_at
		FROM customers%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderClause(customerSortColumns, query.OrderBy, query.OrderDir), len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Document, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, total, nil
}

func (r *customerRepository) Update(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `
		UPDATE customers
		SET name = $1,
		    email = $2,
		    document = $3
		WHERE id = $4
	`,
		customer.Name, customer.Email, customer.Document, customer.ID,
	)
	if err != nil {
		if uniqueErr := customerUniqueError(err, customer); uniqueErr != nil {
			return domain.Customer{}, uniqueErr
		}
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Customer{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	return customer, nil
}

func (r *customerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *customerRepository) scanOne(row *sql.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Document, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return c, nil
}

// customerUniqueError различает нарушение уникальности email и документа
// по имени ограничения из ошибки PostgreSQL.
func customerUniqueError(err error, customer domain.Customer) error {
	if !isUniqueViolation(err) {
		return nil
	}
	if strings.Contains(constraintName(err), "document") {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateDocument, customer.Document)
	}
	return fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, customer.Email)
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
