package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type unitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork создаёт unit of work поверх пула соединений хранилища.
// Каждый вызов Do открывает отдельную транзакцию и строит набор
// репозиториев, привязанных к ней.
func NewUnitOfWork(store *Store) domain.UnitOfWork {
	return &unitOfWork{db: store.DB()}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos domain.Repositories) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("commit transaction: %w", commitErr)
		}
	}()

	repos := domain.Repositories{
		Products:  &productRepository{q: tx},
		Customers: &customerRepository{q: tx},
		Orders:    &orderRepository{q: tx},
	}

	err = fn(repos)
	return err
}

var _ domain.UnitOfWork = (*unitOfWork)(nil)
