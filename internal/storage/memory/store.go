package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// Store — in-memory хранилище каталога для локальной разработки и тестов.
// Все репозитории делят один RWMutex, "транзакция" unit of work сериализует
// писателей и восстанавливает снимок состояния при ошибке.
type Store struct {
	mu sync.RWMutex
	// txMu сериализует конкурентные unit of work.
	txMu sync.Mutex

	products  map[int64]domain.Product
	customers map[int64]domain.Customer
	orders    map[int64]domain.Order

	productSeq  int64
	customerSeq int64
	orderSeq    int64
	itemSeq     int64
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		products:  make(map[int64]domain.Product),
		customers: make(map[int64]domain.Customer),
		orders:    make(map[int64]domain.Order),
	}
}

// Products возвращает репозиторий товаров поверх этого хранилища.
func (s *Store) Products() domain.ProductRepository {
	return &productRepository{store: s}
}

// Customers возвращает репозиторий клиентов поверх этого хранилища.
func (s *Store) Customers() domain.CustomerRepository {
	return &customerRepository{store: s}
}

// Orders возвращает репозиторий заказов поверх этого хранилища.
func (s *Store) Orders() domain.OrderRepository {
	return &orderRepository{store: s}
}

// UnitOfWork возвращает транзакционную обёртку поверх этого хранилища.
func (s *Store) UnitOfWork() domain.UnitOfWork {
	return &unitOfWork{store: s}
}

type unitOfWork struct {
	store *Store
}

// Do выполняет fn, откатывая все изменения хранилища при ошибке или панике.
func (u *unitOfWork) Do(ctx context.Context, fn func(repos domain.Repositories) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()

	snapshot := u.store.snapshot()

	defer func() {
		if r := recover(); r != nil {
			u.store.restore(snapshot)
			panic(r)
		}
		if err != nil {
			u.store.restore(snapshot)
		}
	}()

	repos := domain.Repositories{
		Products:  u.store.Products(),
		Customers: u.store.Customers(),
		Orders:    u.store.Orders(),
	}

	return fn(repos)
}

type storeSnapshot struct {
	products  map[int64]domain.Product
	customers map[int64]domain.Customer
	orders    map[int64]domain.Order

	productSeq  int64
	customerSeq int64
	orderSeq    int64
	itemSeq     int64
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := storeSnapshot{
		products:    make(map[int64]domain.Product, len(s.products)),
		customers:   make(map[int64]domain.Customer, len(s.customers)),
		orders:      make(map[int64]domain.Order, len(s.orders)),
		productSeq:  s.productSeq,
		customerSeq: s.customerSeq,
		orderSeq:    s.orderSeq,
		itemSeq:     s.itemSeq,
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, c := range s.customers {
		snap.customers[id] = c
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.customers = snap.customers
	s.orders = snap.orders
	s.productSeq = snap.productSeq
	s.customerSeq = snap.customerSeq
	s.orderSeq = snap.orderSeq
	s.itemSeq = snap.itemSeq
}

// cloneOrder копирует заказ вместе со срезом позиций.
func cloneOrder(o domain.Order) domain.Order {
	clone := o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return clone
}

// containsFold — подстрочный поиск без учёта регистра.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// descending трактует любое значение, кроме "desc", как восходящий порядок.
func descending(orderDir string) bool {
	return strings.EqualFold(strings.TrimSpace(orderDir), "desc")
}

// pageBounds ограничивает offset/limit размерами выборки.
func pageBounds(total, offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return offset, end
}
