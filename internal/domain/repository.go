package domain

import "context"

// ListQuery — общие параметры постраничной выборки.
// Search — подстрочный поиск без учёта регистра по текстовым полям сущности.
// Неизвестный OrderBy откатывается к created_at; OrderDir, отличный от
// "desc" (без учёта регистра), трактуется как восходящий порядок.
type ListQuery struct {
	Offset   int
	Limit    int
	Search   string
	OrderBy  string
	OrderDir string
}

// ProductListQuery — выборка товаров с фильтром по активности.
type ProductListQuery struct {
	ListQuery
	IsActive *bool
}

// CustomerListQuery — выборка клиентов.
type CustomerListQuery struct {
	ListQuery
}

// OrderListQuery — выборка заказов с фильтрами по клиенту и статусу.
type OrderListQuery struct {
	ListQuery
	CustomerID int64
	Status     string
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет новый товар и возвращает его с назначенным ID.
	Create(ctx context.Context, product Product) (Product, error)
	// GetByID возвращает товар или ErrProductNotFound.
	GetByID(ctx context.Context, id int64) (Product, error)
	// GetBySKU возвращает товар по уникальному SKU или ErrProductNotFound.
	GetBySKU(ctx context.Context, sku string) (Product, error)
	// GetByIDs возвращает товары по списку идентификаторов одним запросом.
	// Отсутствующие ID молча пропускаются.
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
	// List возвращает страницу товаров и общее число подходящих записей.
	List(ctx context.Context, query ProductListQuery) ([]Product, int64, error)
	// Update перезаписывает товар. Возвращает ErrProductNotFound, если записи нет.
	Update(ctx context.Context, product Product) (Product, error)
	// Delete возвращает true, если запись была удалена, и false, если её не было.
	Delete(ctx context.Context, id int64) (bool, error)
}

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	Create(ctx context.Context, customer Customer) (Customer, error)
	GetByID(ctx context.Context, id int64) (Customer, error)
	// GetByEmail возвращает клиента по уникальному email или ErrCustomerNotFound.
	GetByEmail(ctx context.Context, email string) (Customer, error)
	// GetByDocument возвращает клиента по уникальному документу или ErrCustomerNotFound.
	GetByDocument(ctx context.Context, document string) (Customer, error)
	List(ctx context.Context, query CustomerListQuery) ([]Customer, int64, error)
	Update(ctx context.Context, customer Customer) (Customer, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// OrderRepository описывает требования к хранилищу заказов.
// Каждое чтение заказа подтягивает его позиции; удаление заказа каскадно
// удаляет позиции.
type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями и возвращает назначенные ID.
	Create(ctx context.Context, order Order) (Order, error)
	GetByID(ctx context.Context, id int64) (Order, error)
	List(ctx context.Context, query OrderListQuery) ([]Order, int64, error)
	// Update перезаписывает статус и сумму заказа (позиции неизменны после создания).
	Update(ctx context.Context, order Order) (Order, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// CountItemsByProduct считает позиции заказов, ссылающиеся на товар.
	CountItemsByProduct(ctx context.Context, productID int64) (int64, error)
}

// Repositories — набор репозиториев, привязанных к одной единице работы.
type Repositories struct {
	Products  ProductRepository
	Customers CustomerRepository
	Orders    OrderRepository
}

// UnitOfWork выполняет fn в рамках одной транзакции.
// Ошибка или паника внутри fn приводит к полному откату; успешный возврат —
// к фиксации. Репозитории из аргумента fn действительны только внутри вызова.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
