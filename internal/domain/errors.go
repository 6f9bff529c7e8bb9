package domain

import "errors"

var (
	// Ошибка пустого названия товара.
	ErrProductNameRequired = errors.New("product name cannot be empty")
	// Ошибка пустого SKU товара.
	ErrProductSKURequired = errors.New("product sku cannot be empty")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("product price cannot be negative")
	// Ошибка отрицательного остатка товара.
	ErrProductStockNegative = errors.New("product stock quantity cannot be negative")
	// Ошибка пустого имени клиента.
	ErrCustomerNameRequired = errors.New("customer name cannot be empty")
	// Ошибка пустого email клиента.
	ErrCustomerEmailRequired = errors.New("customer email cannot be empty")
	// Ошибка некорректного формата email.
	ErrCustomerEmailInvalid = errors.New("invalid email format")
	// Ошибка пустого документа клиента.
	ErrCustomerDocumentRequired = errors.New("customer document cannot be empty")
	// Ошибка некорректного документа: после очистки должно остаться 11 (CPF) или 14 (CNPJ) цифр.
	ErrCustomerDocumentInvalid = errors.New("invalid document format (must be CPF or CNPJ)")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must have at least one item")
	// Ошибка при некорректном количестве в позиции (<= 0).
	ErrItemQtyInvalid = errors.New("order item quantity must be greater than zero")
	// Ошибка отрицательной цены позиции.
	ErrItemPriceInvalid = errors.New("order item unit price cannot be negative")

	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrCustomerNotFound возвращается, если клиент не найден в репозитории.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")

	// ErrDuplicateSKU — нарушение уникальности SKU при создании/обновлении товара.
	ErrDuplicateSKU = errors.New("product with this sku already exists")
	// ErrDuplicateEmail — нарушение уникальности email клиента.
	ErrDuplicateEmail = errors.New("customer with this email already exists")
	// ErrDuplicateDocument — нарушение уникальности документа клиента.
	ErrDuplicateDocument = errors.New("customer with this document already exists")

	// ErrInsufficientStock — проверка остатка не прошла при формировании заказа.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductInUse — удаление товара заблокировано ссылками из позиций заказов.
	ErrProductInUse = errors.New("product is referenced by order items")
	// ErrInvalidStateTransition — недопустимый переход статуса заказа.
	ErrInvalidStateTransition = errors.New("invalid order state transition")
	// ErrInvalidStatus — неизвестный целевой статус заказа.
	ErrInvalidStatus = errors.New("invalid status")
)

// validationErrors перечисляет sentinel-ошибки уровня валидации сущностей.
var validationErrors = []error{
	ErrProductNameRequired,
	ErrProductSKURequired,
	ErrProductPriceNegative,
	ErrProductStockNegative,
	ErrCustomerNameRequired,
	ErrCustomerEmailRequired,
	ErrCustomerEmailInvalid,
	ErrCustomerDocumentRequired,
	ErrCustomerDocumentInvalid,
	ErrItemsRequired,
	ErrItemQtyInvalid,
	ErrItemPriceInvalid,
}

// businessErrors перечисляет все ошибки, восстановимые на границе запроса.
var businessErrors = append([]error{
	ErrProductNotFound,
	ErrCustomerNotFound,
	ErrOrderNotFound,
	ErrDuplicateSKU,
	ErrDuplicateEmail,
	ErrDuplicateDocument,
	ErrInsufficientStock,
	ErrProductInUse,
	ErrInvalidStateTransition,
	ErrInvalidStatus,
}, validationErrors...)

// IsValidationError проверяет, относится ли ошибка к валидации сущности.
func IsValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// IsBusinessError отделяет бизнес-ошибки от неожиданных сбоев.
// Бизнес-ошибку транспортный слой превращает в envelope с сообщением,
// всё остальное скрывается за generic "internal server error".
func IsBusinessError(err error) bool {
	for _, sentinel := range businessErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// IsNotFound проверяет, является ли ошибка отсутствием сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
