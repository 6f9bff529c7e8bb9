package domain

import (
	"fmt"
	"strings"
	"time"
)

// Product — товар каталога.
type Product struct {
	// ID назначается хранилищем при первом сохранении.
	ID int64
	// Name — название товара.
	Name string
	// SKU — уникальный складской код товара.
	SKU string
	// Price — цена за единицу.
	Price float64
	// StockQty — текущий остаток на складе, никогда не уходит в минус.
	StockQty int64
	// IsActive управляет участием товара в продажах и поиске.
	IsActive bool
	// CreatedAt фиксирует момент создания записи.
	CreatedAt time.Time
}

// Validate проверяет бизнес-правила товара и возвращает список замечаний.
func (p *Product) Validate() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if strings.TrimSpace(p.SKU) == "" {
		errs = append(errs, ErrProductSKURequired)
	}
	if p.Price < 0 {
		errs = append(errs, ErrProductPriceNegative)
	}
	if p.StockQty < 0 {
		errs = append(errs, ErrProductStockNegative)
	}

	return errs
}

// HasSufficientStock сообщает, хватает ли остатка под запрошенное количество.
// Неактивный товар считается недоступным независимо от остатка.
func (p *Product) HasSufficientStock(qty int64) bool {
	return p.IsActive && p.StockQty >= qty
}

// ReduceStock списывает qty единиц с остатка.
// Возвращает ErrInsufficientStock с деталями, если остатка не хватает.
func (p *Product) ReduceStock(qty int64) error {
	if !p.HasSufficientStock(qty) {
		return fmt.Errorf(
			"%w for product %s: available %d, requested %d",
			ErrInsufficientStock, p.SKU, p.StockQty, qty,
		)
	}
	p.StockQty -= qty
	return nil
}
