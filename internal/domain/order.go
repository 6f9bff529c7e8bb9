package domain

import (
	"fmt"
	"math"
	"time"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusCreated — заказ создан, остаток уже списан, оплата не подтверждена.
	OrderStatusCreated OrderStatus = "CREATED"
	// OrderStatusPaid — оплата подтверждена; терминальный статус.
	OrderStatusPaid OrderStatus = "PAID"
	// OrderStatusCancelled — заказ отменён до оплаты; терминальный статус.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusPaid, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderItem представляет одну позицию заказа.
// Позиция принадлежит заказу монопольно и удаляется вместе с ним.
type OrderItem struct {
	ID int64
	// OrderID — заказ-владелец.
	OrderID int64
	// ProductID — ссылка на товар каталога.
	ProductID int64
	// UnitPrice — снимок цены товара на момент оформления заказа.
	UnitPrice float64
	// Quantity — количество единиц, всегда > 0.
	Quantity int64
}

// LineTotal — сумма позиции: round(unit_price * quantity, 2).
func (i *OrderItem) LineTotal() float64 {
	return Round2(i.UnitPrice * float64(i.Quantity))
}

// Validate проверяет бизнес-правила позиции.
func (i *OrderItem) Validate() []error {
	var errs []error

	if i.Quantity <= 0 {
		errs = append(errs, ErrItemQtyInvalid)
	}
	if i.UnitPrice < 0 {
		errs = append(errs, ErrItemPriceInvalid)
	}

	return errs
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	// Items — позиции в порядке, заданном клиентом при оформлении.
	Items []OrderItem
	// TotalAmount всегда пересчитывается из позиций, не задаётся извне.
	TotalAmount float64
	CreatedAt   time.Time
}

// TotalFromItems пересчитывает сумму заказа из позиций: round(sum(line_total), 2).
func (o *Order) TotalFromItems() float64 {
	var sum float64
	for i := range o.Items {
		sum += o.Items[i].LineTotal()
	}
	return Round2(sum)
}

// Validate проверяет бизнес-правила заказа и всех его позиций.
func (o *Order) Validate() []error {
	var errs []error

	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	for i := range o.Items {
		errs = append(errs, o.Items[i].Validate()...)
	}

	return errs
}

// MarkAsPaid переводит заказ в PAID. Допустим только из CREATED.
func (o *Order) MarkAsPaid() error {
	if o.Status != OrderStatusCreated {
		return fmt.Errorf("%w: cannot mark as paid from status %s", ErrInvalidStateTransition, o.Status)
	}
	o.Status = OrderStatusPaid
	return nil
}

// Cancel переводит заказ в CANCELLED. Оплаченный заказ отменить нельзя.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return fmt.Errorf("%w: order is already cancelled", ErrInvalidStateTransition)
	}
	if o.Status == OrderStatusPaid {
		return fmt.Errorf("%w: cannot cancel a paid order", ErrInvalidStateTransition)
	}
	o.Status = OrderStatusCancelled
	return nil
}

// Round2 округляет денежную величину до двух знаков после запятой.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
