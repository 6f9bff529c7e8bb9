package http

import (
	"time"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type productResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Price     float64   `json:"price"`
	StockQty  int64     `json:"stock_qty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		StockQty:  p.StockQty,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type customerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Document  string    `json:"document"`
	CreatedAt time.Time `json:"created_at"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Document:  c.Document,
		CreatedAt: c.CreatedAt,
	}
}

type orderItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type orderResponse struct {
	ID          int64               `json:"id"`
	CustomerID  int64               `json:"customer_id"`
	TotalAmount float64             `json:"total_amount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []orderItemResponse `json:"items"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return orderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		Items:       items,
	}
}

// listResponse — страница выдачи с параметрами, по которым её запрашивали.
type listResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}
