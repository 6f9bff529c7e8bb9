package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
)

func newOrder(customerID int64) domain.Order {
	order := domain.Order{
		CustomerID: customerID,
		Status:     domain.OrderStatusCreated,
		Items: []domain.OrderItem{
			{ProductID: 1, UnitPrice: 10.0, Quantity: 2},
			{ProductID: 2, UnitPrice: 15.5, Quantity: 3},
		},
		CreatedAt: time.Now().UTC(),
	}
	order.TotalAmount = order.TotalFromItems()
	return order
}

func TestOrderRepository_CreateAssignsItemIDs(t *testing.T) {
	repo := memory.NewStore().Orders()

	created, err := repo.Create(context.Background(), newOrder(1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned order id")
	}
	for _, item := range created.Items {
		if item.ID == 0 {
			t.Fatal("expected assigned item id")
		}
		if item.OrderID != created.ID {
			t.Fatalf("expected item bound to order %d, got %d", created.ID, item.OrderID)
		}
	}
}

func TestOrderRepository_GetLoadsItems(t *testing.T) {
	repo := memory.NewStore().Orders()
	created, err := repo.Create(context.Background(), newOrder(1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}
	// Порядок позиций сохраняется как в запросе.
	if stored.Items[0].ProductID != 1 || stored.Items[1].ProductID != 2 {
		t.Fatalf("unexpected item order: %v", stored.Items)
	}
}

func TestOrderRepository_List_Filters(t *testing.T) {
	repo := memory.NewStore().Orders()

	first, err := repo.Create(context.Background(), newOrder(1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(context.Background(), newOrder(2)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	paid := first
	if err := paid.MarkAsPaid(); err != nil {
		t.Fatalf("mark as paid failed: %v", err)
	}
	if _, err := repo.Update(context.Background(), paid); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	orders, total, err := repo.List(context.Background(), domain.OrderListQuery{
		ListQuery:  domain.ListQuery{Limit: 10},
		CustomerID: 1,
		Status:     string(domain.OrderStatusPaid),
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != first.ID {
		t.Fatalf("unexpected filter result: total=%d orders=%v", total, orders)
	}
}

func TestOrderRepository_UpdateDoesNotTouchItems(t *testing.T) {
	repo := memory.NewStore().Orders()
	created, err := repo.Create(context.Background(), newOrder(1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mutated := created
	mutated.Items = nil
	if err := mutated.MarkAsPaid(); err != nil {
		t.Fatalf("mark as paid failed: %v", err)
	}
	if _, err := repo.Update(context.Background(), mutated); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != domain.OrderStatusPaid {
		t.Fatalf("expected PAID, got %s", stored.Status)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected items preserved, got %d", len(stored.Items))
	}
}

func TestOrderRepository_DeleteCascadesItems(t *testing.T) {
	repo := memory.NewStore().Orders()
	created, err := repo.Create(context.Background(), newOrder(1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deleted, err := repo.Delete(context.Background(), created.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got %v %v", deleted, err)
	}

	if _, err := repo.GetByID(context.Background(), created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	count, err := repo.CountItemsByProduct(context.Background(), 1)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected items removed with order, got %d", count)
	}
}

func TestOrderRepository_CountItemsByProduct(t *testing.T) {
	repo := memory.NewStore().Orders()
	if _, err := repo.Create(context.Background(), newOrder(1)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(context.Background(), newOrder(2)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	count, err := repo.CountItemsByProduct(context.Background(), 1)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 references, got %d", count)
	}
}

func TestUnitOfWork_RollbackRestoresState(t *testing.T) {
	store := memory.NewStore()
	products := store.Products()

	created, err := products.Create(context.Background(), domain.Product{
		Name: "Digital Thermometer", SKU: "TERM-001", Price: 29.90, StockQty: 100, IsActive: true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	boom := errors.New("boom")
	err = store.UnitOfWork().Do(context.Background(), func(repos domain.Repositories) error {
		product, err := repos.Products.GetByID(context.Background(), created.ID)
		if err != nil {
			return err
		}
		if err := product.ReduceStock(40); err != nil {
			return err
		}
		if _, err := repos.Products.Update(context.Background(), product); err != nil {
			return err
		}
		if _, err := repos.Orders.Create(context.Background(), newOrder(1)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	// Списание остатка и вставка заказа откатились.
	product, err := products.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.StockQty != 100 {
		t.Fatalf("expected stock restored to 100, got %d", product.StockQty)
	}

	_, total, err := store.Orders().List(context.Background(), domain.OrderListQuery{ListQuery: domain.ListQuery{Limit: 10}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no orders after rollback, got %d", total)
	}
}

func TestUnitOfWork_CommitKeepsState(t *testing.T) {
	store := memory.NewStore()

	err := store.UnitOfWork().Do(context.Background(), func(repos domain.Repositories) error {
		_, err := repos.Orders.Create(context.Background(), newOrder(1))
		return err
	})
	if err != nil {
		t.Fatalf("unit of work failed: %v", err)
	}

	_, total, err := store.Orders().List(context.Background(), domain.OrderListQuery{ListQuery: domain.ListQuery{Limit: 10}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 order, got %d", total)
	}
}
