package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

func TestCustomerRepository_PostgresCreateGetUpdateDelete(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleCustomer("Joao Silva", "joao@example.com", "52998224725"))
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned customer ID")
	}

	byEmail, err := repo.GetByEmail(ctx, "joao@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("unexpected customer by email: %+v", byEmail)
	}

	byDocument, err := repo.GetByDocument(ctx, "52998224725")
	if err != nil {
		t.Fatalf("get by document: %v", err)
	}
	if byDocument.ID != created.ID {
		t.Fatalf("unexpected customer by document: %+v", byDocument)
	}

	created.Name = "Joao S. Atualizado"
	updated, err := repo.Update(ctx, created)
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if updated.Name != "Joao S. Atualizado" {
		t.Fatalf("unexpected customer after update: %+v", updated)
	}

	deleted, err := repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete customer: %v", err)
	}
	if !deleted {
		t.Fatal("expected customer to be deleted")
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound after delete, got %v", err)
	}
}

func TestCustomerRepository_PostgresUniqueViolations(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)
	ctx := context.Background()

	if _, err := repo.Create(ctx, sampleCustomer("Maria", "maria@example.com", "52998224725")); err != nil {
		t.Fatalf("create base customer: %v", err)
	}

	if _, err := repo.Create(ctx, sampleCustomer("Outra Maria", "maria@example.com", "11144477735")); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if _, err := repo.Create(ctx, sampleCustomer("Outra Maria", "outra@example.com", "52998224725")); !errors.Is(err, domain.ErrDuplicateDocument) {
		t.Fatalf("expected ErrDuplicateDocument, got %v", err)
	}
}

func TestCustomerRepository_PostgresListAndSearch(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)
	ctx := context.Background()

	fixtures := []domain.Customer{
		sampleCustomer("Ana Costa", "ana@example.com", "11144477735"),
		sampleCustomer("Bruno Lima", "bruno@example.com", "52998224725"),
		sampleCustomer("Carla Souza", "carla@shop.example.com", "04252011000110"),
	}
	for _, c := range fixtures {
		if _, err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create customer %s: %v", c.Email, err)
		}
	}

	items, total, err := repo.List(ctx, domain.CustomerListQuery{
		ListQuery: domain.ListQuery{Limit: 10, Search: "SHOP.EXAMPLE"},
	})
	if err != nil {
		t.Fatalf("search customers: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "Carla Souza" {
		t.Fatalf("unexpected search result: total=%d items=%+v", total, items)
	}

	items, total, err = repo.List(ctx, domain.CustomerListQuery{
		ListQuery: domain.ListQuery{Limit: 2, OrderBy: "name", OrderDir: "desc"},
	})
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("unexpected page: total=%d len=%d", total, len(items))
	}
	if items[0].Name != "Carla Souza" || items[1].Name != "Bruno Lima" {
		t.Fatalf("unexpected name order: %+v", items)
	}
}

func sampleCustomer(name, email, document string) domain.Customer {
	return domain.Customer{
		Name:      name,
		Email:     email,
		Document:  document,
		CreatedAt: time.Now().UTC().Round(time.Microsecond),
	}
}
