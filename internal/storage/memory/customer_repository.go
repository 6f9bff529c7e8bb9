package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type customerRepository struct {
	store *Store
}

func (r *customerRepository) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.customerSeq++
	customer.ID = r.store.customerSeq
	r.store.customers[customer.ID] = customer
	return customer, nil
}

func (r *customerRepository) GetByID(_ context.Context, id int64) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepository) GetByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		if customer.Email == email {
			return customer, nil
		}
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}

func (r *customerRepository) GetByDocument(_ context.Context, document string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		if customer.Document == document {
			return customer, nil
		}
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}

func (r *customerRepository) List(_ context.Context, query domain.CustomerListQuery) ([]domain.Customer, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := make([]domain.Customer, 0, len(r.store.customers))
	for _, customer := range r.store.customers {
		if query.Search != "" &&
			!containsFold(customer.Name, query.Search) &&
			!containsFold(customer.Email, query.Search) &&
			!containsFold(customer.Document, query.Search) {
			continue
		}
		filtered = append(filtered, customer)
	}

	total := int64(len(filtered))
	sortCustomers(filtered, query.OrderBy, descending(query.OrderDir))

	start, end := pageBounds(len(filtered), query.Offset, query.Limit)
	return filtered[start:end], total, nil
}

func (r *customerRepository) Update(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[customer.ID]; !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	r.store.customers[customer.ID] = customer
	return customer, nil
}

func (r *customerRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[id]; !ok {
		return false, nil
	}
	delete(r.store.customers, id)
	return true, nil
}

func sortCustomers(customers []domain.Customer, orderBy string, desc bool) {
	less := func(a, b domain.Customer) bool {
		switch orderBy {
		case "id":
			return a.ID < b.ID
		case "name":
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case "email":
			if a.Email != b.Email {
				return a.Email < b.Email
			}
		case "document":
			if a.Document != b.Document {
				return a.Document < b.Document
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	}

	sort.SliceStable(customers, func(i, j int) bool {
		if desc {
			return less(customers[j], customers[i])
		}
		return less(customers[i], customers[j])
	})
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
