package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// Service реализует прикладные сценарии работы с клиентами.
type Service struct {
	customers domain.CustomerRepository
	logger    *log.Entry
}

// NewService создаёт сервис клиентов.
func NewService(customers domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customer_service")
	}
	return &Service{
		customers: customers,
		logger:    logger,
	}
}

// CreateInput — данные нового клиента.
type CreateInput struct {
	Name     string
	Email    string
	Document string
}

// Create валидирует и сохраняет нового клиента. Email и документ уникальны.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Customer, error) {
	customer := domain.Customer{
		Name:      input.Name,
		Email:     input.Email,
		Document:  input.Document,
		CreatedAt: time.Now().UTC(),
	}

	if errs := customer.Validate(); len(errs) > 0 {
		return domain.Customer{}, errs[0]
	}

	if err := s.checkEmailFree(ctx, customer.Email); err != nil {
		return domain.Customer{}, err
	}
	if err := s.checkDocumentFree(ctx, customer.Document); err != nil {
		return domain.Customer{}, err
	}

	created, err := s.customers.Create(ctx, customer)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"customer_id": created.ID,
		"email":       created.Email,
	}).Info("customer created")

	return created, nil
}

// Get возвращает клиента по идентификатору.
func (s *Service) Get(ctx context.Context, id int64) (domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// List возвращает страницу клиентов и общее число подходящих записей.
func (s *Service) List(ctx context.Context, query domain.CustomerListQuery) ([]domain.Customer, int64, error) {
	return s.customers.List(ctx, query)
}

// UpdateInput — частичное обновление: nil-поле оставляет текущее значение.
type UpdateInput struct {
	Name     *string
	Email    *string
	Document *string
}

// Update применяет частичное обновление клиента. Уникальность email и
// документа перепроверяется, только если значение действительно меняется.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	if input.Email != nil && *input.Email != customer.Email {
		if err := s.checkEmailFree(ctx, *input.Email); err != nil {
			return domain.Customer{}, err
		}
		customer.Email = *input.Email
	}
	if input.Document != nil && *input.Document != customer.Document {
		if err := s.checkDocumentFree(ctx, *input.Document); err != nil {
			return domain.Customer{}, err
		}
		customer.Document = *input.Document
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}

	if errs := customer.Validate(); len(errs) > 0 {
		return domain.Customer{}, errs[0]
	}

	updated, err := s.customers.Update(ctx, customer)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	s.logger.WithField("customer_id", updated.ID).Info("customer updated")

	return updated, nil
}

// Delete удаляет клиента. Заказы клиента при этом не трогаются.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.customers.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if !deleted {
		return domain.ErrCustomerNotFound
	}

	s.logger.WithField("customer_id", id).Info("customer deleted")

	return nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string) error {
	if _, err := s.customers.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	return nil
}

func (s *Service) checkDocumentFree(ctx context.Context, document string) error {
	if _, err := s.customers.GetByDocument(ctx, document); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateDocument, document)
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return fmt.Errorf("check document uniqueness: %w", err)
	}
	return nil
}
