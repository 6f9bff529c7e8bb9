package customer_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/customer"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "customer_service_test")
}

func newService(t *testing.T) *customer.Service {
	t.Helper()

	store := memory.NewStore()
	return customer.NewService(store.Customers(), loggerForTests())
}

func TestCreate(t *testing.T) {
	service := newService(t)

	created, err := service.Create(context.Background(), customer.CreateInput{
		Name:     "Joao Silva",
		Email:    "joao@example.com",
		Document: "529.982.247-25",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	// Документ сохраняется как прислан, с пунктуацией.
	require.Equal(t, "529.982.247-25", created.Document)
	require.False(t, created.CreatedAt.IsZero())
}

func TestCreate_ValidationErrors(t *testing.T) {
	service := newService(t)

	cases := []struct {
		name    string
		input   customer.CreateInput
		wantErr error
	}{
		{
			name:    "empty name",
			input:   customer.CreateInput{Email: "a@b.com", Document: "52998224725"},
			wantErr: domain.ErrCustomerNameRequired,
		},
		{
			name:    "empty email",
			input:   customer.CreateInput{Name: "Joao", Document: "52998224725"},
			wantErr: domain.ErrCustomerEmailRequired,
		},
		{
			name:    "invalid email",
			input:   customer.CreateInput{Name: "Joao", Email: "not-an-email", Document: "52998224725"},
			wantErr: domain.ErrCustomerEmailInvalid,
		},
		{
			name:    "empty document",
			input:   customer.CreateInput{Name: "Joao", Email: "a@b.com"},
			wantErr: domain.ErrCustomerDocumentRequired,
		},
		{
			name:    "document with wrong length",
			input:   customer.CreateInput{Name: "Joao", Email: "a@b.com", Document: "12345"},
			wantErr: domain.ErrCustomerDocumentInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tc.input)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreate_Uniqueness(t *testing.T) {
	service := newService(t)

	_, err := service.Create(context.Background(), customer.CreateInput{
		Name: "Joao", Email: "joao@example.com", Document: "52998224725",
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), customer.CreateInput{
		Name: "Outro Joao", Email: "joao@example.com", Document: "11144477735",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = service.Create(context.Background(), customer.CreateInput{
		Name: "Outro Joao", Email: "outro@example.com", Document: "52998224725",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateDocument)
}

func TestUpdate_Partial(t *testing.T) {
	service := newService(t)

	created, err := service.Create(context.Background(), customer.CreateInput{
		Name: "Joao", Email: "joao@example.com", Document: "52998224725",
	})
	require.NoError(t, err)
	other, err := service.Create(context.Background(), customer.CreateInput{
		Name: "Maria", Email: "maria@example.com", Document: "11144477735",
	})
	require.NoError(t, err)

	newName := "Joao Atualizado"
	updated, err := service.Update(context.Background(), created.ID, customer.UpdateInput{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Joao Atualizado", updated.Name)
	require.Equal(t, "joao@example.com", updated.Email)

	// Смена email на занятый отклоняется, на собственный — нет.
	taken := other.Email
	_, err = service.Update(context.Background(), created.ID, customer.UpdateInput{Email: &taken})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	same := "joao@example.com"
	_, err = service.Update(context.Background(), created.ID, customer.UpdateInput{Email: &same})
	require.NoError(t, err)

	takenDoc := other.Document
	_, err = service.Update(context.Background(), created.ID, customer.UpdateInput{Document: &takenDoc})
	require.ErrorIs(t, err, domain.ErrDuplicateDocument)

	badEmail := "broken"
	_, err = service.Update(context.Background(), created.ID, customer.UpdateInput{Email: &badEmail})
	require.ErrorIs(t, err, domain.ErrCustomerEmailInvalid)

	_, err = service.Update(context.Background(), 404, customer.UpdateInput{Name: &newName})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestDelete(t *testing.T) {
	service := newService(t)

	created, err := service.Create(context.Background(), customer.CreateInput{
		Name: "Joao", Email: "joao@example.com", Document: "52998224725",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	_, err = service.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	require.ErrorIs(t, service.Delete(context.Background(), created.ID), domain.ErrCustomerNotFound)
}

func TestList(t *testing.T) {
	service := newService(t)

	for _, input := range []customer.CreateInput{
		{Name: "Ana", Email: "ana@example.com", Document: "52998224725"},
		{Name: "Bruno", Email: "bruno@example.com", Document: "11144477735"},
	} {
		_, err := service.Create(context.Background(), input)
		require.NoError(t, err)
	}

	customers, total, err := service.List(context.Background(), domain.CustomerListQuery{
		ListQuery: domain.ListQuery{Limit: 1, OrderBy: "name"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, customers, 1)
	require.Equal(t, "Ana", customers[0].Name)
}
