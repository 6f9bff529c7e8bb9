package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

func TestIsBusinessError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "not found", err: domain.ErrProductNotFound, expected: true},
		{
			name:     "wrapped insufficient stock",
			err:      fmt.Errorf("%w for product X: available 1, requested 2", domain.ErrInsufficientStock),
			expected: true,
		},
		{name: "validation", err: domain.ErrItemQtyInvalid, expected: true},
		{name: "state transition", err: domain.ErrInvalidStateTransition, expected: true},
		{name: "unexpected", err: errors.New("connection refused"), expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.IsBusinessError(tc.err); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	joined := errors.Join(domain.ErrProductNameRequired, domain.ErrProductPriceNegative)
	if !domain.IsValidationError(joined) {
		t.Fatal("expected joined validation errors to be recognized")
	}
	if domain.IsValidationError(domain.ErrDuplicateSKU) {
		t.Fatal("duplicate sku is not a validation error")
	}
}

func TestIsNotFound(t *testing.T) {
	if !domain.IsNotFound(fmt.Errorf("customer 7: %w", domain.ErrCustomerNotFound)) {
		t.Fatal("expected wrapped customer not found to be recognized")
	}
	if domain.IsNotFound(domain.ErrDuplicateEmail) {
		t.Fatal("duplicate email is not a not-found error")
	}
}
