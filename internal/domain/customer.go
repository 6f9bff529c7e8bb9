package domain

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

const (
	cpfDigits  = 11
	cnpjDigits = 14
)

// Customer — клиент, оформляющий заказы.
type Customer struct {
	ID int64
	// Name — имя или наименование клиента.
	Name string
	// Email уникален среди клиентов.
	Email string
	// Document — CPF (11 цифр) или CNPJ (14 цифр), уникален среди клиентов.
	// Хранится как прислал клиент, сравнение формата идёт по очищенным цифрам.
	Document  string
	CreatedAt time.Time
}

// Validate проверяет бизнес-правила клиента и возвращает список замечаний.
func (c *Customer) Validate() []error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}

	switch {
	case strings.TrimSpace(c.Email) == "":
		errs = append(errs, ErrCustomerEmailRequired)
	case !emailPattern.MatchString(c.Email):
		errs = append(errs, ErrCustomerEmailInvalid)
	}

	switch {
	case strings.TrimSpace(c.Document) == "":
		errs = append(errs, ErrCustomerDocumentRequired)
	case !isValidDocument(c.Document):
		errs = append(errs, ErrCustomerDocumentInvalid)
	}

	return errs
}

// NormalizeDocument убирает из документа всё, кроме цифр.
func NormalizeDocument(document string) string {
	return nonDigitPattern.ReplaceAllString(document, "")
}

func isValidDocument(document string) bool {
	digits := len(NormalizeDocument(document))
	return digits == cpfDigits || digits == cnpjDigits
}
