package partner

import (
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/erp/pdv/internal/domain/shared"
)

// Customer is a buyer the store may extend credit to
type Customer struct {
	shared.BaseAggregateRoot
	Name    string
	CPF     string
	Email   string
	Phone   string
	Address string
}

// CustomerInput carries the editable fields of a customer
type CustomerInput struct {
	Name    string
	CPF     string
	Email   string
	Phone   string
	Address string
}

// NewCustomer creates a new customer
func NewCustomer(in CustomerInput) (*Customer, error) {
	if err := validateCustomerInput(in); err != nil {
		return nil, err
	}
	c := &Customer{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	c.assign(in)
	return c, nil
}

// Update replaces the customer's contact data
func (c *Customer) Update(in CustomerInput) error {
	if err := validateCustomerInput(in); err != nil {
		return err
	}
	c.assign(in)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

func (c *Customer) assign(in CustomerInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.CPF = normalizeCPF(in.CPF)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
}

func validateCustomerInput(in CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return shared.NewValidationError("Customer name cannot be empty")
	}
	if cpf := normalizeCPF(in.CPF); cpf != "" && len(cpf) != 11 {
		return shared.NewValidationError("CPF must have 11 digits")
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewValidationError("Invalid email address")
		}
	}
	return nil
}

// normalizeCPF strips punctuation, keeping digits only
func normalizeCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
