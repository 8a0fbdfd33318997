package finance

import (
	"strings"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// Expense is a bill the store has to pay
type Expense struct {
	shared.BaseAggregateRoot
	Description string
	Amount      valueobject.Money
	Category    string
	Supplier    string
	DueDate     *time.Time
	Paid        bool
}

// NewExpense creates an unpaid expense
func NewExpense(description string, amount valueobject.Money, category, supplier string, dueDate *time.Time) (*Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewValidationError("Expense description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Expense amount must be positive")
	}
	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Description:       description,
		Amount:            amount,
		Category:          strings.TrimSpace(category),
		Supplier:          strings.TrimSpace(supplier),
		DueDate:           dueDate,
	}, nil
}

// MarkPaid flags the expense as paid
func (e *Expense) MarkPaid() error {
	if e.Paid {
		return shared.NewDomainError(shared.CodeInvalidState, "Expense is already paid")
	}
	e.Paid = true
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}
