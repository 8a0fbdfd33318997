package finance

import (
	"context"

	"github.com/erp/pdv/internal/domain/shared"
)

// CreditorRepository persists creditor balances
type CreditorRepository interface {
	Create(ctx context.Context, c *Creditor) error
	FindByID(ctx context.Context, id int64) (*Creditor, error)
	// FindAll supports filter keys "customer_id" (int64), "sale_id" (int64),
	// "status" (CreditorStatus; overdue matches pending rows past due)
	FindAll(ctx context.Context, filter shared.Filter) ([]Creditor, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SaveWithLock updates the creditor if its stored version is c.Version-1
	SaveWithLock(ctx context.Context, c *Creditor) error
	Delete(ctx context.Context, id int64) error
}

// InstallmentRepository persists carnê installments
type InstallmentRepository interface {
	Create(ctx context.Context, inst *CarneInstallment) error
	FindByID(ctx context.Context, id int64) (*CarneInstallment, error)
	// FindByCreditor returns installments ordered by number
	FindByCreditor(ctx context.Context, creditorID int64) ([]CarneInstallment, error)
	SaveWithLock(ctx context.Context, inst *CarneInstallment) error
	DeleteByIDs(ctx context.Context, ids []int64) error
	DeleteByCreditor(ctx context.Context, creditorID int64) error
}

// PaymentRepository persists payment history
type PaymentRepository interface {
	Create(ctx context.Context, p *PaymentRecord) error
	FindByCreditor(ctx context.Context, creditorID int64) ([]PaymentRecord, error)
	DeleteByCreditor(ctx context.Context, creditorID int64) error
}

// ExpenseRepository persists expenses
type ExpenseRepository interface {
	Create(ctx context.Context, e *Expense) error
	FindByID(ctx context.Context, id int64) (*Expense, error)
	// FindAll supports filter key "paid" (bool)
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	SaveWithLock(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id int64) error
}

// CreditSaleRepository reads legacy credit sale rows
type CreditSaleRepository interface {
	FindByCreditor(ctx context.Context, creditorID int64) ([]CreditSale, error)
	DeleteByCreditor(ctx context.Context, creditorID int64) error
}
