package finance

import (
	"time"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// CreditSaleStatus is the state of a legacy per-sale installment row
type CreditSaleStatus string

const (
	CreditSaleStatusPending CreditSaleStatus = "pending"
	CreditSaleStatusPaid    CreditSaleStatus = "paid"
	CreditSaleStatusOverdue CreditSaleStatus = "overdue"
)

// ParseCreditSaleStatus accepts current and legacy names
func ParseCreditSaleStatus(s string) CreditSaleStatus {
	switch s {
	case "pago", string(CreditSaleStatusPaid):
		return CreditSaleStatusPaid
	case "atrasado", string(CreditSaleStatusOverdue):
		return CreditSaleStatusOverdue
	}
	return CreditSaleStatusPending
}

// CreditSale is an installment row tied to both a sale and a creditor.
// The current checkout no longer produces these; they are carried over from
// the old store so historical booklets stay readable.
type CreditSale struct {
	shared.BaseEntity
	SaleID            int64
	CreditorID        int64
	InstallmentNumber int
	InstallmentValue  valueobject.Money
	DueDate           time.Time
	PaidDate          *time.Time
	Status            CreditSaleStatus
}
