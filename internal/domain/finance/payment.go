package finance

import (
	"strings"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// PaymentRecord is an entry of a creditor's payment history
type PaymentRecord struct {
	ID          int64
	CreditorID  int64
	Amount      valueobject.Money
	PaymentDate time.Time
	Notes       string
	CreatedAt   time.Time
}

// NewPaymentRecord builds a history entry for an amount received
func NewPaymentRecord(creditorID int64, amount valueobject.Money, paidOn time.Time, notes string) (*PaymentRecord, error) {
	if creditorID <= 0 {
		return nil, shared.NewValidationError("Creditor is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if paidOn.IsZero() {
		paidOn = time.Now()
	}
	return &PaymentRecord{
		CreditorID:  creditorID,
		Amount:      amount,
		PaymentDate: paidOn,
		Notes:       strings.TrimSpace(notes),
		CreatedAt:   time.Now(),
	}, nil
}
