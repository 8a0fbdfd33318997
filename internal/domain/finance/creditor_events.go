package finance

import (
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeCreditor = "Creditor"

// Event type constants
const (
	EventTypeCreditorOpened          = "CreditorOpened"
	EventTypeCreditorPaymentRecorded = "CreditorPaymentRecorded"
	EventTypeCreditorSettled         = "CreditorSettled"
)

// CreditorOpenedEvent is published when a balance is opened for a customer
type CreditorOpenedEvent struct {
	shared.BaseDomainEvent
	CustomerID int64             `json:"customer_id"`
	SaleID     *int64            `json:"sale_id,omitempty"`
	TotalDebt  valueobject.Money `json:"total_debt"`
}

// NewCreditorOpenedEvent creates a new CreditorOpenedEvent
func NewCreditorOpenedEvent(c *Creditor) *CreditorOpenedEvent {
	return &CreditorOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditorOpened, AggregateTypeCreditor, c.ID),
		CustomerID:      c.CustomerID,
		SaleID:          c.SaleID,
		TotalDebt:       c.TotalDebt,
	}
}

// CreditorPaymentRecordedEvent is published for each partial payment
type CreditorPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	Amount          valueobject.Money `json:"amount"`
	RemainingAmount valueobject.Money `json:"remaining_amount"`
}

// NewCreditorPaymentRecordedEvent creates a new CreditorPaymentRecordedEvent
func NewCreditorPaymentRecordedEvent(c *Creditor, amount valueobject.Money) *CreditorPaymentRecordedEvent {
	return &CreditorPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditorPaymentRecorded, AggregateTypeCreditor, c.ID),
		Amount:          amount,
		RemainingAmount: c.RemainingAmount,
	}
}

// CreditorSettledEvent is published when nothing remains to be paid
type CreditorSettledEvent struct {
	shared.BaseDomainEvent
	CustomerID int64             `json:"customer_id"`
	TotalDebt  valueobject.Money `json:"total_debt"`
}

// NewCreditorSettledEvent creates a new CreditorSettledEvent
func NewCreditorSettledEvent(c *Creditor) *CreditorSettledEvent {
	return &CreditorSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditorSettled, AggregateTypeCreditor, c.ID),
		CustomerID:      c.CustomerID,
		TotalDebt:       c.TotalDebt,
	}
}
