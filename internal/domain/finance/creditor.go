package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// CreditorStatus represents the state of a customer's outstanding balance
type CreditorStatus string

const (
	CreditorStatusPending CreditorStatus = "pending"
	CreditorStatusOverdue CreditorStatus = "overdue" // read-time projection of pending, never stored
	CreditorStatusPaid    CreditorStatus = "paid"
)

// IsValid checks if the status is known
func (s CreditorStatus) IsValid() bool {
	switch s {
	case CreditorStatusPending, CreditorStatusOverdue, CreditorStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of CreditorStatus
func (s CreditorStatus) String() string {
	return string(s)
}

// ParseCreditorStatus accepts current and legacy (pendente/atrasado/pago) names
func ParseCreditorStatus(s string) (CreditorStatus, error) {
	switch s {
	case "pendente":
		return CreditorStatusPending, nil
	case "atrasado":
		return CreditorStatusOverdue, nil
	case "pago":
		return CreditorStatusPaid, nil
	}
	st := CreditorStatus(s)
	if !st.IsValid() {
		return "", shared.NewValidationError(fmt.Sprintf("Unknown creditor status %q", s))
	}
	return st, nil
}

const (
	// DefaultCreditTerm is the due-date offset of a creditor opened at checkout
	DefaultCreditTerm = 30 * 24 * time.Hour
	// DefaultCreditorDescription is used when a manual entry has none
	DefaultCreditorDescription = "Crediário"
)

// Creditor is the ledger entry of a customer's debt to the store.
// RemainingAmount always equals TotalDebt - PaidAmount, and Status is paid
// exactly when nothing remains.
type Creditor struct {
	shared.BaseAggregateRoot
	CustomerID      int64
	CustomerName    string
	SaleID          *int64
	TotalDebt       valueobject.Money
	PaidAmount      valueobject.Money
	RemainingAmount valueobject.Money
	DueDate         time.Time
	Description     string
	Status          CreditorStatus
}

// NewCreditorInput holds the fields of a manually entered creditor
type NewCreditorInput struct {
	CustomerID   int64
	CustomerName string
	SaleID       *int64
	TotalDebt    valueobject.Money
	DueDate      time.Time
	Description  string
}

// NewCreditor opens a pending balance for a customer
func NewCreditor(in NewCreditorInput) (*Creditor, error) {
	if in.CustomerID <= 0 {
		return nil, shared.NewValidationError("Customer is required")
	}
	if !in.TotalDebt.IsPositive() {
		return nil, shared.NewValidationError("Total debt must be positive")
	}
	if in.DueDate.IsZero() {
		return nil, shared.NewValidationError("Due date is required")
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = DefaultCreditorDescription
	}

	c := &Creditor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        in.CustomerID,
		CustomerName:      in.CustomerName,
		SaleID:            in.SaleID,
		TotalDebt:         in.TotalDebt,
		PaidAmount:        0,
		RemainingAmount:   in.TotalDebt,
		DueDate:           in.DueDate,
		Description:       desc,
		Status:            CreditorStatusPending,
	}
	c.AddDomainEvent(NewCreditorOpenedEvent(c))
	return c, nil
}

// SaleCredit describes a credit-method sale being financed
type SaleCredit struct {
	SaleID           int64
	Total            valueobject.Money
	Installments     int
	InstallmentValue valueobject.Money
}

// NewCreditorForSale opens the creditor for a credit sale, due after the
// default 30-day term.
func NewCreditorForSale(sale SaleCredit, customerID int64, customerName string, now time.Time) (*Creditor, error) {
	if sale.SaleID <= 0 {
		return nil, shared.NewValidationError("Sale must be persisted before opening credit")
	}
	if sale.Installments < 1 {
		return nil, shared.NewValidationError("Installments must be at least 1")
	}
	saleID := sale.SaleID
	return NewCreditor(NewCreditorInput{
		CustomerID:   customerID,
		CustomerName: customerName,
		SaleID:       &saleID,
		TotalDebt:    sale.Total,
		DueDate:      now.Add(DefaultCreditTerm),
		Description:  fmt.Sprintf("Sale #%d - %dx %s", sale.SaleID, sale.Installments, sale.InstallmentValue),
	})
}

// IsPaid reports whether the debt is settled
func (c *Creditor) IsPaid() bool {
	return c.Status == CreditorStatusPaid
}

// EffectiveStatus derives the displayed status at now
func (c *Creditor) EffectiveStatus(now time.Time) CreditorStatus {
	if c.Status == CreditorStatusPending && c.DueDate.Before(now) {
		return CreditorStatusOverdue
	}
	if c.Status == CreditorStatusOverdue && !c.DueDate.Before(now) {
		return CreditorStatusPending
	}
	return c.Status
}

// ProjectStatus applies EffectiveStatus in place. Call it on read paths only;
// the stored status stays pending.
func (c *Creditor) ProjectStatus(now time.Time) {
	c.Status = c.EffectiveStatus(now)
}

// UpdateDetails edits debt, due date and description of a manual entry.
// Payments already received are kept.
func (c *Creditor) UpdateDetails(totalDebt valueobject.Money, dueDate time.Time, description string) error {
	if !totalDebt.IsPositive() {
		return shared.NewValidationError("Total debt must be positive")
	}
	if totalDebt < c.PaidAmount {
		return shared.NewValidationError(fmt.Sprintf("Total debt cannot be below the %s already paid", c.PaidAmount))
	}
	if dueDate.IsZero() {
		return shared.NewValidationError("Due date is required")
	}
	desc := strings.TrimSpace(description)
	if desc == "" {
		desc = DefaultCreditorDescription
	}

	c.TotalDebt = totalDebt
	c.RemainingAmount = totalDebt.Sub(c.PaidAmount)
	c.DueDate = dueDate
	c.Description = desc
	c.settleStatus()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// RecordPayment applies a partial payment to the balance
func (c *Creditor) RecordPayment(amount valueobject.Money) error {
	if c.IsPaid() {
		return shared.NewDomainError(shared.CodeInvalidState, "Creditor is already settled")
	}
	if !amount.IsPositive() {
		return shared.NewValidationError("Payment amount must be positive")
	}
	if amount > c.RemainingAmount {
		return shared.NewValidationError(fmt.Sprintf("Payment %s exceeds remaining balance %s", amount, c.RemainingAmount))
	}

	c.PaidAmount = c.PaidAmount.Add(amount)
	c.RemainingAmount = c.TotalDebt.Sub(c.PaidAmount)
	c.settleStatus()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCreditorPaymentRecordedEvent(c, amount))
	if c.IsPaid() {
		c.AddDomainEvent(NewCreditorSettledEvent(c))
	}
	return nil
}

// MarkPaid settles the whole debt regardless of installment states
func (c *Creditor) MarkPaid() error {
	if c.IsPaid() {
		return shared.NewDomainError(shared.CodeInvalidState, "Creditor is already settled")
	}

	c.Status = CreditorStatusPaid
	c.PaidAmount = c.TotalDebt
	c.RemainingAmount = 0
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCreditorSettledEvent(c))
	return nil
}

func (c *Creditor) settleStatus() {
	if c.RemainingAmount.IsZero() {
		c.Status = CreditorStatusPaid
		return
	}
	c.Status = CreditorStatusPending
}
