package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// DeliveryVia selects which copies of the carnê are printed
type DeliveryVia string

const (
	DeliveryViaCustomer DeliveryVia = "customer"
	DeliveryViaCreditor DeliveryVia = "creditor"
	DeliveryViaBoth     DeliveryVia = "both"
)

// IsValid checks if the delivery option is known
func (v DeliveryVia) IsValid() bool {
	switch v {
	case DeliveryViaCustomer, DeliveryViaCreditor, DeliveryViaBoth:
		return true
	}
	return false
}

// Copies lists the copy labels printed for each installment slip
func (v DeliveryVia) Copies() []DeliveryVia {
	if v == DeliveryViaBoth {
		return []DeliveryVia{DeliveryViaCustomer, DeliveryViaCreditor}
	}
	return []DeliveryVia{v}
}

// MaxInstallments bounds a single schedule
const MaxInstallments = 120

// CarneInstallment is one slip of a creditor's payment booklet
type CarneInstallment struct {
	shared.BaseAggregateRoot
	CreditorID        int64
	InstallmentNumber int
	DueDate           time.Time
	Amount            valueobject.Money
	Paid              bool
	PaidAt            *time.Time
}

// BuildSchedule splits the creditor's remaining balance into count monthly
// installments. Installment i is due (i-1) months after the creditor due
// date; the last one carries the rounding remainder, so the amounts always
// sum to RemainingAmount.
func BuildSchedule(c *Creditor, count int) ([]*CarneInstallment, error) {
	if c == nil || c.ID <= 0 {
		return nil, shared.NewValidationError("Creditor must be persisted before scheduling")
	}
	if count < 1 {
		return nil, shared.NewValidationError("Installment count must be at least 1")
	}
	if count > MaxInstallments {
		return nil, shared.NewValidationError(fmt.Sprintf("Installment count cannot exceed %d", MaxInstallments))
	}
	if c.IsPaid() || !c.RemainingAmount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Creditor has no remaining balance to schedule")
	}

	amounts, err := c.RemainingAmount.Split(count)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	schedule := make([]*CarneInstallment, count)
	for i := range count {
		schedule[i] = &CarneInstallment{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			CreditorID:        c.ID,
			InstallmentNumber: i + 1,
			DueDate:           c.DueDate.AddDate(0, i, 0),
			Amount:            amounts[i],
		}
	}
	return schedule, nil
}

// MarkPaid records the slip as paid. The creditor balance is not touched;
// settling the debt is a separate action on the creditor.
func (i *CarneInstallment) MarkPaid(now time.Time) error {
	if i.Paid {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Installment %d is already paid", i.InstallmentNumber))
	}
	i.Paid = true
	i.PaidAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}

// Reschedule moves the due date of an unpaid slip
func (i *CarneInstallment) Reschedule(dueDate time.Time) error {
	if dueDate.IsZero() {
		return shared.NewValidationError("Due date is required")
	}
	if i.Paid {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot reschedule a paid installment")
	}
	i.DueDate = dueDate
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsOverdue reports whether the slip is unpaid past its due date
func (i *CarneInstallment) IsOverdue(now time.Time) bool {
	return !i.Paid && i.DueDate.Before(now)
}

// NextDue returns the unpaid installment with the earliest due date, or nil
func NextDue(installments []CarneInstallment) *CarneInstallment {
	var next *CarneInstallment
	for idx := range installments {
		inst := &installments[idx]
		if inst.Paid {
			continue
		}
		if next == nil || inst.DueDate.Before(next.DueDate) {
			next = inst
		}
	}
	return next
}

// ScheduleStats summarizes a creditor's booklet
type ScheduleStats struct {
	TotalInstallments int               `json:"total_installments"`
	PaidInstallments  int               `json:"paid_installments"`
	PaidAmount        valueobject.Money `json:"paid_amount"`
	RemainingAmount   valueobject.Money `json:"remaining_amount"`
}

// ComputeStats sums paid and unpaid installment amounts
func ComputeStats(installments []CarneInstallment) ScheduleStats {
	stats := ScheduleStats{TotalInstallments: len(installments)}
	for _, inst := range installments {
		if inst.Paid {
			stats.PaidInstallments++
			stats.PaidAmount = stats.PaidAmount.Add(inst.Amount)
			continue
		}
		stats.RemainingAmount = stats.RemainingAmount.Add(inst.Amount)
	}
	return stats
}

// SortByNumber orders installments by their number
func SortByNumber(installments []CarneInstallment) {
	sort.Slice(installments, func(a, b int) bool {
		return installments[a].InstallmentNumber < installments[b].InstallmentNumber
	})
}

// AnyPaid reports whether at least one installment was paid
func AnyPaid(installments []CarneInstallment) bool {
	for _, inst := range installments {
		if inst.Paid {
			return true
		}
	}
	return false
}
