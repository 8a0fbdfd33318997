package trade

import (
	"fmt"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
)

// Exchange links goods returned from one sale to the replacement sale that
// the customer takes instead.
type Exchange struct {
	shared.BaseAggregateRoot
	OriginalSaleID int64
	NewSaleID      *int64
	ReturnID       *int64
	CustomerID     *int64
	UserID         int64
	Reason         string
	ReturnedItems  []ReturnItem
	NewItems       []SaleItem
	Status         ReturnStatus
	ProcessedAt    *time.Time
}

// NewExchangeFromReturn opens an exchange for a return of type exchange
func NewExchangeFromReturn(r *Return) (*Exchange, error) {
	if r == nil || r.Type != ReturnTypeExchange {
		return nil, shared.NewValidationError("Exchanges are opened from exchange-type returns")
	}
	var returnID *int64
	if r.ID > 0 {
		id := r.ID
		returnID = &id
	}
	items := make([]ReturnItem, len(r.Items))
	copy(items, r.Items)

	return &Exchange{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OriginalSaleID:    r.SaleID,
		ReturnID:          returnID,
		CustomerID:        r.CustomerID,
		UserID:            r.UserID,
		Reason:            r.Reason,
		ReturnedItems:     items,
		Status:            ReturnStatusPending,
	}, nil
}

// LinkReplacementSale records the sale the customer took in exchange and
// marks the exchange processed.
func (e *Exchange) LinkReplacementSale(sale *Sale) error {
	if sale == nil || sale.ID <= 0 {
		return shared.NewValidationError("Replacement sale must be persisted first")
	}
	if e.Status != ReturnStatusPending {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot complete exchange in %s status", e.Status))
	}
	if sale.ID == e.OriginalSaleID {
		return shared.NewValidationError("Replacement sale must differ from the original sale")
	}

	id := sale.ID
	e.NewSaleID = &id
	e.NewItems = append([]SaleItem(nil), sale.Items...)
	return e.TransitionTo(ReturnStatusProcessed)
}

// TransitionTo moves the exchange to a terminal status
func (e *Exchange) TransitionTo(target ReturnStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid status %q", target))
	}
	if !e.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot move exchange from %s to %s", e.Status, target))
	}

	now := time.Now()
	e.Status = target
	if target == ReturnStatusProcessed {
		e.ProcessedAt = &now
	}
	e.UpdatedAt = now
	e.IncrementVersion()

	return nil
}
