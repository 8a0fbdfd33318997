package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// ItemCondition describes the state of a returned item
type ItemCondition string

const (
	ConditionNew     ItemCondition = "new"
	ConditionUsed    ItemCondition = "used"
	ConditionDamaged ItemCondition = "damaged"
)

// IsValid checks if the condition is known
func (c ItemCondition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionDamaged:
		return true
	}
	return false
}

// Restockable reports whether items in this condition go back on the shelf.
// Damaged goods are scrapped.
func (c ItemCondition) Restockable() bool {
	return c != ConditionDamaged
}

// ReturnType distinguishes a refund from an exchange
type ReturnType string

const (
	ReturnTypeReturn   ReturnType = "return"
	ReturnTypeExchange ReturnType = "exchange"
)

// IsValid checks if the return type is known
func (t ReturnType) IsValid() bool {
	return t == ReturnTypeReturn || t == ReturnTypeExchange
}

// ReturnStatus represents the status of a return or exchange
type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusProcessed ReturnStatus = "processed"
	ReturnStatusCancelled ReturnStatus = "cancelled"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusProcessed, ReturnStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Processed and cancelled are terminal.
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	if s != ReturnStatusPending {
		return false
	}
	return target == ReturnStatusProcessed || target == ReturnStatusCancelled
}

// ReturnItem is a returned quantity of one sale line
type ReturnItem struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
	Condition   ItemCondition
}

// Total returns quantity × the price recorded on the sale
func (i ReturnItem) Total() valueobject.Money {
	return i.UnitPrice.MulInt(i.Quantity)
}

// ReturnLine is the operator's selection for one product of the sale
type ReturnLine struct {
	ProductID int64
	Quantity  int64
	Condition ItemCondition
}

// Return records goods coming back from a sale
type Return struct {
	shared.BaseAggregateRoot
	SaleID      int64
	CustomerID  *int64
	UserID      int64
	Type        ReturnType
	Reason      string
	Items       []ReturnItem
	TotalRefund valueobject.Money
	Status      ReturnStatus
	ProcessedAt *time.Time
}

// NewReturn validates a selection against the original sale.
// alreadyReturned holds quantities per product from earlier, non-cancelled
// returns of the same sale; a line may not exceed what is left.
// Lines with zero quantity are ignored.
func NewReturn(sale *Sale, lines []ReturnLine, reason string, typ ReturnType, userID int64, alreadyReturned map[int64]int64) (*Return, error) {
	if sale == nil || sale.ID <= 0 {
		return nil, shared.NewValidationError("A sale must be selected")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("Return reason cannot be empty")
	}
	if !typ.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Invalid return type %q", typ))
	}
	if userID <= 0 {
		return nil, shared.NewValidationError("Operator is required")
	}

	requested := make(map[int64]int64)
	items := make([]ReturnItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 0 {
			return nil, shared.NewValidationError(fmt.Sprintf("Quantity for product %d cannot be negative", line.ProductID))
		}
		if line.Quantity == 0 {
			continue
		}
		cond := line.Condition
		if cond == "" {
			cond = ConditionNew
		}
		if !cond.IsValid() {
			return nil, shared.NewValidationError(fmt.Sprintf("Invalid condition %q", line.Condition))
		}
		saleItem, ok := sale.Item(line.ProductID)
		if !ok {
			return nil, shared.NewValidationError(fmt.Sprintf("Product %d is not part of %s", line.ProductID, sale.Reference()))
		}
		requested[line.ProductID] += line.Quantity
		available := saleItem.Quantity - alreadyReturned[line.ProductID]
		if requested[line.ProductID] > available {
			return nil, shared.NewValidationError(fmt.Sprintf(
				"Cannot return %d of %s: only %d left on %s",
				requested[line.ProductID], saleItem.ProductName, available, sale.Reference()))
		}
		items = append(items, ReturnItem{
			ProductID:   saleItem.ProductID,
			ProductName: saleItem.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   saleItem.UnitPrice,
			Condition:   cond,
		})
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Select at least one item to return")
	}

	r := &Return{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleID:            sale.ID,
		CustomerID:        sale.CustomerID,
		UserID:            userID,
		Type:              typ,
		Reason:            reason,
		Items:             items,
		Status:            ReturnStatusPending,
	}
	for _, item := range items {
		r.TotalRefund = r.TotalRefund.Add(item.Total())
	}

	return r, nil
}

// RestockItems returns what goes back into stock, one entry per product:
// only refunds restock, and never damaged goods. Lines for the same product
// with different conditions are summed so each product moves once.
func (r *Return) RestockItems() []ReturnItem {
	if r.Type != ReturnTypeReturn {
		return nil
	}
	out := make([]ReturnItem, 0, len(r.Items))
	index := make(map[int64]int, len(r.Items))
	for _, item := range r.Items {
		if !item.Condition.Restockable() {
			continue
		}
		if i, ok := index[item.ProductID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(out)
		out = append(out, item)
	}
	return out
}

// RestockReason is the stock movement reason for this return
func (r *Return) RestockReason() string {
	return "Return - " + r.Reason
}

// TransitionTo moves the return to a terminal status
func (r *Return) TransitionTo(target ReturnStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid status %q", target))
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot move return from %s to %s", r.Status, target))
	}

	now := time.Now()
	r.Status = target
	if target == ReturnStatusProcessed {
		r.ProcessedAt = &now
	}
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// QuantityByProduct sums returned quantities per product
func (r *Return) QuantityByProduct() map[int64]int64 {
	out := make(map[int64]int64, len(r.Items))
	for _, item := range r.Items {
		out[item.ProductID] += item.Quantity
	}
	return out
}

var legacyConditions = map[string]ItemCondition{
	"nova":       ConditionNew,
	"usada":      ConditionUsed,
	"danificada": ConditionDamaged,
}

// ParseItemCondition accepts current and legacy condition names.
// An empty string means new.
func ParseItemCondition(s string) (ItemCondition, error) {
	if s == "" {
		return ConditionNew, nil
	}
	if c := ItemCondition(s); c.IsValid() {
		return c, nil
	}
	if c, ok := legacyConditions[s]; ok {
		return c, nil
	}
	return "", shared.NewValidationError(fmt.Sprintf("Invalid condition %q", s))
}

// ParseReturnType accepts current and legacy type names
func ParseReturnType(s string) (ReturnType, error) {
	switch s {
	case "return", "devolucao", "devolução":
		return ReturnTypeReturn, nil
	case "exchange", "troca":
		return ReturnTypeExchange, nil
	}
	return "", shared.NewValidationError(fmt.Sprintf("Invalid return type %q", s))
}

// ParseReturnStatus accepts current and legacy status names
func ParseReturnStatus(s string) (ReturnStatus, error) {
	switch s {
	case "pending", "pendente":
		return ReturnStatusPending, nil
	case "processed", "processada", "processado":
		return ReturnStatusProcessed, nil
	case "cancelled", "cancelada", "cancelado":
		return ReturnStatusCancelled, nil
	}
	return "", shared.NewValidationError(fmt.Sprintf("Invalid status %q", s))
}
