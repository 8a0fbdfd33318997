package trade

import (
	"fmt"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// PaymentMethod is how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPix    PaymentMethod = "pix"
	PaymentMethodCredit PaymentMethod = "credit" // crediário: store credit paid in installments
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodPix, PaymentMethodCredit:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// legacyPaymentMethods maps the names used by the old local store
var legacyPaymentMethods = map[string]PaymentMethod{
	"dinheiro":  PaymentMethodCash,
	"cartao":    PaymentMethodCard,
	"cartão":    PaymentMethodCard,
	"pix":       PaymentMethodPix,
	"crediario": PaymentMethodCredit,
	"crediário": PaymentMethodCredit,
}

// ParsePaymentMethod accepts both current and legacy names
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if m.IsValid() {
		return m, nil
	}
	if legacy, ok := legacyPaymentMethods[s]; ok {
		return legacy, nil
	}
	return "", shared.NewValidationError(fmt.Sprintf("Unknown payment method %q", s))
}

// MaxLineQuantity caps the units of one product in a single sale
const MaxLineQuantity = 1_000_000

// SaleItem is a cart line frozen into a sale. Name and price are snapshots
// taken at checkout so history does not move when the product changes.
type SaleItem struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
}

// Total returns quantity × unit price
func (i SaleItem) Total() valueobject.Money {
	return i.UnitPrice.MulInt(i.Quantity)
}

// Sale is an append-only record of a completed checkout
type Sale struct {
	shared.BaseEntity
	Items            []SaleItem
	Subtotal         valueobject.Money
	Discount         valueobject.Money
	Total            valueobject.Money
	PaymentMethod    PaymentMethod
	CustomerID       *int64
	Installments     int
	InstallmentValue valueobject.Money
	UserID           int64
}

// NewSaleInput holds what the checkout knows when the operator confirms
type NewSaleInput struct {
	Items         []SaleItem
	PaymentMethod PaymentMethod
	Discount      valueobject.Money
	CustomerID    *int64
	Installments  int
	UserID        int64
}

// NewSale validates a cart and computes its totals.
// Lines for the same product are merged, keeping the first line's snapshot.
func NewSale(in NewSaleInput) (*Sale, error) {
	if len(in.Items) == 0 {
		return nil, shared.NewValidationError("Cart is empty")
	}
	if !in.PaymentMethod.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Invalid payment method %q", in.PaymentMethod))
	}
	if in.UserID <= 0 {
		return nil, shared.NewValidationError("Operator is required")
	}
	if in.Discount.IsNegative() {
		return nil, shared.NewValidationError("Discount cannot be negative")
	}

	items, err := mergeItems(in.Items)
	if err != nil {
		return nil, err
	}

	subtotal, err := cartSubtotal(items)
	if err != nil {
		return nil, err
	}
	if in.Discount > subtotal {
		return nil, shared.NewValidationError("Discount cannot exceed the cart subtotal")
	}

	installments := 1
	if in.PaymentMethod == PaymentMethodCredit {
		if in.CustomerID == nil || *in.CustomerID <= 0 {
			return nil, shared.NewValidationError("Credit sales require a customer")
		}
		if in.Installments < 1 {
			return nil, shared.NewValidationError("Credit sales require at least one installment")
		}
		installments = in.Installments
	}

	total := subtotal.Sub(in.Discount)
	installmentValue, err := total.DivFloor(installments)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	return &Sale{
		BaseEntity:       shared.NewBaseEntity(),
		Items:            items,
		Subtotal:         subtotal,
		Discount:         in.Discount,
		Total:            total,
		PaymentMethod:    in.PaymentMethod,
		CustomerID:       in.CustomerID,
		Installments:     installments,
		InstallmentValue: installmentValue,
		UserID:           in.UserID,
	}, nil
}

func mergeItems(lines []SaleItem) ([]SaleItem, error) {
	merged := make([]SaleItem, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, line := range lines {
		if line.ProductID <= 0 {
			return nil, shared.NewValidationError("Cart line has no product")
		}
		if line.Quantity <= 0 {
			return nil, shared.NewValidationError(fmt.Sprintf("Quantity for product %d must be positive", line.ProductID))
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewValidationError(fmt.Sprintf("Price for product %d cannot be negative", line.ProductID))
		}
		if line.Quantity > MaxLineQuantity {
			return nil, shared.NewValidationError(fmt.Sprintf("Quantity for product %d exceeds %d", line.ProductID, MaxLineQuantity))
		}
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			if merged[i].Quantity > MaxLineQuantity {
				return nil, shared.NewValidationError(fmt.Sprintf("Quantity for product %d exceeds %d", line.ProductID, MaxLineQuantity))
			}
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}

func cartSubtotal(items []SaleItem) (valueobject.Money, error) {
	var subtotal valueobject.Money
	for _, item := range items {
		lineTotal, err := item.UnitPrice.CheckedMulInt(item.Quantity)
		if err == nil {
			subtotal, err = subtotal.CheckedAdd(lineTotal)
		}
		if err != nil {
			return 0, shared.NewValidationError(fmt.Sprintf("Total for %s is out of range", item.ProductName))
		}
	}
	return subtotal, nil
}

// IsCredit reports whether the sale was financed through store credit
func (s *Sale) IsCredit() bool {
	return s.PaymentMethod == PaymentMethodCredit
}

// Item returns the sale line for productID
func (s *Sale) Item(productID int64) (SaleItem, bool) {
	for _, item := range s.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return SaleItem{}, false
}

// Reference is the human label used in movement reasons and descriptions
func (s *Sale) Reference() string {
	return fmt.Sprintf("Sale #%d", s.ID)
}
