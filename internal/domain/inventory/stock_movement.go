package inventory

import (
	"strings"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
)

// MovementType tags a stock movement as an entrance or an exit
type MovementType string

const (
	// MovementTypeIn represents stock coming into the shop (return, manual entry)
	MovementTypeIn MovementType = "in"
	// MovementTypeOut represents stock leaving the shop (sale, manual withdrawal)
	MovementTypeOut MovementType = "out"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// Sign returns +1 for entrances and -1 for exits
func (t MovementType) Sign() int64 {
	if t == MovementTypeOut {
		return -1
	}
	return 1
}

// StockMovement is one append-only entry of the stock audit trail.
// Quantity is always positive; the direction lives in Type.
type StockMovement struct {
	ID          int64
	ProductID   int64
	ProductName string
	Type        MovementType
	Quantity    int64
	Reason      string
	CreatedAt   time.Time
}

// NewStockMovement builds the movement recording a signed delta applied to a product
func NewStockMovement(productID int64, productName string, signedQuantity int64, reason string) (*StockMovement, error) {
	if productID <= 0 {
		return nil, shared.NewValidationError("Product ID is required")
	}
	if signedQuantity == 0 {
		return nil, shared.NewValidationError("Movement quantity cannot be zero")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("Movement reason cannot be empty")
	}

	mt := MovementTypeIn
	qty := signedQuantity
	if signedQuantity < 0 {
		mt = MovementTypeOut
		qty = -signedQuantity
	}

	return &StockMovement{
		ProductID:   productID,
		ProductName: productName,
		Type:        mt,
		Quantity:    qty,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}, nil
}

// SignedQuantity returns the quantity with the direction applied
func (m *StockMovement) SignedQuantity() int64 {
	return m.Type.Sign() * m.Quantity
}

// ParseMovementType accepts current and legacy (entrada/saida) names
func ParseMovementType(s string) (MovementType, error) {
	switch s {
	case "in", "entrada":
		return MovementTypeIn, nil
	case "out", "saida", "saída":
		return MovementTypeOut, nil
	}
	return "", shared.NewValidationError("Invalid movement type " + s)
}
