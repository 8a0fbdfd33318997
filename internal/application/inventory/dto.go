package inventory

import (
	"time"

	"github.com/erp/pdv/internal/domain/inventory"
	"github.com/erp/pdv/internal/domain/shared"
)

// StockMovementResponse represents a stock movement in API responses
type StockMovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToStockMovementResponse converts a domain movement to a response
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}

// MovementListFilter represents filter options for the movement log
type MovementListFilter struct {
	ProductID int64  `form:"product_id"`
	Type      string `form:"type" binding:"omitempty,oneof=in out"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AdjustStockRequest is a manual stock correction: a signed quantity and why
type AdjustStockRequest struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Quantity  int64  `json:"quantity" binding:"required"`
	Reason    string `json:"reason" binding:"required,max=255"`
}

// ApplyDeltaResult describes a committed stock change
type ApplyDeltaResult struct {
	ProductID int64                  `json:"product_id"`
	Before    int64                  `json:"before"`
	Stock     int64                  `json:"stock"`
	LowStock  bool                   `json:"low_stock"`
	Movement  *StockMovementResponse `json:"movement,omitempty"`
	Attempts  int                    `json:"-"`
	Warnings  []shared.Warning       `json:"-"`
}
