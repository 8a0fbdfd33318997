package inventory

import (
	"context"

	"github.com/erp/pdv/internal/domain/shared"
)

// StockMovementRepository persists the append-only stock audit trail.
// There is no update or delete.
type StockMovementRepository interface {
	// Create appends a movement and assigns its ID
	Create(ctx context.Context, movement *StockMovement) error

	// CreateBatch appends many movements at once (used by data import)
	CreateBatch(ctx context.Context, movements []*StockMovement) error

	// FindAll lists movements newest first.
	// Supported filter keys: "product_id" (int64), "type" (MovementType).
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumByProduct returns the signed sum of all movements of a product
	SumByProduct(ctx context.Context, productID int64) (int64, error)
}
