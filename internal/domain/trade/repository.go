package trade

import (
	"context"

	"github.com/erp/pdv/internal/domain/shared"
)

// SaleRepository persists append-only sales
type SaleRepository interface {
	// Create inserts a sale with its items and assigns the ID
	Create(ctx context.Context, sale *Sale) error

	// FindByID finds a sale with its items
	FindByID(ctx context.Context, id int64) (*Sale, error)

	// FindAll lists sales newest first.
	// Supported filter keys: "customer_id" (int64), "payment_method" (PaymentMethod),
	// "from" / "to" (time.Time).
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReturnRepository persists returns
type ReturnRepository interface {
	Create(ctx context.Context, r *Return) error
	FindByID(ctx context.Context, id int64) (*Return, error)
	// FindAll supports filter keys "sale_id" (int64), "status" (ReturnStatus), "type" (ReturnType)
	FindAll(ctx context.Context, filter shared.Filter) ([]Return, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	SaveWithLock(ctx context.Context, r *Return) error
	// ReturnedQuantities sums quantities per product over non-cancelled returns of a sale
	ReturnedQuantities(ctx context.Context, saleID int64) (map[int64]int64, error)
}

// ExchangeRepository persists exchanges
type ExchangeRepository interface {
	Create(ctx context.Context, e *Exchange) error
	FindByID(ctx context.Context, id int64) (*Exchange, error)
	// FindAll supports filter keys "original_sale_id" (int64), "status" (ReturnStatus)
	FindAll(ctx context.Context, filter shared.Filter) ([]Exchange, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	SaveWithLock(ctx context.Context, e *Exchange) error
}
