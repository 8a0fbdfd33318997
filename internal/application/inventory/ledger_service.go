// Package inventory implements the stock ledger: every stock change is a
// signed delta applied with optimistic locking and logged as one movement.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/inventory"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultStockRetries bounds the compare-and-swap retries of ApplyDelta
const DefaultStockRetries = 5

// LedgerService applies stock deltas and keeps the movement log
type LedgerService struct {
	productRepo    catalog.ProductRepository
	movementRepo   inventory.StockMovementRepository
	eventPublisher shared.EventPublisher
	metrics        *telemetry.LedgerMetrics
	logger         *zap.Logger
	maxRetries     int
}

// NewLedgerService creates a new LedgerService. maxRetries <= 0 selects
// DefaultStockRetries.
func NewLedgerService(
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
	maxRetries int,
	logger *zap.Logger,
) *LedgerService {
	if maxRetries <= 0 {
		maxRetries = DefaultStockRetries
	}
	return &LedgerService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		logger:       logger,
		maxRetries:   maxRetries,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the ledger metrics recorder
func (s *LedgerService) SetMetrics(metrics *telemetry.LedgerMetrics) {
	s.metrics = metrics
}

// ApplyDelta adds signedQuantity to a product's stock and appends the
// matching movement. The stock write is retried when another writer bumped
// the product version first. A failed movement insert does not undo the
// stock change; it comes back as a warning.
func (s *LedgerService) ApplyDelta(ctx context.Context, productID, signedQuantity int64, reason string) (*ApplyDeltaResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "apply_delta",
		telemetry.AttrProductID.Int64(productID),
		attribute.Int64("delta", signedQuantity))
	defer span.End()

	if signedQuantity == 0 {
		return nil, shared.NewValidationError("Stock delta cannot be zero")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("Movement reason cannot be empty")
	}

	product, before, attempts, err := s.commitDelta(ctx, productID, signedQuantity)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &ApplyDeltaResult{
		ProductID: product.ID,
		Before:    before,
		Stock:     product.Stock,
		Attempts:  attempts,
	}
	for _, event := range product.GetDomainEvents() {
		if event.EventType() == catalog.EventTypeProductLowStock {
			result.LowStock = true
		}
	}
	s.publishDomainEvents(ctx, product)

	movement, err := inventory.NewStockMovement(product.ID, product.Name, signedQuantity, reason)
	if err == nil {
		err = s.movementRepo.Create(ctx, movement)
	}
	if err != nil {
		s.logger.Error("Stock changed but movement was not recorded",
			zap.Int64("product_id", productID),
			zap.Int64("delta", signedQuantity),
			zap.String("reason", reason),
			zap.Error(err))
		result.Warnings = append(result.Warnings, shared.NewWarning(shared.StepStockMovement,
			"stock of %s changed by %d, but the movement log entry failed", product.Name, signedQuantity))
		s.metrics.RecordWarning(ctx, shared.StepStockMovement)
		return result, nil
	}

	resp := ToStockMovementResponse(movement)
	result.Movement = &resp
	return result, nil
}

// commitDelta runs the read-modify-write loop
func (s *LedgerService) commitDelta(ctx context.Context, productID, delta int64) (*catalog.Product, int64, int, error) {
	for attempt := 1; attempt <= s.maxRetries+1; attempt++ {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, 0, attempt, err
		}
		before := product.Stock
		if err := product.ApplyStockDelta(delta); err != nil {
			return nil, 0, attempt, err
		}

		err = s.productRepo.SaveWithLock(ctx, product)
		if err == nil {
			return product, before, attempt, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, 0, attempt, err
		}

		s.metrics.RecordStockConflict(ctx, productID)
		s.logger.Debug("Stock write lost a race, retrying",
			zap.Int64("product_id", productID),
			zap.Int("attempt", attempt))
		if err := ctx.Err(); err != nil {
			return nil, 0, attempt, err
		}
	}
	return nil, 0, s.maxRetries + 1, shared.WrapDomainError(shared.CodeConcurrencyConflict,
		fmt.Sprintf("Stock of product %d kept changing; gave up after %d retries", productID, s.maxRetries),
		shared.ErrConcurrencyConflict)
}

// Adjust applies a manual correction entered by a stockist
func (s *LedgerService) Adjust(ctx context.Context, req AdjustStockRequest) (*ApplyDeltaResult, error) {
	return s.ApplyDelta(ctx, req.ProductID, req.Quantity, req.Reason)
}

// ListMovements lists the movement log newest first
func (s *LedgerService) ListMovements(ctx context.Context, filter MovementListFilter) ([]StockMovementResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.ProductID > 0 {
		domainFilter.Filters["product_id"] = filter.ProductID
	}
	if filter.Type != "" {
		mt, err := inventory.ParseMovementType(filter.Type)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["type"] = mt
	}

	movements, err := s.movementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]StockMovementResponse, len(movements))
	for i := range movements {
		out[i] = ToStockMovementResponse(&movements[i])
	}
	return out, total, nil
}

// Reconcile compares a product's stock with the signed sum of its movements.
// A non-zero drift means some change was not logged.
func (s *LedgerService) Reconcile(ctx context.Context, productID int64) (stock, logged int64, err error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return 0, 0, err
	}
	logged, err = s.movementRepo.SumByProduct(ctx, productID)
	if err != nil {
		return 0, 0, err
	}
	return product.Stock, logged, nil
}

// publishDomainEvents publishes and clears the product's pending events
func (s *LedgerService) publishDomainEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		product.ClearDomainEvents()
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	product.ClearDomainEvents()
}
