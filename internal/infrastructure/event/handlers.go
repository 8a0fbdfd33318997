package event

import (
	"context"

	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockCounter is the metric sink for low-stock alerts
type LowStockCounter interface {
	RecordLowStock(ctx context.Context, productID int64)
}

// LowStockAlertHandler warns when a product crosses down to its minimum stock
type LowStockAlertHandler struct {
	logger  *zap.Logger
	counter LowStockCounter
}

// NewLowStockAlertHandler creates the handler; counter may be nil
func NewLowStockAlertHandler(logger *zap.Logger, counter LowStockCounter) *LowStockAlertHandler {
	return &LowStockAlertHandler{logger: logger, counter: counter}
}

// EventTypes implements shared.EventHandler
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductLowStock}
}

// Handle implements shared.EventHandler
func (h *LowStockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*catalog.ProductLowStockEvent)
	if !ok {
		return nil
	}
	h.logger.Warn("product reached minimum stock",
		zap.Int64("product_id", e.AggregateID()),
		zap.String("product_name", e.ProductName),
		zap.Int64("stock", e.Stock),
		zap.Int64("min_stock", e.MinStock),
	)
	if h.counter != nil {
		h.counter.RecordLowStock(ctx, e.AggregateID())
	}
	return nil
}

// CreditorAuditHandler writes an audit line for creditor balance changes
type CreditorAuditHandler struct {
	logger *zap.Logger
}

// NewCreditorAuditHandler creates the handler
func NewCreditorAuditHandler(logger *zap.Logger) *CreditorAuditHandler {
	return &CreditorAuditHandler{logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *CreditorAuditHandler) EventTypes() []string {
	return []string{
		finance.EventTypeCreditorOpened,
		finance.EventTypeCreditorPaymentRecorded,
		finance.EventTypeCreditorSettled,
	}
}

// Handle implements shared.EventHandler
func (h *CreditorAuditHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.Int64("creditor_id", event.AggregateID()),
	}
	switch e := event.(type) {
	case *finance.CreditorOpenedEvent:
		fields = append(fields, zap.Int64("customer_id", e.CustomerID), zap.Stringer("total_debt", e.TotalDebt))
	case *finance.CreditorPaymentRecordedEvent:
		fields = append(fields, zap.Stringer("amount", e.Amount), zap.Stringer("remaining", e.RemainingAmount))
	case *finance.CreditorSettledEvent:
		fields = append(fields, zap.Int64("customer_id", e.CustomerID))
	}
	h.logger.Info("creditor ledger changed", fields...)
	return nil
}
