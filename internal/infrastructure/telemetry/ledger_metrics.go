package telemetry

import (
	"context"
	"fmt"

	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys
const (
	AttrPaymentMethod = attribute.Key("payment_method")
	AttrProductID     = attribute.Key("product_id")
	AttrStep          = attribute.Key("step")
	AttrReturnType    = attribute.Key("return_type")
)

// LedgerMetrics holds the business instruments for sales, stock and credit.
type LedgerMetrics struct {
	salesTotal          *Counter
	saleAmount          *Histogram
	stockConflicts      *Counter
	lowStock            *Counter
	warnings            *Counter
	schedulesGenerated  *Counter
	installmentsCreated *Counter
	returnsProcessed    *Counter
}

// NewLedgerMetrics registers every instrument on meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	var (
		m   LedgerMetrics
		err error
	)
	if m.salesTotal, err = NewCounter(meter, "pdv_sales_total", "Finalized sales", "{sale}"); err != nil {
		return nil, err
	}
	m.saleAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "pdv_sale_amount",
		Description: "Sale totals in BRL",
		Unit:        "BRL",
		Boundaries:  []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	if err != nil {
		return nil, err
	}
	if m.stockConflicts, err = NewCounter(meter, "pdv_stock_conflicts_total", "Optimistic stock update retries", "{conflict}"); err != nil {
		return nil, err
	}
	if m.lowStock, err = NewCounter(meter, "pdv_low_stock_total", "Products crossing their minimum stock", "{event}"); err != nil {
		return nil, err
	}
	if m.warnings, err = NewCounter(meter, "pdv_warnings_total", "Advisory step failures reported to callers", "{warning}"); err != nil {
		return nil, err
	}
	if m.schedulesGenerated, err = NewCounter(meter, "pdv_carne_schedules_total", "Installment schedules generated", "{schedule}"); err != nil {
		return nil, err
	}
	if m.installmentsCreated, err = NewCounter(meter, "pdv_carne_installments_total", "Installments created", "{installment}"); err != nil {
		return nil, err
	}
	if m.returnsProcessed, err = NewCounter(meter, "pdv_returns_total", "Returns and exchanges recorded", "{return}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// MustLedgerMetrics is NewLedgerMetrics for wiring code that cannot recover.
func MustLedgerMetrics(meter metric.Meter) *LedgerMetrics {
	m, err := NewLedgerMetrics(meter)
	if err != nil {
		panic(fmt.Sprintf("telemetry: %v", err))
	}
	return m
}

// RecordSale counts a finalized sale and its total.
func (m *LedgerMetrics) RecordSale(ctx context.Context, method string, total valueobject.Money) {
	if m == nil {
		return
	}
	m.salesTotal.Inc(ctx, AttrPaymentMethod.String(method))
	f, _ := total.Decimal().Float64()
	m.saleAmount.Record(ctx, f, AttrPaymentMethod.String(method))
}

// RecordStockConflict counts a lost compare-and-swap on a product row.
func (m *LedgerMetrics) RecordStockConflict(ctx context.Context, productID int64) {
	if m == nil {
		return
	}
	m.stockConflicts.Inc(ctx, AttrProductID.Int64(productID))
}

// RecordLowStock counts a product falling to its minimum stock.
func (m *LedgerMetrics) RecordLowStock(ctx context.Context, productID int64) {
	if m == nil {
		return
	}
	m.lowStock.Inc(ctx, AttrProductID.Int64(productID))
}

// RecordWarning counts an advisory failure by step.
func (m *LedgerMetrics) RecordWarning(ctx context.Context, step string) {
	if m == nil {
		return
	}
	m.warnings.Inc(ctx, AttrStep.String(step))
}

// RecordSchedule counts a generated carnê with n installments.
func (m *LedgerMetrics) RecordSchedule(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.schedulesGenerated.Inc(ctx)
	m.installmentsCreated.Add(ctx, int64(n))
}

// RecordReturn counts a return or exchange.
func (m *LedgerMetrics) RecordReturn(ctx context.Context, typ string) {
	if m == nil {
		return
	}
	m.returnsProcessed.Inc(ctx, AttrReturnType.String(typ))
}
