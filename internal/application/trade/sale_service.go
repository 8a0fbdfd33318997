// Package trade implements checkout, returns and exchanges.
package trade

import (
	"context"
	"fmt"
	"time"

	inventoryapp "github.com/erp/pdv/internal/application/inventory"
	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/partner"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/erp/pdv/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CreditLedgerWarning is shown when a credit sale was stored but its
// creditor could not be opened
const CreditLedgerWarning = "sale recorded, but credit ledger entry failed; add it manually in Creditors"

// StockLedger applies stock deltas
type StockLedger interface {
	ApplyDelta(ctx context.Context, productID, signedQuantity int64, reason string) (*inventoryapp.ApplyDeltaResult, error)
}

// CreditOpener opens the creditor of a credit sale
type CreditOpener interface {
	OpenCreditorForSale(ctx context.Context, sale finance.SaleCredit, customerID int64) (*finance.Creditor, error)
}

// SaleService finalizes checkouts and serves the sales history
type SaleService struct {
	productRepo      catalog.ProductRepository
	saleRepo         trade.SaleRepository
	customerRepo     partner.CustomerRepository
	ledger           StockLedger
	credit           CreditOpener
	idempotency      shared.IdempotencyStore
	idempotencyTTL   time.Duration
	metrics          *telemetry.LedgerMetrics
	logger           *zap.Logger
	stockConcurrency int
}

// NewSaleService creates a new SaleService
func NewSaleService(
	productRepo catalog.ProductRepository,
	saleRepo trade.SaleRepository,
	customerRepo partner.CustomerRepository,
	ledger StockLedger,
	credit CreditOpener,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		productRepo:      productRepo,
		saleRepo:         saleRepo,
		customerRepo:     customerRepo,
		ledger:           ledger,
		credit:           credit,
		idempotencyTTL:   24 * time.Hour,
		logger:           logger,
		stockConcurrency: 4,
	}
}

// SetIdempotencyStore enables duplicate-checkout detection
func (s *SaleService) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// SetMetrics sets the ledger metrics recorder
func (s *SaleService) SetMetrics(metrics *telemetry.LedgerMetrics) {
	s.metrics = metrics
}

// SetStockConcurrency bounds the parallel stock updates of one sale
func (s *SaleService) SetStockConcurrency(n int) {
	if n > 0 {
		s.stockConcurrency = n
	}
}

// FinalizeSale validates the cart, stores the sale, then decrements stock
// and opens the creditor of a credit sale. Once the sale row is written the
// call succeeds; stock or credit failures are returned as warnings.
func (s *SaleService) FinalizeSale(ctx context.Context, in FinalizeSaleInput) (*FinalizeSaleResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "finalize_sale",
		telemetry.AttrPaymentMethod.String(in.PaymentMethod),
		attribute.Int("lines", len(in.Items)))
	defer span.End()

	sale, err := s.prepareSale(ctx, in)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var warnings []shared.Warning
	if in.IdempotencyKey != "" && s.idempotency != nil {
		fresh, err := s.idempotency.MarkProcessed(ctx, idempotencyKey(in.IdempotencyKey), s.idempotencyTTL)
		switch {
		case err != nil:
			s.logger.Warn("Idempotency store unavailable, continuing without duplicate check",
				zap.String("key", in.IdempotencyKey), zap.Error(err))
			warnings = append(warnings, shared.NewWarning(shared.StepIdempotencyKey,
				"duplicate-submission check unavailable"))
		case !fresh:
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "This sale was already submitted")
		}
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		if in.IdempotencyKey != "" && s.idempotency != nil {
			if ferr := s.idempotency.Forget(ctx, idempotencyKey(in.IdempotencyKey)); ferr != nil {
				s.logger.Warn("Failed to release idempotency key", zap.Error(ferr))
			}
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("sale_id", sale.ID))

	// the sale is committed; follow-up steps must not be cut short by the client
	postCtx := context.WithoutCancel(ctx)

	result := &FinalizeSaleResult{sale: sale}
	warnings = append(warnings, s.decrementStock(postCtx, sale)...)

	if sale.IsCredit() {
		creditor, err := s.credit.OpenCreditorForSale(postCtx, finance.SaleCredit{
			SaleID:           sale.ID,
			Total:            sale.Total,
			Installments:     sale.Installments,
			InstallmentValue: sale.InstallmentValue,
		}, *sale.CustomerID)
		if err != nil {
			s.logger.Error("Credit sale stored without creditor",
				zap.Int64("sale_id", sale.ID),
				zap.Int64("customer_id", *sale.CustomerID),
				zap.Error(err))
			warnings = append(warnings, shared.Warning{Step: shared.StepCreditLedger, Message: CreditLedgerWarning})
		} else {
			result.Creditor = toCreditorSummary(creditor)
		}
	}

	result.Sale = ToSaleResponse(sale)
	result.Warnings = warnings
	s.metrics.RecordSale(postCtx, string(sale.PaymentMethod), sale.Total)
	for _, w := range warnings {
		s.metrics.RecordWarning(postCtx, w.Step)
	}

	s.logger.Info("Sale finalized",
		zap.Int64("sale_id", sale.ID),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.String("total", sale.Total.String()),
		zap.Int("warnings", len(warnings)))
	return result, nil
}

// prepareSale runs every check that must pass before anything is written
func (s *SaleService) prepareSale(ctx context.Context, in FinalizeSaleInput) (*trade.Sale, error) {
	if len(in.Items) == 0 {
		return nil, shared.NewValidationError("Cart is empty")
	}
	method, err := trade.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(in.Items))
	seen := make(map[int64]bool, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, shared.NewValidationError(fmt.Sprintf("Quantity for product %d must be positive", line.ProductID))
		}
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]trade.SaleItem, 0, len(in.Items))
	for _, line := range in.Items {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, shared.NewNotFoundError(fmt.Sprintf("Product %d not found", line.ProductID))
		}
		items = append(items, trade.SaleItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
		})
	}

	if in.CustomerID != nil && *in.CustomerID > 0 {
		if _, err := s.customerRepo.FindByID(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
	}

	return trade.NewSale(trade.NewSaleInput{
		Items:         items,
		PaymentMethod: method,
		Discount:      in.Discount,
		CustomerID:    in.CustomerID,
		Installments:  in.Installments,
		UserID:        in.OperatorID,
	})
}

// decrementStock applies one negative delta per sale line in parallel.
// Every line is attempted; failures become warnings in line order.
func (s *SaleService) decrementStock(ctx context.Context, sale *trade.Sale) []shared.Warning {
	perLine := make([][]shared.Warning, len(sale.Items))
	reason := sale.Reference()

	var g errgroup.Group
	g.SetLimit(s.stockConcurrency)
	for i, item := range sale.Items {
		g.Go(func() error {
			res, err := s.ledger.ApplyDelta(ctx, item.ProductID, -item.Quantity, reason)
			if err != nil {
				s.logger.Error("Stock not decremented for sale line",
					zap.Int64("sale_id", sale.ID),
					zap.Int64("product_id", item.ProductID),
					zap.Int64("quantity", item.Quantity),
					zap.Error(err))
				perLine[i] = []shared.Warning{shared.NewWarning(shared.StepStockUpdate,
					"stock of %s was not reduced by %d; adjust it manually", item.ProductName, item.Quantity)}
				return nil
			}
			perLine[i] = res.Warnings
			return nil
		})
	}
	_ = g.Wait()

	var out []shared.Warning
	for _, w := range perLine {
		out = append(out, w...)
	}
	return out
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, saleID int64) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// ListSales lists the sales history newest first. To is inclusive of the
// whole day.
func (s *SaleService) ListSales(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.CustomerID > 0 {
		domainFilter.Filters["customer_id"] = filter.CustomerID
	}
	if filter.PaymentMethod != "" {
		method, err := trade.ParsePaymentMethod(filter.PaymentMethod)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["payment_method"] = method
	}
	if !filter.From.IsZero() {
		domainFilter.Filters["from"] = filter.From
	}
	if !filter.To.IsZero() {
		domainFilter.Filters["to"] = filter.To.AddDate(0, 0, 1)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, 0, shared.NewValidationError("'to' must not be before 'from'")
	}

	sales, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses, total, nil
}

func idempotencyKey(key string) string {
	return "sale:" + key
}
