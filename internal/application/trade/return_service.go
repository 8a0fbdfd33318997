package trade

import (
	"context"
	"fmt"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/erp/pdv/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SaleFinalizer runs a checkout; exchanges use it for the replacement sale
type SaleFinalizer interface {
	FinalizeSale(ctx context.Context, in FinalizeSaleInput) (*FinalizeSaleResult, error)
}

// ReturnService records returns and exchanges against past sales
type ReturnService struct {
	saleRepo     trade.SaleRepository
	returnRepo   trade.ReturnRepository
	exchangeRepo trade.ExchangeRepository
	ledger       StockLedger
	sales        SaleFinalizer
	metrics      *telemetry.LedgerMetrics
	logger       *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(
	saleRepo trade.SaleRepository,
	returnRepo trade.ReturnRepository,
	exchangeRepo trade.ExchangeRepository,
	ledger StockLedger,
	sales SaleFinalizer,
	logger *zap.Logger,
) *ReturnService {
	return &ReturnService{
		saleRepo:     saleRepo,
		returnRepo:   returnRepo,
		exchangeRepo: exchangeRepo,
		ledger:       ledger,
		sales:        sales,
		logger:       logger,
	}
}

// SetMetrics sets the ledger metrics recorder
func (s *ReturnService) SetMetrics(metrics *telemetry.LedgerMetrics) {
	s.metrics = metrics
}

// ProcessReturn records goods coming back from a sale.
// A refund puts every non-damaged item back into stock; an exchange opens a
// pending Exchange and leaves stock alone until the replacement sale.
func (s *ReturnService) ProcessReturn(ctx context.Context, in ProcessReturnInput) (*ProcessReturnResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "process_return",
		attribute.Int64("sale_id", in.SaleID),
		telemetry.AttrReturnType.String(in.Type))
	defer span.End()

	typ, err := trade.ParseReturnType(in.Type)
	if err != nil {
		return nil, err
	}
	lines := make([]trade.ReturnLine, len(in.Lines))
	for i, l := range in.Lines {
		cond, err := trade.ParseItemCondition(l.Condition)
		if err != nil {
			return nil, err
		}
		lines[i] = trade.ReturnLine{ProductID: l.ProductID, Quantity: l.Quantity, Condition: cond}
	}

	sale, err := s.saleRepo.FindByID(ctx, in.SaleID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	already, err := s.returnRepo.ReturnedQuantities(ctx, sale.ID)
	if err != nil {
		return nil, err
	}

	ret, err := trade.NewReturn(sale, lines, in.Reason, typ, in.OperatorID, already)
	if err != nil {
		return nil, err
	}
	if err := s.returnRepo.Create(ctx, ret); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	postCtx := context.WithoutCancel(ctx)
	result := &ProcessReturnResult{}

	for _, item := range ret.RestockItems() {
		res, err := s.ledger.ApplyDelta(postCtx, item.ProductID, item.Quantity, ret.RestockReason())
		if err != nil {
			s.logger.Error("Returned item not restocked",
				zap.Int64("return_id", ret.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err))
			result.Warnings = append(result.Warnings, shared.NewWarning(shared.StepRestock,
				"%d of %s were not put back into stock; adjust it manually", item.Quantity, item.ProductName))
			continue
		}
		result.Warnings = append(result.Warnings, res.Warnings...)
	}

	if ret.Type == trade.ReturnTypeExchange {
		exchange, err := trade.NewExchangeFromReturn(ret)
		if err == nil {
			err = s.exchangeRepo.Create(postCtx, exchange)
		}
		if err != nil {
			s.logger.Error("Exchange not opened for return",
				zap.Int64("return_id", ret.ID),
				zap.Error(err))
			result.Warnings = append(result.Warnings, shared.NewWarning(shared.StepExchange,
				"return recorded, but the exchange could not be opened"))
		} else {
			resp := ToExchangeResponse(exchange)
			result.Exchange = &resp
		}
	}

	result.Return = ToReturnResponse(ret)
	s.metrics.RecordReturn(postCtx, string(ret.Type))
	for _, w := range result.Warnings {
		s.metrics.RecordWarning(postCtx, w.Step)
	}
	return result, nil
}

// CompleteExchange runs the replacement sale of a pending exchange and links
// it. The replacement is a normal checkout with its own stock decrements.
func (s *ReturnService) CompleteExchange(ctx context.Context, exchangeID int64, in FinalizeSaleInput) (*CompleteExchangeResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "complete_exchange",
		attribute.Int64("exchange_id", exchangeID))
	defer span.End()

	exchange, err := s.exchangeRepo.FindByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange.Status != trade.ReturnStatusPending {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot complete exchange in %s status", exchange.Status))
	}
	if in.CustomerID == nil && exchange.CustomerID != nil {
		id := *exchange.CustomerID
		in.CustomerID = &id
	}

	sold, err := s.sales.FinalizeSale(ctx, in)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &CompleteExchangeResult{Sale: sold.Sale, Warnings: sold.Warnings}
	replacement := sold.sale
	if replacement == nil {
		replacement = &trade.Sale{BaseEntity: shared.BaseEntity{ID: sold.Sale.ID}}
	}
	if err := exchange.LinkReplacementSale(replacement); err != nil {
		return nil, err
	}
	if err := s.exchangeRepo.SaveWithLock(context.WithoutCancel(ctx), exchange); err != nil {
		s.logger.Error("Replacement sale not linked to exchange",
			zap.Int64("exchange_id", exchangeID),
			zap.Int64("sale_id", sold.Sale.ID),
			zap.Error(err))
		result.Warnings = append(result.Warnings, shared.NewWarning(shared.StepExchange,
			"%s recorded, but exchange #%d still shows pending", replacement.Reference(), exchangeID))
	}
	result.Exchange = ToExchangeResponse(exchange)
	return result, nil
}

// UpdateReturnStatus moves a pending return to processed or cancelled
func (s *ReturnService) UpdateReturnStatus(ctx context.Context, returnID int64, req UpdateStatusRequest) (*ReturnResponse, error) {
	target, err := trade.ParseReturnStatus(req.Status)
	if err != nil {
		return nil, err
	}
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if err := ret.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.returnRepo.SaveWithLock(ctx, ret); err != nil {
		return nil, err
	}
	response := ToReturnResponse(ret)
	return &response, nil
}

// UpdateExchangeStatus moves a pending exchange to processed or cancelled
func (s *ReturnService) UpdateExchangeStatus(ctx context.Context, exchangeID int64, req UpdateStatusRequest) (*ExchangeResponse, error) {
	target, err := trade.ParseReturnStatus(req.Status)
	if err != nil {
		return nil, err
	}
	exchange, err := s.exchangeRepo.FindByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	if err := exchange.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.exchangeRepo.SaveWithLock(ctx, exchange); err != nil {
		return nil, err
	}
	response := ToExchangeResponse(exchange)
	return &response, nil
}

// GetReturn retrieves a return by ID
func (s *ReturnService) GetReturn(ctx context.Context, returnID int64) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	response := ToReturnResponse(ret)
	return &response, nil
}

// GetExchange retrieves an exchange by ID
func (s *ReturnService) GetExchange(ctx context.Context, exchangeID int64) (*ExchangeResponse, error) {
	exchange, err := s.exchangeRepo.FindByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	response := ToExchangeResponse(exchange)
	return &response, nil
}

// ListReturns lists returns newest first
func (s *ReturnService) ListReturns(ctx context.Context, filter ReturnListFilter) ([]ReturnResponse, int64, error) {
	domainFilter, err := returnFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	if filter.SaleID > 0 {
		domainFilter.Filters["sale_id"] = filter.SaleID
	}
	if filter.Type != "" {
		typ, err := trade.ParseReturnType(filter.Type)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["type"] = typ
	}

	returns, err := s.returnRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.returnRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ReturnResponse, len(returns))
	for i := range returns {
		out[i] = ToReturnResponse(&returns[i])
	}
	return out, total, nil
}

// ListExchanges lists exchanges newest first
func (s *ReturnService) ListExchanges(ctx context.Context, filter ReturnListFilter) ([]ExchangeResponse, int64, error) {
	domainFilter, err := returnFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	if filter.SaleID > 0 {
		domainFilter.Filters["original_sale_id"] = filter.SaleID
	}

	exchanges, err := s.exchangeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.exchangeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ExchangeResponse, len(exchanges))
	for i := range exchanges {
		out[i] = ToExchangeResponse(&exchanges[i])
	}
	return out, total, nil
}

func returnFilter(filter ReturnListFilter) (shared.Filter, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status, err := trade.ParseReturnStatus(filter.Status)
		if err != nil {
			return domainFilter, err
		}
		domainFilter.Filters["status"] = status
	}
	return domainFilter, nil
}
