package trade

import (
	"time"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/erp/pdv/internal/domain/trade"
)

// ===================== Sales =====================

// SaleLineRequest is one cart line. Name and price come from the product at
// checkout time, never from the client.
type SaleLineRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int64 `json:"quantity" binding:"required,min=1,max=1000000"`
}

// FinalizeSaleInput is the confirmed cart
type FinalizeSaleInput struct {
	Items          []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod  string            `json:"payment_method" binding:"required"`
	Discount       valueobject.Money `json:"discount"`
	CustomerID     *int64            `json:"customer_id"`
	Installments   int               `json:"installments" binding:"omitempty,min=1,max=120"`
	OperatorID     int64             `json:"-"`
	IdempotencyKey string            `json:"-"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ProductID   int64             `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int64             `json:"quantity"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Total       valueobject.Money `json:"total"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID               int64              `json:"id"`
	Items            []SaleItemResponse `json:"items"`
	Subtotal         valueobject.Money  `json:"subtotal"`
	Discount         valueobject.Money  `json:"discount"`
	Total            valueobject.Money  `json:"total"`
	PaymentMethod    string             `json:"payment_method"`
	CustomerID       *int64             `json:"customer_id,omitempty"`
	Installments     int                `json:"installments"`
	InstallmentValue valueobject.Money  `json:"installment_value"`
	UserID           int64              `json:"user_id"`
	CreatedAt        time.Time          `json:"created_at"`
}

// CreditorSummary is the creditor opened for a credit sale
type CreditorSummary struct {
	ID          int64             `json:"id"`
	TotalDebt   valueobject.Money `json:"total_debt"`
	DueDate     time.Time         `json:"due_date"`
	Description string            `json:"description"`
}

// FinalizeSaleResult is the committed sale plus the outcome of its
// secondary steps
type FinalizeSaleResult struct {
	Sale     SaleResponse     `json:"sale"`
	Creditor *CreditorSummary `json:"creditor,omitempty"`
	Warnings []shared.Warning `json:"-"`

	sale *trade.Sale
}

// SaleListFilter represents filter options for the sales history
type SaleListFilter struct {
	CustomerID    int64     `form:"customer_id"`
	PaymentMethod string    `form:"payment_method"`
	From          time.Time `form:"from" time_format:"2006-01-02"`
	To            time.Time `form:"to" time_format:"2006-01-02"`
	Page          int       `form:"page" binding:"omitempty,min=1"`
	PageSize      int       `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total(),
		}
	}
	return SaleResponse{
		ID:               s.ID,
		Items:            items,
		Subtotal:         s.Subtotal,
		Discount:         s.Discount,
		Total:            s.Total,
		PaymentMethod:    string(s.PaymentMethod),
		CustomerID:       s.CustomerID,
		Installments:     s.Installments,
		InstallmentValue: s.InstallmentValue,
		UserID:           s.UserID,
		CreatedAt:        s.CreatedAt,
	}
}

func toCreditorSummary(c *finance.Creditor) *CreditorSummary {
	return &CreditorSummary{
		ID:          c.ID,
		TotalDebt:   c.TotalDebt,
		DueDate:     c.DueDate,
		Description: c.Description,
	}
}

// ===================== Returns and exchanges =====================

// ReturnLineRequest selects a quantity of one product of the sale
type ReturnLineRequest struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Quantity  int64  `json:"quantity" binding:"min=0"`
	Condition string `json:"condition" binding:"omitempty,oneof=new used damaged"`
}

// ProcessReturnInput is a return or exchange request
type ProcessReturnInput struct {
	SaleID     int64               `json:"sale_id" binding:"required,min=1"`
	Lines      []ReturnLineRequest `json:"items" binding:"required,min=1,dive"`
	Reason     string              `json:"reason" binding:"required,max=500"`
	Type       string              `json:"type" binding:"required,oneof=return exchange"`
	OperatorID int64               `json:"-"`
}

// UpdateStatusRequest moves a return or exchange to a terminal status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processed cancelled"`
}

// ReturnItemResponse represents a returned line
type ReturnItemResponse struct {
	ProductID   int64             `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int64             `json:"quantity"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Condition   string            `json:"condition"`
}

// ReturnResponse represents a return in API responses
type ReturnResponse struct {
	ID          int64                `json:"id"`
	SaleID      int64                `json:"sale_id"`
	CustomerID  *int64               `json:"customer_id,omitempty"`
	UserID      int64                `json:"user_id"`
	Type        string               `json:"type"`
	Reason      string               `json:"reason"`
	Items       []ReturnItemResponse `json:"items"`
	TotalRefund valueobject.Money    `json:"total_refund"`
	Status      string               `json:"status"`
	ProcessedAt *time.Time           `json:"processed_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ExchangeResponse represents an exchange in API responses
type ExchangeResponse struct {
	ID             int64                `json:"id"`
	OriginalSaleID int64                `json:"original_sale_id"`
	NewSaleID      *int64               `json:"new_sale_id,omitempty"`
	ReturnID       *int64               `json:"return_id,omitempty"`
	CustomerID     *int64               `json:"customer_id,omitempty"`
	UserID         int64                `json:"user_id"`
	Reason         string               `json:"reason"`
	ReturnedItems  []ReturnItemResponse `json:"returned_items"`
	NewItems       []SaleItemResponse   `json:"new_items"`
	Status         string               `json:"status"`
	ProcessedAt    *time.Time           `json:"processed_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ProcessReturnResult is the recorded return, the exchange it opened (if
// any) and secondary-step warnings
type ProcessReturnResult struct {
	Return   ReturnResponse    `json:"return"`
	Exchange *ExchangeResponse `json:"exchange,omitempty"`
	Warnings []shared.Warning  `json:"-"`
}

// CompleteExchangeResult is the exchange after its replacement sale
type CompleteExchangeResult struct {
	Exchange ExchangeResponse `json:"exchange"`
	Sale     SaleResponse     `json:"sale"`
	Warnings []shared.Warning `json:"-"`
}

// ReturnListFilter represents filter options for returns and exchanges
type ReturnListFilter struct {
	SaleID   int64  `form:"sale_id"`
	Status   string `form:"status" binding:"omitempty,oneof=pending processed cancelled"`
	Type     string `form:"type" binding:"omitempty,oneof=return exchange"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func toReturnItems(items []trade.ReturnItem) []ReturnItemResponse {
	out := make([]ReturnItemResponse, len(items))
	for i, item := range items {
		out[i] = ReturnItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Condition:   string(item.Condition),
		}
	}
	return out
}

// ToReturnResponse converts a domain Return to ReturnResponse
func ToReturnResponse(r *trade.Return) ReturnResponse {
	return ReturnResponse{
		ID:          r.ID,
		SaleID:      r.SaleID,
		CustomerID:  r.CustomerID,
		UserID:      r.UserID,
		Type:        string(r.Type),
		Reason:      r.Reason,
		Items:       toReturnItems(r.Items),
		TotalRefund: r.TotalRefund,
		Status:      r.Status.String(),
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// ToExchangeResponse converts a domain Exchange to ExchangeResponse
func ToExchangeResponse(e *trade.Exchange) ExchangeResponse {
	newItems := make([]SaleItemResponse, len(e.NewItems))
	for i, item := range e.NewItems {
		newItems[i] = SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total(),
		}
	}
	return ExchangeResponse{
		ID:             e.ID,
		OriginalSaleID: e.OriginalSaleID,
		NewSaleID:      e.NewSaleID,
		ReturnID:       e.ReturnID,
		CustomerID:     e.CustomerID,
		UserID:         e.UserID,
		Reason:         e.Reason,
		ReturnedItems:  toReturnItems(e.ReturnedItems),
		NewItems:       newItems,
		Status:         e.Status.String(),
		ProcessedAt:    e.ProcessedAt,
		CreatedAt:      e.CreatedAt,
	}
}
