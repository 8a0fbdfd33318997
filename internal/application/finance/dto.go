package finance

import (
	"time"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// ===================== Creditors =====================

// CreateCreditorRequest is a manually entered debt
type CreateCreditorRequest struct {
	CustomerID  int64             `json:"customer_id" binding:"required,min=1"`
	TotalDebt   valueobject.Money `json:"total_debt" binding:"required,gt=0"`
	DueDate     time.Time         `json:"due_date" binding:"required"`
	Description string            `json:"description" binding:"max=500"`
	SaleID      *int64            `json:"sale_id"`
}

// UpdateCreditorRequest edits debt, due date and description
type UpdateCreditorRequest struct {
	TotalDebt   valueobject.Money `json:"total_debt" binding:"required,gt=0"`
	DueDate     time.Time         `json:"due_date" binding:"required"`
	Description string            `json:"description" binding:"max=500"`
}

// RecordPaymentRequest is a partial payment received from the customer
type RecordPaymentRequest struct {
	Amount      valueobject.Money `json:"amount" binding:"required,gt=0"`
	PaymentDate time.Time         `json:"payment_date"`
	Notes       string            `json:"notes" binding:"max=500"`
}

// GenerateScheduleRequest asks for a carnê of count monthly installments
type GenerateScheduleRequest struct {
	Count       int    `json:"installments" binding:"required,min=1,max=120"`
	DeliveryVia string `json:"delivery_via" binding:"omitempty,oneof=customer creditor both"`
}

// RescheduleInstallmentRequest moves the due date of an unpaid installment
type RescheduleInstallmentRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// SendCarneRequest selects which copies go with the carnê notification
type SendCarneRequest struct {
	DeliveryVia string `json:"delivery_via" binding:"omitempty,oneof=customer creditor both"`
}

// CreditorListFilter represents filter options for the creditor list
type CreditorListFilter struct {
	Search     string `form:"search"`
	CustomerID int64  `form:"customer_id"`
	Status     string `form:"status" binding:"omitempty,oneof=pending overdue paid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by" binding:"omitempty,oneof=due_date created_at remaining_amount customer_name"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreditorResponse represents a creditor in API responses. Status is the
// effective status at read time.
type CreditorResponse struct {
	ID              int64             `json:"id"`
	CustomerID      int64             `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	SaleID          *int64            `json:"sale_id,omitempty"`
	TotalDebt       valueobject.Money `json:"total_debt"`
	PaidAmount      valueobject.Money `json:"paid_amount"`
	RemainingAmount valueobject.Money `json:"remaining_amount"`
	DueDate         time.Time         `json:"due_date"`
	Description     string            `json:"description"`
	Status          string            `json:"status"`
	Version         int               `json:"version"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// InstallmentResponse represents a carnê installment
type InstallmentResponse struct {
	ID                int64             `json:"id"`
	CreditorID        int64             `json:"creditor_id"`
	InstallmentNumber int               `json:"installment_number"`
	DueDate           time.Time         `json:"due_date"`
	Amount            valueobject.Money `json:"amount"`
	Paid              bool              `json:"paid"`
	PaidAt            *time.Time        `json:"paid_at,omitempty"`
	Overdue           bool              `json:"overdue"`
}

// PaymentResponse represents a payment history entry
type PaymentResponse struct {
	ID          int64             `json:"id"`
	CreditorID  int64             `json:"creditor_id"`
	Amount      valueobject.Money `json:"amount"`
	PaymentDate time.Time         `json:"payment_date"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CreditSaleResponse represents a carried-over per-sale installment row
type CreditSaleResponse struct {
	ID                int64             `json:"id"`
	SaleID            int64             `json:"sale_id"`
	CreditorID        int64             `json:"creditor_id"`
	InstallmentNumber int               `json:"installment_number"`
	InstallmentValue  valueobject.Money `json:"installment_value"`
	DueDate           time.Time         `json:"due_date"`
	PaidDate          *time.Time        `json:"paid_date,omitempty"`
	Status            string            `json:"status"`
}

// ScheduleResult is the stored carnê, its rendered document and warnings
type ScheduleResult struct {
	Installments []InstallmentResponse `json:"installments"`
	Document     *Document             `json:"document,omitempty"`
	Warnings     []shared.Warning      `json:"-"`
}

// PaymentResult is the creditor after a payment and the history entry
type PaymentResult struct {
	Creditor CreditorResponse `json:"creditor"`
	Payment  *PaymentResponse `json:"payment,omitempty"`
	Warnings []shared.Warning `json:"-"`
}

// CreditorStatsResponse summarizes a creditor's booklet
type CreditorStatsResponse struct {
	finance.ScheduleStats
	CreditorRemaining valueobject.Money    `json:"creditor_remaining"`
	NextDue           *InstallmentResponse `json:"next_due,omitempty"`
	OverdueCount      int                  `json:"overdue_installments"`
}

// SendCarneResult reports a delivered carnê
type SendCarneResult struct {
	SentAt      time.Time        `json:"sent_at"`
	DocumentURL string           `json:"document_url,omitempty"`
	Warnings    []shared.Warning `json:"-"`
}

// ToCreditorResponse converts a domain Creditor to CreditorResponse
func ToCreditorResponse(c *finance.Creditor) CreditorResponse {
	return CreditorResponse{
		ID:              c.ID,
		CustomerID:      c.CustomerID,
		CustomerName:    c.CustomerName,
		SaleID:          c.SaleID,
		TotalDebt:       c.TotalDebt,
		PaidAmount:      c.PaidAmount,
		RemainingAmount: c.RemainingAmount,
		DueDate:         c.DueDate,
		Description:     c.Description,
		Status:          c.Status.String(),
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToInstallmentResponse converts a domain installment to InstallmentResponse
func ToInstallmentResponse(i *finance.CarneInstallment, now time.Time) InstallmentResponse {
	return InstallmentResponse{
		ID:                i.ID,
		CreditorID:        i.CreditorID,
		InstallmentNumber: i.InstallmentNumber,
		DueDate:           i.DueDate,
		Amount:            i.Amount,
		Paid:              i.Paid,
		PaidAt:            i.PaidAt,
		Overdue:           i.IsOverdue(now),
	}
}

// ToPaymentResponse converts a domain PaymentRecord to PaymentResponse
func ToPaymentResponse(p *finance.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		CreditorID:  p.CreditorID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

// ToCreditSaleResponse converts a domain CreditSale to CreditSaleResponse
func ToCreditSaleResponse(cs *finance.CreditSale) CreditSaleResponse {
	return CreditSaleResponse{
		ID:                cs.ID,
		SaleID:            cs.SaleID,
		CreditorID:        cs.CreditorID,
		InstallmentNumber: cs.InstallmentNumber,
		InstallmentValue:  cs.InstallmentValue,
		DueDate:           cs.DueDate,
		PaidDate:          cs.PaidDate,
		Status:            string(cs.Status),
	}
}

// ===================== Expenses =====================

// CreateExpenseRequest represents a request to register a bill
type CreateExpenseRequest struct {
	Description string            `json:"description" binding:"required,max=500"`
	Amount      valueobject.Money `json:"amount" binding:"required,gt=0"`
	Category    string            `json:"category" binding:"max=100"`
	Supplier    string            `json:"supplier" binding:"max=200"`
	DueDate     *time.Time        `json:"due_date"`
}

// ExpenseListFilter represents filter options for expenses
type ExpenseListFilter struct {
	Paid     string `form:"paid" binding:"omitempty,oneof=true false"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	Amount      valueobject.Money `json:"amount"`
	Category    string            `json:"category,omitempty"`
	Supplier    string            `json:"supplier,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Paid        bool              `json:"paid"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ToExpenseResponse converts a domain Expense to ExpenseResponse
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Supplier:    e.Supplier,
		DueDate:     e.DueDate,
		Paid:        e.Paid,
		CreatedAt:   e.CreatedAt,
	}
}
