package finance

import (
	"context"
	"time"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/partner"
	"github.com/erp/pdv/internal/domain/trade"
)

// CarneDocument is the data printed on a payment booklet
type CarneDocument struct {
	Creditor     finance.Creditor
	Customer     *partner.Customer
	Installments []finance.CarneInstallment
	Delivery     finance.DeliveryVia
	GeneratedAt  time.Time
}

// SaleReportDocument is the data printed on a creditor/sale summary
type SaleReportDocument struct {
	Creditor     finance.Creditor
	Customer     *partner.Customer
	Sale         *trade.Sale
	Installments []finance.CarneInstallment
	Payments     []finance.PaymentRecord
	Stats        finance.ScheduleStats
	GeneratedAt  time.Time
}

// Document is a rendered and stored file
type Document struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Size  int64  `json:"size"`
	Pages int    `json:"pages"`
}

// DocumentPrinter renders ledger documents to PDF and stores them
type DocumentPrinter interface {
	PrintCarne(ctx context.Context, doc CarneDocument) (*Document, error)
	PrintSaleReport(ctx context.Context, doc SaleReportDocument) (*Document, error)
}

// CarneNotifier delivers a carnê payload to an external system
type CarneNotifier interface {
	SendCarne(ctx context.Context, payload CarnePayload) error
}

// CarnePayload is the body posted to the carnê webhook
type CarnePayload struct {
	CreditorID   int64               `json:"creditor_id"`
	CustomerID   int64               `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	CustomerCPF  string              `json:"customer_cpf,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	Email        string              `json:"email,omitempty"`
	TotalDebt    string              `json:"total_debt"`
	Remaining    string              `json:"remaining_amount"`
	Installments []CarnePayloadLine  `json:"installments"`
	DocumentURL  string              `json:"document_url,omitempty"`
	SentAt       time.Time           `json:"sent_at"`
	Delivery     finance.DeliveryVia `json:"delivery"`
}

// CarnePayloadLine is one slip in the webhook payload
type CarnePayloadLine struct {
	Number  int       `json:"number"`
	DueDate time.Time `json:"due_date"`
	Amount  string    `json:"amount"`
	Paid    bool      `json:"paid"`
}
