package printing

import (
	"context"
	"fmt"
	"time"

	financeapp "github.com/erp/pdv/internal/application/finance"
	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentPrinter renders ledger documents and stores the PDFs
type DocumentPrinter struct {
	renderer  PDFRenderer
	storage   PDFStorage
	templates *TemplateEngine
	storeName string
	logger    *zap.Logger
}

// NewDocumentPrinter wires a renderer and a storage backend together
func NewDocumentPrinter(renderer PDFRenderer, storage PDFStorage, storeName string, logger *zap.Logger) (*DocumentPrinter, error) {
	templates, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}
	if storeName == "" {
		storeName = "PDV"
	}
	return &DocumentPrinter{
		renderer:  renderer,
		storage:   storage,
		templates: templates,
		storeName: storeName,
		logger:    logger.Named("printing"),
	}, nil
}

type carneSlip struct {
	Number  int
	DueDate time.Time
	Amount  valueobject.Money
	Paid    bool
	PaidAt  time.Time
	Copy    finance.DeliveryVia
}

type carneView struct {
	StoreName    string
	CreditorID   int64
	CustomerName string
	CustomerCPF  string
	Description  string
	Count        int
	Total        valueobject.Money
	Slips        []carneSlip
	GeneratedAt  time.Time
}

type saleReportView struct {
	StoreName    string
	CustomerName string
	CustomerCPF  string
	Status       string
	Creditor     finance.Creditor
	Sale         *trade.Sale
	Installments []finance.CarneInstallment
	Payments     []finance.PaymentRecord
	Stats        finance.ScheduleStats
	GeneratedAt  time.Time
}

// PrintCarne renders one slip per installment and requested copy
func (p *DocumentPrinter) PrintCarne(ctx context.Context, doc financeapp.CarneDocument) (*financeapp.Document, error) {
	delivery := doc.Delivery
	if !delivery.IsValid() {
		delivery = finance.DeliveryViaCustomer
	}
	view := carneView{
		StoreName:    p.storeName,
		CreditorID:   doc.Creditor.ID,
		CustomerName: doc.Creditor.CustomerName,
		Description:  doc.Creditor.Description,
		Count:        len(doc.Installments),
		GeneratedAt:  generatedAt(doc.GeneratedAt),
	}
	if doc.Customer != nil {
		view.CustomerName = doc.Customer.Name
		view.CustomerCPF = doc.Customer.CPF
	}
	for _, inst := range doc.Installments {
		view.Total = view.Total.Add(inst.Amount)
		for _, copyVia := range delivery.Copies() {
			slip := carneSlip{
				Number:  inst.InstallmentNumber,
				DueDate: inst.DueDate,
				Amount:  inst.Amount,
				Paid:    inst.Paid,
				Copy:    copyVia,
			}
			if inst.PaidAt != nil {
				slip.PaidAt = *inst.PaidAt
			}
			view.Slips = append(view.Slips, slip)
		}
	}

	return p.print(ctx, templateCarne, view, fmt.Sprintf("carne-%d", doc.Creditor.ID), fmt.Sprintf("Carnê %d", doc.Creditor.ID))
}

// PrintSaleReport renders the creditor summary with its originating sale
func (p *DocumentPrinter) PrintSaleReport(ctx context.Context, doc financeapp.SaleReportDocument) (*financeapp.Document, error) {
	view := saleReportView{
		StoreName:    p.storeName,
		CustomerName: doc.Creditor.CustomerName,
		Status:       statusLabel(doc.Creditor.Status),
		Creditor:     doc.Creditor,
		Sale:         doc.Sale,
		Installments: doc.Installments,
		Payments:     doc.Payments,
		Stats:        doc.Stats,
		GeneratedAt:  generatedAt(doc.GeneratedAt),
	}
	if doc.Customer != nil {
		view.CustomerName = doc.Customer.Name
		view.CustomerCPF = doc.Customer.CPF
	}

	return p.print(ctx, templateSaleReport, view, fmt.Sprintf("report-%d", doc.Creditor.ID), fmt.Sprintf("Relatório %d", doc.Creditor.ID))
}

func (p *DocumentPrinter) print(ctx context.Context, tmpl string, view any, keyPrefix, title string) (*financeapp.Document, error) {
	html, err := p.templates.Execute(tmpl, view)
	if err != nil {
		return nil, err
	}
	rendered, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:      html,
		Title:     title,
		PaperSize: PaperSizeA4,
		Margins:   DefaultMargins(),
	})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%s-%s.pdf", time.Now().Format("2006/01"), keyPrefix, keyPrefix, uuid.NewString()[:8])
	stored, err := p.storage.Store(ctx, &StoreRequest{Key: key, PDFData: rendered.PDFData})
	if err != nil {
		return nil, err
	}

	p.logger.Info("document printed",
		zap.String("template", tmpl),
		zap.String("key", stored.Path),
		zap.Int("pages", rendered.PageCount))

	return &financeapp.Document{
		Key:   stored.Path,
		URL:   stored.URL,
		Size:  stored.Size,
		Pages: rendered.PageCount,
	}, nil
}

func statusLabel(s finance.CreditorStatus) string {
	switch s {
	case finance.CreditorStatusPaid:
		return "Pago"
	case finance.CreditorStatusOverdue:
		return "Atrasado"
	}
	return "Pendente"
}

func generatedAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

var _ financeapp.DocumentPrinter = (*DocumentPrinter)(nil)
