// Package finance implements the crediário: creditors, carnê installments,
// payment history and the documents printed for them.
package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/partner"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/erp/pdv/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CreditRepositories groups the stores the credit service reads and writes
type CreditRepositories struct {
	Creditors    finance.CreditorRepository
	Installments finance.InstallmentRepository
	Payments     finance.PaymentRepository
	CreditSales  finance.CreditSaleRepository
	Customers    partner.CustomerRepository
	Sales        trade.SaleRepository
}

// CreditService manages creditors and their carnê
type CreditService struct {
	repos               CreditRepositories
	printer             DocumentPrinter
	notifier            CarneNotifier
	eventPublisher      shared.EventPublisher
	metrics             *telemetry.LedgerMetrics
	logger              *zap.Logger
	creditTerm          time.Duration
	scheduleConcurrency int
	now                 func() time.Time
}

// NewCreditService creates a new CreditService
func NewCreditService(repos CreditRepositories, logger *zap.Logger) *CreditService {
	return &CreditService{
		repos:               repos,
		logger:              logger,
		creditTerm:          finance.DefaultCreditTerm,
		scheduleConcurrency: 4,
		now:                 time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CreditService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the ledger metrics recorder
func (s *CreditService) SetMetrics(metrics *telemetry.LedgerMetrics) {
	s.metrics = metrics
}

// SetDocumentPrinter enables carnê and report rendering
func (s *CreditService) SetDocumentPrinter(printer DocumentPrinter) {
	s.printer = printer
}

// SetCarneNotifier enables carnê delivery
func (s *CreditService) SetCarneNotifier(notifier CarneNotifier) {
	s.notifier = notifier
}

// SetCreditTerm overrides the due-date offset of creditors opened at checkout
func (s *CreditService) SetCreditTerm(term time.Duration) {
	if term > 0 {
		s.creditTerm = term
	}
}

// SetScheduleConcurrency bounds parallel installment inserts
func (s *CreditService) SetScheduleConcurrency(n int) {
	if n > 0 {
		s.scheduleConcurrency = n
	}
}

// ---------------------------------------------------------------------------
// Creditors
// ---------------------------------------------------------------------------

// OpenCreditorForSale opens the creditor of a credit sale, due after the
// credit term
func (s *CreditService) OpenCreditorForSale(ctx context.Context, sale finance.SaleCredit, customerID int64) (*finance.Creditor, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "open_creditor_for_sale",
		attribute.Int64("sale_id", sale.SaleID),
		attribute.Int64("customer_id", customerID))
	defer span.End()

	customer, err := s.repos.Customers.FindByID(ctx, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	now := s.now()
	creditor, err := finance.NewCreditorForSale(sale, customer.ID, customer.Name, now)
	if err != nil {
		return nil, err
	}
	creditor.DueDate = now.Add(s.creditTerm)

	if err := s.repos.Creditors.Create(ctx, creditor); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishDomainEvents(ctx, creditor)
	return creditor, nil
}

// CreateCreditor registers a manual debt
func (s *CreditService) CreateCreditor(ctx context.Context, req CreateCreditorRequest) (*CreditorResponse, error) {
	customer, err := s.repos.Customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	creditor, err := finance.NewCreditor(finance.NewCreditorInput{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		SaleID:       req.SaleID,
		TotalDebt:    req.TotalDebt,
		DueDate:      req.DueDate,
		Description:  req.Description,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repos.Creditors.Create(ctx, creditor); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, creditor)
	return s.project(creditor), nil
}

// GetCreditor retrieves a creditor with its effective status
func (s *CreditService) GetCreditor(ctx context.Context, creditorID int64) (*CreditorResponse, error) {
	creditor, err := s.repos.Creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	return s.project(creditor), nil
}

// ListCreditors lists creditors; filtering by overdue matches pending rows
// past their due date
func (s *CreditService) ListCreditors(ctx context.Context, filter CreditorListFilter) ([]CreditorResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "due_date"
	domainFilter.OrderDir = "asc"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = strings.TrimSpace(filter.Search)
	if filter.CustomerID > 0 {
		domainFilter.Filters["customer_id"] = filter.CustomerID
	}
	if filter.Status != "" {
		status, err := finance.ParseCreditorStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["status"] = status
	}

	creditors, err := s.repos.Creditors.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Creditors.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CreditorResponse, len(creditors))
	for i := range creditors {
		out[i] = *s.project(&creditors[i])
	}
	return out, total, nil
}

// UpdateCreditor edits a creditor's debt, due date and description
func (s *CreditService) UpdateCreditor(ctx context.Context, creditorID int64, req UpdateCreditorRequest) (*CreditorResponse, error) {
	creditor, err := s.repos.Creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	if err := creditor.UpdateDetails(req.TotalDebt, req.DueDate, req.Description); err != nil {
		return nil, err
	}
	if err := s.repos.Creditors.SaveWithLock(ctx, creditor); err != nil {
		return nil, err
	}
	return s.project(creditor), nil
}

// DeleteCreditor removes a creditor with its installments, payment history
// and carried-over credit sale rows
func (s *CreditService) DeleteCreditor(ctx context.Context, creditorID int64) error {
	if _, err := s.repos.Creditors.FindByID(ctx, creditorID); err != nil {
		return err
	}
	if err := s.repos.Installments.DeleteByCreditor(ctx, creditorID); err != nil {
		return fmt.Errorf("delete installments: %w", err)
	}
	if err := s.repos.Payments.DeleteByCreditor(ctx, creditorID); err != nil {
		return fmt.Errorf("delete payment history: %w", err)
	}
	if err := s.repos.CreditSales.DeleteByCreditor(ctx, creditorID); err != nil {
		return fmt.Errorf("delete credit sales: %w", err)
	}
	if err := s.repos.Creditors.Delete(ctx, creditorID); err != nil {
		return err
	}
	s.logger.Info("Creditor deleted", zap.Int64("creditor_id", creditorID))
	return nil
}

// RecordPayment applies a partial payment and appends it to the history.
// The balance change is the committed step; a failed history insert comes
// back as a warning.
func (s *CreditService) RecordPayment(ctx context.Context, creditorID int64, req RecordPaymentRequest) (*PaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "record_payment",
		attribute.Int64("creditor_id", creditorID))
	defer span.End()

	creditor, err := s.repos.Creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	if err := creditor.RecordPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := s.repos.Creditors.SaveWithLock(ctx, creditor); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishDomainEvents(ctx, creditor)

	result := &PaymentResult{}
	paidOn := req.PaymentDate
	if paidOn.IsZero() {
		paidOn = s.now()
	}
	record, err := finance.NewPaymentRecord(creditor.ID, req.Amount, paidOn, req.Notes)
	if err == nil {
		err = s.repos.Payments.Create(context.WithoutCancel(ctx), record)
	}
	if err != nil {
		s.logger.Error("Payment applied but not added to history",
			zap.Int64("creditor_id", creditorID),
			zap.String("amount", req.Amount.String()),
			zap.Error(err))
		result.Warnings = append(result.Warnings, shared.NewWarning(shared.StepPaymentHistory,
			"payment of %s applied, but the history entry failed", req.Amount))
		s.metrics.RecordWarning(ctx, shared.StepPaymentHistory)
	} else {
		resp := ToPaymentResponse(record)
		result.Payment = &resp
	}

	result.Creditor = *s.project(creditor)
	return result, nil
}

// MarkCreditorPaid settles the whole debt regardless of installment states
func (s *CreditService) MarkCreditorPaid(ctx context.Context, creditorID int64) (*CreditorResponse, error) {
	creditor, err := s.repos.Creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	if err := creditor.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.repos.Creditors.SaveWithLock(ctx, creditor); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, creditor)
	return s.project(creditor), nil
}

// ListPayments returns a creditor's payment history, newest first
func (s *CreditService) ListPayments(ctx context.Context, creditorID int64) ([]PaymentResponse, error) {
	if _, err := s.repos.Creditors.FindByID(ctx, creditorID); err != nil {
		return nil, err
	}
	payments, err := s.repos.Payments.FindByCreditor(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out, nil
}

// ListCreditSales returns the carried-over per-sale installment rows
func (s *CreditService) ListCreditSales(ctx context.Context, creditorID int64) ([]CreditSaleResponse, error) {
	if _, err := s.repos.Creditors.FindByID(ctx, creditorID); err != nil {
		return nil, err
	}
	rows, err := s.repos.CreditSales.FindByCreditor(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	out := make([]CreditSaleResponse, len(rows))
	for i := range rows {
		out[i] = ToCreditSaleResponse(&rows[i])
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Carnê
// ---------------------------------------------------------------------------

// GenerateInstallmentSchedule replaces a creditor's carnê with count monthly
// installments of its remaining balance and renders the booklet. The
// schedule can only be replaced while none of it is paid. Inserts run in
// parallel; if any fails, the rows already written are removed, the
// previous schedule is written back and the error is returned.
func (s *CreditService) GenerateInstallmentSchedule(ctx context.Context, creditorID int64, req GenerateScheduleRequest) (*ScheduleResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "generate_schedule",
		attribute.Int64("creditor_id", creditorID),
		attribute.Int("count", req.Count))
	defer span.End()

	delivery, err := parseDelivery(req.DeliveryVia)
	if err != nil {
		return nil, err
	}
	creditor, err := s.repos.Creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	schedule, err := finance.BuildSchedule(creditor, req.Count)
	if err != nil {
		return nil, err
	}

	existing, err := s.repos.Installments.FindByCreditor(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	if finance.AnyPaid(existing) {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			"Carnê already has paid installments and cannot be regenerated")
	}
	if len(existing) > 0 {
		if err := s.repos.Installments.DeleteByCreditor(ctx, creditorID); err != nil {
			return nil, fmt.Errorf("clear previous schedule: %w", err)
		}
	}

	if err := s.insertSchedule(ctx, schedule); err != nil {
		telemetry.RecordError(span, err)
		if len(existing) > 0 {
			if rerr := s.restoreSchedule(context.WithoutCancel(ctx), existing); rerr != nil {
				s.logger.Error("Previous carnê could not be restored",
					zap.Int64("creditor_id", creditorID),
					zap.Error(rerr))
				return nil, errors.Join(err, rerr)
			}
		}
		return nil, err
	}
	s.metrics.RecordSchedule(ctx, len(schedule))

	installments := make([]finance.CarneInstallment, len(schedule))
	for i, inst := range schedule {
		installments[i] = *inst
	}
	result := &ScheduleResult{Installments: s.installmentResponses(installments)}

	creditor.ProjectStatus(s.now())
	doc, warning := s.renderCarne(ctx, creditor, installments, delivery)
	result.Document = doc
	if warning != nil {
		result.Warnings = append(result.Warnings, *warning)
	}
	return result, nil
}

func (s *CreditService) insertSchedule(ctx context.Context, schedule []*finance.CarneInstallment) error {
	var (
		mu      sync.Mutex
		written []int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.scheduleConcurrency)
	for _, inst := range schedule {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := s.repos.Installments.Create(gctx, inst); err != nil {
				return fmt.Errorf("installment %d: %w", inst.InstallmentNumber, err)
			}
			mu.Lock()
			written = append(written, inst.ID)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		return nil
	}

	if len(written) > 0 {
		if derr := s.repos.Installments.DeleteByIDs(context.WithoutCancel(ctx), written); derr != nil {
			s.logger.Error("Partial carnê left behind after failed schedule",
				zap.Int64s("installment_ids", written),
				zap.Error(derr))
			return errors.Join(err, derr)
		}
	}
	return err
}

// restoreSchedule writes back a schedule removed by a failed regeneration
func (s *CreditService) restoreSchedule(ctx context.Context, previous []finance.CarneInstallment) error {
	for i := range previous {
		inst := previous[i]
		if err := s.repos.Installments.Create(ctx, &inst); err != nil {
			return fmt.Errorf("restore installment %d: %w", inst.InstallmentNumber, err)
		}
	}
	return nil
}

// renderCarne prints the booklet when a printer is configured. Failures are
// reported as a warning; the schedule is already stored.
func (s *CreditService) renderCarne(ctx context.Context, creditor *finance.Creditor, installments []finance.CarneInstallment, delivery finance.DeliveryVia) (*Document, *shared.Warning) {
	if s.printer == nil {
		return nil, nil
	}
	customer, err := s.repos.Customers.FindByID(ctx, creditor.CustomerID)
	if err != nil && !shared.IsNotFound(err) {
		s.logger.Warn("Customer lookup failed for carnê", zap.Error(err))
	}
	doc, err := s.printer.PrintCarne(ctx, CarneDocument{
		Creditor:     *creditor,
		Customer:     customer,
		Installments: installments,
		Delivery:     delivery,
		GeneratedAt:  s.now(),
	})
	if err != nil {
		s.logger.Warn("Carnê not rendered", zap.Int64("creditor_id", creditor.ID), zap.Error(err))
		s.metrics.RecordWarning(ctx, shared.StepDocument)
		w := shared.NewWarning(shared.StepDocument, "carnê saved, but the printable booklet could not be generated")
		return nil, &w
	}
	return doc, nil
}

// ListInstallments returns a creditor's carnê ordered by number
func (s *CreditService) ListInstallments(ctx context.Context, creditorID int64) ([]InstallmentResponse, error) {
	installments, err := s.installments(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	return s.installmentResponses(installments), nil
}

// MarkInstallmentPaid flags one slip as paid. The creditor balance is not
// changed; payments against the debt go through RecordPayment.
func (s *CreditService) MarkInstallmentPaid(ctx context.Context, installmentID int64) (*InstallmentResponse, error) {
	inst, err := s.repos.Installments.FindByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := inst.MarkPaid(now); err != nil {
		return nil, err
	}
	if err := s.repos.Installments.SaveWithLock(ctx, inst); err != nil {
		return nil, err
	}
	resp := ToInstallmentResponse(inst, now)
	return &resp, nil
}

// RescheduleInstallment moves the due date of an unpaid slip
func (s *CreditService) RescheduleInstallment(ctx context.Context, installmentID int64, req RescheduleInstallmentRequest) (*InstallmentResponse, error) {
	inst, err := s.repos.Installments.FindByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if err := inst.Reschedule(req.DueDate); err != nil {
		return nil, err
	}
	if err := s.repos.Installments.SaveWithLock(ctx, inst); err != nil {
		return nil, err
	}
	resp := ToInstallmentResponse(inst, s.now())
	return &resp, nil
}

// NextDueDate returns the earliest unpaid installment, or nil when the carnê
// is fully paid or absent
func (s *CreditService) NextDueDate(ctx context.Context, creditorID int64) (*InstallmentResponse, error) {
	installments, err := s.installments(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	next := finance.NextDue(installments)
	if next == nil {
		return nil, nil
	}
	resp := ToInstallmentResponse(next, s.now())
	return &resp, nil
}

// Stats summarizes a creditor's carnê
func (s *CreditService) Stats(ctx context.Context, creditorID int64) (*CreditorStatsResponse, error) {
	creditor, err := s.repos.Creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	installments, err := s.repos.Installments.FindByCreditor(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	stats := &CreditorStatsResponse{
		ScheduleStats:     finance.ComputeStats(installments),
		CreditorRemaining: creditor.RemainingAmount,
	}
	for i := range installments {
		if installments[i].IsOverdue(now) {
			stats.OverdueCount++
		}
	}
	if next := finance.NextDue(installments); next != nil {
		resp := ToInstallmentResponse(next, now)
		stats.NextDue = &resp
	}
	return stats, nil
}

// SaleReport renders the creditor summary with its sale, carnê and payments
func (s *CreditService) SaleReport(ctx context.Context, creditorID int64) (*Document, error) {
	if s.printer == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Document rendering is disabled")
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "sale_report",
		attribute.Int64("creditor_id", creditorID))
	defer span.End()

	creditor, err := s.repos.Creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	creditor.ProjectStatus(s.now())

	customer, err := s.repos.Customers.FindByID(ctx, creditor.CustomerID)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	var sale *trade.Sale
	if creditor.SaleID != nil {
		sale, err = s.repos.Sales.FindByID(ctx, *creditor.SaleID)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
	}
	installments, err := s.repos.Installments.FindByCreditor(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	finance.SortByNumber(installments)
	payments, err := s.repos.Payments.FindByCreditor(ctx, creditorID)
	if err != nil {
		return nil, err
	}

	doc, err := s.printer.PrintSaleReport(ctx, SaleReportDocument{
		Creditor:     *creditor,
		Customer:     customer,
		Sale:         sale,
		Installments: installments,
		Payments:     payments,
		Stats:        finance.ComputeStats(installments),
		GeneratedAt:  s.now(),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, asTransient(err, "Report could not be generated")
	}
	return doc, nil
}

// SendCarne posts the creditor's carnê to the configured webhook, attaching
// the rendered booklet link when rendering is available
func (s *CreditService) SendCarne(ctx context.Context, creditorID int64, req SendCarneRequest) (*SendCarneResult, error) {
	if s.notifier == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Carnê delivery is not configured")
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "send_carne",
		attribute.Int64("creditor_id", creditorID))
	defer span.End()

	delivery, err := parseDelivery(req.DeliveryVia)
	if err != nil {
		return nil, err
	}
	creditor, err := s.repos.Creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	creditor.ProjectStatus(s.now())
	installments, err := s.repos.Installments.FindByCreditor(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	if len(installments) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Creditor has no carnê to send")
	}
	finance.SortByNumber(installments)

	customer, err := s.repos.Customers.FindByID(ctx, creditor.CustomerID)
	if err != nil {
		return nil, err
	}

	result := &SendCarneResult{SentAt: s.now()}
	doc, warning := s.renderCarne(ctx, creditor, installments, delivery)
	if warning != nil {
		result.Warnings = append(result.Warnings, *warning)
	}
	if doc != nil {
		result.DocumentURL = doc.URL
	}

	payload := CarnePayload{
		CreditorID:   creditor.ID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		CustomerCPF:  customer.CPF,
		Phone:        customer.Phone,
		Email:        customer.Email,
		TotalDebt:    creditor.TotalDebt.String(),
		Remaining:    creditor.RemainingAmount.String(),
		Installments: make([]CarnePayloadLine, len(installments)),
		DocumentURL:  result.DocumentURL,
		SentAt:       result.SentAt,
		Delivery:     delivery,
	}
	for i, inst := range installments {
		payload.Installments[i] = CarnePayloadLine{
			Number:  inst.InstallmentNumber,
			DueDate: inst.DueDate,
			Amount:  inst.Amount.String(),
			Paid:    inst.Paid,
		}
	}

	if err := s.notifier.SendCarne(ctx, payload); err != nil {
		telemetry.RecordError(span, err)
		return nil, asTransient(err, "Carnê could not be delivered")
	}
	s.logger.Info("Carnê sent",
		zap.Int64("creditor_id", creditorID),
		zap.Int("installments", len(installments)))
	return result, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (s *CreditService) installments(ctx context.Context, creditorID int64) ([]finance.CarneInstallment, error) {
	if _, err := s.repos.Creditors.FindByID(ctx, creditorID); err != nil {
		return nil, err
	}
	installments, err := s.repos.Installments.FindByCreditor(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	finance.SortByNumber(installments)
	return installments, nil
}

func (s *CreditService) installmentResponses(installments []finance.CarneInstallment) []InstallmentResponse {
	now := s.now()
	out := make([]InstallmentResponse, len(installments))
	for i := range installments {
		out[i] = ToInstallmentResponse(&installments[i], now)
	}
	return out
}

// project converts a creditor with its status as of now
func (s *CreditService) project(c *finance.Creditor) *CreditorResponse {
	projected := *c
	projected.ProjectStatus(s.now())
	resp := ToCreditorResponse(&projected)
	return &resp
}

func (s *CreditService) publishDomainEvents(ctx context.Context, creditor *finance.Creditor) {
	events := creditor.GetDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	creditor.ClearDomainEvents()
}

func parseDelivery(v string) (finance.DeliveryVia, error) {
	if v == "" {
		return finance.DeliveryViaBoth, nil
	}
	d := finance.DeliveryVia(v)
	if !d.IsValid() {
		return "", shared.NewValidationError(fmt.Sprintf("Invalid delivery option %q", v))
	}
	return d, nil
}

// asTransient keeps domain errors and wraps anything else as TRANSIENT
func asTransient(err error, message string) error {
	if shared.ErrorCode(err) != "" {
		return err
	}
	return shared.WrapDomainError(shared.CodeTransient, message, err)
}
