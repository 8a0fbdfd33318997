package finance

import (
	"context"
	"testing"
	"time"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/partner"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type creditFixture struct {
	svc          *CreditService
	creditors    *MockCreditorRepository
	installments *MockInstallmentRepository
	payments     *MockPaymentRepository
	creditSales  *MockCreditSaleRepository
	customers    *MockCustomerRepository
	sales        *MockSaleRepository
	publisher    *MockEventPublisher
}

func newCreditFixture() *creditFixture {
	f := &creditFixture{
		creditors:    new(MockCreditorRepository),
		installments: new(MockInstallmentRepository),
		payments:     new(MockPaymentRepository),
		creditSales:  new(MockCreditSaleRepository),
		customers:    new(MockCustomerRepository),
		sales:        new(MockSaleRepository),
		publisher:    new(MockEventPublisher),
	}
	f.svc = NewCreditService(CreditRepositories{
		Creditors:    f.creditors,
		Installments: f.installments,
		Payments:     f.payments,
		CreditSales:  f.creditSales,
		Customers:    f.customers,
		Sales:        f.sales,
	}, zap.NewNop())
	f.svc.SetEventPublisher(f.publisher)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func maria() *partner.Customer {
	c := &partner.Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              "Maria Souza",
		CPF:               "12345678909",
		Phone:             "11999990000",
	}
	c.ID = 40
	return c
}

func openCreditor(total int64, due time.Time) *finance.Creditor {
	c, err := finance.NewCreditor(finance.NewCreditorInput{
		CustomerID:   40,
		CustomerName: "Maria Souza",
		TotalDebt:    valueobject.Cents(total),
		DueDate:      due,
	})
	if err != nil {
		panic(err)
	}
	c.ID = 70
	c.ClearDomainEvents()
	return c
}

func TestOpenCreditorForSale(t *testing.T) {
	f := newCreditFixture()
	f.customers.On("FindByID", mock.Anything, int64(40)).Return(maria(), nil)
	f.creditors.On("Create", mock.Anything, mock.AnythingOfType("*finance.Creditor")).Return(nil)

	creditor, err := f.svc.OpenCreditorForSale(context.Background(), finance.SaleCredit{
		SaleID: 10, Total: valueobject.Cents(4770), Installments: 3, InstallmentValue: valueobject.Cents(1590),
	}, 40)
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", creditor.CustomerName)
	assert.Equal(t, valueobject.Cents(4770), creditor.RemainingAmount)
	assert.Equal(t, fixedNow.Add(30*24*time.Hour), creditor.DueDate)
	assert.Equal(t, "Sale #10 - 3x 15.90", creditor.Description)
	require.NotNil(t, creditor.SaleID)
	assert.Equal(t, int64(10), *creditor.SaleID)
	assert.Equal(t, []string{finance.EventTypeCreditorOpened}, f.publisher.eventTypes())
}

func TestOpenCreditorForSale_UnknownCustomer(t *testing.T) {
	f := newCreditFixture()
	f.customers.On("FindByID", mock.Anything, int64(41)).Return(nil, shared.ErrNotFound)

	_, err := f.svc.OpenCreditorForSale(context.Background(), finance.SaleCredit{SaleID: 10, Total: 100, Installments: 1, InstallmentValue: 100}, 41)
	assert.True(t, shared.IsNotFound(err))
	f.creditors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateInstallmentSchedule_SplitsRemaining(t *testing.T) {
	f := newCreditFixture()
	printer := new(MockDocumentPrinter)
	f.svc.SetDocumentPrinter(printer)

	due := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	creditor := openCreditor(10000, due)
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{}, nil)
	f.installments.On("Create", mock.Anything, mock.AnythingOfType("*finance.CarneInstallment")).Return(nil)
	f.customers.On("FindByID", mock.Anything, int64(40)).Return(maria(), nil)
	printer.On("PrintCarne", mock.Anything, mock.MatchedBy(func(doc CarneDocument) bool {
		return len(doc.Installments) == 3 && doc.Delivery == finance.DeliveryViaBoth
	})).Return(&Document{Key: "carne/70.pdf", URL: "/documents/carne/70.pdf"}, nil)

	result, err := f.svc.GenerateInstallmentSchedule(context.Background(), 70, GenerateScheduleRequest{Count: 3})
	require.NoError(t, err)
	require.Len(t, result.Installments, 3)
	assert.Empty(t, result.Warnings)
	require.NotNil(t, result.Document)
	assert.Equal(t, "/documents/carne/70.pdf", result.Document.URL)

	var sum valueobject.Money
	for i, inst := range result.Installments {
		assert.Equal(t, i+1, inst.InstallmentNumber)
		assert.Equal(t, due.AddDate(0, i, 0), inst.DueDate)
		sum = sum.Add(inst.Amount)
	}
	assert.Equal(t, valueobject.Cents(3333), result.Installments[0].Amount)
	assert.Equal(t, valueobject.Cents(3334), result.Installments[2].Amount)
	assert.Equal(t, valueobject.Cents(10000), sum)
	f.installments.AssertNotCalled(t, "DeleteByCreditor", mock.Anything, mock.Anything)
}

func TestGenerateInstallmentSchedule_ReplacesUnpaidSchedule(t *testing.T) {
	f := newCreditFixture()
	creditor := openCreditor(6000, fixedNow.AddDate(0, 1, 0))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{
		{CreditorID: 70, InstallmentNumber: 1, Amount: 6000},
	}, nil)
	f.installments.On("DeleteByCreditor", mock.Anything, int64(70)).Return(nil).Once()
	f.installments.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.GenerateInstallmentSchedule(context.Background(), 70, GenerateScheduleRequest{Count: 2})
	require.NoError(t, err)
	assert.Len(t, result.Installments, 2)
	assert.Nil(t, result.Document)
	f.installments.AssertExpectations(t)
}

func TestGenerateInstallmentSchedule_RefusesWhenPaid(t *testing.T) {
	f := newCreditFixture()
	creditor := openCreditor(6000, fixedNow.AddDate(0, 1, 0))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{
		{CreditorID: 70, InstallmentNumber: 1, Amount: 3000, Paid: true},
		{CreditorID: 70, InstallmentNumber: 2, Amount: 3000},
	}, nil)

	_, err := f.svc.GenerateInstallmentSchedule(context.Background(), 70, GenerateScheduleRequest{Count: 4})
	assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
	f.installments.AssertNotCalled(t, "DeleteByCreditor", mock.Anything, mock.Anything)
	f.installments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateInstallmentSchedule_RollsBackOnInsertFailure(t *testing.T) {
	f := newCreditFixture()
	f.svc.SetScheduleConcurrency(1)
	creditor := openCreditor(9000, fixedNow.AddDate(0, 1, 0))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{}, nil)
	f.installments.On("Create", mock.Anything, mock.MatchedBy(func(i *finance.CarneInstallment) bool {
		return i.InstallmentNumber == 2
	})).Return(shared.ErrTransient)
	f.installments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.installments.On("DeleteByIDs", mock.Anything, []int64{1001}).Return(nil).Once()

	_, err := f.svc.GenerateInstallmentSchedule(context.Background(), 70, GenerateScheduleRequest{Count: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrTransient)
	f.installments.AssertExpectations(t)
	f.installments.AssertNumberOfCalls(t, "Create", 2)
}

func TestGenerateInstallmentSchedule_RestoresPreviousScheduleOnFailure(t *testing.T) {
	f := newCreditFixture()
	f.svc.SetScheduleConcurrency(1)
	creditor := openCreditor(6000, fixedNow.AddDate(0, 1, 0))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{
		{CreditorID: 70, InstallmentNumber: 1, Amount: 6000},
	}, nil)
	f.installments.On("DeleteByCreditor", mock.Anything, int64(70)).Return(nil).Once()
	f.installments.On("Create", mock.Anything, mock.MatchedBy(func(i *finance.CarneInstallment) bool {
		return i.InstallmentNumber == 2
	})).Return(shared.ErrTransient)
	f.installments.On("Create", mock.Anything, mock.MatchedBy(func(i *finance.CarneInstallment) bool {
		return i.InstallmentNumber == 1 && i.Amount == valueobject.Cents(6000)
	})).Return(nil).Once()
	f.installments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.installments.On("DeleteByIDs", mock.Anything, []int64{1001}).Return(nil).Once()

	_, err := f.svc.GenerateInstallmentSchedule(context.Background(), 70, GenerateScheduleRequest{Count: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrTransient)
	f.installments.AssertExpectations(t)
	f.installments.AssertNumberOfCalls(t, "Create", 3)
}

func TestGenerateInstallmentSchedule_RenderFailureIsWarning(t *testing.T) {
	f := newCreditFixture()
	printer := new(MockDocumentPrinter)
	f.svc.SetDocumentPrinter(printer)
	creditor := openCreditor(5000, fixedNow.AddDate(0, 1, 0))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{}, nil)
	f.installments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.customers.On("FindByID", mock.Anything, int64(40)).Return(maria(), nil)
	printer.On("PrintCarne", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	result, err := f.svc.GenerateInstallmentSchedule(context.Background(), 70, GenerateScheduleRequest{Count: 2, DeliveryVia: "customer"})
	require.NoError(t, err)
	assert.Len(t, result.Installments, 2)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, shared.StepDocument, result.Warnings[0].Step)
}

func TestMarkInstallmentPaid_LeavesCreditorUntouched(t *testing.T) {
	f := newCreditFixture()
	inst := &finance.CarneInstallment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CreditorID:        70,
		InstallmentNumber: 1,
		DueDate:           fixedNow.AddDate(0, 0, -5),
		Amount:            valueobject.Cents(3333),
	}
	inst.ID = 1001
	f.installments.On("FindByID", mock.Anything, int64(1001)).Return(inst, nil)
	f.installments.On("SaveWithLock", mock.Anything, inst).Return(nil).Once()

	resp, err := f.svc.MarkInstallmentPaid(context.Background(), 1001)
	require.NoError(t, err)
	assert.True(t, resp.Paid)
	assert.False(t, resp.Overdue)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, fixedNow, *resp.PaidAt)

	_, err = f.svc.MarkInstallmentPaid(context.Background(), 1001)
	assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))

	assert.Empty(t, f.creditors.Calls)
	assert.Empty(t, f.payments.Calls)
}

func TestRecordPayment_SettlesAtZero(t *testing.T) {
	f := newCreditFixture()
	creditor := openCreditor(5000, fixedNow.AddDate(0, 0, 10))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.creditors.On("SaveWithLock", mock.Anything, creditor).Return(nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *finance.PaymentRecord) bool {
		return p.CreditorID == 70
	})).Return(nil)

	first, err := f.svc.RecordPayment(context.Background(), 70, RecordPaymentRequest{Amount: valueobject.Cents(2000)})
	require.NoError(t, err)
	assert.Equal(t, "pending", first.Creditor.Status)
	assert.Equal(t, valueobject.Cents(3000), first.Creditor.RemainingAmount)
	require.NotNil(t, first.Payment)
	assert.Equal(t, fixedNow, first.Payment.PaymentDate)

	second, err := f.svc.RecordPayment(context.Background(), 70, RecordPaymentRequest{Amount: valueobject.Cents(3000), Notes: "quitado"})
	require.NoError(t, err)
	assert.Equal(t, "paid", second.Creditor.Status)
	assert.True(t, second.Creditor.RemainingAmount.IsZero())
	assert.Equal(t, valueobject.Cents(5000), second.Creditor.PaidAmount)

	assert.Equal(t, []string{
		finance.EventTypeCreditorPaymentRecorded,
		finance.EventTypeCreditorPaymentRecorded,
		finance.EventTypeCreditorSettled,
	}, f.publisher.eventTypes())

	_, err = f.svc.RecordPayment(context.Background(), 70, RecordPaymentRequest{Amount: valueobject.Cents(1)})
	assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
}

func TestRecordPayment_RejectsOverpayment(t *testing.T) {
	f := newCreditFixture()
	creditor := openCreditor(5000, fixedNow.AddDate(0, 0, 10))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)

	_, err := f.svc.RecordPayment(context.Background(), 70, RecordPaymentRequest{Amount: valueobject.Cents(5001)})
	assert.True(t, shared.IsValidation(err))
	f.creditors.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestRecordPayment_HistoryFailureIsWarning(t *testing.T) {
	f := newCreditFixture()
	creditor := openCreditor(5000, fixedNow.AddDate(0, 0, 10))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.creditors.On("SaveWithLock", mock.Anything, creditor).Return(nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(shared.ErrTransient)

	result, err := f.svc.RecordPayment(context.Background(), 70, RecordPaymentRequest{Amount: valueobject.Cents(1000)})
	require.NoError(t, err)
	assert.Nil(t, result.Payment)
	assert.Equal(t, valueobject.Cents(4000), result.Creditor.RemainingAmount)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, shared.StepPaymentHistory, result.Warnings[0].Step)
}

func TestGetCreditor_ProjectsOverdue(t *testing.T) {
	f := newCreditFixture()
	creditor := openCreditor(5000, fixedNow.AddDate(0, 0, -1))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)

	resp, err := f.svc.GetCreditor(context.Background(), 70)
	require.NoError(t, err)
	assert.Equal(t, "overdue", resp.Status)
	assert.Equal(t, finance.CreditorStatusPending, creditor.Status)
}

func TestListCreditors_StatusFilter(t *testing.T) {
	f := newCreditFixture()
	f.creditors.On("FindAll", mock.Anything, mock.MatchedBy(func(fl shared.Filter) bool {
		return fl.Filters["status"] == finance.CreditorStatusOverdue && fl.Filters["customer_id"] == int64(40)
	})).Return([]finance.Creditor{*openCreditor(5000, fixedNow.AddDate(0, 0, -3))}, nil)
	f.creditors.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	list, total, err := f.svc.ListCreditors(context.Background(), CreditorListFilter{Status: "overdue", CustomerID: 40})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "overdue", list[0].Status)
}

func TestDeleteCreditor_RemovesDependentsFirst(t *testing.T) {
	f := newCreditFixture()
	var order []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, name) }
	}
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(openCreditor(5000, fixedNow), nil)
	f.installments.On("DeleteByCreditor", mock.Anything, int64(70)).Run(record("installments")).Return(nil)
	f.payments.On("DeleteByCreditor", mock.Anything, int64(70)).Run(record("payments")).Return(nil)
	f.creditSales.On("DeleteByCreditor", mock.Anything, int64(70)).Run(record("credit_sales")).Return(nil)
	f.creditors.On("Delete", mock.Anything, int64(70)).Run(record("creditor")).Return(nil)

	require.NoError(t, f.svc.DeleteCreditor(context.Background(), 70))
	assert.Equal(t, []string{"installments", "payments", "credit_sales", "creditor"}, order)
}

func TestDeleteCreditor_StopsOnDependentFailure(t *testing.T) {
	f := newCreditFixture()
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(openCreditor(5000, fixedNow), nil)
	f.installments.On("DeleteByCreditor", mock.Anything, int64(70)).Return(nil)
	f.payments.On("DeleteByCreditor", mock.Anything, int64(70)).Return(shared.ErrTransient)

	err := f.svc.DeleteCreditor(context.Background(), 70)
	assert.ErrorIs(t, err, shared.ErrTransient)
	f.creditors.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestStatsAndNextDue(t *testing.T) {
	f := newCreditFixture()
	creditor := openCreditor(9000, fixedNow.AddDate(0, -1, 0))
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{
		{CreditorID: 70, InstallmentNumber: 3, Amount: 3000, DueDate: fixedNow.AddDate(0, 1, 0)},
		{CreditorID: 70, InstallmentNumber: 1, Amount: 3000, DueDate: fixedNow.AddDate(0, -1, 0), Paid: true},
		{CreditorID: 70, InstallmentNumber: 2, Amount: 3000, DueDate: fixedNow.AddDate(0, 0, -2)},
	}, nil)

	stats, err := f.svc.Stats(context.Background(), 70)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalInstallments)
	assert.Equal(t, 1, stats.PaidInstallments)
	assert.Equal(t, valueobject.Cents(3000), stats.PaidAmount)
	assert.Equal(t, valueobject.Cents(6000), stats.RemainingAmount)
	assert.Equal(t, valueobject.Cents(9000), stats.CreditorRemaining)
	assert.Equal(t, 1, stats.OverdueCount)
	require.NotNil(t, stats.NextDue)
	assert.Equal(t, 2, stats.NextDue.InstallmentNumber)

	next, err := f.svc.NextDueDate(context.Background(), 70)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.InstallmentNumber)

	list, err := f.svc.ListInstallments(context.Background(), 70)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].InstallmentNumber, list[1].InstallmentNumber, list[2].InstallmentNumber})
}

func TestRescheduleInstallment(t *testing.T) {
	f := newCreditFixture()
	inst := &finance.CarneInstallment{BaseAggregateRoot: shared.NewBaseAggregateRoot(), CreditorID: 70, InstallmentNumber: 2, Amount: 3000}
	inst.ID = 1002
	f.installments.On("FindByID", mock.Anything, int64(1002)).Return(inst, nil)
	f.installments.On("SaveWithLock", mock.Anything, inst).Return(nil)

	newDue := fixedNow.AddDate(0, 2, 0)
	resp, err := f.svc.RescheduleInstallment(context.Background(), 1002, RescheduleInstallmentRequest{DueDate: newDue})
	require.NoError(t, err)
	assert.Equal(t, newDue, resp.DueDate)
	assert.Equal(t, 2, inst.Version)
}

func TestSendCarne(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		f := newCreditFixture()
		_, err := f.svc.SendCarne(context.Background(), 70, SendCarneRequest{})
		assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
	})

	t.Run("posts payload", func(t *testing.T) {
		f := newCreditFixture()
		notifier := new(MockCarneNotifier)
		f.svc.SetCarneNotifier(notifier)
		f.creditors.On("FindByID", mock.Anything, int64(70)).Return(openCreditor(6000, fixedNow.AddDate(0, 1, 0)), nil)
		f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{
			{CreditorID: 70, InstallmentNumber: 2, Amount: 3000},
			{CreditorID: 70, InstallmentNumber: 1, Amount: 3000, Paid: true},
		}, nil)
		f.customers.On("FindByID", mock.Anything, int64(40)).Return(maria(), nil)
		notifier.On("SendCarne", mock.Anything, mock.MatchedBy(func(p CarnePayload) bool {
			return p.CustomerCPF == "12345678909" &&
				p.Remaining == "60.00" &&
				len(p.Installments) == 2 &&
				p.Installments[0].Number == 1 && p.Installments[0].Paid &&
				p.Delivery == finance.DeliveryViaBoth
		})).Return(nil)

		result, err := f.svc.SendCarne(context.Background(), 70, SendCarneRequest{})
		require.NoError(t, err)
		assert.Equal(t, fixedNow, result.SentAt)
		assert.Empty(t, result.DocumentURL)
		notifier.AssertExpectations(t)
	})

	t.Run("delivery failure is transient", func(t *testing.T) {
		f := newCreditFixture()
		notifier := new(MockCarneNotifier)
		f.svc.SetCarneNotifier(notifier)
		f.creditors.On("FindByID", mock.Anything, int64(70)).Return(openCreditor(6000, fixedNow), nil)
		f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{{CreditorID: 70, InstallmentNumber: 1, Amount: 6000}}, nil)
		f.customers.On("FindByID", mock.Anything, int64(40)).Return(maria(), nil)
		notifier.On("SendCarne", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := f.svc.SendCarne(context.Background(), 70, SendCarneRequest{})
		assert.Equal(t, shared.CodeTransient, shared.ErrorCode(err))
	})
}

func TestSaleReport_RequiresPrinter(t *testing.T) {
	f := newCreditFixture()
	_, err := f.svc.SaleReport(context.Background(), 70)
	assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
}

func TestSaleReport_MissingSaleStillRenders(t *testing.T) {
	f := newCreditFixture()
	printer := new(MockDocumentPrinter)
	f.svc.SetDocumentPrinter(printer)
	creditor := openCreditor(5000, fixedNow)
	saleID := int64(10)
	creditor.SaleID = &saleID
	f.creditors.On("FindByID", mock.Anything, int64(70)).Return(creditor, nil)
	f.customers.On("FindByID", mock.Anything, int64(40)).Return(maria(), nil)
	f.sales.On("FindByID", mock.Anything, int64(10)).Return(nil, shared.ErrNotFound)
	f.installments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.CarneInstallment{}, nil)
	f.payments.On("FindByCreditor", mock.Anything, int64(70)).Return([]finance.PaymentRecord{}, nil)
	printer.On("PrintSaleReport", mock.Anything, mock.MatchedBy(func(doc SaleReportDocument) bool {
		return doc.Sale == nil && doc.Customer != nil
	})).Return(&Document{Key: "report/70.pdf", Pages: 1}, nil)

	doc, err := f.svc.SaleReport(context.Background(), 70)
	require.NoError(t, err)
	assert.Equal(t, "report/70.pdf", doc.Key)
}
