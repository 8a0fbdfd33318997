package finance

import (
	"context"
	"sync"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/partner"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockCreditorRepository is a mock implementation of finance.CreditorRepository
type MockCreditorRepository struct {
	mock.Mock
}

func (m *MockCreditorRepository) Create(ctx context.Context, c *finance.Creditor) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil && c.ID == 0 {
		c.ID = 70
	}
	return args.Error(0)
}

func (m *MockCreditorRepository) FindByID(ctx context.Context, id int64) (*finance.Creditor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Creditor), args.Error(1)
}

func (m *MockCreditorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Creditor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Creditor), args.Error(1)
}

func (m *MockCreditorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditorRepository) SaveWithLock(ctx context.Context, c *finance.Creditor) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCreditorRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockInstallmentRepository is a mock implementation of
// finance.InstallmentRepository. Create numbers rows from 1000 upwards.
type MockInstallmentRepository struct {
	mock.Mock
	mu     sync.Mutex
	nextID int64
}

func (m *MockInstallmentRepository) Create(ctx context.Context, inst *finance.CarneInstallment) error {
	args := m.Called(ctx, inst)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.nextID++
		inst.ID = 1000 + m.nextID
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *MockInstallmentRepository) FindByID(ctx context.Context, id int64) (*finance.CarneInstallment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CarneInstallment), args.Error(1)
}

func (m *MockInstallmentRepository) FindByCreditor(ctx context.Context, creditorID int64) ([]finance.CarneInstallment, error) {
	args := m.Called(ctx, creditorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.CarneInstallment), args.Error(1)
}

func (m *MockInstallmentRepository) SaveWithLock(ctx context.Context, inst *finance.CarneInstallment) error {
	return m.Called(ctx, inst).Error(0)
}

func (m *MockInstallmentRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockInstallmentRepository) DeleteByCreditor(ctx context.Context, creditorID int64) error {
	return m.Called(ctx, creditorID).Error(0)
}

// MockPaymentRepository is a mock implementation of finance.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *finance.PaymentRecord) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 300
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByCreditor(ctx context.Context, creditorID int64) ([]finance.PaymentRecord, error) {
	args := m.Called(ctx, creditorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) DeleteByCreditor(ctx context.Context, creditorID int64) error {
	return m.Called(ctx, creditorID).Error(0)
}

// MockCreditSaleRepository is a mock implementation of finance.CreditSaleRepository
type MockCreditSaleRepository struct {
	mock.Mock
}

func (m *MockCreditSaleRepository) FindByCreditor(ctx context.Context, creditorID int64) ([]finance.CreditSale, error) {
	args := m.Called(ctx, creditorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.CreditSale), args.Error(1)
}

func (m *MockCreditSaleRepository) DeleteByCreditor(ctx context.Context, creditorID int64) error {
	return m.Called(ctx, creditorID).Error(0)
}

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, e *finance.Expense) error {
	args := m.Called(ctx, e)
	if args.Error(0) == nil {
		e.ID = 60
	}
	return args.Error(0)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id int64) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) SaveWithLock(ctx context.Context, e *finance.Expense) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *trade.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id int64) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockDocumentPrinter is a mock implementation of DocumentPrinter
type MockDocumentPrinter struct {
	mock.Mock
}

func (m *MockDocumentPrinter) PrintCarne(ctx context.Context, doc CarneDocument) (*Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Document), args.Error(1)
}

func (m *MockDocumentPrinter) PrintSaleReport(ctx context.Context, doc SaleReportDocument) (*Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Document), args.Error(1)
}

// MockCarneNotifier is a mock implementation of CarneNotifier
type MockCarneNotifier struct {
	mock.Mock
}

func (m *MockCarneNotifier) SendCarne(ctx context.Context, payload CarnePayload) error {
	return m.Called(ctx, payload).Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.EventType()
	}
	return out
}
