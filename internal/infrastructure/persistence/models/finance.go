package models

import (
	"time"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// CreditorModel is the persistence model for the Creditor aggregate root.
// Only pending and paid are stored; overdue is derived when reading.
type CreditorModel struct {
	AggregateModel
	CustomerID      int64     `gorm:"not null;index"`
	CustomerName    string    `gorm:"type:varchar(200);not null"`
	SaleID          *int64    `gorm:"index"`
	TotalDebt       int64     `gorm:"not null"`
	PaidAmount      int64     `gorm:"not null;default:0"`
	RemainingAmount int64     `gorm:"not null"`
	DueDate         time.Time `gorm:"not null;index"`
	Description     string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (CreditorModel) TableName() string {
	return "creditors"
}

// ToDomain converts the persistence model to a domain Creditor
func (m *CreditorModel) ToDomain() *finance.Creditor {
	return &finance.Creditor{
		BaseAggregateRoot: m.ToDomainAggregate(),
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		SaleID:            m.SaleID,
		TotalDebt:         valueobject.Cents(m.TotalDebt),
		PaidAmount:        valueobject.Cents(m.PaidAmount),
		RemainingAmount:   valueobject.Cents(m.RemainingAmount),
		DueDate:           m.DueDate,
		Description:       m.Description,
		Status:            finance.CreditorStatus(m.Status),
	}
}

// CreditorModelFromDomain creates a persistence model from a domain Creditor
func CreditorModelFromDomain(c *finance.Creditor) *CreditorModel {
	status := c.Status
	if status == finance.CreditorStatusOverdue {
		status = finance.CreditorStatusPending
	}
	m := &CreditorModel{
		CustomerID:      c.CustomerID,
		CustomerName:    c.CustomerName,
		SaleID:          c.SaleID,
		TotalDebt:       c.TotalDebt.Int64(),
		PaidAmount:      c.PaidAmount.Int64(),
		RemainingAmount: c.RemainingAmount.Int64(),
		DueDate:         c.DueDate,
		Description:     c.Description,
		Status:          string(status),
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// CarneInstallmentModel is one slip of a creditor's booklet
type CarneInstallmentModel struct {
	AggregateModel
	CreditorID        int64     `gorm:"not null;uniqueIndex:idx_carne_creditor_number,priority:1"`
	InstallmentNumber int       `gorm:"not null;uniqueIndex:idx_carne_creditor_number,priority:2"`
	DueDate           time.Time `gorm:"not null;index"`
	Amount            int64     `gorm:"not null"`
	Paid              bool      `gorm:"not null;default:false"`
	PaidAt            *time.Time
}

// TableName returns the table name for GORM
func (CarneInstallmentModel) TableName() string {
	return "carne_installments"
}

// ToDomain converts the persistence model to a domain CarneInstallment
func (m *CarneInstallmentModel) ToDomain() *finance.CarneInstallment {
	return &finance.CarneInstallment{
		BaseAggregateRoot: m.ToDomainAggregate(),
		CreditorID:        m.CreditorID,
		InstallmentNumber: m.InstallmentNumber,
		DueDate:           m.DueDate,
		Amount:            valueobject.Cents(m.Amount),
		Paid:              m.Paid,
		PaidAt:            m.PaidAt,
	}
}

// CarneInstallmentModelFromDomain creates a persistence model from a domain CarneInstallment
func CarneInstallmentModelFromDomain(i *finance.CarneInstallment) *CarneInstallmentModel {
	m := &CarneInstallmentModel{
		CreditorID:        i.CreditorID,
		InstallmentNumber: i.InstallmentNumber,
		DueDate:           i.DueDate,
		Amount:            i.Amount.Int64(),
		Paid:              i.Paid,
		PaidAt:            i.PaidAt,
	}
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	return m
}

// PaymentRecordModel is an entry of a creditor's payment history
type PaymentRecordModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	CreditorID  int64     `gorm:"not null;index"`
	Amount      int64     `gorm:"not null"`
	PaymentDate time.Time `gorm:"not null"`
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentRecordModel) TableName() string {
	return "payment_history"
}

// ToDomain converts the persistence model to a domain PaymentRecord
func (m *PaymentRecordModel) ToDomain() *finance.PaymentRecord {
	return &finance.PaymentRecord{
		ID:          m.ID,
		CreditorID:  m.CreditorID,
		Amount:      valueobject.Cents(m.Amount),
		PaymentDate: m.PaymentDate,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

// PaymentRecordModelFromDomain creates a persistence model from a domain PaymentRecord
func PaymentRecordModelFromDomain(p *finance.PaymentRecord) *PaymentRecordModel {
	return &PaymentRecordModel{
		ID:          p.ID,
		CreditorID:  p.CreditorID,
		Amount:      p.Amount.Int64(),
		PaymentDate: p.PaymentDate,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

// CreditSaleModel is a legacy per-sale installment row
type CreditSaleModel struct {
	BaseModel
	SaleID            int64     `gorm:"not null;index"`
	CreditorID        int64     `gorm:"not null;index"`
	InstallmentNumber int       `gorm:"not null"`
	InstallmentValue  int64     `gorm:"not null"`
	DueDate           time.Time `gorm:"not null"`
	PaidDate          *time.Time
	Status            string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (CreditSaleModel) TableName() string {
	return "credit_sales"
}

// ToDomain converts the persistence model to a domain CreditSale
func (m *CreditSaleModel) ToDomain() *finance.CreditSale {
	return &finance.CreditSale{
		BaseEntity:        m.BaseModel.ToDomain(),
		SaleID:            m.SaleID,
		CreditorID:        m.CreditorID,
		InstallmentNumber: m.InstallmentNumber,
		InstallmentValue:  valueobject.Cents(m.InstallmentValue),
		DueDate:           m.DueDate,
		PaidDate:          m.PaidDate,
		Status:            finance.CreditSaleStatus(m.Status),
	}
}

// CreditSaleModelFromDomain creates a persistence model from a domain CreditSale
func CreditSaleModelFromDomain(c *finance.CreditSale) *CreditSaleModel {
	m := &CreditSaleModel{
		SaleID:            c.SaleID,
		CreditorID:        c.CreditorID,
		InstallmentNumber: c.InstallmentNumber,
		InstallmentValue:  c.InstallmentValue.Int64(),
		DueDate:           c.DueDate,
		PaidDate:          c.PaidDate,
		Status:            string(c.Status),
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate root
type ExpenseModel struct {
	AggregateModel
	Description string `gorm:"type:varchar(500);not null"`
	Amount      int64  `gorm:"not null"`
	Category    string `gorm:"type:varchar(100);index"`
	Supplier    string `gorm:"type:varchar(200)"`
	DueDate     *time.Time
	Paid        bool `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Description:       m.Description,
		Amount:            valueobject.Cents(m.Amount),
		Category:          m.Category,
		Supplier:          m.Supplier,
		DueDate:           m.DueDate,
		Paid:              m.Paid,
	}
}

// ExpenseModelFromDomain creates a persistence model from a domain Expense
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{
		Description: e.Description,
		Amount:      e.Amount.Int64(),
		Category:    e.Category,
		Supplier:    e.Supplier,
		DueDate:     e.DueDate,
		Paid:        e.Paid,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
