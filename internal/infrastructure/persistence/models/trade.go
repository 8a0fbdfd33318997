package models

import (
	"time"

	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/erp/pdv/internal/domain/trade"
)

// SaleModel is the persistence model for an append-only Sale.
type SaleModel struct {
	BaseModel
	Subtotal         int64           `gorm:"not null"`
	Discount         int64           `gorm:"not null;default:0"`
	Total            int64           `gorm:"not null"`
	PaymentMethod    string          `gorm:"type:varchar(20);not null;index"`
	CustomerID       *int64          `gorm:"index"`
	Installments     int             `gorm:"not null;default:1"`
	InstallmentValue int64           `gorm:"not null"`
	UserID           int64           `gorm:"not null;index"`
	Items            []SaleItemModel `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is one line of a sale
type SaleItemModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	SaleID      int64  `gorm:"not null;index"`
	ProductID   int64  `gorm:"not null;index"`
	ProductName string `gorm:"type:varchar(200);not null"`
	Quantity    int64  `gorm:"not null"`
	UnitPrice   int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *trade.Sale {
	s := &trade.Sale{
		BaseEntity:       m.BaseModel.ToDomain(),
		Subtotal:         valueobject.Cents(m.Subtotal),
		Discount:         valueobject.Cents(m.Discount),
		Total:            valueobject.Cents(m.Total),
		PaymentMethod:    trade.PaymentMethod(m.PaymentMethod),
		CustomerID:       m.CustomerID,
		Installments:     m.Installments,
		InstallmentValue: valueobject.Cents(m.InstallmentValue),
		UserID:           m.UserID,
		Items:            make([]trade.SaleItem, len(m.Items)),
	}
	for i, item := range m.Items {
		s.Items[i] = trade.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   valueobject.Cents(item.UnitPrice),
		}
	}
	return s
}

// SaleModelFromDomain creates a persistence model from a domain Sale
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{
		Subtotal:         s.Subtotal.Int64(),
		Discount:         s.Discount.Int64(),
		Total:            s.Total.Int64(),
		PaymentMethod:    string(s.PaymentMethod),
		CustomerID:       s.CustomerID,
		Installments:     s.Installments,
		InstallmentValue: s.InstallmentValue.Int64(),
		UserID:           s.UserID,
		Items:            make([]SaleItemModel, len(s.Items)),
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	for i, item := range s.Items {
		m.Items[i] = SaleItemModel{
			SaleID:      s.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Int64(),
		}
	}
	return m
}

// ReturnItemRecord is the JSON shape of a returned line
type ReturnItemRecord struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Condition   string `json:"condition"`
}

// SaleItemRecord is the JSON shape of a replacement sale line
type SaleItemRecord struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

func returnItemsToRecords(items []trade.ReturnItem) []ReturnItemRecord {
	out := make([]ReturnItemRecord, len(items))
	for i, it := range items {
		out[i] = ReturnItemRecord{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.Int64(),
			Condition:   string(it.Condition),
		}
	}
	return out
}

func recordsToReturnItems(recs []ReturnItemRecord) []trade.ReturnItem {
	out := make([]trade.ReturnItem, len(recs))
	for i, r := range recs {
		out[i] = trade.ReturnItem{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			UnitPrice:   valueobject.Cents(r.UnitPrice),
			Condition:   trade.ItemCondition(r.Condition),
		}
	}
	return out
}

// ReturnModel is the persistence model for the Return aggregate root.
// Lines are stored as a JSON document.
type ReturnModel struct {
	AggregateModel
	SaleID      int64              `gorm:"not null;index"`
	CustomerID  *int64             `gorm:"index"`
	UserID      int64              `gorm:"not null"`
	Type        string             `gorm:"type:varchar(20);not null;index"`
	Reason      string             `gorm:"type:text;not null"`
	Items       []ReturnItemRecord `gorm:"type:text;serializer:json"`
	TotalRefund int64              `gorm:"not null"`
	Status      string             `gorm:"type:varchar(20);not null;index"`
	ProcessedAt *time.Time
}

// TableName returns the table name for GORM
func (ReturnModel) TableName() string {
	return "returns"
}

// ToDomain converts the persistence model to a domain Return
func (m *ReturnModel) ToDomain() *trade.Return {
	return &trade.Return{
		BaseAggregateRoot: m.ToDomainAggregate(),
		SaleID:            m.SaleID,
		CustomerID:        m.CustomerID,
		UserID:            m.UserID,
		Type:              trade.ReturnType(m.Type),
		Reason:            m.Reason,
		Items:             recordsToReturnItems(m.Items),
		TotalRefund:       valueobject.Cents(m.TotalRefund),
		Status:            trade.ReturnStatus(m.Status),
		ProcessedAt:       m.ProcessedAt,
	}
}

// ReturnModelFromDomain creates a persistence model from a domain Return
func ReturnModelFromDomain(r *trade.Return) *ReturnModel {
	m := &ReturnModel{
		SaleID:      r.SaleID,
		CustomerID:  r.CustomerID,
		UserID:      r.UserID,
		Type:        string(r.Type),
		Reason:      r.Reason,
		Items:       returnItemsToRecords(r.Items),
		TotalRefund: r.TotalRefund.Int64(),
		Status:      string(r.Status),
		ProcessedAt: r.ProcessedAt,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}

// ExchangeModel is the persistence model for the Exchange aggregate root.
type ExchangeModel struct {
	AggregateModel
	OriginalSaleID int64              `gorm:"not null;index"`
	NewSaleID      *int64             `gorm:"index"`
	ReturnID       *int64             `gorm:"index"`
	CustomerID     *int64             `gorm:"index"`
	UserID         int64              `gorm:"not null"`
	Reason         string             `gorm:"type:text"`
	ReturnedItems  []ReturnItemRecord `gorm:"type:text;serializer:json"`
	NewItems       []SaleItemRecord   `gorm:"type:text;serializer:json"`
	Status         string             `gorm:"type:varchar(20);not null;index"`
	ProcessedAt    *time.Time
}

// TableName returns the table name for GORM
func (ExchangeModel) TableName() string {
	return "exchanges"
}

// ToDomain converts the persistence model to a domain Exchange
func (m *ExchangeModel) ToDomain() *trade.Exchange {
	e := &trade.Exchange{
		BaseAggregateRoot: m.ToDomainAggregate(),
		OriginalSaleID:    m.OriginalSaleID,
		NewSaleID:         m.NewSaleID,
		ReturnID:          m.ReturnID,
		CustomerID:        m.CustomerID,
		UserID:            m.UserID,
		Reason:            m.Reason,
		ReturnedItems:     recordsToReturnItems(m.ReturnedItems),
		NewItems:          make([]trade.SaleItem, len(m.NewItems)),
		Status:            trade.ReturnStatus(m.Status),
		ProcessedAt:       m.ProcessedAt,
	}
	for i, it := range m.NewItems {
		e.NewItems[i] = trade.SaleItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   valueobject.Cents(it.UnitPrice),
		}
	}
	return e
}

// ExchangeModelFromDomain creates a persistence model from a domain Exchange
func ExchangeModelFromDomain(e *trade.Exchange) *ExchangeModel {
	m := &ExchangeModel{
		OriginalSaleID: e.OriginalSaleID,
		NewSaleID:      e.NewSaleID,
		ReturnID:       e.ReturnID,
		CustomerID:     e.CustomerID,
		UserID:         e.UserID,
		Reason:         e.Reason,
		ReturnedItems:  returnItemsToRecords(e.ReturnedItems),
		NewItems:       make([]SaleItemRecord, len(e.NewItems)),
		Status:         string(e.Status),
		ProcessedAt:    e.ProcessedAt,
	}
	for i, it := range e.NewItems {
		m.NewItems[i] = SaleItemRecord{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.Int64(),
		}
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

