package models

import (
	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	Name        string  `gorm:"type:varchar(200);not null;index"`
	Description string  `gorm:"type:text"`
	Price       int64   `gorm:"not null;default:0"`
	Stock       int64   `gorm:"not null;default:0"`
	Category    string  `gorm:"type:varchar(100);index"`
	MinStock    int64   `gorm:"not null;default:0"`
	Barcode     *string `gorm:"type:varchar(50);uniqueIndex"`
	Supplier    string  `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Name:              m.Name,
		Description:       m.Description,
		Price:             valueobject.Cents(m.Price),
		Stock:             m.Stock,
		Category:          m.Category,
		MinStock:          m.MinStock,
		Supplier:          m.Supplier,
	}
	if m.Barcode != nil {
		p.Barcode = *m.Barcode
	}
	return p
}

// FromDomain populates the persistence model from a domain Product.
// An empty barcode is stored as NULL so the unique index ignores it.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price.Int64()
	m.Stock = p.Stock
	m.Category = p.Category
	m.MinStock = p.MinStock
	m.Barcode = nil
	if p.Barcode != "" {
		b := p.Barcode
		m.Barcode = &b
	}
	m.Supplier = p.Supplier
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
