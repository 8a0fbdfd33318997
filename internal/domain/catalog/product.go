package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// Product represents a sellable item with its on-hand stock.
// It is the aggregate root the inventory ledger mutates on every sale and
// return.
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Price       valueobject.Money
	Stock       int64
	Category    string
	MinStock    int64
	Barcode     string
	Supplier    string
}

// ProductInput carries the editable fields of a product
type ProductInput struct {
	Name        string
	Description string
	Price       valueobject.Money
	Stock       int64
	Category    string
	MinStock    int64
	Barcode     string
	Supplier    string
}

// NewProduct creates a new product
func NewProduct(in ProductInput) (*Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, shared.NewValidationError("Initial stock cannot be negative")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
	}
	p.assign(in)
	p.Stock = in.Stock

	p.AddDomainEvent(NewProductCreatedEvent(p))

	return p, nil
}

// Update replaces the descriptive fields of a product. Stock is not editable
// here; it only changes through ApplyStockDelta so every change is logged.
func (p *Product) Update(in ProductInput) error {
	if err := validateProductInput(in); err != nil {
		return err
	}

	priceChanged := p.Price != in.Price
	oldPrice := p.Price

	p.assign(in)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if priceChanged {
		p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))
	}

	return nil
}

// ApplyStockDelta adds a signed quantity to the on-hand stock.
// Negative results are allowed: the ledger records oversells instead of
// refusing them.
func (p *Product) ApplyStockDelta(delta int64) error {
	if delta == 0 {
		return shared.NewValidationError("Stock delta cannot be zero")
	}

	before := p.Stock
	p.Stock += delta
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, before, delta))
	if before > p.MinStock && p.Stock <= p.MinStock {
		p.AddDomainEvent(NewProductLowStockEvent(p))
	}

	return nil
}

// IsLowStock reports whether stock is at or below the reorder threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

func (p *Product) assign(in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Category = strings.TrimSpace(in.Category)
	p.MinStock = in.MinStock
	p.Barcode = strings.TrimSpace(in.Barcode)
	p.Supplier = strings.TrimSpace(in.Supplier)
}

func validateProductInput(in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	if in.Price.IsNegative() {
		return shared.NewValidationError("Product price cannot be negative")
	}
	if in.MinStock < 0 {
		return shared.NewValidationError("Minimum stock cannot be negative")
	}
	if len(in.Barcode) > 50 {
		return shared.NewValidationError("Barcode cannot exceed 50 characters")
	}
	return nil
}
