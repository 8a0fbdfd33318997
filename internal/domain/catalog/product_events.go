package catalog

import (
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductPriceChanged = "ProductPriceChanged"
	EventTypeProductStockChanged = "ProductStockChanged"
	EventTypeProductLowStock     = "ProductLowStock"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string            `json:"name"`
	Price valueobject.Money `json:"price"`
	Stock int64             `json:"stock"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		Name:            p.Name,
		Price:           p.Price,
		Stock:           p.Stock,
	}
}

// ProductPriceChangedEvent is published when the selling price changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	OldPrice valueobject.Money `json:"old_price"`
	NewPrice valueobject.Money `json:"new_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(p *Product, oldPrice valueobject.Money) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, AggregateTypeProduct, p.ID),
		OldPrice:        oldPrice,
		NewPrice:        p.Price,
	}
}

// ProductStockChangedEvent is published for every applied stock delta
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	ProductName string `json:"product_name"`
	Before      int64  `json:"before"`
	Delta       int64  `json:"delta"`
	After       int64  `json:"after"`
}

// NewProductStockChangedEvent creates a new ProductStockChangedEvent
func NewProductStockChangedEvent(p *Product, before, delta int64) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, AggregateTypeProduct, p.ID),
		ProductName:     p.Name,
		Before:          before,
		Delta:           delta,
		After:           p.Stock,
	}
}

// ProductLowStockEvent is published when stock crosses down to min_stock
type ProductLowStockEvent struct {
	shared.BaseDomainEvent
	ProductName string `json:"product_name"`
	Stock       int64  `json:"stock"`
	MinStock    int64  `json:"min_stock"`
}

// NewProductLowStockEvent creates a new ProductLowStockEvent
func NewProductLowStockEvent(p *Product) *ProductLowStockEvent {
	return &ProductLowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductLowStock, AggregateTypeProduct, p.ID),
		ProductName:     p.Name,
		Stock:           p.Stock,
		MinStock:        p.MinStock,
	}
}
