package catalog

import (
	"time"

	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string            `json:"name" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"max=2000"`
	Price       valueobject.Money `json:"price" binding:"gte=0"`
	Stock       int64             `json:"stock" binding:"gte=0"`
	Category    string            `json:"category" binding:"max=100"`
	MinStock    int64             `json:"min_stock" binding:"gte=0"`
	Barcode     string            `json:"barcode" binding:"max=50"`
	Supplier    string            `json:"supplier" binding:"max=200"`
}

// UpdateProductRequest represents a request to update a product.
// Stock is absent on purpose: it only moves through the stock ledger.
type UpdateProductRequest struct {
	Name        string            `json:"name" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"max=2000"`
	Price       valueobject.Money `json:"price" binding:"gte=0"`
	Category    string            `json:"category" binding:"max=100"`
	MinStock    int64             `json:"min_stock" binding:"gte=0"`
	Barcode     string            `json:"barcode" binding:"max=50"`
	Supplier    string            `json:"supplier" binding:"max=200"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       valueobject.Money `json:"price"`
	Stock       int64             `json:"stock"`
	Category    string            `json:"category,omitempty"`
	MinStock    int64             `json:"min_stock"`
	Barcode     string            `json:"barcode,omitempty"`
	Supplier    string            `json:"supplier,omitempty"`
	LowStock    bool              `json:"low_stock"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name price stock category created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateProductResult carries the new product and any secondary-step warnings
type CreateProductResult struct {
	Product  ProductResponse
	Warnings []shared.Warning
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		MinStock:    p.MinStock,
		Barcode:     p.Barcode,
		Supplier:    p.Supplier,
		LowStock:    p.IsLowStock(),
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
