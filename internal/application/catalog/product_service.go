package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/inventory"
	"github.com/erp/pdv/internal/domain/shared"
	"go.uber.org/zap"
)

// InitialStockReason is the movement reason logged for a new product's opening stock
const InitialStockReason = "Initial stock"

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	movementRepo   inventory.StockMovementRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product. A non-zero opening stock is logged as an
// "Initial stock" entry movement.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*CreateProductResult, error) {
	if err := s.ensureBarcodeFree(ctx, req.Barcode, 0); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		MinStock:    req.MinStock,
		Barcode:     req.Barcode,
		Supplier:    req.Supplier,
	})
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, product)

	result := &CreateProductResult{Product: ToProductResponse(product)}
	if product.Stock > 0 {
		movement, err := inventory.NewStockMovement(product.ID, product.Name, product.Stock, InitialStockReason)
		if err == nil {
			err = s.movementRepo.Create(ctx, movement)
		}
		if err != nil {
			s.logger.Warn("Opening stock not logged",
				zap.Int64("product_id", product.ID),
				zap.Error(err))
			result.Warnings = append(result.Warnings, shared.NewWarning(shared.StepStockMovement,
				"product saved, but the opening stock of %d was not logged", product.Stock))
		}
	}
	return result, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a paginated list of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
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
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// LowStock lists every product at or below its minimum stock
func (s *ProductService) LowStock(ctx context.Context) ([]ProductResponse, error) {
	filter := shared.DefaultFilter().With("low_stock", true)
	filter.OrderBy = "stock"
	filter.OrderDir = "asc"
	filter.PageSize = 500

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update updates the descriptive fields of a product
func (s *ProductService) Update(ctx context.Context, productID int64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if req.Barcode != product.Barcode {
		if err := s.ensureBarcodeFree(ctx, req.Barcode, productID); err != nil {
			return nil, err
		}
	}

	if err := product.Update(catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		MinStock:    req.MinStock,
		Barcode:     req.Barcode,
		Supplier:    req.Supplier,
	}); err != nil {
		return nil, err
	}

	// optimistic lock so a concurrent stock write is not overwritten
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product that no sale line or stock movement references
func (s *ProductService) Delete(ctx context.Context, productID int64) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	inUse, err := s.productRepo.IsReferenced(ctx, productID)
	if err != nil {
		return err
	}
	if inUse {
		return shared.ErrProductInUse
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) ensureBarcodeFree(ctx context.Context, barcode string, selfID int64) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil
	}
	existing, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Product with this barcode already exists")
	}
	return nil
}

func (s *ProductService) publishDomainEvents(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	product.ClearDomainEvents()
}
