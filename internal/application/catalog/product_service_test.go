package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/inventory"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil && product.ID == 0 {
		product.ID = 1
	}
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) CreateBatch(ctx context.Context, movements []*inventory.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockMovementRepository) SumByProduct(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*ProductService, *MockProductRepository, *MockStockMovementRepository) {
	products := new(MockProductRepository)
	movements := new(MockStockMovementRepository)
	return NewProductService(products, movements, zap.NewNop()), products, movements
}

func existingProduct(id int64, barcode string) *catalog.Product {
	p, _ := catalog.NewProduct(catalog.ProductInput{
		Name:     "Caneta azul",
		Price:    valueobject.Cents(250),
		Stock:    30,
		MinStock: 5,
		Barcode:  barcode,
	})
	p.ID = id
	p.ClearDomainEvents()
	return p
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("logs opening stock", func(t *testing.T) {
		svc, products, movements := newTestService()
		products.On("FindByBarcode", ctx, "789100").Return(nil, shared.ErrNotFound)
		products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		movements.On("Create", ctx, mock.MatchedBy(func(m *inventory.StockMovement) bool {
			return m.ProductID == 1 && m.Type == inventory.MovementTypeIn && m.Quantity == 12 && m.Reason == InitialStockReason
		})).Return(nil)

		result, err := svc.Create(ctx, CreateProductRequest{
			Name: "Caderno", Price: valueobject.Cents(1590), Stock: 12, MinStock: 2, Barcode: "789100",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(12), result.Product.Stock)
		assert.Empty(t, result.Warnings)
		movements.AssertExpectations(t)
	})

	t.Run("zero stock logs nothing", func(t *testing.T) {
		svc, products, movements := newTestService()
		products.On("Save", ctx, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, CreateProductRequest{Name: "Borracha", Price: valueobject.Cents(100)})
		require.NoError(t, err)
		movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("movement failure is a warning", func(t *testing.T) {
		svc, products, movements := newTestService()
		products.On("Save", ctx, mock.Anything).Return(nil)
		movements.On("Create", ctx, mock.Anything).Return(errors.New("boom"))

		result, err := svc.Create(ctx, CreateProductRequest{Name: "Lápis", Price: valueobject.Cents(120), Stock: 3})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, shared.StepStockMovement, result.Warnings[0].Step)
	})

	t.Run("duplicate barcode", func(t *testing.T) {
		svc, products, _ := newTestService()
		products.On("FindByBarcode", ctx, "789100").Return(existingProduct(4, "789100"), nil)

		_, err := svc.Create(ctx, CreateProductRequest{Name: "Caderno", Barcode: "789100"})
		assert.Equal(t, shared.CodeAlreadyExists, shared.ErrorCode(err))
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative opening stock", func(t *testing.T) {
		svc, products, _ := newTestService()
		_, err := svc.Create(ctx, CreateProductRequest{Name: "Caderno", Stock: -1})
		assert.True(t, shared.IsValidation(err))
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_UpdateKeepsStock(t *testing.T) {
	ctx := context.Background()
	svc, products, _ := newTestService()
	p := existingProduct(9, "111")
	products.On("FindByID", ctx, int64(9)).Return(p, nil)
	products.On("SaveWithLock", ctx, p).Return(nil)

	resp, err := svc.Update(ctx, 9, UpdateProductRequest{Name: "Caneta preta", Price: valueobject.Cents(300), MinStock: 5, Barcode: "111"})
	require.NoError(t, err)
	assert.Equal(t, "Caneta preta", resp.Name)
	assert.Equal(t, int64(30), resp.Stock)
	assert.Equal(t, 2, resp.Version)
	products.AssertNotCalled(t, "FindByBarcode", mock.Anything, mock.Anything)
}

func TestProductService_UpdateBarcodeTaken(t *testing.T) {
	ctx := context.Background()
	svc, products, _ := newTestService()
	products.On("FindByID", ctx, int64(9)).Return(existingProduct(9, "111"), nil)
	products.On("FindByBarcode", ctx, "222").Return(existingProduct(10, "222"), nil)

	_, err := svc.Update(ctx, 9, UpdateProductRequest{Name: "Caneta", Barcode: "222"})
	assert.Equal(t, shared.CodeAlreadyExists, shared.ErrorCode(err))
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced product is refused", func(t *testing.T) {
		svc, products, _ := newTestService()
		products.On("FindByID", ctx, int64(3)).Return(existingProduct(3, ""), nil)
		products.On("IsReferenced", ctx, int64(3)).Return(true, nil)

		err := svc.Delete(ctx, 3)
		assert.Equal(t, shared.CodeProductInUse, shared.ErrorCode(err))
		products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unreferenced product is deleted", func(t *testing.T) {
		svc, products, _ := newTestService()
		products.On("FindByID", ctx, int64(3)).Return(existingProduct(3, ""), nil)
		products.On("IsReferenced", ctx, int64(3)).Return(false, nil)
		products.On("Delete", ctx, int64(3)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 3))
		products.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		svc, products, _ := newTestService()
		products.On("FindByID", ctx, int64(3)).Return(nil, shared.ErrNotFound)
		assert.True(t, shared.IsNotFound(svc.Delete(ctx, 3)))
	})
}

func TestProductService_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc, products, _ := newTestService()
	products.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "cad" && f.Filters["category"] == "papelaria" && f.Filters["low_stock"] == true && f.OrderBy == "name"
	})).Return([]catalog.Product{*existingProduct(1, "")}, nil)
	products.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	items, total, err := svc.List(ctx, ProductListFilter{Search: " cad ", Category: "papelaria", LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}
