package inventory

import (
	"context"
	"errors"
	"sync"
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

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []shared.DomainEvent
	for _, e := range m.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
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
	if args.Error(0) == nil {
		movement.ID = 77
	}
	return args.Error(0)
}

func (m *MockStockMovementRepository) CreateBatch(ctx context.Context, movements []*inventory.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

func product(id, stock, minStock int64) *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              "Caderno",
		Price:             valueobject.Cents(1590),
		Stock:             stock,
		MinStock:          minStock,
	}
	p.ID = id
	return p
}

func setupLedger(retries int) (*LedgerService, *MockProductRepository, *MockStockMovementRepository, *MockEventPublisher) {
	products := new(MockProductRepository)
	movements := new(MockStockMovementRepository)
	publisher := &MockEventPublisher{}
	svc := NewLedgerService(products, movements, retries, zap.NewNop())
	svc.SetEventPublisher(publisher)
	return svc, products, movements, publisher
}

func TestApplyDelta_Decrement(t *testing.T) {
	ctx := context.Background()
	svc, products, movements, _ := setupLedger(0)

	products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 10, 2), nil).Once()
	products.On("SaveWithLock", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.Stock == 7
	})).Return(nil).Once()
	movements.On("Create", mock.Anything, mock.MatchedBy(func(m *inventory.StockMovement) bool {
		return m.Type == inventory.MovementTypeOut && m.Quantity == 3 && m.Reason == "Sale #5"
	})).Return(nil).Once()

	result, err := svc.ApplyDelta(ctx, 1, -3, "Sale #5")
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.Before)
	assert.Equal(t, int64(7), result.Stock)
	assert.Equal(t, 1, result.Attempts)
	assert.False(t, result.LowStock)
	require.NotNil(t, result.Movement)
	assert.Equal(t, int64(77), result.Movement.ID)
	assert.Empty(t, result.Warnings)
	products.AssertExpectations(t)
	movements.AssertExpectations(t)
}

func TestApplyDelta_RejectsZeroAndBlankReason(t *testing.T) {
	svc, products, _, _ := setupLedger(0)

	_, err := svc.ApplyDelta(context.Background(), 1, 0, "x")
	assert.True(t, shared.IsValidation(err))

	_, err = svc.ApplyDelta(context.Background(), 1, 2, "   ")
	assert.True(t, shared.IsValidation(err))

	products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestApplyDelta_RetriesOnVersionConflict(t *testing.T) {
	ctx := context.Background()
	svc, products, movements, _ := setupLedger(5)

	// a concurrent sale takes 2 units between our read and write
	products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 10, 0), nil).Once()
	products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 8, 0), nil).Once()
	products.On("SaveWithLock", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool { return p.Stock == 9 })).
		Return(shared.ErrConcurrencyConflict).Once()
	products.On("SaveWithLock", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool { return p.Stock == 7 })).
		Return(nil).Once()
	movements.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.ApplyDelta(ctx, 1, -1, "Sale #9")
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Stock)
	assert.Equal(t, 2, result.Attempts)
	products.AssertExpectations(t)
}

func TestApplyDelta_GivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	svc, products, movements, _ := setupLedger(2)

	for i := 0; i < 3; i++ {
		products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 10, 0), nil).Once()
	}
	products.On("SaveWithLock", mock.Anything, mock.Anything).Return(shared.ErrConcurrencyConflict).Times(3)

	_, err := svc.ApplyDelta(ctx, 1, -1, "Sale #9")
	require.Error(t, err)
	assert.Equal(t, shared.CodeConcurrencyConflict, shared.ErrorCode(err))
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	products.AssertExpectations(t)
	movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApplyDelta_OtherSaveErrorIsNotRetried(t *testing.T) {
	ctx := context.Background()
	svc, products, _, _ := setupLedger(5)

	products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 10, 0), nil).Once()
	products.On("SaveWithLock", mock.Anything, mock.Anything).Return(shared.ErrTransient).Once()

	_, err := svc.ApplyDelta(ctx, 1, 4, "Restock")
	assert.Equal(t, shared.CodeTransient, shared.ErrorCode(err))
	products.AssertExpectations(t)
}

func TestApplyDelta_MissingProduct(t *testing.T) {
	ctx := context.Background()
	svc, products, _, _ := setupLedger(0)
	products.On("FindByID", mock.Anything, int64(404)).Return(nil, shared.ErrNotFound)

	_, err := svc.ApplyDelta(ctx, 404, 1, "Restock")
	assert.True(t, shared.IsNotFound(err))
}

func TestApplyDelta_MovementFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	svc, products, movements, _ := setupLedger(0)

	products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 10, 0), nil).Once()
	products.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil).Once()
	movements.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	result, err := svc.ApplyDelta(ctx, 1, 5, "Return - defeito")
	require.NoError(t, err)
	assert.Equal(t, int64(15), result.Stock)
	assert.Nil(t, result.Movement)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, shared.StepStockMovement, result.Warnings[0].Step)
}

func TestApplyDelta_LowStockCrossingPublishesEvent(t *testing.T) {
	ctx := context.Background()
	svc, products, movements, publisher := setupLedger(0)

	products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 4, 3), nil).Once()
	products.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil).Once()
	movements.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.ApplyDelta(ctx, 1, -2, "Sale #1")
	require.NoError(t, err)
	assert.True(t, result.LowStock)
	assert.Len(t, publisher.GetEventsByType(catalog.EventTypeProductLowStock), 1)

	// already below the minimum: no new crossing
	products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 2, 3), nil).Once()
	products.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil).Once()
	movements.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	result, err = svc.ApplyDelta(ctx, 1, -1, "Sale #2")
	require.NoError(t, err)
	assert.False(t, result.LowStock)
	assert.Len(t, publisher.GetEventsByType(catalog.EventTypeProductLowStock), 1)
}

func TestListMovements_BuildsFilter(t *testing.T) {
	ctx := context.Background()
	svc, _, movements, _ := setupLedger(0)

	movements.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["product_id"] == int64(3) && f.Filters["type"] == inventory.MovementTypeIn && f.Page == 2
	})).Return([]inventory.StockMovement{{ID: 1, ProductID: 3, Type: inventory.MovementTypeIn, Quantity: 4, Reason: "Restock"}}, nil)
	movements.On("Count", mock.Anything, mock.Anything).Return(int64(21), nil)

	out, total, err := svc.ListMovements(ctx, MovementListFilter{ProductID: 3, Type: "in", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, out, 1)
	assert.Equal(t, "in", out[0].Type)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	svc, products, movements, _ := setupLedger(0)
	products.On("FindByID", mock.Anything, int64(1)).Return(product(1, 12, 0), nil)
	movements.On("SumByProduct", mock.Anything, int64(1)).Return(int64(10), nil)

	stock, logged, err := svc.Reconcile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stock)
	assert.Equal(t, int64(10), logged)
}
