package persistence

import (
	"context"

	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/domain/inventory"
	"github.com/erp/pdv/internal/domain/partner"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const importBatchSize = 200

// GormImportSink bulk-inserts migrated records. IDs assigned by the store
// are written back onto the domain values in input order, which is what the
// importer uses to build its old-id to new-id maps.
type GormImportSink struct {
	db *gorm.DB
}

// NewGormImportSink creates a new GormImportSink
func NewGormImportSink(db *gorm.DB) *GormImportSink {
	return &GormImportSink{db: db}
}

func insertAll[D any, M any](ctx context.Context, db *gorm.DB, items []D, toModel func(D) *M, assign func(D, *M)) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]*M, len(items))
	for i, item := range items {
		rows[i] = toModel(item)
	}
	if err := db.WithContext(ctx).CreateInBatches(rows, importBatchSize).Error; err != nil {
		return translateError(err)
	}
	for i, item := range items {
		assign(item, rows[i])
	}
	return nil
}

func (s *GormImportSink) InsertUsers(ctx context.Context, users []*identity.User) error {
	return insertAll(ctx, s.db, users, models.UserModelFromDomain,
		func(u *identity.User, m *models.UserModel) { u.ID = m.ID })
}

func (s *GormImportSink) InsertCustomers(ctx context.Context, customers []*partner.Customer) error {
	return insertAll(ctx, s.db, customers, models.CustomerModelFromDomain,
		func(c *partner.Customer, m *models.CustomerModel) { c.ID = m.ID })
}

func (s *GormImportSink) InsertProducts(ctx context.Context, products []*catalog.Product) error {
	return insertAll(ctx, s.db, products, models.ProductModelFromDomain,
		func(p *catalog.Product, m *models.ProductModel) { p.ID = m.ID })
}

func (s *GormImportSink) InsertSales(ctx context.Context, sales []*trade.Sale) error {
	return insertAll(ctx, s.db, sales, models.SaleModelFromDomain,
		func(sale *trade.Sale, m *models.SaleModel) { sale.ID = m.ID })
}

func (s *GormImportSink) InsertCreditors(ctx context.Context, creditors []*finance.Creditor) error {
	return insertAll(ctx, s.db, creditors, models.CreditorModelFromDomain,
		func(c *finance.Creditor, m *models.CreditorModel) { c.ID = m.ID })
}

func (s *GormImportSink) InsertInstallments(ctx context.Context, installments []*finance.CarneInstallment) error {
	return insertAll(ctx, s.db, installments, models.CarneInstallmentModelFromDomain,
		func(i *finance.CarneInstallment, m *models.CarneInstallmentModel) { i.ID = m.ID })
}

func (s *GormImportSink) InsertCreditSales(ctx context.Context, rows []*finance.CreditSale) error {
	return insertAll(ctx, s.db, rows, models.CreditSaleModelFromDomain,
		func(c *finance.CreditSale, m *models.CreditSaleModel) { c.ID = m.ID })
}

func (s *GormImportSink) InsertMovements(ctx context.Context, movements []*inventory.StockMovement) error {
	return insertAll(ctx, s.db, movements, models.StockMovementModelFromDomain,
		func(mv *inventory.StockMovement, m *models.StockMovementModel) { mv.ID = m.ID })
}

func (s *GormImportSink) InsertExpenses(ctx context.Context, expenses []*finance.Expense) error {
	return insertAll(ctx, s.db, expenses, models.ExpenseModelFromDomain,
		func(e *finance.Expense, m *models.ExpenseModel) { e.ID = m.ID })
}

func (s *GormImportSink) InsertReturns(ctx context.Context, returns []*trade.Return) error {
	return insertAll(ctx, s.db, returns, models.ReturnModelFromDomain,
		func(r *trade.Return, m *models.ReturnModel) { r.ID = m.ID })
}

func (s *GormImportSink) InsertExchanges(ctx context.Context, exchanges []*trade.Exchange) error {
	return insertAll(ctx, s.db, exchanges, models.ExchangeModelFromDomain,
		func(e *trade.Exchange, m *models.ExchangeModel) { e.ID = m.ID })
}
