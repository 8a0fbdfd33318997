package persistence

import (
	"context"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create inserts the sale header and its lines in one transaction
func (r *GormSaleRepository) Create(ctx context.Context, sale *trade.Sale) error {
	m := models.SaleModelFromDomain(sale)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return translateError(err)
	}
	sale.ID = m.ID
	return nil
}

// FindByID finds a sale with its lines
func (r *GormSaleRepository) FindByID(ctx context.Context, id int64) (*trade.Sale, error) {
	var m models.SaleModel
	if err := r.db.WithContext(ctx).Preload("Items", orderByID).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists sales newest first
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var rows []models.SaleModel
	q := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter), filter, saleSortFields, "created_at")
	if err := q.Preload("Items", orderByID).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]trade.Sale, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var n int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter).Count(&n).Error; err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

func (r *GormSaleRepository) applyFilter(q *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			q = q.Where("customer_id = ?", value)
		case "payment_method":
			q = q.Where("payment_method = ?", toString(value))
		case "user_id":
			q = q.Where("user_id = ?", value)
		case "from":
			q = q.Where("created_at >= ?", value)
		case "to":
			q = q.Where("created_at < ?", value)
		}
	}
	return q
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
