package persistence

import (
	"context"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReturnRepository implements trade.ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Create inserts a return and assigns its ID
func (r *GormReturnRepository) Create(ctx context.Context, ret *trade.Return) error {
	m := models.ReturnModelFromDomain(ret)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	ret.ID = m.ID
	return nil
}

// FindByID finds a return by ID
func (r *GormReturnRepository) FindByID(ctx context.Context, id int64) (*trade.Return, error) {
	var m models.ReturnModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists returns newest first
func (r *GormReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Return, error) {
	var rows []models.ReturnModel
	q := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.ReturnModel{}), filter), filter, returnSortFields, "created_at")
	if err := q.Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]trade.Return, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts returns matching the filter
func (r *GormReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var n int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReturnModel{}), filter).Count(&n).Error; err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// SaveWithLock updates status fields if the stored version is ret.Version-1
func (r *GormReturnRepository) SaveWithLock(ctx context.Context, ret *trade.Return) error {
	result := r.db.WithContext(ctx).
		Model(&models.ReturnModel{}).
		Where("id = ? AND version = ?", ret.ID, ret.Version-1).
		Updates(map[string]any{
			"status":       string(ret.Status),
			"processed_at": ret.ProcessedAt,
			"version":      ret.Version,
			"updated_at":   ret.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// ReturnedQuantities sums quantities per product over the sale's
// non-cancelled returns
func (r *GormReturnRepository) ReturnedQuantities(ctx context.Context, saleID int64) (map[int64]int64, error) {
	var rows []models.ReturnModel
	err := r.db.WithContext(ctx).
		Where("sale_id = ? AND status <> ?", saleID, string(trade.ReturnStatusCancelled)).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make(map[int64]int64)
	for _, row := range rows {
		for _, item := range row.Items {
			out[item.ProductID] += item.Quantity
		}
	}
	return out, nil
}

func (r *GormReturnRepository) applyFilter(q *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "sale_id":
			q = q.Where("sale_id = ?", value)
		case "status":
			q = q.Where("status = ?", toString(value))
		case "type":
			q = q.Where("type = ?", toString(value))
		}
	}
	return q
}

var _ trade.ReturnRepository = (*GormReturnRepository)(nil)

// GormExchangeRepository implements trade.ExchangeRepository using GORM
type GormExchangeRepository struct {
	db *gorm.DB
}

// NewGormExchangeRepository creates a new GormExchangeRepository
func NewGormExchangeRepository(db *gorm.DB) *GormExchangeRepository {
	return &GormExchangeRepository{db: db}
}

// Create inserts an exchange and assigns its ID
func (r *GormExchangeRepository) Create(ctx context.Context, e *trade.Exchange) error {
	m := models.ExchangeModelFromDomain(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	e.ID = m.ID
	return nil
}

// FindByID finds an exchange by ID
func (r *GormExchangeRepository) FindByID(ctx context.Context, id int64) (*trade.Exchange, error) {
	var m models.ExchangeModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists exchanges newest first
func (r *GormExchangeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Exchange, error) {
	var rows []models.ExchangeModel
	q := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.ExchangeModel{}), filter), filter, returnSortFields, "created_at")
	if err := q.Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]trade.Exchange, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts exchanges matching the filter
func (r *GormExchangeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var n int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExchangeModel{}), filter).Count(&n).Error; err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// SaveWithLock updates link and status fields if the stored version is e.Version-1
func (r *GormExchangeRepository) SaveWithLock(ctx context.Context, e *trade.Exchange) error {
	m := models.ExchangeModelFromDomain(e)
	result := r.db.WithContext(ctx).
		Model(&models.ExchangeModel{}).
		Where("id = ? AND version = ?", e.ID, e.Version-1).
		Select("new_sale_id", "new_items", "status", "processed_at", "version", "updated_at").
		Updates(m)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormExchangeRepository) applyFilter(q *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "original_sale_id":
			q = q.Where("original_sale_id = ?", value)
		case "status":
			q = q.Where("status = ?", toString(value))
		}
	}
	return q
}

var _ trade.ExchangeRepository = (*GormExchangeRepository)(nil)
