package persistence

import (
	"context"

	"github.com/erp/pdv/internal/domain/inventory"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements inventory.StockMovementRepository
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends one movement
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	m := models.StockMovementModelFromDomain(movement)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	movement.ID = m.ID
	return nil
}

// CreateBatch appends many movements, assigning IDs in order
func (r *GormStockMovementRepository) CreateBatch(ctx context.Context, movements []*inventory.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	rows := make([]*models.StockMovementModel, len(movements))
	for i, mv := range movements {
		rows[i] = models.StockMovementModelFromDomain(mv)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, 200).Error; err != nil {
		return translateError(err)
	}
	for i := range rows {
		movements[i].ID = rows[i].ID
	}
	return nil
}

// FindAll lists movements newest first
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	var rows []models.StockMovementModel
	q := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.StockMovementModel{}), filter), filter, movementSortFields, "created_at")
	if err := q.Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]inventory.StockMovement, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts movements matching the filter
func (r *GormStockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var n int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StockMovementModel{}), filter).Count(&n).Error; err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// SumByProduct returns Σ(in) − Σ(out) for a product
func (r *GormStockMovementRepository) SumByProduct(ctx context.Context, productID int64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&models.StockMovementModel{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN quantity ELSE -quantity END), 0)", string(inventory.MovementTypeIn)).
		Where("product_id = ?", productID).
		Scan(&sum).Error
	if err != nil {
		return 0, translateError(err)
	}
	return sum, nil
}

func (r *GormStockMovementRepository) applyFilter(q *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("LOWER(product_name) LIKE ? OR LOWER(reason) LIKE ?", p, p)
	}
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			q = q.Where("product_id = ?", value)
		case "type":
			q = q.Where("type = ?", toString(value))
		}
	}
	return q
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
