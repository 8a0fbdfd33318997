package persistence

import (
	"context"
	"time"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCreditorRepository implements finance.CreditorRepository using GORM.
// Rows are returned with their stored status; overdue projection happens in
// the application layer.
type GormCreditorRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormCreditorRepository creates a new GormCreditorRepository
func NewGormCreditorRepository(db *gorm.DB) *GormCreditorRepository {
	return &GormCreditorRepository{db: db, now: time.Now}
}

// Create inserts a creditor and assigns its ID
func (r *GormCreditorRepository) Create(ctx context.Context, c *finance.Creditor) error {
	m := models.CreditorModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	c.ID = m.ID
	return nil
}

// FindByID finds a creditor by ID
func (r *GormCreditorRepository) FindByID(ctx context.Context, id int64) (*finance.Creditor, error) {
	var m models.CreditorModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists creditors, earliest due first by default
func (r *GormCreditorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Creditor, error) {
	var rows []models.CreditorModel
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "due_date", "asc"
	}
	q := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.CreditorModel{}), filter), filter, creditorSortFields, "due_date")
	if err := q.Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]finance.Creditor, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts creditors matching the filter
func (r *GormCreditorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var n int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CreditorModel{}), filter).Count(&n).Error; err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// SaveWithLock updates the balance fields if the stored version is c.Version-1
func (r *GormCreditorRepository) SaveWithLock(ctx context.Context, c *finance.Creditor) error {
	m := models.CreditorModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&models.CreditorModel{}).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Updates(map[string]any{
			"total_debt":       m.TotalDebt,
			"paid_amount":      m.PaidAmount,
			"remaining_amount": m.RemainingAmount,
			"due_date":         m.DueDate,
			"description":      m.Description,
			"status":           m.Status,
			"version":          m.Version,
			"updated_at":       m.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a creditor row. Dependent installments and payments must be
// removed first.
func (r *GormCreditorRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.CreditorModel{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCreditorRepository) applyFilter(q *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("LOWER(customer_name) LIKE ? OR LOWER(description) LIKE ?", p, p)
	}
	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			q = q.Where("customer_id = ?", value)
		case "sale_id":
			q = q.Where("sale_id = ?", value)
		case "status":
			q = r.statusScope(q, toString(value))
		}
	}
	return q
}

// statusScope filters on the effective status: overdue is a pending row
// past its due date.
func (r *GormCreditorRepository) statusScope(q *gorm.DB, status any) *gorm.DB {
	now := r.now()
	pending := string(finance.CreditorStatusPending)
	switch status {
	case string(finance.CreditorStatusOverdue):
		return q.Where("status = ? AND due_date < ?", pending, now)
	case pending:
		return q.Where("status = ? AND due_date >= ?", pending, now)
	default:
		return q.Where("status = ?", status)
	}
}

var _ finance.CreditorRepository = (*GormCreditorRepository)(nil)
