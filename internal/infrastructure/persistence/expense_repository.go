package persistence

import (
	"context"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create inserts an expense
func (r *GormExpenseRepository) Create(ctx context.Context, e *finance.Expense) error {
	m := models.ExpenseModelFromDomain(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	e.ID = m.ID
	return nil
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id int64) (*finance.Expense, error) {
	var m models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists expenses
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	var rows []models.ExpenseModel
	q := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter), filter, expenseSortFields, "created_at")
	if err := q.Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]finance.Expense, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var n int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter).Count(&n).Error; err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// SaveWithLock updates the expense if the stored version is e.Version-1
func (r *GormExpenseRepository) SaveWithLock(ctx context.Context, e *finance.Expense) error {
	result := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Where("id = ? AND version = ?", e.ID, e.Version-1).
		Updates(map[string]any{
			"description": e.Description,
			"amount":      e.Amount.Int64(),
			"category":    e.Category,
			"supplier":    e.Supplier,
			"due_date":    e.DueDate,
			"paid":        e.Paid,
			"version":     e.Version,
			"updated_at":  e.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormExpenseRepository) applyFilter(q *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("LOWER(description) LIKE ? OR LOWER(supplier) LIKE ?", p, p)
	}
	for key, value := range filter.Filters {
		switch key {
		case "paid":
			q = q.Where("paid = ?", value)
		case "category":
			q = q.Where("category = ?", value)
		}
	}
	return q
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
