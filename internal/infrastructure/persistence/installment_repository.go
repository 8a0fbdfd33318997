package persistence

import (
	"context"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements finance.InstallmentRepository
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// Create inserts one installment. The (creditor, number) pair is unique.
func (r *GormInstallmentRepository) Create(ctx context.Context, inst *finance.CarneInstallment) error {
	m := models.CarneInstallmentModelFromDomain(inst)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	inst.ID = m.ID
	return nil
}

// FindByID finds an installment by ID
func (r *GormInstallmentRepository) FindByID(ctx context.Context, id int64) (*finance.CarneInstallment, error) {
	var m models.CarneInstallmentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindByCreditor returns a creditor's installments ordered by number
func (r *GormInstallmentRepository) FindByCreditor(ctx context.Context, creditorID int64) ([]finance.CarneInstallment, error) {
	var rows []models.CarneInstallmentModel
	err := r.db.WithContext(ctx).
		Where("creditor_id = ?", creditorID).
		Order("installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make([]finance.CarneInstallment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// SaveWithLock updates payment and due-date fields if the stored version is inst.Version-1
func (r *GormInstallmentRepository) SaveWithLock(ctx context.Context, inst *finance.CarneInstallment) error {
	result := r.db.WithContext(ctx).
		Model(&models.CarneInstallmentModel{}).
		Where("id = ? AND version = ?", inst.ID, inst.Version-1).
		Updates(map[string]any{
			"due_date":   inst.DueDate,
			"paid":       inst.Paid,
			"paid_at":    inst.PaidAt,
			"version":    inst.Version,
			"updated_at": inst.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteByIDs removes the given installments
func (r *GormInstallmentRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.CarneInstallmentModel{}).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// DeleteByCreditor removes every installment of a creditor
func (r *GormInstallmentRepository) DeleteByCreditor(ctx context.Context, creditorID int64) error {
	if err := r.db.WithContext(ctx).Where("creditor_id = ?", creditorID).Delete(&models.CarneInstallmentModel{}).Error; err != nil {
		return translateError(err)
	}
	return nil
}

var _ finance.InstallmentRepository = (*GormInstallmentRepository)(nil)
