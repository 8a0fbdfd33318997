package persistence

import (
	"context"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRepository implements finance.PaymentRepository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create appends a payment history entry
func (r *GormPaymentRepository) Create(ctx context.Context, p *finance.PaymentRecord) error {
	m := models.PaymentRecordModelFromDomain(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	p.ID = m.ID
	return nil
}

// FindByCreditor lists a creditor's payments, most recent first
func (r *GormPaymentRepository) FindByCreditor(ctx context.Context, creditorID int64) ([]finance.PaymentRecord, error) {
	var rows []models.PaymentRecordModel
	err := r.db.WithContext(ctx).
		Where("creditor_id = ?", creditorID).
		Order("payment_date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make([]finance.PaymentRecord, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// DeleteByCreditor removes a creditor's payment history
func (r *GormPaymentRepository) DeleteByCreditor(ctx context.Context, creditorID int64) error {
	if err := r.db.WithContext(ctx).Where("creditor_id = ?", creditorID).Delete(&models.PaymentRecordModel{}).Error; err != nil {
		return translateError(err)
	}
	return nil
}

var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)

// GormCreditSaleRepository implements finance.CreditSaleRepository
type GormCreditSaleRepository struct {
	db *gorm.DB
}

// NewGormCreditSaleRepository creates a new GormCreditSaleRepository
func NewGormCreditSaleRepository(db *gorm.DB) *GormCreditSaleRepository {
	return &GormCreditSaleRepository{db: db}
}

// FindByCreditor lists the legacy credit sale rows of a creditor
func (r *GormCreditSaleRepository) FindByCreditor(ctx context.Context, creditorID int64) ([]finance.CreditSale, error) {
	var rows []models.CreditSaleModel
	err := r.db.WithContext(ctx).
		Where("creditor_id = ?", creditorID).
		Order("installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make([]finance.CreditSale, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// DeleteByCreditor removes a creditor's legacy credit sale rows
func (r *GormCreditSaleRepository) DeleteByCreditor(ctx context.Context, creditorID int64) error {
	if err := r.db.WithContext(ctx).Where("creditor_id = ?", creditorID).Delete(&models.CreditSaleModel{}).Error; err != nil {
		return translateError(err)
	}
	return nil
}

var _ finance.CreditSaleRepository = (*GormCreditSaleRepository)(nil)
