package models

import (
	"time"

	"github.com/erp/pdv/internal/domain/inventory"
)

// StockMovementModel is the persistence model for the append-only stock log.
// It has no updated_at column: rows are never changed.
type StockMovementModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ProductID   int64     `gorm:"not null;index"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	Type        string    `gorm:"type:varchar(10);not null;index"`
	Quantity    int64     `gorm:"not null"`
	Reason      string    `gorm:"type:varchar(500);not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        inventory.MovementType(m.Type),
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}

// StockMovementModelFromDomain creates a persistence model from a domain StockMovement
func StockMovementModelFromDomain(s *inventory.StockMovement) *StockMovementModel {
	return &StockMovementModel{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Type:        string(s.Type),
		Quantity:    s.Quantity,
		Reason:      s.Reason,
		CreatedAt:   s.CreatedAt,
	}
}
