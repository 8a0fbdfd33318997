package legacyimport_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/erp/pdv/internal/application/legacyimport"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/legacy"
	"github.com/erp/pdv/internal/infrastructure/persistence"
	"github.com/erp/pdv/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"
)

func TestImportFromBoltIntoSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	w, err := legacy.CreateBoltFile(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(legacyimport.CollectionUsers,
		map[string]any{"id": 1, "username": "admin", "password": "admin123", "role": "admin"}))
	require.NoError(t, w.Append(legacyimport.CollectionCustomers,
		map[string]any{"id": 40, "name": "Maria"}))
	require.NoError(t, w.Append(legacyimport.CollectionProducts,
		map[string]any{"id": 7, "name": "Caderno", "price": 15.9, "stock": 8, "minStock": 2}))
	require.NoError(t, w.Append(legacyimport.CollectionSales,
		map[string]any{
			"id": 90, "paymentMethod": "crediario", "total": 15.9, "customerId": 40, "installments": 1,
			"installmentValue": 15.9,
			"items":            []map[string]any{{"productId": 7, "productName": "Caderno", "quantity": 1, "price": 15.9}},
		}))
	require.NoError(t, w.Append(legacyimport.CollectionCreditors,
		map[string]any{"id": 3, "customerId": 40, "customerName": "Maria", "totalDebt": 15.9, "remainingAmount": 15.9, "dueDate": "2030-01-10", "status": "pendente"}))
	require.NoError(t, w.Append(legacyimport.CollectionInstallments,
		map[string]any{"id": 1, "creditorId": 3, "installmentNumber": 1, "dueDate": "2030-01-10", "amount": 15.9}))
	require.NoError(t, w.Close())

	src, err := legacy.OpenBoltSource(path)
	require.NoError(t, err)
	defer src.Close()

	db, err := persistence.Open(sqlite.Open("file:legacyimport?mode=memory&cache=shared&_foreign_keys=on"), gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	report, err := legacyimport.NewImporter(src, persistence.NewGormImportSink(db), zaptest.NewLogger(t)).Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)

	saleID, ok := report.NewID(legacyimport.CollectionSales, 90)
	require.True(t, ok)
	sale, err := persistence.NewGormSaleRepository(db).FindByID(ctx, saleID)
	require.NoError(t, err)
	productID, _ := report.NewID(legacyimport.CollectionProducts, 7)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, productID, sale.Items[0].ProductID)

	creditorID, _ := report.NewID(legacyimport.CollectionCreditors, 3)
	installments, err := persistence.NewGormInstallmentRepository(db).FindByCreditor(ctx, creditorID)
	require.NoError(t, err)
	require.Len(t, installments, 1)
	assert.Equal(t, sale.Total, installments[0].Amount)

	creditors, err := persistence.NewGormCreditorRepository(db).FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, creditors, 1)
}
