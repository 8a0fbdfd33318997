//go:build integration

package migration_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/erp/pdv/internal/infrastructure/migration"
	"github.com/erp/pdv/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	gormlogger "gorm.io/gorm/logger"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pdv_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestMigrator_UpDownAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	dsn := startPostgres(t)
	logger := zaptest.NewLogger(t)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	m, err := migration.New(sqlDB, logger)
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	require.NoError(t, m.Up(), "second run is a no-op")
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	// repositories work against the migrated schema
	db, err := persistence.Open(postgres.Open(dsn), gormlogger.Discard)
	require.NoError(t, err)
	repo := persistence.NewGormProductRepository(db)

	p, err := catalog.NewProduct(catalog.ProductInput{Name: "Caderno", Price: valueobject.Cents(1590), MinStock: 2})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.Cents(1590), got.Price)

	raw, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	require.NoError(t, m.Down())
	require.NoError(t, m.Close())
}
