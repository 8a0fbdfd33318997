package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterDBTracing installs the otelgorm plugin so every query becomes a
// child span of the request. Query variables are never attached.
func RegisterDBTracing(db *gorm.DB, enabled bool, dbSystem string, logger *zap.Logger) error {
	if !enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}
	if dbSystem == "" {
		dbSystem = "postgresql"
	}
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbSystem),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}
	logger.Info("Database tracing enabled", zap.String("db_system", dbSystem))
	return nil
}
