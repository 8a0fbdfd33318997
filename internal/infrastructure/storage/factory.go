package storage

import (
	"context"
	"fmt"

	"github.com/erp/pdv/internal/infrastructure/config"
	"github.com/erp/pdv/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// NewDocumentStorage builds the storage backend selected by cfg.Backend
func NewDocumentStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (printing.PDFStorage, error) {
	switch cfg.Backend {
	case "", "filesystem":
		return printing.NewFileSystemStorage(&printing.FileSystemStorageConfig{
			BasePath: cfg.LocalDir,
			Logger:   logger,
		})
	case "s3":
		s, err := NewS3DocumentStorage(ctx, cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			logger.Warn("document bucket check failed", zap.String("bucket", s.Bucket()), zap.Error(err))
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
