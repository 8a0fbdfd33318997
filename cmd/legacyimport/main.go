package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erp/pdv/internal/application/legacyimport"
	"github.com/erp/pdv/internal/infrastructure/config"
	"github.com/erp/pdv/internal/infrastructure/legacy"
	"github.com/erp/pdv/internal/infrastructure/logger"
	"github.com/erp/pdv/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		boltPath   string
		reportPath string
		logLevel   string
	)
	flag.StringVar(&boltPath, "bolt", "", "Path to the legacy store file (required)")
	flag.StringVar(&reportPath, "report", "", "Write the JSON report here instead of stdout")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if boltPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: legacyimport -bolt <file> [-report <file>]")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	source, err := legacy.OpenBoltSource(boltPath)
	if err != nil {
		log.Fatal("Failed to open legacy store", zap.Error(err))
	}
	defer source.Close()

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to prepare schema", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	importer := legacyimport.NewImporter(source, persistence.NewGormImportSink(db.DB), log)
	report, runErr := importer.Run(ctx)
	if report != nil {
		if err := writeReport(report, reportPath); err != nil {
			log.Error("Failed to write report", zap.Error(err))
		}
	}
	if runErr != nil {
		log.Fatal("Import aborted", zap.Error(runErr))
	}
	log.Info("Import finished",
		zap.Any("counts", report.Counts),
		zap.Int("skipped", len(report.Skipped)),
	)
}

func writeReport(report *legacyimport.Report, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
