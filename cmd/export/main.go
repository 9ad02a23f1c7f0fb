// export writes all stored structured records to an XLSX workbook.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/teamforge/profile-extractor/internal/common"
	"github.com/teamforge/profile-extractor/internal/export"
	"github.com/teamforge/profile-extractor/internal/repository"
)

func main() {
	outFlag := flag.String("out", "profiles.xlsx", "output file path")
	flag.Parse()

	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		logger.Error("DB_URL is required")
		os.Exit(2)
	}

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	svc := export.NewService(repository.NewProfileRecordRepository(db, logger), logger)
	data, err := svc.ExportRecordsXLSX(ctx)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outFlag, data, 0o644); err != nil {
		logger.Error("write output", "path", *outFlag, "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *outFlag, "bytes", len(data))
}
