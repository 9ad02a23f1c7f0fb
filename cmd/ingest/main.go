package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/teamforge/profile-extractor/internal/blobstore"
	"github.com/teamforge/profile-extractor/internal/common"
	"github.com/teamforge/profile-extractor/internal/extract"
	"github.com/teamforge/profile-extractor/internal/normalize"
	"github.com/teamforge/profile-extractor/internal/pipeline"
	"github.com/teamforge/profile-extractor/internal/repository"
	"github.com/teamforge/profile-extractor/internal/resolver"
	"github.com/teamforge/profile-extractor/internal/textextract"
)

func main() {
	ownerFlag := flag.String("owner", "", "owner UUID whose active document should be ingested")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	_ = godotenv.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ownerID, err := uuid.Parse(*ownerFlag)
	if err != nil {
		logger.Error("invalid -owner flag", "value", *ownerFlag, "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)
	if err := db.EnsureSchema(ctx); err != nil {
		logger.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	blob, err := blobstore.NewS3Store(ctx, cfg.Blob, logger)
	if err != nil {
		logger.Error("init blob store", "error", err)
		os.Exit(1)
	}

	docsRepo := repository.NewDocumentReferenceRepository(db, logger)
	recordsRepo := repository.NewProfileRecordRepository(db, logger)
	files := resolver.NewResolver(blob, docsRepo, cfg.Blob.Bucket, logger)
	client := extract.NewClient(extract.Config{
		Endpoint:    cfg.Extract.Endpoint,
		Timeout:     cfg.Extract.Timeout,
		MaxAttempts: cfg.Extract.MaxAttempts,
		BackoffBase: cfg.Extract.BackoffBase,
		BackoffCap:  cfg.Extract.BackoffCap,
	}, logger)

	proc := pipeline.NewProcessor(
		logger,
		files,
		textextract.NewExtractor(logger),
		client,
		normalize.New(logger),
		docsRepo,
		recordsRepo,
		blob,
	)

	rec, err := proc.Ingest(ctx, ownerID)
	if err != nil {
		logger.Error("ingest failed", "owner_id", ownerID, "kind", common.KindOf(err), "error", err)
		os.Exit(1)
	}

	fmt.Printf("ingested profile for %s (extracted at %s)\n", rec.OwnerID, rec.ExtractedAt.Format("2006-01-02 15:04:05"))
}
