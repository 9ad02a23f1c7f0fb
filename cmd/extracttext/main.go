// extracttext resolves an owner's active document and prints its normalized
// text without calling the extraction endpoint. Diagnostic tool for checking
// what the pipeline would submit.
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
	"github.com/teamforge/profile-extractor/internal/repository"
	"github.com/teamforge/profile-extractor/internal/resolver"
	"github.com/teamforge/profile-extractor/internal/textextract"
)

func main() {
	ownerFlag := flag.String("owner", "", "owner UUID whose active document should be resolved")
	flag.Parse()

	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ownerID, err := uuid.Parse(*ownerFlag)
	if err != nil {
		logger.Error("invalid -owner flag", "value", *ownerFlag, "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		logger.Error("DB_URL is required")
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

	blob, err := blobstore.NewS3Store(ctx, cfg.Blob, logger)
	if err != nil {
		logger.Error("init blob store", "error", err)
		os.Exit(1)
	}

	docsRepo := repository.NewDocumentReferenceRepository(db, logger)
	files := resolver.NewResolver(blob, docsRepo, cfg.Blob.Bucket, logger)

	ref, err := docsRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		logger.Error("no active document", "owner_id", ownerID, "error", err)
		os.Exit(1)
	}
	data, err := files.Resolve(ctx, ref)
	if err != nil {
		logger.Error("resolve failed", "owner_id", ownerID, "error", err)
		os.Exit(1)
	}

	res, err := textextract.NewExtractor(logger).Extract(ctx, ref.DisplayName, data)
	if err != nil {
		logger.Error("extract failed", "owner_id", ownerID, "error", err)
		os.Exit(1)
	}
	fmt.Println(res.Text)
}
