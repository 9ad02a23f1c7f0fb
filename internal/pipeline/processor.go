package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamforge/profile-extractor/internal/blobstore"
	"github.com/teamforge/profile-extractor/internal/common"
	"github.com/teamforge/profile-extractor/internal/entity"
	"github.com/teamforge/profile-extractor/internal/extract"
	"github.com/teamforge/profile-extractor/internal/normalize"
	"github.com/teamforge/profile-extractor/internal/repository"
	"github.com/teamforge/profile-extractor/internal/resolver"
	"github.com/teamforge/profile-extractor/internal/textextract"
)

// Stage names one step of an ingestion invocation.
type Stage string

const (
	StageResolving   Stage = "RESOLVING"
	StageExtracting  Stage = "EXTRACTING"
	StageSubmitting  Stage = "SUBMITTING"
	StageNormalizing Stage = "NORMALIZING"
	StagePersisting  Stage = "PERSISTING"
	StageDone        Stage = "DONE"
)

// FileResolver yields the bytes behind a document reference.
type FileResolver interface {
	Resolve(ctx context.Context, ref *entity.DocumentReference) ([]byte, error)
}

// Processor composes the ingestion stages: resolve file access, extract
// text, submit to the extraction endpoint, normalize, persist. A failed
// invocation persists nothing and must be restarted from the top by the
// caller. The processor does not serialize invocations per owner; the
// caller must, since persistence is last-write-wins with no version check.
type Processor struct {
	logger     *slog.Logger
	files      FileResolver
	text       *textextract.Extractor
	sections   extract.SectionExtractor
	normalizer *normalize.Normalizer
	docsRepo   repository.DocumentReferenceRepository
	records    repository.ProfileRecordRepository
	blob       blobstore.BlobStore
}

func NewProcessor(
	logger *slog.Logger,
	files FileResolver,
	text *textextract.Extractor,
	sections extract.SectionExtractor,
	normalizer *normalize.Normalizer,
	docsRepo repository.DocumentReferenceRepository,
	records repository.ProfileRecordRepository,
	blob blobstore.BlobStore,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		files:      files,
		text:       text,
		sections:   sections,
		normalizer: normalizer,
		docsRepo:   docsRepo,
		records:    records,
		blob:       blob,
	}
}

// Ingest runs the full pipeline for the owner's active document and returns
// the persisted record. Errors carry a common.Kind naming the failed stage's
// failure mode.
func (p *Processor) Ingest(ctx context.Context, ownerID uuid.UUID) (*entity.StructuredRecord, error) {
	ref, err := p.docsRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		p.logger.Error("pipeline.no_document", "owner_id", ownerID, "error", err)
		return nil, err
	}

	p.stage(ownerID, StageResolving)
	data, err := p.files.Resolve(ctx, ref)
	if err != nil {
		p.logger.Error("pipeline.resolve_failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	p.stage(ownerID, StageExtracting)
	res, err := p.text.Extract(ctx, ref.DisplayName, data)
	if err != nil {
		p.logger.Error("pipeline.extract_failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	p.stage(ownerID, StageSubmitting)
	payload, raw, err := p.sections.ExtractSections(ctx, extract.Request{
		OwnerID:  ownerID.String(),
		FileURL:  p.fileURL(ref),
		FileName: ref.DisplayName,
		Text:     res.Text,
	})
	if err != nil {
		p.logger.Error("pipeline.submit_failed",
			"owner_id", ownerID, "error", err, "raw_bytes", len(raw))
		return nil, err
	}

	p.stage(ownerID, StageNormalizing)
	rec := p.normalizer.Normalize(ownerID, payload)

	p.stage(ownerID, StagePersisting)
	if err := p.records.Upsert(ctx, rec); err != nil {
		p.logger.Error("pipeline.persist_failed", "owner_id", ownerID, "error", err)
		return nil, common.NewPipelineError(common.KindPersistence,
			"failed to store structured record", err)
	}

	p.stage(ownerID, StageDone)
	p.logger.Info("pipeline.ok",
		"owner_id", ownerID,
		"file", ref.DisplayName,
		"format", res.Format,
		"pages", res.Pages,
	)
	return rec, nil
}

// fileURL derives the URL sent to the extraction endpoint. By this point a
// healed reference already carries its canonical locator.
func (p *Processor) fileURL(ref *entity.DocumentReference) string {
	if bucket, path, err := resolver.ParseLocator(ref.StorageLocator); err == nil {
		return p.blob.PublicURL(bucket, path)
	}
	return ref.StorageLocator
}

func (p *Processor) stage(ownerID uuid.UUID, s Stage) {
	p.logger.Debug("pipeline.stage", "owner_id", ownerID, "stage", s)
}
