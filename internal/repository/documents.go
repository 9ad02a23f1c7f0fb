package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamforge/profile-extractor/internal/common"
	"github.com/teamforge/profile-extractor/internal/entity"
)

// DocumentReferenceRepository stores the single active document reference
// per owner. A re-upload replaces the prior reference.
type DocumentReferenceRepository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.DocumentReference, error)
	Upsert(ctx context.Context, ref *entity.DocumentReference) error
	// UpdateLocator repoints an existing reference at a new storage location.
	// Used by the resolver's self-healing path.
	UpdateLocator(ctx context.Context, ownerID uuid.UUID, locator string) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

type documentReferenceRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewDocumentReferenceRepository(db *DB, logger *slog.Logger) DocumentReferenceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentReferenceRepo{db: db, logger: logger}
}

func (r *documentReferenceRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.DocumentReference, error) {
	row := r.db.SQL.QueryRowContext(ctx,
		`SELECT owner_id, storage_locator, display_name, uploaded_at
		 FROM document_references WHERE owner_id = $1`, ownerID.String())

	var (
		id         string
		ref        entity.DocumentReference
		uploadedAt time.Time
	)
	if err := row.Scan(&id, &ref.StorageLocator, &ref.DisplayName, &uploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewPipelineError(common.KindNotFound, "no active document for owner", err)
		}
		r.logger.Error("failed to get document reference", "owner_id", ownerID, "error", err)
		return nil, common.WrapError(err, "get document reference")
	}
	ref.OwnerID = uuid.MustParse(id)
	ref.UploadedAt = uploadedAt
	return &ref, nil
}

func (r *documentReferenceRepo) Upsert(ctx context.Context, ref *entity.DocumentReference) error {
	_, err := r.db.SQL.ExecContext(ctx,
		`INSERT INTO document_references (owner_id, storage_locator, display_name, uploaded_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (owner_id) DO UPDATE SET
			storage_locator = excluded.storage_locator,
			display_name    = excluded.display_name,
			uploaded_at     = excluded.uploaded_at`,
		ref.OwnerID.String(), ref.StorageLocator, ref.DisplayName, ref.UploadedAt)
	if err != nil {
		r.logger.Error("failed to upsert document reference", "owner_id", ref.OwnerID, "error", err)
		return common.WrapError(err, "upsert document reference")
	}
	return nil
}

func (r *documentReferenceRepo) UpdateLocator(ctx context.Context, ownerID uuid.UUID, locator string) error {
	res, err := r.db.SQL.ExecContext(ctx,
		`UPDATE document_references SET storage_locator = $2 WHERE owner_id = $1`,
		ownerID.String(), locator)
	if err != nil {
		r.logger.Error("failed to update document locator", "owner_id", ownerID, "error", err)
		return common.WrapError(err, "update document locator")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.NewPipelineError(common.KindNotFound, "no active document for owner", nil)
	}
	r.logger.Info("document locator updated", "owner_id", ownerID, "locator", locator)
	return nil
}

func (r *documentReferenceRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.db.SQL.ExecContext(ctx,
		`DELETE FROM document_references WHERE owner_id = $1`, ownerID.String())
	if err != nil {
		r.logger.Error("failed to delete document reference", "owner_id", ownerID, "error", err)
	}
	return common.WrapError(err, "delete document reference")
}
