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

// ProfileRecordRepository stores structured records, one row per owner.
// Upsert is the only write path; last write wins, no merge.
type ProfileRecordRepository interface {
	Upsert(ctx context.Context, rec *entity.StructuredRecord) error
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.StructuredRecord, error)
	List(ctx context.Context) ([]*entity.StructuredRecord, error)
}

type profileRecordRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewProfileRecordRepository(db *DB, logger *slog.Logger) ProfileRecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileRecordRepo{db: db, logger: logger}
}

func (r *profileRecordRepo) Upsert(ctx context.Context, rec *entity.StructuredRecord) error {
	_, err := r.db.SQL.ExecContext(ctx,
		`INSERT INTO structured_records
			(owner_id, education, work_experience, skills, languages, certifications, extracted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (owner_id) DO UPDATE SET
			education       = excluded.education,
			work_experience = excluded.work_experience,
			skills          = excluded.skills,
			languages       = excluded.languages,
			certifications  = excluded.certifications,
			extracted_at    = excluded.extracted_at`,
		rec.OwnerID.String(), rec.Education, rec.WorkExperience,
		rec.Skills, rec.Languages, rec.Certifications, rec.ExtractedAt)
	if err != nil {
		r.logger.Error("failed to upsert structured record", "owner_id", rec.OwnerID, "error", err)
		return common.WrapError(err, "upsert structured record")
	}
	return nil
}

func (r *profileRecordRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.StructuredRecord, error) {
	row := r.db.SQL.QueryRowContext(ctx,
		`SELECT owner_id, education, work_experience, skills, languages, certifications, extracted_at
		 FROM structured_records WHERE owner_id = $1`, ownerID.String())
	return scanRecord(row.Scan)
}

func (r *profileRecordRepo) List(ctx context.Context) ([]*entity.StructuredRecord, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT owner_id, education, work_experience, skills, languages, certifications, extracted_at
		 FROM structured_records ORDER BY extracted_at DESC`)
	if err != nil {
		r.logger.Error("failed to list structured records", "error", err)
		return nil, common.WrapError(err, "list structured records")
	}
	defer rows.Close()

	var out []*entity.StructuredRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(scan func(dest ...any) error) (*entity.StructuredRecord, error) {
	var (
		id          string
		rec         entity.StructuredRecord
		extractedAt time.Time
	)
	err := scan(&id, &rec.Education, &rec.WorkExperience,
		&rec.Skills, &rec.Languages, &rec.Certifications, &extractedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewPipelineError(common.KindNotFound, "no structured record for owner", err)
		}
		return nil, common.WrapError(err, "scan structured record")
	}
	rec.OwnerID = uuid.MustParse(id)
	rec.ExtractedAt = extractedAt
	return &rec, nil
}
