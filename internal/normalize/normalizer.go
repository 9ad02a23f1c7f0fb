package normalize

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamforge/profile-extractor/constants"
	"github.com/teamforge/profile-extractor/internal/entity"
)

// Normalizer turns the raw extraction payload into a StructuredRecord with
// all five sections populated. It never fails: missing or malformed
// sections degrade to defaults with a warning.
type Normalizer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize renders each section of the payload into canonical display
// text. Sections the service omitted, or returned as something other than a
// sequence, become the "no information" sentinel.
func (n *Normalizer) Normalize(ownerID uuid.UUID, payload map[string]any) *entity.StructuredRecord {
	rec := &entity.StructuredRecord{
		OwnerID:     ownerID,
		ExtractedAt: time.Now().UTC(),
	}
	for _, section := range constants.Sections {
		text := n.renderSection(ownerID, section, payload)
		switch section {
		case constants.SectionEducation:
			rec.Education = text
		case constants.SectionExperience:
			rec.WorkExperience = text
		case constants.SectionSkills:
			rec.Skills = text
		case constants.SectionLanguages:
			rec.Languages = text
		case constants.SectionCertifications:
			rec.Certifications = text
		}
	}
	return rec
}

func (n *Normalizer) renderSection(ownerID uuid.UUID, section constants.Section, payload map[string]any) string {
	items := []any{}
	if v, ok := payload[string(section)]; ok {
		if seq, ok := v.([]any); ok {
			items = seq
		} else {
			n.logger.Warn("normalize.section_not_sequence",
				"owner_id", ownerID, "section", section)
		}
	} else {
		n.logger.Warn("normalize.section_missing",
			"owner_id", ownerID, "section", section)
	}

	text := RenderSection(section, items)
	if text == "" {
		return constants.NoInformation
	}
	return text
}
