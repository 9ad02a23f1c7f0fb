package entity

import (
	"time"

	"github.com/google/uuid"
)

// StructuredRecord is the canonical, section-based representation of an
// owner's profile document. All five sections are always populated; a
// section the extraction service had nothing for carries the sentinel text.
type StructuredRecord struct {
	OwnerID        uuid.UUID `json:"owner_id"`
	Education      string    `json:"education"`
	WorkExperience string    `json:"work_experience"`
	Skills         string    `json:"skills"`
	Languages      string    `json:"languages"`
	Certifications string    `json:"certifications"`
	ExtractedAt    time.Time `json:"extracted_at"`
}
