package extract

import "context"

// Request is the payload sent to the structured-extraction endpoint.
type Request struct {
	OwnerID  string `json:"owner_id"`
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
	Text     string `json:"text"`
}

// SectionExtractor is the interface the pipeline depends on. The returned
// map is the raw, loosely-typed payload; the normalizer owns turning it into
// a canonical record. The raw body is returned alongside for diagnostics.
type SectionExtractor interface {
	ExtractSections(ctx context.Context, req Request) (map[string]any, []byte, error)
}
