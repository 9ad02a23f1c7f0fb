package common

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Each stage's failure mode is a value,
// not a caught exception inspected by string matching.
type Kind string

const (
	KindMalformedReference  Kind = "MALFORMED_REFERENCE"
	KindUnreachable         Kind = "FILE_UNREACHABLE"
	KindUnsupportedFormat   Kind = "UNSUPPORTED_FORMAT"
	KindUnreadableDocument  Kind = "UNREADABLE_DOCUMENT"
	KindExtractionFatal     Kind = "EXTRACTION_REJECTED"
	KindExtractionExhausted Kind = "EXTRACTION_EXHAUSTED"
	KindPersistence         Kind = "PERSISTENCE_FAILED"
	KindNotFound            Kind = "NOT_FOUND"
)

// PipelineError is the application error carried through the ingestion
// pipeline. Fatal kinds are never retried within an invocation.
type PipelineError struct {
	Kind     Kind
	Message  string
	Attempts int // >0 only for KindExtractionExhausted
	Cause    error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// NewPipelineError builds a PipelineError for the given kind.
func NewPipelineError(kind Kind, message string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the failure kind from err, or "" if err is not a
// PipelineError.
func KindOf(err error) Kind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// WrapError wraps err with a message, preserving the chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
