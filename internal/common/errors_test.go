package common_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamforge/profile-extractor/internal/common"
)

func TestWrapError(t *testing.T) {
	assert.NoError(t, common.WrapError(nil, "ignored"))

	base := errors.New("connection reset")
	wrapped := common.WrapError(base, "upsert document reference")
	require.Error(t, wrapped)
	assert.Equal(t, "upsert document reference: connection reset", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base), "chain preserved through the wrap")
}

func TestKindSurvivesWrapping(t *testing.T) {
	pe := common.NewPipelineError(common.KindNotFound, "no active document for owner", nil)
	wrapped := common.WrapError(pe, "get document reference")

	assert.Equal(t, common.KindNotFound, common.KindOf(wrapped))
	assert.True(t, common.IsKind(wrapped, common.KindNotFound))
	assert.False(t, common.IsKind(wrapped, common.KindPersistence))
}

func TestPipelineErrorFormatting(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	pe := common.NewPipelineError(common.KindUnreachable, "signed url fetch failed", cause)
	assert.Equal(t, "FILE_UNREACHABLE: signed url fetch failed: dial tcp: refused", pe.Error())
	assert.True(t, errors.Is(pe, cause))

	bare := common.NewPipelineError(common.KindMalformedReference, "locator has no bucket", nil)
	assert.Equal(t, "MALFORMED_REFERENCE: locator has no bucket", bare.Error())
}

func TestKindOfNonPipelineError(t *testing.T) {
	assert.Equal(t, common.Kind(""), common.KindOf(errors.New("plain")))
	assert.False(t, common.IsKind(errors.New("plain"), common.KindNotFound))
}
