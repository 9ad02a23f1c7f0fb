package extract_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamforge/profile-extractor/internal/common"
	"github.com/teamforge/profile-extractor/internal/extract"
)

type stubEndpoint struct {
	mu       sync.Mutex
	hits     []time.Time
	requests []extract.Request
	handler  func(attempt int, w http.ResponseWriter)
}

func (s *stubEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits = append(s.hits, time.Now())
	attempt := len(s.hits)
	var req extract.Request
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	s.handler(attempt, w)
}

func (s *stubEndpoint) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hits)
}

func newTestClient(endpoint string) *extract.Client {
	return extract.NewClient(extract.Config{
		Endpoint:    endpoint,
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
		BackoffBase: 20 * time.Millisecond,
		BackoffCap:  100 * time.Millisecond,
	}, nil)
}

func TestExtractSectionsSuccess(t *testing.T) {
	stub := &stubEndpoint{handler: func(_ int, w http.ResponseWriter) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"education": []any{map[string]any{"institution": "MIT"}},
			"skills":    []any{map[string]any{"name": "Go"}},
		})
	}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	payload, raw, err := newTestClient(srv.URL).ExtractSections(context.Background(), extract.Request{
		OwnerID:  "o-1",
		FileName: "resume.pdf",
		Text:     "some text",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.count())
	assert.NotEmpty(t, raw)
	assert.Contains(t, payload, "education")
}

func TestExtractSectionsRetriesServerErrors(t *testing.T) {
	stub := &stubEndpoint{handler: func(_ int, w http.ResponseWriter) {
		w.WriteHeader(http.StatusInternalServerError)
	}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).ExtractSections(context.Background(), extract.Request{Text: "t"})
	require.Error(t, err)
	assert.Equal(t, 3, stub.count(), "exactly the attempt budget")

	var pe *common.PipelineError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, common.KindExtractionExhausted, pe.Kind)
	assert.Equal(t, 3, pe.Attempts)
}

func TestExtractSectionsBackoffGrows(t *testing.T) {
	stub := &stubEndpoint{handler: func(_ int, w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadGateway)
	}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	client := extract.NewClient(extract.Config{
		Endpoint:    srv.URL,
		MaxAttempts: 3,
		BackoffBase: 50 * time.Millisecond,
		BackoffCap:  time.Second,
	}, nil)
	_, _, err := client.ExtractSections(context.Background(), extract.Request{Text: "t"})
	require.Error(t, err)
	require.Equal(t, 3, stub.count())

	gap1 := stub.hits[1].Sub(stub.hits[0])
	gap2 := stub.hits[2].Sub(stub.hits[1])
	assert.GreaterOrEqual(t, gap1, 50*time.Millisecond)
	assert.GreaterOrEqual(t, gap2, 100*time.Millisecond)
	assert.Greater(t, gap2, gap1, "delay doubles between attempts")
}

func TestExtractSectionsClientErrorIsFatal(t *testing.T) {
	stub := &stubEndpoint{handler: func(_ int, w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadRequest)
	}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).ExtractSections(context.Background(), extract.Request{Text: "t"})
	require.Error(t, err)
	assert.Equal(t, 1, stub.count(), "no retry after a 4xx")
	assert.True(t, common.IsKind(err, common.KindExtractionFatal))
}

func TestExtractSectionsMalformedBodyIsRetryable(t *testing.T) {
	stub := &stubEndpoint{handler: func(_ int, w http.ResponseWriter) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).ExtractSections(context.Background(), extract.Request{Text: "t"})
	require.Error(t, err)
	assert.Equal(t, 3, stub.count())
	assert.True(t, common.IsKind(err, common.KindExtractionExhausted))
}

func TestExtractSectionsSanitizesTextBeforeSend(t *testing.T) {
	stub := &stubEndpoint{handler: func(_ int, w http.ResponseWriter) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).ExtractSections(context.Background(), extract.Request{
		Text: "café résumé\nplain",
	})
	require.NoError(t, err)
	require.Len(t, stub.requests, 1)
	assert.Equal(t, "caf rsum\nplain", stub.requests[0].Text)
}

func TestBackoffSchedule(t *testing.T) {
	base := time.Second
	ceil := 5 * time.Second
	assert.Equal(t, 1*time.Second, extract.Backoff(0, base, ceil))
	assert.Equal(t, 2*time.Second, extract.Backoff(1, base, ceil))
	assert.Equal(t, 4*time.Second, extract.Backoff(2, base, ceil))
	assert.Equal(t, 5*time.Second, extract.Backoff(3, base, ceil))
	assert.Equal(t, 5*time.Second, extract.Backoff(30, base, ceil))
}
