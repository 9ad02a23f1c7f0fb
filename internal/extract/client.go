package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamforge/profile-extractor/internal/common"
)

// Config for the extraction-endpoint client.
type Config struct {
	Endpoint    string
	Timeout     time.Duration // per-request http timeout
	MaxAttempts int           // total attempts, default 3
	BackoffBase time.Duration // default 1s
	BackoffCap  time.Duration // default 5s
}

// Client calls the remote structured-extraction endpoint with bounded retry.
// 4xx responses are fatal and never retried; everything else (network
// errors, 5xx, malformed bodies) is retried up to the attempt budget.
type Client struct {
	cfg    Config
	http   *http.Client
	schema map[string]any
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	if cfg.BackoffCap <= 0 {
		cfg.BackoffCap = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		schema: BuildPayloadSchema(),
		logger: logger,
	}
}

// Backoff returns the wait before the attempt following failed attempt i
// (zero-based): min(ceil, base * 2^i).
func Backoff(i int, base, ceil time.Duration) time.Duration {
	d := base << uint(i)
	if d > ceil || d <= 0 {
		return ceil
	}
	return d
}

func (c *Client) ExtractSections(ctx context.Context, req Request) (map[string]any, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	req.Text = SanitizeForTransport(req.Text)

	c.logger.Info("extract.start",
		"req_id", rid,
		"owner_id", req.OwnerID,
		"file_name", req.FileName,
		"text_len", len(req.Text),
		"max_attempts", c.cfg.MaxAttempts,
	)

	var lastErr error
	var lastRaw []byte
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := Backoff(attempt-2, c.cfg.BackoffBase, c.cfg.BackoffCap)
			c.logger.Warn("extract.retrying",
				"req_id", rid, "attempt", attempt, "delay_ms", delay.Milliseconds(), "last_error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, lastRaw, ctx.Err()
			}
		}

		payload, raw, err := c.attempt(ctx, req, rid, attempt)
		lastRaw = raw
		if err == nil {
			c.logger.Info("extract.ok",
				"req_id", rid,
				"attempt", attempt,
				"sections", len(payload),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return payload, raw, nil
		}
		if common.IsKind(err, common.KindExtractionFatal) {
			c.logger.Error("extract.rejected",
				"req_id", rid, "attempt", attempt, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, raw, err
		}
		lastErr = err
	}

	c.logger.Error("extract.exhausted",
		"req_id", rid,
		"attempts", c.cfg.MaxAttempts,
		"error", lastErr,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil, lastRaw, &common.PipelineError{
		Kind:     common.KindExtractionExhausted,
		Message:  fmt.Sprintf("extraction failed after %d attempts", c.cfg.MaxAttempts),
		Attempts: c.cfg.MaxAttempts,
		Cause:    lastErr,
	}
}

// attempt performs one request. Errors it returns are retryable unless
// tagged EXTRACTION_REJECTED.
func (c *Client) attempt(ctx context.Context, req Request, rid string, attempt int) (map[string]any, []byte, error) {
	bs, err := json.Marshal(req)
	if err != nil {
		return nil, nil, common.NewPipelineError(common.KindExtractionFatal, "encode request", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(bs))
	if err != nil {
		return nil, nil, common.NewPipelineError(common.KindExtractionFatal, "build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("extract.http.request",
		"req_id", rid, "attempt", attempt, "content_length", len(bs))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("extract.http.body_close_error", "req_id", rid, "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	c.logger.Debug("extract.http.response",
		"req_id", rid, "attempt", attempt, "status", resp.StatusCode, "bytes", len(raw))

	switch {
	case resp.StatusCode/100 == 2:
		// fall through to payload decoding
	case resp.StatusCode/100 == 4:
		return nil, raw, common.NewPipelineError(common.KindExtractionFatal,
			fmt.Sprintf("endpoint rejected request: status %d", resp.StatusCode), nil)
	default:
		return nil, raw, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	// A malformed 200 body is treated as a transient server hiccup and stays
	// retryable, matching the endpoint's observed behavior.
	if err := ValidateJSONAgainstSchema(c.schema, raw); err != nil {
		return nil, raw, err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, raw, fmt.Errorf("decode payload: %w", err)
	}
	return payload, raw, nil
}
