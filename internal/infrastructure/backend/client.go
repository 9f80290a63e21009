// Package backend is the HTTP client for the storefront's REST API. It owns
// the wire format; callers see domain types and domain errors only.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// Config captures the settings for reaching the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the backend. It never retries.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// New validates cfg and returns a Client. A default timeout is applied when
// none is provided.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend: invalid base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
	header      http.Header
}

func (c *Client) newJSONRequest(method, path, token string, payload any) (request, error) {
	req := request{method: method, path: path, token: token}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		req.body = bytes.NewReader(raw)
		req.contentType = "application/json"
	}
	return req, nil
}

// do sends r and decodes a 2xx JSON body into out. Transport failures wrap
// domain.ErrBackendUnavailable; non-2xx responses become *domain.APIError.
func (c *Client) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.base.String()+r.path, r.body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(r.method, "error").Observe(time.Since(start).Seconds())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", r.method, r.path, ctxErr)
		}
		c.log.Warn().Err(err).Str("method", r.method).Str("path", r.path).Msg("backend unreachable")
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, r.method, r.path, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(r.method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// errorPayload covers the envelopes the backend uses for error messages.
type errorPayload struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decodeError(resp *http.Response) error {
	apiErr := &domain.APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var p errorPayload
	if json.Unmarshal(raw, &p) == nil {
		apiErr.Message = firstNonEmpty(detailMessage(p.Detail), p.Message, p.Error)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// detailMessage reads a detail that is either a string or a list of
// validation entries with a msg field.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var entries []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(raw, &entries) == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Ping reports whether the backend answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String()+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

func isNotFound(err error) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func escape(id string) string {
	return url.PathEscape(id)
}
