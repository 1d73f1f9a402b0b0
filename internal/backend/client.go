package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dukapos/pos-terminal/pkg/config"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/dukapos/pos-terminal/pkg/metrics"
)

const maxResponseBytes = 1 << 20

// Client executes authenticated JSON calls against the store backend.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.EngineMetrics
}

// NewClient builds a backend client from the configured base URL and timeout.
func NewClient(cfg config.BackendConfig, m *metrics.EngineMetrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		metrics: m,
	}
}

// APIError carries the backend's user-displayable message for a non-2xx
// response. Callers surface Message verbatim and do not interpret it.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

// Do executes one JSON round trip. A transport failure maps to a
// dependency error; a non-2xx status maps to *APIError.
func (c *Client) Do(ctx context.Context, op, method, path string, query url.Values, token string, body, dest any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode backend request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build backend request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveBackend(op, time.Since(start))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call backend")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read backend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: ExtractMessage(raw)}
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode backend response")
	}
	return nil
}

// Ping verifies the backend is reachable for readiness checks. Any
// HTTP response counts; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/", nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build ping request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ping backend")
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	resp.Body.Close()
	return nil
}

// ExtractMessage flattens a DRF-style error body into one displayable
// message. Recognized shapes: {"detail": "..."}, {"non_field_errors":
// ["..."]}, {"<field>": ["..."]}, and a bare JSON string.
func ExtractMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "request failed"
	}

	var asString string
	if err := json.Unmarshal(trimmed, &asString); err == nil && asString != "" {
		return asString
	}

	var asMap map[string]any
	if err := json.Unmarshal(trimmed, &asMap); err == nil {
		if msg := firstMessage(asMap, "detail"); msg != "" {
			return msg
		}
		if msg := firstMessage(asMap, "non_field_errors"); msg != "" {
			return msg
		}
		for _, value := range asMap {
			if msg := flatten(value); msg != "" {
				return msg
			}
		}
	}

	return "request failed"
}

func firstMessage(fields map[string]any, key string) string {
	value, ok := fields[key]
	if !ok {
		return ""
	}
	return flatten(value)
}

func flatten(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if msg := flatten(item); msg != "" {
				return msg
			}
		}
	case map[string]any:
		for _, item := range v {
			if msg := flatten(item); msg != "" {
				return msg
			}
		}
	}
	return ""
}
