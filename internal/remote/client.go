// Package remote talks to the cloud document store that holds sensor and filter documents.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sanisip/internal/gateway"
	"sanisip/internal/models"
)

// ErrFetchFailed covers both transport errors and non-2xx responses.
var ErrFetchFailed = errors.New("fetch failed")

const defaultTimeout = 10 * time.Second

// Config locates the two documents.
type Config struct {
	BaseURL    string        // e.g. https://<db>.firebasedatabase.app
	SensorPath string        // e.g. WaterData
	FilterPath string        // e.g. FilterData
	Timeout    time.Duration // zero selects defaultTimeout
}

// Client performs JSON reads and writes against the store.
type Client struct {
	base       string
	sensorPath string
	filterPath string
	http       *http.Client
}

// NewClient builds a client over the given transport (nil uses http.DefaultTransport).
func NewClient(cfg Config, transport http.RoundTripper) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:       strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		sensorPath: documentPath(cfg.SensorPath),
		filterPath: documentPath(cfg.FilterPath),
		http:       &http.Client{Timeout: timeout, Transport: transport},
	}
}

// documentPath normalizes "WaterData" or "/WaterData.json" to "/WaterData.json".
func documentPath(p string) string {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	if !strings.HasSuffix(p, ".json") {
		p += ".json"
	}
	return p
}

// SensorURL returns the absolute URL of the sensor document.
func (c *Client) SensorURL() string { return c.base + c.sensorPath }

// FilterURL returns the absolute URL of the filter document.
func (c *Client) FilterURL() string { return c.base + c.filterPath }

// GetSensor reads the latest sensor document.
func (c *Client) GetSensor(ctx context.Context) (models.SensorPayload, error) {
	var p models.SensorPayload
	if err := c.do(ctx, http.MethodGet, c.SensorURL(), nil, &p); err != nil {
		return models.SensorPayload{}, err
	}
	return p, nil
}

// GetFilter reads the filter document.
func (c *Client) GetFilter(ctx context.Context) (models.FilterState, error) {
	var f models.FilterState
	if err := c.do(ctx, http.MethodGet, c.FilterURL(), nil, &f); err != nil {
		return models.FilterState{}, err
	}
	return f, nil
}

// PutFilter replaces the whole filter document.
func (c *Client) PutFilter(ctx context.Context, f models.FilterState) error {
	return c.do(ctx, http.MethodPut, c.FilterURL(), f, nil)
}

// PatchFilter updates only the given fields of the filter document.
func (c *Client) PatchFilter(ctx context.Context, fields map[string]any) error {
	return c.do(ctx, http.MethodPatch, c.FilterURL(), fields, nil)
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", method, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrFetchFailed, method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %s: status %d", ErrFetchFailed, method, url, resp.StatusCode)
	}

	if resp.Header.Get(gateway.HeaderOffline) != "" {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %s: offline", ErrFetchFailed, method, url)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode %s %s: %v", ErrFetchFailed, method, url, err)
	}
	return nil
}
