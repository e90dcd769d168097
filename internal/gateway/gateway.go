// Package gateway routes outbound requests through an offline cache:
// network-first for live data hosts, cache-first for everything else.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sanisip/internal/logger"
)

// Response headers set on replies that did not come from the network.
const (
	HeaderCache   = "X-Sanisip-Cache"   // "hit" when served from the cache
	HeaderOffline = "X-Sanisip-Offline" // set on the synthesized offline payload
)

// Strategy names, also used as metric labels.
const (
	StrategyNetworkFirst = "network_first"
	StrategyCacheFirst   = "cache_first"
)

// offlineBody is returned for data requests when neither network nor cache can answer.
const offlineBody = `{"error":"offline"}`

// DefaultDataHost matches the Firebase Realtime Database domain.
const DefaultDataHost = "firebasedatabase.app"

// Recorder receives one observation per routed request. Outcomes are
// "network", "cache", "offline" and "error".
type Recorder interface {
	ObserveCache(strategy, outcome string)
}

// Config describes the cache generation and routing.
type Config struct {
	CacheName string   // current version tag, e.g. sanisip-v1
	DataHosts []string // host substrings routed network-first
	Precache  []string // absolute URLs stored on Install
	ShellURL  string   // cached root document used as the last-resort fallback

	// MaxEntryBytes caps a stored body; larger responses pass through
	// uncached. Zero selects DefaultMaxEntryBytes.
	MaxEntryBytes int64
}

// DefaultMaxEntryBytes is the largest response body the gateway stores.
const DefaultMaxEntryBytes = 8 << 20

// Gateway is an http.RoundTripper implementing the two caching strategies.
type Gateway struct {
	cfg   Config
	store Store
	next  http.RoundTripper
	log   *logger.Logger
	rec   Recorder
}

// New wraps next (nil means http.DefaultTransport). log and rec may be nil.
func New(cfg Config, store Store, next http.RoundTripper, log *logger.Logger, rec Recorder) *Gateway {
	if next == nil {
		next = http.DefaultTransport
	}
	if len(cfg.DataHosts) == 0 {
		cfg.DataHosts = []string{DefaultDataHost}
	}
	if cfg.MaxEntryBytes <= 0 {
		cfg.MaxEntryBytes = DefaultMaxEntryBytes
	}
	return &Gateway{cfg: cfg, store: store, next: next, log: log, rec: rec}
}

var _ http.RoundTripper = (*Gateway)(nil)

// RoundTrip picks the strategy for req and applies it.
func (g *Gateway) RoundTrip(req *http.Request) (*http.Response, error) {
	if g.IsDataRequest(req) {
		return g.networkFirst(req)
	}
	return g.cacheFirst(req)
}

// IsDataRequest reports whether req targets a live data host.
func (g *Gateway) IsDataRequest(req *http.Request) bool {
	host := req.URL.Hostname()
	for _, h := range g.cfg.DataHosts {
		if h != "" && strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// networkFirst never caches; on transport failure it falls back to a stored
// copy and then to a synthesized JSON payload.
func (g *Gateway) networkFirst(req *http.Request) (*http.Response, error) {
	resp, err := g.next.RoundTrip(req)
	if err == nil {
		g.observe(StrategyNetworkFirst, "network")
		return resp, nil
	}

	if e, ok := g.match(req.Context(), RequestKey(req)); ok {
		g.observe(StrategyNetworkFirst, "cache")
		return entryResponse(req, e), nil
	}

	g.observe(StrategyNetworkFirst, "offline")
	return offlineResponse(req), nil
}

// cacheFirst serves stored copies, populating the cache from successful fetches.
func (g *Gateway) cacheFirst(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	key := RequestKey(req)

	if e, ok := g.match(ctx, key); ok {
		g.observe(StrategyCacheFirst, "cache")
		return entryResponse(req, e), nil
	}

	resp, err := g.next.RoundTrip(req)
	if err != nil {
		if g.cfg.ShellURL != "" {
			if e, ok := g.match(ctx, http.MethodGet+" "+g.cfg.ShellURL); ok {
				g.observe(StrategyCacheFirst, "offline")
				return entryResponse(req, e), nil
			}
		}
		g.observe(StrategyCacheFirst, "error")
		return nil, err
	}

	g.observe(StrategyCacheFirst, "network")
	if req.Method != http.MethodGet || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.cfg.MaxEntryBytes+1))
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if int64(len(body)) > g.cfg.MaxEntryBytes {
		// Too large to store: hand back what was read plus the unread rest.
		if g.log != nil {
			g.log.Infow("cache_skip_oversized", "key", key, "limit", g.cfg.MaxEntryBytes)
		}
		resp.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(body), resp.Body), resp.Body}
		return resp, nil
	}
	_ = resp.Body.Close()
	e := Entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body, StoredAt: time.Now().UTC()}
	if perr := g.store.Put(ctx, g.cfg.CacheName, key, e); perr != nil && g.log != nil {
		g.log.Errorw("cache_put_failed", "key", key, "err", perr)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}

// Install fetches every precache URL and stores them all, or none on failure.
func (g *Gateway) Install(ctx context.Context) error {
	entries := make(map[string]Entry, len(g.cfg.Precache))
	for _, u := range g.cfg.Precache {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("precache %q: %w", u, err)
		}
		resp, err := g.next.RoundTrip(req)
		if err != nil {
			return fmt.Errorf("precache %q: %w", u, err)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, g.cfg.MaxEntryBytes+1))
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("precache %q: read body: %w", u, err)
		}
		if int64(len(body)) > g.cfg.MaxEntryBytes {
			return fmt.Errorf("precache %q: body exceeds %d bytes", u, g.cfg.MaxEntryBytes)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("precache %q: status %d", u, resp.StatusCode)
		}
		entries[RequestKey(req)] = Entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body, StoredAt: time.Now().UTC()}
	}
	for key, e := range entries {
		if err := g.store.Put(ctx, g.cfg.CacheName, key, e); err != nil {
			return fmt.Errorf("precache store %q: %w", key, err)
		}
	}
	if g.log != nil {
		g.log.Infow("cache_installed", "cache", g.cfg.CacheName, "entries", len(entries))
	}
	return nil
}

// Activate deletes every cache generation other than the current one.
func (g *Gateway) Activate(ctx context.Context) error {
	names, err := g.store.Names(ctx)
	if err != nil {
		return fmt.Errorf("list caches: %w", err)
	}
	var errs []error
	for _, n := range names {
		if n == g.cfg.CacheName {
			continue
		}
		if err := g.store.Delete(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("delete cache %q: %w", n, err))
			continue
		}
		if g.log != nil {
			g.log.Infow("cache_deleted", "cache", n)
		}
	}
	return errors.Join(errs...)
}

// RequestKey is the cache identity of a request.
func RequestKey(req *http.Request) string {
	return req.Method + " " + req.URL.String()
}

func (g *Gateway) match(ctx context.Context, key string) (Entry, bool) {
	e, ok, err := g.store.Match(ctx, key)
	if err != nil {
		if g.log != nil {
			g.log.Errorw("cache_match_failed", "key", key, "err", err)
		}
		return Entry{}, false
	}
	return e, ok
}

func (g *Gateway) observe(strategy, outcome string) {
	if g.rec != nil {
		g.rec.ObserveCache(strategy, outcome)
	}
}

func entryResponse(req *http.Request, e Entry) *http.Response {
	h := e.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set(HeaderCache, "hit")
	status := e.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		Status:        strconv.Itoa(status) + " " + http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}

func offlineResponse(req *http.Request) *http.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set(HeaderOffline, "1")
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(strings.NewReader(offlineBody)),
		ContentLength: int64(len(offlineBody)),
		Request:       req,
	}
}
