package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const assetTimeout = 15 * time.Second

var ErrAssetsDisabled = errors.New("asset origin is not configured")

// AssetService fetches dashboard static files through the caching transport.
type AssetService struct {
	origin string
	client *http.Client
}

// NewAssetService builds an asset fetcher for origin. transport is normally
// the cache gateway; nil uses http.DefaultTransport.
func NewAssetService(origin string, transport http.RoundTripper) *AssetService {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &AssetService{
		origin: strings.TrimRight(origin, "/"),
		client: &http.Client{Transport: transport, Timeout: assetTimeout},
	}
}

// URL maps a request path to the absolute origin URL. ".." segments cannot
// escape the origin.
func (s *AssetService) URL(p string) (string, error) {
	if s.origin == "" {
		return "", ErrAssetsDisabled
	}
	clean := strings.TrimPrefix(path.Clean("/"+p), "/")
	if clean == "" {
		clean = "index.html"
	}
	return url.JoinPath(s.origin, clean)
}

// Fetch GETs the asset. The caller must close the response body.
func (s *AssetService) Fetch(ctx context.Context, p string) (*http.Response, error) {
	u, err := s.URL(p)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build asset request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	return resp, nil
}
