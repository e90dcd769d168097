package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"sanisip/internal/gateway"
)

// CacheSQLite persists gateway caches so the dashboard survives restarts offline.
type CacheSQLite struct {
	db *sql.DB
}

func NewCacheSQLite(db *sql.DB) *CacheSQLite {
	return &CacheSQLite{db: db}
}

// Ensure implementation of gateway.Store at compile time.
var _ gateway.Store = (*CacheSQLite)(nil)

const (
	upsertCacheEntrySQL = `
		INSERT INTO cache_entries (cache_name, request_key, status, headers, body, stored_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_name, request_key) DO UPDATE SET
			status=excluded.status,
			headers=excluded.headers,
			body=excluded.body,
			stored_at=excluded.stored_at
	`

	selectCacheEntrySQL = `
		SELECT status, headers, body, stored_at
		FROM cache_entries WHERE request_key=?
		ORDER BY rowid ASC LIMIT 1
	`

	selectCacheNamesSQL = `SELECT DISTINCT cache_name FROM cache_entries ORDER BY cache_name ASC`

	deleteCacheSQL = `DELETE FROM cache_entries WHERE cache_name=?`
)

// marshalHeaders converts the header map to a JSON string.
func marshalHeaders(h http.Header) (string, error) {
	if h == nil {
		h = http.Header{}
	}
	b, err := json.Marshal(h)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalHeaders parses a JSON string into a header map.
func unmarshalHeaders(s string) (http.Header, error) {
	if s == "" {
		return http.Header{}, nil
	}
	var h http.Header
	if err := json.Unmarshal([]byte(s), &h); err != nil {
		return nil, err
	}
	return h, nil
}

// Put upserts an entry in the named cache.
func (r *CacheSQLite) Put(ctx context.Context, cache, key string, e gateway.Entry) error {
	headersJSON, err := marshalHeaders(e.Header)
	if err != nil {
		return err
	}

	// always persist StoredAt as UTC; set if zero
	ts := e.StoredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err = r.db.ExecContext(ctx, upsertCacheEntrySQL,
		cache,
		key,
		e.Status,
		headersJSON,
		e.Body,
		ts,
	)
	return err
}

// Match returns the oldest stored entry for key across all caches.
func (r *CacheSQLite) Match(ctx context.Context, key string) (gateway.Entry, bool, error) {
	row := r.db.QueryRowContext(ctx, selectCacheEntrySQL, key)

	var e gateway.Entry
	var headersJSON string
	if err := row.Scan(&e.Status, &headersJSON, &e.Body, &e.StoredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return gateway.Entry{}, false, nil
		}
		return gateway.Entry{}, false, err
	}

	h, err := unmarshalHeaders(headersJSON)
	if err != nil {
		return gateway.Entry{}, false, err
	}
	e.Header = h
	e.StoredAt = e.StoredAt.UTC()
	return e, true, nil
}

// Names lists existing cache generations.
func (r *CacheSQLite) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectCacheNamesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Delete removes every entry of a cache generation.
func (r *CacheSQLite) Delete(ctx context.Context, cache string) error {
	_, err := r.db.ExecContext(ctx, deleteCacheSQL, cache)
	return err
}
