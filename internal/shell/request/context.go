// Package request records the current HTTP request in the request context
// so that code without access to *http.Request can build its URL.
package request

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5/middleware"
)

// =============================================================================
// Context Key
// =============================================================================

type contextKey string

const snapshotContextKey contextKey = "request"

// ErrNoRequest is returned when no request snapshot is stored in the context.
var ErrNoRequest = errors.New("no request in context")

// =============================================================================
// Types
// =============================================================================

// Snapshot is the part of an incoming request needed to rebuild its URL.
type Snapshot struct {
	// Scheme is "http" or "https".
	Scheme string

	// Host is the host and optional port, e.g. "example.com:8080".
	Host string

	// Path is the escaped request path.
	Path string

	// RawQuery is the query string without the "?".
	RawQuery string

	// RequestID is the chi request ID, when the RequestID middleware ran first.
	RequestID string
}

// Root returns scheme://host.
func (s Snapshot) Root() string {
	return s.Scheme + "://" + s.Host
}

// URL returns the absolute URL without query string or trailing slash.
//
// Example:
//
//	Snapshot{Scheme: "https", Host: "e.com", Path: "/a/b/"}.URL() // "https://e.com/a/b"
func (s Snapshot) URL() string {
	return strings.TrimRight(s.Root()+"/"+strings.Trim(s.Path, "/"), "/")
}

// FullURL returns URL plus the query string, when there is one.
func (s Snapshot) FullURL() string {
	if s.RawQuery == "" {
		return s.URL()
	}
	return s.URL() + "?" + s.RawQuery
}

// =============================================================================
// Extraction
// =============================================================================

// FromRequest captures r. When trustProxies is set, X-Forwarded-Proto and
// X-Forwarded-Host take precedence over the connection values.
func FromRequest(r *http.Request, trustProxies bool) Snapshot {
	s := Snapshot{
		Scheme:    "http",
		Host:      r.Host,
		Path:      r.URL.EscapedPath(),
		RawQuery:  r.URL.RawQuery,
		RequestID: middleware.GetReqID(r.Context()),
	}
	if r.TLS != nil {
		s.Scheme = "https"
	}

	if trustProxies {
		if proto := firstHeaderValue(r, "X-Forwarded-Proto"); proto != "" {
			s.Scheme = strings.ToLower(proto)
		}
		if host := firstHeaderValue(r, "X-Forwarded-Host"); host != "" {
			s.Host = host
		}
	}
	return s
}

func firstHeaderValue(r *http.Request, name string) string {
	v := r.Header.Get(name)
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

// =============================================================================
// Context Access
// =============================================================================

// WithSnapshot returns a copy of ctx carrying s.
func WithSnapshot(ctx context.Context, s Snapshot) context.Context {
	return context.WithValue(ctx, snapshotContextKey, s)
}

// FromContext returns the snapshot stored in ctx.
func FromContext(ctx context.Context) (Snapshot, bool) {
	if ctx == nil {
		return Snapshot{}, false
	}
	s, ok := ctx.Value(snapshotContextKey).(Snapshot)
	return s, ok
}

// CurrentURL returns the absolute URL of the request stored in ctx.
func CurrentURL(ctx context.Context) (string, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return "", errors.WithStack(ErrNoRequest)
	}
	return s.URL(), nil
}
