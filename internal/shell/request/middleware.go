package request

import (
	"log/slog"
	"net/http"
)

// =============================================================================
// Middleware Configuration
// =============================================================================

// Config holds configuration for the request middleware.
type Config struct {
	// TrustProxies makes X-Forwarded-Proto and X-Forwarded-Host authoritative.
	// Only enable behind a proxy that overwrites these headers.
	TrustProxies bool

	// Logger for middleware logging.
	Logger *slog.Logger
}

// =============================================================================
// Middleware
// =============================================================================

// Middleware stores a Snapshot of every request in its context.
type Middleware struct {
	config Config
}

// NewMiddleware creates a request middleware with the given config.
func NewMiddleware(cfg Config) *Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Middleware{config: cfg}
}

// Handler returns the middleware handler function.
// Place it after chi's middleware.RequestID to capture the request ID.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromRequest(r, m.config.TrustProxies)
		m.config.Logger.Debug("request captured",
			"url", s.URL(),
			"request_id", s.RequestID,
		)
		next.ServeHTTP(w, r.WithContext(WithSnapshot(r.Context(), s)))
	})
}

// Capture is the middleware with default configuration: no proxy trust and
// the default logger.
func Capture(next http.Handler) http.Handler {
	return NewMiddleware(Config{}).Handler(next)
}
