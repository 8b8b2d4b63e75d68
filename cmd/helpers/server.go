package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/artpar/helpers"
	"github.com/artpar/helpers/internal/core/collection"
	"github.com/artpar/helpers/internal/shell/request"
)

// =============================================================================
// Server
// =============================================================================

// Server exposes the helpers over HTTP.
type Server struct {
	config     *Config
	helpers    *helpers.Helpers
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a server with the given config.
func NewServer(cfg *Config, h *helpers.Helpers, logger *slog.Logger) *Server {
	s := &Server{
		config:  cfg,
		helpers: h,
		logger:  logger,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Handler builds the router. Every route sees the current request through
// the request capture middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(request.NewMiddleware(request.Config{
		TrustProxies: s.config.Server.TrustProxies,
		Logger:       s.logger,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/slugify", s.handleSlugify)
	r.Get("/date", s.handleDate)
	r.Get("/random", s.handleRandom)
	r.Get("/url", s.handleURL)
	r.Get("/url/*", s.handleURL)

	return r
}

// Start runs the server until ctx is cancelled or a shutdown signal arrives.
func (s *Server) Start(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		return &CommandError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return &CommandError{Op: "Shutdown", Err: err, ExitCode: ExitHTTPServerError}
	}

	s.logger.Info("shutdown complete")
	return nil
}

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the helpers over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServer(c.cfg, c.helpers, c.logger).Start(cmd.Context())
		},
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleSlugify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"slug": helpers.Slugify(r.URL.Query().Get("text")),
	})
}

func (s *Server) handleDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = s.config.Date.Format
	}

	formatted, err := s.helpers.FormatDate(q.Get("date"), format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"date": formatted})
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	length := s.config.Random.Length
	if raw := r.URL.Query().Get("length"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "length must be an integer")
			return
		}
		length = n
	}

	value, err := s.helpers.GenerateRandomString(length)
	if err != nil {
		s.logger.Error("random source failed", "error", err)
		writeError(w, http.StatusInternalServerError, "random source failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"random": value})
}

// handleURL echoes the URL of the request being served, with and without
// its query parameters re-encoded.
func (s *Server) handleURL(w http.ResponseWriter, r *http.Request) {
	current, err := helpers.CurrentURL(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	params, err := queryParams(r.URL.RawQuery)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":         current,
		"with_params": helpers.URLWithParams(current, params),
	})
}

// queryParams reads a raw query into a collection, keeping the order keys
// first appear in. Single values stay scalar.
func queryParams(rawQuery string) (collection.Map, error) {
	params := collection.Map{}
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, errors.Wrapf(err, "query key %q", rawKey)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, errors.Wrapf(err, "query value for %q", key)
		}
		addParam(&params, key, value)
	}
	return params, nil
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"status": status,
			"title":  http.StatusText(status),
			"detail": message,
		},
	})
}
