package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// RouteRegistrar mounts application routes on the mux.
type RouteRegistrar func(mux *http.ServeMux)

// NewHTTPServer wires base routes (health, readiness, metrics), the application
// routes and the middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps []Pinger, routes ...RouteRegistrar) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewHandler(cfg.CORS, logger, deps, routes...),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(cors config.CORS, logger zerolog.Logger, deps []Pinger, routes ...RouteRegistrar) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"status":"ok"}`))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondStatus(w, http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"status":"ready"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	for _, register := range routes {
		register(mux)
	}

	handler := withEnvelopeFallbacks(mux)
	handler = instrument(handler)
	handler = withCORS(cors)(handler)
	handler = withRequestLogging(logger)(handler)
	handler = withRecovery(logger)(handler)
	return handler
}

// withEnvelopeFallbacks rewrites the mux's plain-text 404 and 405 replies for
// unmatched requests into the JSON error envelope.
func withEnvelopeFallbacks(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(&fallbackWriter{ResponseWriter: w}, r)
	})
}

type fallbackWriter struct {
	http.ResponseWriter
	replaced bool
}

func (f *fallbackWriter) WriteHeader(status int) {
	if status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
		f.replaced = true
		f.Header().Del("X-Content-Type-Options")
		httperrors.RespondStatus(f.ResponseWriter, status)
		return
	}
	f.ResponseWriter.WriteHeader(status)
}

func (f *fallbackWriter) Write(b []byte) (int, error) {
	if f.replaced {
		return len(b), nil
	}
	return f.ResponseWriter.Write(b)
}

func pingDependencies(ctx context.Context, deps []Pinger) error {
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
