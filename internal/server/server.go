// Package server serves star-rating badges over HTTP.
//
// Routes:
//
//	GET /stars.{svg,png,json}  render a badge from query parameters
//	GET /healthz               liveness, including a cache ping when supported
//	GET /metrics               Prometheus metrics
//
// Query parameters override the server's base settings: rating, text,
// total, mode, correction, size, margin, border, font_size, filled, empty,
// text_color, bg, scale, width and embed_font.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/starbar/pkg/buildinfo"
	"github.com/matzehuels/starbar/pkg/cache"
	starerrors "github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/observability"
	"github.com/matzehuels/starbar/pkg/pipeline"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second

	// cacheMaxAge is the Cache-Control lifetime of a badge response.
	cacheMaxAge = time.Hour
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address for Run.
	Addr string

	// Settings are the base settings that query parameters override.
	// A zero value means settings.Default().
	Settings settings.Settings

	// Cache stores rendered badges. Nil disables caching.
	Cache cache.Cache

	// Namespace scopes cache keys when several deployments share a cache.
	Namespace string

	// MaxStars caps the total query parameter. Zero means DefaultMaxStars.
	MaxStars int

	// Registry receives the server metrics. Nil creates a private registry.
	Registry *prometheus.Registry

	Logger *log.Logger
}

// pinger is implemented by caches with a health check, e.g. RedisCache.
type pinger interface {
	Ping(ctx context.Context) error
}

// Server renders badges through a pipeline.Runner.
type Server struct {
	addr     string
	base     settings.Settings
	maxStars int
	runner   *pipeline.Runner
	cache    cache.Cache
	registry *prometheus.Registry
	logger   *log.Logger
}

// New creates a Server and installs its Prometheus hooks globally.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Settings.TotalStars == 0 && len(cfg.Settings.StarPoints) == 0 {
		cfg.Settings = settings.Default()
	}
	if cfg.MaxStars <= 0 {
		cfg.MaxStars = DefaultMaxStars
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	var keyer cache.Keyer
	if cfg.Namespace != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Namespace)
	}

	NewMetrics(cfg.Registry).Install()

	return &Server{
		addr:     cfg.Addr,
		base:     cfg.Settings,
		maxStars: cfg.MaxStars,
		runner:   pipeline.NewRunner(cfg.Cache, keyer, cfg.Logger),
		cache:    cfg.Cache,
		registry: cfg.Registry,
		logger:   cfg.Logger,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/stars.{format}", s.handler(s.getStars))
	r.Get("/healthz", s.handler(s.getHealth))
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("badge server started", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("badge server stopped")
		return nil
	})

	return g.Wait()
}

// Close releases the cache.
func (s *Server) Close() error {
	return s.runner.Close()
}

func (s *Server) getStars(w http.ResponseWriter, r *http.Request) error {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}
	opts, err := s.optionsFromQuery(r.URL.Query(), format)
	if err != nil {
		return err
	}

	opts.SetRenderDefaults()

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		return err
	}

	// The tag follows the artifact key so scale, width, background and
	// embedded fonts each get their own validator.
	key := s.runner.Keyer.ArtifactKey(result.LayoutHash, opts.ArtifactKeyOpts(format))
	etag := fmt.Sprintf("%q", cache.Hash([]byte(key))[:16]+"-"+format)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheMaxAge.Seconds())))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, err = w.Write(result.Artifacts[format])
	return err
}

type healthBody struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) error {
	status, code := "ok", http.StatusOK
	if p, ok := s.cache.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.logger.Warn("cache ping failed", "err", err)
			status, code = "cache unavailable", http.StatusServiceUnavailable
		}
	}
	return writeJSON(w, code, healthBody{Status: status, Info: buildinfo.Get()})
}

// handler adapts an error-returning handler, writing errors as JSON.
func (s *Server) handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
			s.writeError(w, r, err)
		}
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		// Client went away.
		return
	}
	status := starerrors.HTTPStatus(err)

	body := errorBody{Code: string(starerrors.GetCode(err)), Message: starerrors.UserMessage(err)}
	if status == http.StatusInternalServerError {
		s.logger.Error("badge request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
		body = errorBody{Code: string(starerrors.ErrCodeInternal), Message: "internal error"}
	}
	_ = writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// instrument reports every request to the HTTP hooks. Both hooks fire
// after routing so they carry the matched pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		hooks.OnRequest(r.Context(), r.Method, route)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

// routePattern returns the matched chi pattern, so metrics are labelled by
// route rather than by raw path.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
