package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	gerrors "github.com/vango-dev/gearrs/internal/errors"
	"github.com/vango-dev/gearrs/pkg/document"
	"github.com/vango-dev/gearrs/pkg/element"
	"github.com/vango-dev/gearrs/pkg/middleware"
)

// Server renders a page source over HTTP for previewing.
type Server struct {
	config  Config
	logger  *slog.Logger
	metrics *middleware.Metrics
	live    *LiveReload
	handler http.Handler
}

// New creates a Server. It fails when config has no Source.
func New(config Config) (*Server, error) {
	if config.Source == nil {
		return nil, gerrors.New("E140").WithDetail("no page source configured")
	}
	config = config.withDefaults()

	s := &Server{
		config: config,
		logger: config.Logger,
	}

	if config.Registry != nil {
		opts := []middleware.MetricsOption{
			middleware.WithRegistry(config.Registry),
			middleware.WithNamespace(config.Namespace),
			middleware.WithSubsystem(config.Subsystem),
			middleware.WithConstLabels(config.ConstLabels),
		}
		if len(config.Buckets) > 0 {
			opts = append(opts, middleware.WithBuckets(config.Buckets))
		}
		s.metrics = middleware.NewMetrics(opts...)
	}

	if config.LiveReload {
		s.live = NewLiveReload(s.logger.With("component", "live"))
		s.live.onChange = s.metrics.SetLiveClients
	}

	s.handler = s.routes()
	return s, nil
}

// routes builds the chi router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}
	r.Use(middleware.OpenTelemetry(
		middleware.WithTracerName(s.config.TracerName),
		middleware.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != LivePath
		}),
	))

	r.Get("/", s.handlePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.config.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	if s.live != nil {
		r.Get(LivePath, s.live.HandleWebSocket)
	}

	return r
}

// handlePage renders the current page from the source.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.config.Source(r.Context())
	if err != nil {
		s.logger.Error("page source failed", "error", err, "request_id", chimw.GetReqID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if page == nil {
		page = &document.Page{}
	}

	if s.live != nil {
		p := *page
		body := p.Body.Clone()
		if body == nil {
			body = element.New("body", true)
		}
		p.Body = body.Add(LiveScript())
		page = &p
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	n, err := page.WriteTo(w)
	if err != nil {
		s.logger.Warn("writing page failed", "error", err, "bytes", n)
		return
	}
	s.metrics.RecordDocument(n)
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// Handler returns the HTTP handler, for mounting or tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Live returns the live reload hub, or nil when live reload is off.
func (s *Server) Live() *LiveReload {
	return s.live
}

// Reload tells connected browsers to reload the page.
func (s *Server) Reload() {
	if s.live != nil {
		s.live.NotifyReload()
	}
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return gerrors.New("E140").WithDetail("listen on " + s.config.Address).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return gerrors.New("E140").Wrap(err)

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if s.live != nil {
			s.live.Close()
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return gerrors.New("E140").Wrap(err)
		}
		s.logger.Info("server shutdown complete")
		return nil
	}
}
