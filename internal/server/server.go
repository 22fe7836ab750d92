package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeouts applied by ListenAndServe.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr         string
	MaxBodyBytes int64        // 0 = unlimited
	Logger       *slog.Logger // nil = discard
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	engine *gin.Engine
}

// New builds a Server around backend.
func New(backend Backend, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{backend: backend, maxBodyBytes: cfg.MaxBodyBytes}
	return &Server{cfg: cfg, engine: setup(h, cfg.Logger)}
}

// setup configures the Gin engine with all routes and middleware.
func setup(h *handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()

	r.Use(RequestID())
	r.Use(Recovery(logger))
	r.Use(Logger(logger))

	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/convert", h.Convert)
	v1.POST("/preview", h.Preview)

	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on cfg.Addr until ctx is canceled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.cfg.Logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
