// Package web hosts the browser-facing task surface.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/taskdeck/internal/auth"
	"github.com/louisbranch/taskdeck/internal/platform/timeouts"
	"github.com/louisbranch/taskdeck/internal/web/httpx"
)

// Config defines startup inputs for the web server.
type Config struct {
	HTTPAddr     string
	LoginURL     string
	Tasks        TaskService
	Introspector auth.Introspector
	Logger       *log.Logger
}

// Server hosts the HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewRootHandler composes the full request pipeline: public health check,
// session-guarded pages, and the outer middleware chain.
func NewRootHandler(cfg Config) (http.Handler, error) {
	if cfg.Tasks == nil {
		return nil, errors.New("task service is required")
	}
	if cfg.Introspector == nil {
		return nil, errors.New("session introspector is required")
	}
	loginURL := strings.TrimSpace(cfg.LoginURL)
	if loginURL == "" {
		return nil, errors.New("login url is required")
	}
	handler, err := NewHandler(cfg.Tasks)
	if err != nil {
		return nil, fmt.Errorf("compose page handler: %w", err)
	}

	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	rootMux.Handle("/", httpx.Chain(handler.Routes(), RequireSession(cfg.Introspector, loginURL)))

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.RequestLogger(logger),
		httpx.Deadline(timeouts.Request),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewRootHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
