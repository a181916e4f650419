package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"nevochat/internal/config"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

const (
	maxHeaderBytes = 1 << 20 // 1 MB
	defaultPort    = "5000"

	defaultReadHeaderTimeout = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultIdleTimeout       = 60 * time.Second
)

// New builds the server up front so Shutdown is safe from any goroutine,
// including before Serve has been called.
func New(cfg config.Server, handler http.Handler) *Server {
	return &Server{httpServer: newHTTPServer(cfg, handler)}
}

// newHTTPServer builds a configured *http.Server for the given config and handler.
func newHTTPServer(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              normalizeAddr(cfg.Port),
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: orDefault(cfg.ReadHeaderTimeout, defaultReadHeaderTimeout),
		WriteTimeout:      orDefault(cfg.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:       orDefault(cfg.IdleTimeout, defaultIdleTimeout),
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// normalizeAddr ensures the provided port is a valid address (accepts "5000" or ":5000").
func normalizeAddr(port string) string {
	if port == "" {
		port = defaultPort
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Listen binds the configured address. Call it before Serve, from the same
// goroutine that starts Serve.
func (s *Server) Listen() error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = l
	return nil
}

// Addr is the bound address; nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections on the bound listener and blocks until the server
// stops. A graceful Shutdown makes Serve return nil.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server: Serve called before Listen")
	}
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run binds and serves in one call.
func (s *Server) Run() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
// Called before Serve, it makes a later Serve return immediately.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
