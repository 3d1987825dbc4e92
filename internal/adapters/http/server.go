package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
)

const (
	defaultShutdownTimeout = 10 * time.Second

	// writeGrace keeps the connection writable past the request timeout so
	// the Timeout middleware's 504 reaches the client.
	writeGrace = time.Second
)

// Server is the directory API's HTTP listener.
type Server struct {
	srv    *http.Server
	logger *slog.Logger

	mu sync.Mutex
	ln net.Listener
}

// NewServer builds a server for handler. cfg.WriteTimeout is the request
// budget; the connection write deadline is set slightly later.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	logger = logging.OrDiscard(logger)
	writeTimeout := cfg.WriteTimeout
	if writeTimeout > 0 {
		writeTimeout += writeGrace
	}
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
	}
}

// Listen binds the configured address without serving, so bind errors
// surface before the server goroutine starts. Calling it again is a no-op.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	s.ln = ln
	return nil
}

// Start serves until Shutdown, binding first if Listen was not called. It
// returns nil after a graceful shutdown.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	s.logger.Info("serving directory API", slog.String("addr", ln.Addr().String()))
	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		// Serve leaves ln open when Shutdown won the race.
		_ = ln.Close()
		return nil
	}
	return fmt.Errorf("http server: %w", err)
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by ctx or, when ctx has no deadline, defaultShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}

// Addr is the bound address once Listen has succeeded, and the configured
// one before that.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.srv.Addr
}
