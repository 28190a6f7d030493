package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/richlegrande-dot/care2connect-intake/internal/config"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
)

// Server wraps the stdlib HTTP server with the service's lifecycle
// conventions.
type Server struct {
	srv    *http.Server
	logger logging.Logger
}

// NewServer builds a Server from the router and server config.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger logging.Logger) *Server {
	if cfg.MaxBodySize > 0 {
		handler = limitBody(handler, cfg.MaxBodySize)
	}
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger.Named("http-server"),
	}
}

// Start blocks serving requests until the listener closes.  A graceful
// shutdown surfaces as a nil error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}

// limitBody caps request body size; oversized bodies fail during read with a
// 400 from the JSON binder rather than exhausting memory.
func limitBody(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}
