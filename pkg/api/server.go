package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nikogura/resume-studio/pkg/config"
	"github.com/nikogura/resume-studio/pkg/renderer"
	"github.com/pkg/errors"
)

// ShutdownTimeout bounds how long in-flight requests get to finish.
const ShutdownTimeout = 15 * time.Second

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the server and its middleware chain from cfg.
func NewServer(cfg config.Config, service DocumentService, logger *slog.Logger) (s *Server) {
	pdf := renderer.DefaultOptions()
	pdf.Geometry = cfg.PDF.Geometry()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler := Chain(Routes(NewHandlers(service, pdf, logger)),
		RequestID,
		Logging(logger),
		Recovery(logger),
		CORS(origins),
	)

	// Generation can take minutes; the write timeout covers the slowest
	// completion call plus rendering.
	writeTimeout := cfg.Completion.Timeout()*4 + 30*time.Second

	s = &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
	return s
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() (handler http.Handler) {
	handler = s.httpServer.Handler
	return handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) (err error) {
	var listener net.Listener
	listener, err = net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		err = errors.Wrapf(err, "failed to listen on %s", s.httpServer.Addr)
		return err
	}

	err = s.Serve(ctx, listener)
	return err
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) (err error) {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", listener.Addr().String())
		e := s.httpServer.Serve(listener)
		if errors.Is(e, http.ErrServerClosed) {
			e = nil
		}
		serveErr <- e
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			err = errors.Wrap(err, "server failed")
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	err = s.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "graceful shutdown failed")
		return err
	}

	err = <-serveErr
	if err != nil {
		err = errors.Wrap(err, "server failed")
		return err
	}

	s.logger.Info("shutdown complete")
	return err
}
