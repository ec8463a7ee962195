package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the global registry over HTTP.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a metrics server for addr (e.g. "0.0.0.0:9090") serving path.
func NewServer(addr, path string) (*Server, error) {
	if Registry == nil {
		return nil, errors.New("metrics registry not initialized")
	}
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry}))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start serves in the background. Listen errors other than a clean shutdown
// are sent to errCh.
func (s *Server) Start(errCh chan<- error) {
	go func() {
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) && errCh != nil {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
