// Package server exposes the ops HTTP surface: health, bridge status, and
// Prometheus metrics. It is a sidecar to the stdio transport and never
// carries tool traffic.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/mayactl/internal/bridge"
	"github.com/danmuck/mayactl/internal/observability"
	"github.com/danmuck/mayactl/internal/tools"
)

type Server struct {
	addr string
	http *http.Server
}

func New(addr string, mgr *bridge.Manager, reg *tools.Registry) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestLogger(log.Logger))
	router.Use(observability.RequestMetricsMiddleware())
	registerRoutes(router, mgr, reg)

	return &Server{
		addr: addr,
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until Shutdown or a listener error. Graceful close is
// reported as nil.
func (s *Server) Start() error {
	log.Info().Str("addr", s.addr).Msg("ops_server_started")
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
