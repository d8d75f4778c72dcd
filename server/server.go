// Package server exposes the last published Snapshot over a small REST
// API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonaslq/vattenkraft-scraper/config"
	"github.com/jonaslq/vattenkraft-scraper/store"
)

// Server bundles the router and its dependencies.
type Server struct {
	cfg       config.Config
	snapshots *store.Store
	engine    *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, snapshots *store.Store) *Server {
	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())

	server := &Server{cfg: cfg, snapshots: snapshots, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger emits access logs through the process-wide slog handler
// so the daemon produces a single coherent log stream.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/api/vattenkraftstationer", s.handleStations)
}

// handleStations serves the latest Snapshot. Before the first run has
// completed this is an empty array, never null.
func (s *Server) handleStations(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshots.Get())
}
