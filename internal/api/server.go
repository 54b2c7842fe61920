// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package api exposes the warehouse and the assistant over HTTP for
// dashboards and other internal callers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"snowq/cli/internal/assistant"
	"snowq/cli/internal/warehouse"
)

// Warehouse is the slice of the warehouse session the server needs.
type Warehouse interface {
	Ping(ctx context.Context) error
	Catalog(ctx context.Context) (warehouse.Catalog, error)
	Run(ctx context.Context, query string) (*warehouse.Table, error)
}

// Server routes HTTP requests to the warehouse session and the assistant.
type Server struct {
	addr      string
	router    *echo.Echo
	wh        Warehouse
	assistant *assistant.Assistant
	logger    *zap.SugaredLogger
}

// New assembles the router. A nil completer disables /api/ask; the other
// routes only need the warehouse.
func New(addr string, wh Warehouse, completer assistant.Completer, logger *zap.SugaredLogger) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		addr:   addr,
		router: e,
		wh:     wh,
		logger: logger,
	}
	if completer != nil {
		s.assistant = assistant.New(completer, wh, logger)
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.router.Group("/api")
	api.GET("/metadata", s.handleMetadata)
	api.POST("/query", s.handleQuery)
	api.POST("/ask", s.handleAsk)
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Start() error {
	go func() {
		if err := s.router.Start(s.addr); err != nil && err != http.ErrServerClosed {
			s.logger.Fatalw("server start failed", "error", err)
		}
	}()
	s.logger.Infow("listening", "addr", s.addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down")
	if err := s.router.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
