// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "snowq/cli/internal/errors"
	"snowq/cli/internal/logging"
	"snowq/cli/internal/metrics"
)

type queryRequest struct {
	SQL string `json:"sql"`
}

type askRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.wh.Ping(c.Request().Context()); err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "Warehouse unreachable", err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetadata(c echo.Context) error {
	catalog, err := s.wh.Catalog(c.Request().Context())
	if err != nil {
		s.logger.Errorw("metadata fetch failed", "error", logging.Mask(err.Error()))
		return errorJSON(c, statusOf(err), "Metadata error", err.Error())
	}
	return c.JSON(http.StatusOK, catalog)
}

func (s *Server) handleQuery(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Malformed request", err.Error())
	}
	if strings.TrimSpace(req.SQL) == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing parameter", "sql is required")
	}

	start := time.Now()
	table, err := s.wh.Run(c.Request().Context(), req.SQL)
	metrics.ObserveQuery(err, time.Since(start))
	if err != nil {
		s.logger.Errorw("query failed", "error", logging.Mask(err.Error()))
		return errorJSON(c, statusOf(err), "Query error", err.Error())
	}

	return c.JSON(http.StatusOK, table)
}

func (s *Server) handleAsk(c echo.Context) error {
	if s.assistant == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "Assistant unavailable", "no completion model configured")
	}

	var req askRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Malformed request", err.Error())
	}
	if strings.TrimSpace(req.Question) == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing parameter", "question is required")
	}

	resp, err := s.assistant.Answer(c.Request().Context(), req.Question)
	metrics.ObserveAsk(err)
	if err != nil {
		s.logger.Errorw("ask failed", "error", logging.Mask(err.Error()))
		return errorJSON(c, statusOf(err), "Assistant error", err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}

// statusOf maps upstream failures to 502 so callers can tell a broken
// warehouse or model apart from a broken server.
func statusOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.ConnectFailed, apperrors.MetadataFailed, apperrors.QueryFailed, apperrors.LLMRequestFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, status int, label string, message string) error {
	return c.JSON(status, errorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Error:     label,
		Message:   logging.Mask(message),
	})
}
