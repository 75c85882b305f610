// Package http provides the HTTP API for minuted.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/minuted/internal/action"
	"github.com/fyrsmithlabs/minuted/internal/config"
	"github.com/fyrsmithlabs/minuted/internal/fault"
	"github.com/fyrsmithlabs/minuted/internal/pipeline"
	"github.com/fyrsmithlabs/minuted/internal/transcript"
)

// maxBodySize caps request bodies; transcripts beyond this are rejected
// before normalization.
const maxBodySize = "4M"

// Server provides HTTP endpoints for transcript extraction.
type Server struct {
	echo     *echo.Echo
	pipeline *pipeline.Pipeline
	metrics  *Metrics
	logger   *zap.Logger
	config   config.ServerConfig
}

// NewServer creates a new HTTP server.
func NewServer(p *pipeline.Pipeline, logger *zap.Logger, cfg config.ServerConfig) (*Server, error) {
	if p == nil {
		return nil, fmt.Errorf("pipeline cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(maxBodySize))
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		pipeline: p,
		metrics:  NewMetrics(),
		logger:   logger,
		config:   cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/extract", s.handleExtract)
	v1.POST("/normalize", s.handleNormalize)
}

// ExtractRequest is the request body for POST /api/v1/extract.
type ExtractRequest struct {
	Content string `json:"content"`
}

// ExtractResponse is the response body for POST /api/v1/extract.
type ExtractResponse struct {
	MessageCount int           `json:"message_count"`
	Items        []action.Item `json:"action_items"`
	Statistics   action.Stats  `json:"statistics"`
}

// NormalizeRequest is the request body for POST /api/v1/normalize.
type NormalizeRequest struct {
	Content string `json:"content"`
}

// NormalizeResponse is the response body for POST /api/v1/normalize.
type NormalizeResponse struct {
	Messages []transcript.Message `json:"messages"`
}

// ErrorResponse is the body of any non-2xx response.
type ErrorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleExtract runs the full pipeline over the posted transcript content.
func (s *Server) handleExtract(c echo.Context) error {
	var req ExtractRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid extract request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	start := time.Now()
	result, err := s.pipeline.Run(req.Content)
	if err != nil {
		s.metrics.RecordRun(outcomeFor(err), 0, time.Since(start).Seconds())
		return s.faultResponse(c, err)
	}
	s.metrics.RecordRun("ok", len(result.Items), time.Since(start).Seconds())

	items := result.Items
	if items == nil {
		items = []action.Item{}
	}
	return c.JSON(http.StatusOK, ExtractResponse{
		MessageCount: len(result.Messages),
		Items:        items,
		Statistics:   result.Stats,
	})
}

// handleNormalize parses the posted transcript without extraction.
func (s *Server) handleNormalize(c echo.Context) error {
	var req NormalizeRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid normalize request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.pipeline.Run(req.Content)
	if err != nil {
		return s.faultResponse(c, err)
	}
	return c.JSON(http.StatusOK, NormalizeResponse{Messages: result.Messages})
}

// faultResponse maps a pipeline error to an HTTP status and JSON body.
func (s *Server) faultResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	kind, _ := fault.KindOf(err)
	switch kind {
	case fault.KindEmptyInput, fault.KindMalformedInput:
		status = http.StatusUnprocessableEntity
	case fault.KindInvalidArgument, fault.KindUnsupportedFileType, fault.KindEncodingFailure:
		status = http.StatusBadRequest
	case fault.KindFileNotFound, fault.KindNotAFile:
		status = http.StatusNotFound
	}

	resp := ErrorResponse{Error: err.Error()}
	var fe *fault.Error
	if errors.As(err, &fe) {
		resp.Error = fe.Message
		resp.Suggestion = fe.Suggestion
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("extraction failed", zap.Error(err))
	}
	return c.JSON(status, resp)
}

func outcomeFor(err error) string {
	kind, _ := fault.KindOf(err)
	switch kind {
	case fault.KindEmptyInput:
		return "empty"
	case fault.KindMalformedInput:
		return "malformed"
	default:
		return "error"
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
