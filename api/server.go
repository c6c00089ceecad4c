// Package api exposes the SDK over HTTP for the demo server
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weathersdk.app/config"
	sdkerrors "weathersdk.app/errors"
	"weathersdk.app/models"
)

// WeatherClient is the slice of the SDK surface the server needs
type WeatherClient interface {
	GetWeather(ctx context.Context, city string) (*models.WeatherReport, error)
}

// Server represents the HTTP server and API handler
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	client     WeatherClient
}

// NewServer creates and configures a new HTTP server
func NewServer(cfg *config.Config, client WeatherClient) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	server := &Server{
		router: router,
		config: cfg,
		client: client,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	{
		api.GET("/weather", s.getWeather)
	}

	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.Port),
		Handler: s.router,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the HTTP server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

type weatherQuery struct {
	City string `form:"city" binding:"required"`
}

func (s *Server) getWeather(c *gin.Context) {
	var query weatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, sdkerrors.NewValidationError("city parameter is required"))
		return
	}

	slog.Debug("getting weather", "city", query.City, "request_id", c.GetString(requestIDKey))
	report, err := s.client.GetWeather(c.Request.Context(), query.City)
	if err != nil {
		slog.Error("weather lookup failed", "error", err, "city", query.City, "request_id", c.GetString(requestIDKey))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case sdkerrors.IsValidationError(err):
		status = http.StatusBadRequest
	case sdkerrors.IsFetchError(err), sdkerrors.IsMalformedDataError(err):
		status = http.StatusBadGateway
	case sdkerrors.IsClosedError(err):
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}

const requestIDKey = "request_id"

// requestID tags every request with an id for log correlation
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
