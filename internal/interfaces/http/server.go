// Package http provides the HTTP adapter for the application layer.
// This is a thin layer that translates requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fivemlab/commute-expense/internal/application/service"
	"github.com/fivemlab/commute-expense/internal/auth"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config            ServerConfig
	httpServer        *http.Server
	router            *gin.Engine
	tokens            *auth.TokenManager
	accountService    service.AccountService
	submissionService service.SubmissionService
	approvalService   service.ApprovalService
	exportService     service.ExportService
	logger            Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	tokens *auth.TokenManager,
	accountService service.AccountService,
	submissionService service.SubmissionService,
	approvalService service.ApprovalService,
	exportService service.ExportService,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:            config,
		router:            gin.New(),
		tokens:            tokens,
		accountService:    accountService,
		submissionService: submissionService,
		approvalService:   approvalService,
		exportService:     exportService,
		logger:            logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.accountService, s.submissionService, s.approvalService, s.exportService, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	// Public auth routes
	authGroup := s.router.Group("/api/auth")
	{
		authGroup.POST("/signup", handlers.SignUp)
		authGroup.POST("/signin", handlers.SignIn)
	}

	// Authenticated routes
	api := s.router.Group("/api")
	api.Use(s.sessionMiddleware())
	{
		api.GET("/profile", handlers.GetProfile)
		api.PUT("/profile", handlers.SaveProfile)

		api.GET("/submissions", handlers.ListSubmissions)
		api.GET("/submissions/grouped", handlers.ListSubmissionsGrouped)
		api.POST("/submissions", handlers.CreateSubmission)
	}

	// Admin routes. The services re-check the role; this group only rejects
	// unauthenticated callers early.
	admin := api.Group("/admin")
	{
		admin.GET("/pending", handlers.ListPending)
		admin.GET("/submissions", handlers.ListAllSubmissions)
		admin.PUT("/submissions/:id/status", handlers.UpdateStatus)
		admin.DELETE("/submissions/:id", handlers.DeleteSubmission)
		admin.GET("/export", handlers.ExportApproved)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
