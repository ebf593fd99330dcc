// Package server implements the storefront gateway: a thin HTTP layer that
// translates browser form submissions into bearer-authenticated calls
// against the upstream REST API, and upstream JSON errors into
// redirect-based user feedback.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mancafe-dev/gateway/internal/config"
	"github.com/mancafe-dev/gateway/internal/proxy"
	"github.com/mancafe-dev/gateway/internal/routepolicy"
	"github.com/mancafe-dev/gateway/internal/session"
)

// Server represents the gateway HTTP server
type Server struct {
	router    *gin.Engine
	config    *config.Config
	logger    zerolog.Logger
	validator *validator.Validate
	upstream  *proxy.Client
	policy    *routepolicy.Policy
	version   string
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	// Route protection policy: built-in prefixes unless overridden by file.
	// Validate either way so overlapping prefix lists fail at startup, not
	// on the first misrouted request.
	policy := routepolicy.Default()
	if cfg.Server.RoutePolicyFile != "" {
		loaded, err := routepolicy.LoadFile(cfg.Server.RoutePolicyFile)
		if err != nil {
			return nil, err
		}
		policy = loaded
		zlog.Info().Str("file", cfg.Server.RoutePolicyFile).Msg("Loaded route policy override")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	server := &Server{
		config:    cfg,
		logger:    zlog,
		validator: validator.New(),
		upstream:  proxy.New(cfg.Upstream.BaseURL),
		policy:    policy,
		version:   version,
	}

	server.setupRouter()

	return server, nil
}

// cookieOptions returns the session cookie attributes for this deployment.
// Secure is tied to the environment since local development may run
// without TLS.
func (s *Server) cookieOptions() session.Options {
	return session.Options{Secure: s.config.Server.Production}
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(s.routeGuard())

	// CORS middleware
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{s.config.Server.SiteURL},
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Auth endpoints (public; session written on login/oauth-callback only)
	auth := s.router.Group("/api/auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/logout", s.logout)
		auth.POST("/signup", s.signup)
		auth.POST("/verify-otp", s.verifyOTP)
		auth.POST("/resend-otp", s.resendOTP)
		auth.POST("/request-reset", s.requestReset)
		auth.POST("/reset", s.resetPassword)
		auth.GET("/verify-email", s.verifyEmail)
		auth.GET("/google-callback", s.googleCallback)
	}

	// Cart and checkout (user-protected via route guard)
	cart := s.router.Group("/api/cart")
	{
		cart.GET("/add", s.cartAddGet)
		cart.POST("/add", s.cartAdd)
		cart.GET("/remove", s.cartRemoveGet)
		cart.POST("/remove", s.cartRemove)
		cart.GET("/count", s.cartCount)
	}
	s.router.POST("/api/checkout", s.checkout)

	// Reviews
	s.router.POST("/api/reviews/submit", s.submitReview)

	// Admin endpoints (admin-protected via route guard; each handler
	// re-checks the session as defense-in-depth)
	admin := s.router.Group("/api/admin")
	{
		admin.POST("/products/create", s.createProduct)
		admin.POST("/products/update", s.updateProduct)
		admin.POST("/products/delete", s.deleteProduct)
		admin.POST("/orders/update", s.updateOrderStatus)
		admin.POST("/uploads/thumbnail", s.uploadThumbnail)
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("request_id", requestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "mancafe-gateway",
		"version":   s.version,
	})
}

// Router exposes the configured handler, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.Server.ListenAddr

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// The gateway itself answers quickly; generous write timeout covers a
	// slow upstream since proxied calls carry no timeout of their own
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	// Start server in goroutine
	go func() {
		s.logger.Info().Str("addr", addr).Str("upstream", s.upstream.BaseURL()).Msg("Starting gateway")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")

	return nil
}
