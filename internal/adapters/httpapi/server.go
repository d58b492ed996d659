package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server serves the API until stopped
type Server struct {
	handler    Handler
	logger     *zap.Logger
	listenAddr string
	mode       string
	server     *http.Server
}

// NewServer creates an API server. mode is a gin mode (release, debug, test)
func NewServer(handler Handler, logger *zap.Logger, listenAddr, mode string) *Server {
	return &Server{
		handler:    handler,
		logger:     logger,
		listenAddr: listenAddr,
		mode:       mode,
	}
}

// Engine builds the gin engine with all routes registered
func (s *Server) Engine() *gin.Engine {
	if s.mode != "" {
		gin.SetMode(s.mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	s.handler.RegisterRoutes(r)
	return r
}

// Start starts serving in the background
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP API starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down, waiting for in-flight requests
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
