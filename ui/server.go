// Package ui exposes the scoring, detection, and validation boundaries as
// a JSON API.
package ui

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nomen/app"
	"nomen/internal"
)

// Server wraps the gin engine around the application services.
type Server struct {
	router     *gin.Engine
	scoring    *app.ScoringService
	detection  *app.DetectionService
	validation *app.ValidationService
	profiles   *app.ProfileService
	logger     *internal.Logger
}

// NewServer creates a server over the given services and registers routes.
func NewServer(
	scoring *app.ScoringService,
	detection *app.DetectionService,
	validation *app.ValidationService,
	profiles *app.ProfileService,
	logger *internal.Logger,
) *Server {
	s := &Server{
		router:     gin.Default(),
		scoring:    scoring,
		detection:  detection,
		validation: validation,
		profiles:   profiles,
		logger:     logger.WithComponent("ui"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/domains", s.handleListDomains)
		api.GET("/domains/:domain/profile", s.handleGetProfile)
		api.GET("/domains/:domain/results", s.handleListResults)
		api.GET("/domains/:domain/terms", s.handleListTermVersions)
		api.GET("/domains/:domain/reports", s.handleListReports)

		api.POST("/score", s.handleScore)
		api.POST("/score/batch", s.handleScoreBatch)
		api.POST("/detect", s.handleDetect)
		api.POST("/validate", s.handleValidate)

		api.GET("/terms/:version", s.handleGetTermSet)
		api.GET("/reports/:id", s.handleGetReport)
	}
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
