package http

import (
	"context"
	"net/http"
	"time"

	"mapban/internal/application"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	services *application.Service
	logger   application.Logger
	srv      *http.Server
}

func NewServer(services *application.Service, logger application.Logger) *Server {
	return &Server{
		services: services,
		logger:   logger,
	}
}

func (s *Server) Run(port string) error {
	h := &Handler{services: s.services, logger: s.logger}

	s.srv = &http.Server{
		Addr:    ":" + port,
		Handler: newHandler(h),
	}

	s.logger.Info("http server listening", "port", port)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

// newHandler assembles the gin router and wraps it with CORS for the
// separately hosted frontend.
func newHandler(h *Handler) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	registerRoutes(r, h)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

func registerRoutes(r *gin.Engine, h *Handler) {
	r.GET("/ping", h.Ping)

	api := r.Group("/api")
	{
		api.POST("/matches", h.CreateMatch)
		api.GET("/matches", h.ListMatches)
		api.DELETE("/matches/:id", h.DeleteMatch)

		api.GET("/public/:slug", h.PublicState)

		api.GET("/play/:token", h.PlayState)
		api.POST("/play/:token/ban", h.SubmitBan)

		admin := api.Group("/admin")
		{
			admin.GET("/matches", h.AdminMatches)
			admin.DELETE("/matches", h.DeleteMatches)
			admin.GET("/matches/export", h.ExportMatches)
		}
	}
}
