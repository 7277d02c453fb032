package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hray3182/RemindSnap/internal/models"
	"github.com/hray3182/RemindSnap/internal/service"
)

// Extractor converts an uploaded photo into a candidate reminder.
type Extractor interface {
	ExtractReminder(ctx context.Context, image []byte, mimeType string) (*models.Reminder, error)
}

type Server struct {
	reminders  *service.ReminderService
	extractor  Extractor
	uploadDir  string
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds the HTTP server. extractor may be nil when no AI key is
// configured; the photo endpoint then reports the feature as unavailable.
func New(reminders *service.ReminderService, extractor Extractor, port, uploadDir string) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	// The frontend is served from a different origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		reminders: reminders,
		extractor: extractor,
		uploadDir: uploadDir,
		engine:    engine,
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      engine,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/getAllReminder", s.handleGetAllReminders)
	s.engine.POST("/addReminder", s.handleAddReminder)
	s.engine.POST("/deleteReminder", s.handleDeleteReminder)
	s.engine.POST("/generateReminder", s.handleGenerateReminder)

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
