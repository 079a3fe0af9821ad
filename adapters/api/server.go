// Package api exposes the dataset-quality computations over HTTP. Handlers
// are thin callers into internal/analysis; request logging is a side effect
// routed through the injected ports.RequestLogger.
package api

import (
	"github.com/gin-gonic/gin"

	"edascope/internal/analysis"
	"edascope/ports"
)

const (
	serviceName    = "dataset-quality"
	serviceVersion = "0.2.0"
)

// Server represents the dataset-quality HTTP service
type Server struct {
	router  *gin.Engine
	logger  ports.RequestLogger
	loader  ports.TableLoader
	quality analysis.QualityConfig
}

// NewServer creates a server with its routes registered.
func NewServer(quality analysis.QualityConfig, loader ports.TableLoader, logger ports.RequestLogger) *Server {
	s := &Server{
		router:  gin.New(),
		logger:  logger,
		loader:  loader,
		quality: quality,
	}
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogging())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/quality", s.handleQuality)
	s.router.POST("/quality-from-csv", s.handleQualityFromCSV)
	s.router.POST("/quality-flags-from-csv", s.handleQualityFlagsFromCSV)
}

// Router exposes the gin engine for tests and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP listener.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
