package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"edascope/adapters/api"
	"edascope/adapters/ingest"
	"edascope/adapters/logging"
	"edascope/internal/config"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	logger, err := logging.NewJSONRequestLogger(cfg.Log.File)
	if err != nil {
		log.Fatalf("failed to initialize request logger: %v", err)
	}
	defer logger.Close()

	server := api.NewServer(cfg.Quality, ingest.NewDataReader(), logger)

	addr := ":" + cfg.Server.Port
	log.Printf("starting dataset-quality API on %s", addr)
	if err := server.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
