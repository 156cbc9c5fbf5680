package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/panpaya/siteme-api-go/pkg/auth"
	"github.com/panpaya/siteme-api-go/pkg/database"
	"github.com/panpaya/siteme-api-go/pkg/handlers"
	applogger "github.com/panpaya/siteme-api-go/pkg/logger"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	logger, err := applogger.New()
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	if err := auth.EnsureAdminExists(db); err != nil {
		logger.Fatal("could not ensure admin user", zap.Error(err))
	}

	h := handlers.New(db, logger)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	h.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logger.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
