package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/fintrack-app/fintrack/internal/api"
	"github.com/fintrack-app/fintrack/internal/config"
	"github.com/fintrack-app/fintrack/internal/logging"
	"github.com/fintrack-app/fintrack/internal/repository"
	"github.com/fintrack-app/fintrack/internal/service"
)

func main() {
	logger := logging.New("server")

	// Load .env if present, then configuration from the environment
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using environment")
	}
	cfg := config.LoadConfig()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up database")
	}
	defer db.Close()

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret)

	// Create API handler
	handler := api.NewHandler(svc, logging.New("api"))

	// Set up Gin router
	router := gin.Default()
	router.Use(api.RequestLogger(logging.New("http")))
	router.Use(api.CORSMiddleware(cfg.CORS.FrontendURL))

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info().Str("addr", serverAddr).Msg("starting server")
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
