package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/MS-7160/bingodemo/internal/api"
	"github.com/MS-7160/bingodemo/internal/config"
	"github.com/MS-7160/bingodemo/internal/repository"
	"github.com/MS-7160/bingodemo/internal/service"
	"github.com/MS-7160/bingodemo/internal/session"
	"github.com/MS-7160/bingodemo/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	defer db.Close()

	// Create repository
	repo := repository.NewSQLiteRepository(db)

	// Create session store
	sessions := session.NewStore(cfg.Game.SessionTTL)

	// Create service
	svc := service.NewDefaultService(repo, sessions, cfg.Auth.JWTSecret,
		cfg.Auth.DefaultUsername, cfg.Auth.DefaultPassword, cfg.Game.RedirectDelay)

	// Seed the default credential pair on first run
	if err := svc.EnsureSeedCredentials(context.Background()); err != nil {
		log.Fatalf("Failed to seed credentials: %v", err)
	}

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Allow the app frontend's origin
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	utils.Infof("Starting server on %s (db %s)", serverAddr, cfg.Database.Path)
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
