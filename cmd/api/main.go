package main

import (
	"context"
	"log"

	"github.com/fuelcast/backend/config"
	"github.com/fuelcast/backend/internal/database"
	"github.com/fuelcast/backend/internal/router"
	"github.com/fuelcast/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// Plan history, catalog caching, and rate limiting degrade
		// gracefully without Redis.
		log.Printf("Redis unavailable, continuing without it: %v", err)
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("S3 unavailable, food photo upload disabled: %v", err)
		s3Config = nil
	}

	r := router.SetupRouter(db, redisClient, s3Config, cfg.JWTSecret)

	srv := server.NewServer(r)
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
