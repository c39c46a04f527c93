// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"community-health-api-server/config"
	"community-health-api-server/internal/ai"
	"community-health-api-server/internal/api/routes"
	"community-health-api-server/internal/auth"
	"community-health-api-server/internal/database"
	"community-health-api-server/internal/s3"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	auth.SetSecret(cfg.JWT.Secret)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.Mongo.DBName)
	log.Println("Successfully connected to MongoDB!")

	// Unique and 2dsphere indexes must exist before any write is accepted.
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure database indexes: %v", err)
	}

	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to create S3 uploader: %v", err)
	}

	aiClient := ai.NewClient(cfg.Gemini)

	router := routes.SetupRouter(cfg, db, aiClient, s3Uploader)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
