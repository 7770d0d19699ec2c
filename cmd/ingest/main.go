// Command ingest loads the static catalog into the graph and materializes
// the food similarity edges. Safe to re-run; every step is an idempotent
// upsert.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/catalog"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/config"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		sugar.Fatalw("failed to load catalog", "path", cfg.CatalogPath, "error", err)
	}
	sugar.Infow("catalog loaded",
		"foods", len(cat.Foods),
		"restaurants", len(cat.Restaurants),
		"menus", len(cat.Menus),
		"tags", len(cat.DistinctTags()))

	client, err := database.NewClient(cfg.Neo4j, sugar)
	if err != nil {
		sugar.Fatalw("failed to connect to Neo4j", "error", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Close(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ingestor := database.NewIngestor(client, sugar)
	if err := ingestor.Run(ctx, cat); err != nil {
		sugar.Fatalw("ingestion failed", "error", err)
	}

	status, err := ingestor.Status(ctx)
	if err != nil {
		sugar.Fatalw("failed to read import status", "error", err)
	}
	sugar.Infow("ingestion completed", "status", status)
}
