package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vibequest/vibequest/vibequest"
	"github.com/vibequest/vibequest/vibequest/database"
	"github.com/vibequest/vibequest/vibequest/logger"
	"github.com/vibequest/vibequest/vibequest/migration"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	configPath := flag.String("config", "config.toml", "path to config")
	dataDir := flag.String("data-dir", "data", "directory holding players.bson and sessions.bson dumps")
	mongoURI := flag.String("mongo-uri", "", "optional Mongo connection string; overrides the BSON dumps")
	mongoDB := flag.String("mongo-db", "vibequest", "Mongo database name when -mongo-uri is set")
	batchSize := flag.Int("batch-size", 1000, "insert batch size")
	flag.Parse()

	ctx := context.Background()

	cfg, err := vibequest.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	migrator := migration.NewMigrator(db.BunDB(), *dataDir)
	migrator.SetBatchSize(*batchSize)

	if *mongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
		if err != nil {
			slog.Error("Failed to connect to Mongo", slog.Any("error", err))
			os.Exit(1)
		}
		defer client.Disconnect(ctx)
		migrator.UseMongo(client, *mongoDB)
	}

	if err := migrator.MigrateAll(ctx); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Migration completed successfully!")
}
