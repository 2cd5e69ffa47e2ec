package main

import (
	"context"
	"crew-route-service/internal/adapters/repositories"
	"crew-route-service/internal/config"
	"crew-route-service/internal/platform/db"
	"crew-route-service/internal/platform/obs"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// dbtool creates the schema and loads the seed crews and jobs.
func main() {
	logger := obs.NewLogger("dbtool")

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := logger.WithContext(context.Background())
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect failed")
	}
	defer conn.Close()

	jobsPath := config.Get("SEED_JOBS_PATH", "data/seeds/jobs.json")
	crewsPath := config.Get("SEED_CREWS_PATH", "data/seeds/crews.json")
	if err := initAndSeed(ctx, logger, conn, jobsPath, crewsPath); err != nil {
		logger.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, logger zerolog.Logger, conn *sql.DB, jobsPath, crewsPath string) error {
	logger.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization: %w", err)
	}

	logger.Info().Str("jobs", jobsPath).Str("crews", crewsPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(ctx, conn, jobsPath, crewsPath); err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	logger.Info().Msg("seeding complete")

	return nil
}
