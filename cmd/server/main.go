package main

import (
	"context"
	"crew-route-service/internal/adapters/cache"
	"crew-route-service/internal/adapters/distance"
	"crew-route-service/internal/adapters/events"
	"crew-route-service/internal/adapters/repositories"
	"crew-route-service/internal/api"
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/db"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/ports"
	"crew-route-service/internal/services"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, ORS, Redis) behind ports and starts the HTTP server.
func main() {
	logger := obs.NewLogger("server")

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

type store interface {
	ports.JobRepository
	ports.CrewRepository
	ports.AssignmentWriter
}

func run(logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	cfg, err := config.Load(config.Get("CONFIG_FILE", ""))
	if err != nil {
		return err
	}

	var (
		repo          store
		conn          *sql.DB
		distanceCache distance.DistanceCache
		geocodeCache  distance.GeocodeCache
		healthCheck   func(context.Context) error
	)

	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		conn, err = db.Open(ctx, url)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			return err
		}
		repo = repositories.NewPostgresRepository(conn)
		distanceCache = cache.NewSQLDistanceCache(conn)
		geocodeCache = cache.NewSQLGeocodeCache(conn)
		healthCheck = conn.PingContext
	} else {
		mem := repositories.NewMemoryRepository()
		jobsPath := config.Get("SEED_JOBS_PATH", "data/seeds/jobs.json")
		crewsPath := config.Get("SEED_CREWS_PATH", "data/seeds/crews.json")
		if err := mem.LoadJSON(jobsPath, crewsPath); err != nil {
			logger.Warn().Err(err).Msg("in-memory store starts empty")
		}
		repo = mem
		logger.Warn().Msg("DATABASE_URL not set; using in-memory store")
	}

	haversine := distance.NewHaversineModel(cfg.AverageSpeedMph)
	optimizer, err := services.NewOptimizer(cfg, haversine, services.DefaultPolicies(), obs.NewLogger("optimizer"))
	if err != nil {
		return err
	}

	planner := &services.DayPlanner{
		Jobs:      repo,
		Crews:     repo,
		Persister: services.NewAssignmentPersister(repo),
		Optimizer: optimizer,
	}

	// ORS supplies geocoding and road distances; caches persist in Postgres when available.
	if key := strings.TrimSpace(os.Getenv("ORS_API_KEY")); key != "" {
		provider, err := distance.NewORSDistanceProvider(key, distanceCache, geocodeCache)
		if err != nil {
			return err
		}
		planner.Geocoder = provider
		planner.RoadModel = func(ctx context.Context, points []domain.Coordinates) (ports.DistanceModel, error) {
			return distance.BuildMatrixModel(ctx, provider, points, haversine)
		}
	} else {
		logger.Info().Msg("ORS_API_KEY not set; geocoding and road distances disabled")
	}

	if url := strings.TrimSpace(os.Getenv("REDIS_URL")); url != "" {
		pub, err := events.NewRedisPublisher(ctx, url)
		if err != nil {
			return err
		}
		defer pub.Close()
		planner.Publisher = pub
	}

	router := api.NewRouter(api.Deps{
		Jobs:            repo,
		Crews:           repo,
		Planner:         planner,
		Optimizer:       optimizer,
		HealthCheck:     healthCheck,
		OptimizeTimeout: config.GetDuration("OPTIMIZE_TIMEOUT", 30*time.Second),
	}, obs.NewLogger("http"))

	port := config.Get("PORT", "8080")

	// Timeouts are tuned for cold-cache road distance prefetches (external API latency).
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
