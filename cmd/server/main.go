package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lastmile-routing-service/internal/adapters/cache"
	"lastmile-routing-service/internal/adapters/optimizer"
	"lastmile-routing-service/internal/adapters/repositories"
	"lastmile-routing-service/internal/api"
	"lastmile-routing-service/internal/platform/config"
	"lastmile-routing-service/internal/platform/db"
	"lastmile-routing-service/internal/platform/logging"
	"lastmile-routing-service/internal/ports"
	"lastmile-routing-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Mapbox) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	pool, err := db.Open(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := repositories.InitSchema(pool); err != nil {
		logger.Fatal("schema initialization failed", zap.Error(err))
	}

	// Distance lookups hit an external provider; a persistent cache in
	// front of it avoids repeated calls. Redis when configured, the
	// Postgres table otherwise.
	var distanceCache ports.DistanceCache = cache.NewSQLDistanceCache(pool)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		distanceCache = cache.NewRedisDistanceCache(client)
	}

	mapbox, err := optimizer.NewMapboxClient(cfg.Routing.MapboxToken, distanceCache)
	if err != nil {
		logger.Fatal("mapbox client setup failed", zap.Error(err))
	}

	origin := services.NewOriginResolver(cfg.Routing.OriginLat, cfg.Routing.OriginLng)

	routeService := services.NewRouteService(
		repositories.NewPostgresOrderRepository(pool),
		repositories.NewPostgresRouteRepository(pool),
		repositories.NewPostgresShipmentRepository(pool),
		repositories.NewPostgresCourierRepository(pool),
		mapbox,
		mapbox,
		origin,
		cfg.Routing.SyncConcurrency,
		logger,
	)

	router := api.NewRouter(routeService, logger)

	logger.Info("server listening", zap.String("addr", ":"+cfg.App.Port))
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.App.ReadTimeout,
		WriteTimeout:      cfg.App.WriteTimeout,
		IdleTimeout:       cfg.App.IdleTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
