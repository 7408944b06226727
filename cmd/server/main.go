package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"dispatch/internal/app"
	"dispatch/internal/config"
	"dispatch/internal/geo"
	"dispatch/internal/handler"
	internalRedis "dispatch/internal/redis"
	"dispatch/internal/repository/postgres"
	"dispatch/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Redis-backed stores.
	geocodeCache := internalRedis.NewGeocodeCache(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Repositories.
	tripRepo := postgres.NewTripRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)

	// Geocoding.
	resolver := geo.NewResolver(
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.CountryCode,
		geo.WithHTTPClient(&http.Client{Timeout: cfg.Geocoder.Timeout}),
		geo.WithCache(geocodeCache),
	)

	// Services.
	notificationService := service.NewNotificationService()
	pricing := service.NewPricingCalculator(resolver)
	matcher := service.NewResourceMatcher(driverRepo, vehicleRepo)
	lifecycle := service.NewTripLifecycle(db, tripRepo, driverRepo, vehicleRepo, lockStore, notificationService)
	dispatchService := service.NewDispatchService(tripRepo, driverRepo, vehicleRepo, matcher, pricing, resolver, notificationService)
	resourceService := service.NewResourceService(driverRepo, vehicleRepo)

	// Handlers.
	tripHandler := handler.NewTripHandler(dispatchService, lifecycle)
	driverHandler := handler.NewDriverHandler(resourceService, driverRepo)
	vehicleHandler := handler.NewVehicleHandler(resourceService, vehicleRepo)

	router := app.NewRouter(app.RouterDeps{
		TripHandler:    tripHandler,
		DriverHandler:  driverHandler,
		VehicleHandler: vehicleHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
