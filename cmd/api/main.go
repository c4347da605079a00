package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"errand-runner/internal/api"
	"errand-runner/internal/cache"
	"errand-runner/internal/config"
	"errand-runner/internal/db"
	"errand-runner/internal/modules/locations"
	"errand-runner/internal/modules/optimize"
	"errand-runner/internal/modules/paths"
	"errand-runner/internal/modules/user"
	emailSvc "errand-runner/pkg/email"
	"errand-runner/pkg/maps"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	e := echo.New()
	e.Logger.SetLevel(log.INFO)

	// 1. --- Configuration ---
	// A local .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.Logger.Warnf("Failed to read .env: %v", err)
	}
	cfg, err := config.LoadConfig(".")
	if err != nil {
		e.Logger.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. --- Middleware ---
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{cfg.ClientOrigin},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{"X-Cache", echo.HeaderXRequestID},
	}))

	// 3. --- Database & Cache Connections ---
	dbPool, err := db.ConnectPostgres(cfg)
	if err != nil {
		e.Logger.Fatalf("Unable to connect to database: %v", err)
	}
	defer dbPool.Close()
	e.Logger.Info("Successfully connected to the database!")

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureSchema(schemaCtx, dbPool); err != nil {
		cancelSchema()
		e.Logger.Fatalf("Unable to prepare schema: %v", err)
	}
	cancelSchema()

	var routeCache optimize.CacheStore
	if redisClient := db.ConnectRedis(cfg); redisClient != nil {
		defer redisClient.Close()
		routeCache = cache.NewRedisStore(redisClient)
		e.Logger.Infof("Route cache enabled at %s", cfg.RedisAddr)
	} else {
		e.Logger.Warn("REDIS_ADDR is empty; optimized routes will not be cached")
	}

	// 4. --- External Services ---
	var emailer emailSvc.ServiceInterface
	if cfg.SenderEmail != "" {
		sender, err := emailSvc.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.SenderEmail)
		if err != nil {
			e.Logger.Fatalf("Unable to configure SES: %v", err)
		}
		emailer = sender
	} else {
		e.Logger.Warn("SENDER_EMAIL is empty; route sharing is disabled")
	}
	templateManager, err := emailSvc.NewTemplateManager()
	if err != nil {
		e.Logger.Fatalf("Unable to parse email templates: %v", err)
	}

	if cfg.GoogleMapsAPIKey == "" {
		e.Logger.Warn("GOOGLE_MAPS_API_KEY is empty; route optimization requests will be rejected upstream")
	}
	routesClient := maps.NewRoutesClient(cfg.RoutesAPIURL, cfg.RoutesAPITimeout)

	// 5. --- Dependency Injection (Wiring everything up) ---
	// --- Users Module ---
	userRepo := user.NewRepository(dbPool)
	userService := user.NewService(userRepo, cfg.JWTSecret)
	userHandler := user.NewHandler(userService)

	// --- Locations Module ---
	locationRepo := locations.NewRepository(dbPool)
	locationService := locations.NewService(locationRepo)
	locationHandler := locations.NewHandler(locationService)

	// --- Paths Module ---
	pathRepo := paths.NewRepository(dbPool)
	pathService := paths.NewService(pathRepo, emailer, templateManager, e.Logger)
	pathHandler := paths.NewHandler(pathService)

	// --- Optimize Module ---
	optimizeService := optimize.NewService(pathRepo, routeCache, routesClient, cfg.GoogleMapsAPIKey, cfg.RouteCacheTTL(), e.Logger)
	optimizeHandler := optimize.NewHandler(optimizeService)

	// 6. --- Initialize Router ---
	api.SetupRoutes(e, cfg.JWTSecret, api.Handlers{
		User:      userHandler,
		Locations: locationHandler,
		Paths:     pathHandler,
		Optimize:  optimizeHandler,
	})

	// 7. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal("shutting down the server an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	e.Logger.Info("Server exiting")
}
