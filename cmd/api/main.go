package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tvindima/crm-plus-sub000/api/routes"
	"github.com/tvindima/crm-plus-sub000/internal/agents"
	"github.com/tvindima/crm-plus-sub000/internal/analytics"
	"github.com/tvindima/crm-plus-sub000/internal/assignment"
	"github.com/tvindima/crm-plus-sub000/internal/auth"
	"github.com/tvindima/crm-plus-sub000/internal/distribution"
	"github.com/tvindima/crm-plus-sub000/internal/leads"
	"github.com/tvindima/crm-plus-sub000/internal/properties"
	"github.com/tvindima/crm-plus-sub000/internal/visits"
	"github.com/tvindima/crm-plus-sub000/pkg/config"
	"github.com/tvindima/crm-plus-sub000/pkg/db"
	"github.com/tvindima/crm-plus-sub000/pkg/logger"
	"github.com/tvindima/crm-plus-sub000/pkg/metrics"
	"github.com/tvindima/crm-plus-sub000/pkg/migrate"
	"github.com/tvindima/crm-plus-sub000/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	gormDB := dbClient.DB()
	visitsRepo := visits.NewRepository(gormDB)

	assignmentService, err := assignment.NewService(assignment.NewRepository(gormDB), dbClient)
	requireService(logg, "assignment", err)

	distributionService, err := distribution.NewService(distribution.NewRepository(gormDB), dbClient)
	requireService(logg, "distribution", err)

	analyticsService, err := analytics.NewService(analytics.NewRepository(gormDB), time.Now)
	requireService(logg, "analytics", err)

	visitsService, err := visits.NewService(visitsRepo, time.Now)
	requireService(logg, "visits", err)

	leadsService, err := leads.NewService(leads.NewRepository(gormDB))
	requireService(logg, "leads", err)

	propertiesService, err := properties.NewService(properties.NewRepository(gormDB), visitsRepo, assignmentService, dbClient)
	requireService(logg, "properties", err)

	agentsService, err := agents.NewService(agents.NewRepository(gormDB), dbClient)
	requireService(logg, "agents", err)

	authService, err := auth.NewService(auth.ServiceParams{
		Repo:         auth.NewRepository(gormDB),
		RateLimiter:  redisClient,
		JWTConfig:    cfg.JWT,
		PasswordCfg:  cfg.Password,
		RateLimitCfg: cfg.AuthRateLimit,
	})
	requireService(logg, "auth", err)

	services := routes.Services{
		Auth:         authService,
		Agents:       agentsService,
		Properties:   propertiesService,
		Leads:        leadsService,
		Distribution: distributionService,
		Visits:       visitsService,
		Assignment:   assignmentService,
		Analytics:    analyticsService,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, metricsHandler, services),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), fmt.Sprintf("failed to create %s service", name), err)
	os.Exit(1)
}
