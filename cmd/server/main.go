package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetdesk/logistics-api/internal/api"
	"github.com/fleetdesk/logistics-api/internal/api/middleware"
	"github.com/fleetdesk/logistics-api/internal/core/service"
	mongodb "github.com/fleetdesk/logistics-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fleetdesk/logistics-api/internal/infrastructure/db/redis"
	"github.com/fleetdesk/logistics-api/internal/pkg/config"
	"github.com/fleetdesk/logistics-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	truckRepo := mongodb.NewTruckRepository(db)
	facilityRepo := mongodb.NewFacilityRepository(db)
	organizationRepo := mongodb.NewOrganizationRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":         authRepo.EnsureIndexes,
		"trucks":        truckRepo.EnsureIndexes,
		"facilities":    facilityRepo.EnsureIndexes,
		"organizations": organizationRepo.EnsureIndexes,
		"tickets":       ticketRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	services := api.Services{
		Auth:          service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, log),
		Trucks:        service.NewTruckService(truckRepo, log),
		Facilities:    service.NewFacilityService(facilityRepo, log),
		Organizations: service.NewOrganizationService(organizationRepo, log),
		Tickets:       service.NewTicketService(ticketRepo, truckRepo, organizationRepo, facilityRepo, log),
	}

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		limiter = redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	e := api.NewRouter(api.Deps{
		Services: services,
		Limiter:  limiter,
		Mongo:    db,
		Redis:    rdb,
		Logger:   log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
