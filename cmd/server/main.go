package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acme/account-service/internal/api"
	"github.com/acme/account-service/internal/core/service"
	"github.com/acme/account-service/internal/infrastructure/config"
	"github.com/acme/account-service/internal/infrastructure/crypto"
	mongodb "github.com/acme/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/acme/account-service/internal/infrastructure/db/redis"
	"github.com/acme/account-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.TokenTTL).Msg("invalid TOKEN_TTL")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	events := mongodb.NewEventRepository(db)
	payments := mongodb.NewPaymentRepository(db)

	// --- Services ---
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	policy := service.NewPasswordPolicy(service.DefaultBreachedPasswords())
	locks := service.NewUserLocks()

	audit := service.NewAuditService(events, log)
	tracker := service.NewLockoutTracker(users, audit, locks, log)
	accounts := service.NewAccountService(users, audit, hasher, policy, locks, log)
	authenticator := service.NewAuthenticator(users, hasher, tracker, log)
	payroll := service.NewPayrollService(payments, users, log)

	e := api.NewRouter(api.RouterConfig{
		Accounts:      accounts,
		Payments:      payroll,
		Audit:         audit,
		Users:         users,
		Authenticator: authenticator,
		DB:            db,
		Redis:         rdb,
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      tokenTTL,
		AuthRateLimit: cfg.AuthRateLimit,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
