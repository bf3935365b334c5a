package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cropbank/banking-system/docs"
	"github.com/cropbank/banking-system/internal/api"
	"github.com/cropbank/banking-system/internal/core/ports"
	"github.com/cropbank/banking-system/internal/core/service"
	"github.com/cropbank/banking-system/internal/core/token"
	"github.com/cropbank/banking-system/internal/infrastructure/config"
	mongodb "github.com/cropbank/banking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/cropbank/banking-system/internal/infrastructure/db/redis"
	"github.com/cropbank/banking-system/internal/infrastructure/queue"
	"github.com/cropbank/banking-system/pkg/logger"
)

// @title        Corporate Banking API
// @version      1.0
// @description  Role-gated API for onboarding corporate clients and processing credit requests.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
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

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if err := service.EnsureAdmin(ctx, mongodb.NewUserRepository(db), ports.RegisterInput{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	// --- Audit pipeline ---
	auditSink := service.NewAuditService(
		mongodb.NewAuditRepository(db),
		redisdb.NewDedupStore(rdb),
		log,
	)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditSink, log)
	dispatcher.Start(ctx)

	// --- HTTP API ---
	codec := token.NewCodec(token.Config{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL})
	e := api.NewRouter(api.Dependencies{
		DB:        db,
		Redis:     rdb,
		Codec:     codec,
		Publisher: dispatcher,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewClientRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewCreditRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewAuditRepository(db).EnsureIndexes(ctx)
}
