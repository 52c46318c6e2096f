package main

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicbook/booking-system/internal/api"
	mongodb "github.com/clinicbook/booking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/clinicbook/booking-system/internal/infrastructure/db/redis"
	"github.com/clinicbook/booking-system/internal/pkg/config"
	"github.com/clinicbook/booking-system/pkg/logger"
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
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	e := api.NewRouter(db, rdb, api.Options{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Location:  cfg.Location(),
	}, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting booking API")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewDoctorRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewAppointmentRepository(db).EnsureIndexes(ctx)
}
