package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lokma/config"
	"lokma/internal/database"
	"lokma/internal/logger"
	"lokma/internal/mq"
	"lokma/internal/repository"
	"lokma/internal/router"
	"lokma/internal/tracing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, warnings := config.Load()
	logger.Init(cfg.Server.Env)
	for _, w := range warnings {
		log.Warn().Str("component", "config").Msg(w)
	}

	shutdownTracing, err := tracing.Init(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing")
	}

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if err := repository.NewSettingRepository(db).SeedDefaults(context.Background(), database.DefaultSettings); err != nil {
		log.Fatal().Err(err).Msg("seed settings")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
	}

	app, err := router.Setup(cfg, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("router")
	}
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				app.Limiter.Cleanup()
			}
		}
	})
	if len(cfg.Kafka.Brokers) > 0 {
		reader := mq.NewKafkaReader(cfg.Kafka.Brokers, cfg.Kafka.OrderUpdateTopic, cfg.Kafka.GroupID)
		consumer := mq.NewOrderEventConsumer(reader, app.Notifier)
		g.Go(func() error { return consumer.Run(gctx) })
	} else {
		log.Warn().Msg("KAFKA_BROKERS not set, order updates only via /api/v1/internal/order-events")
	}

	waitErr := g.Wait()
	if waitErr != nil {
		log.Error().Err(waitErr).Msg("server stopped with error")
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	log.Info().Msg("server stopped")
	if waitErr != nil {
		os.Exit(1)
	}
}
