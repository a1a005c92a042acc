package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/99minutos/contacts-api/internal/api"
	"github.com/99minutos/contacts-api/internal/api/handler"
	"github.com/99minutos/contacts-api/internal/core/ports"
	"github.com/99minutos/contacts-api/internal/core/service"
	"github.com/99minutos/contacts-api/internal/infrastructure/db/mongo"
	"github.com/99minutos/contacts-api/internal/infrastructure/db/redis"
	"github.com/99minutos/contacts-api/internal/pkg/config"
	"github.com/99minutos/contacts-api/pkg/logger"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadWith(cmd.Context(), envconfig.OsLookuper())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if servePort != "" {
			cfg.Port = servePort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Version: version,
	})

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.OpTimeout,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(client, cfg.ShutdownTimeout); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	store := mongo.NewContactRepository(db, cfg.Mongo.OpTimeout)
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	checks := map[string]handler.DependencyCheck{
		"mongo": handler.MongoCheck(db),
	}

	var repo ports.ContactRepository = store
	if cfg.Redis.Enabled {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		repo = redis.NewCachedContactRepository(store, rdb, cfg.Redis.CacheTTL, logger.Component("contact_cache"))
		checks["redis"] = handler.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("contact cache enabled")
	}

	contacts := service.NewContactService(repo, logger.Component("contact_service"), service.Options{
		StrictUpdates: cfg.StrictUpdateValidation,
	})

	e := api.NewRouter(api.Dependencies{
		Contacts: contacts,
		Checks:   checks,
		Log:      logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
