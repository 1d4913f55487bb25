package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cadr/internal/cache"
	"cadr/internal/config"
	"cadr/internal/handlers"
	"cadr/internal/logger"
	"cadr/internal/metrics"
	"cadr/internal/repository"
	"cadr/internal/repository/db"
	"cadr/internal/server"
	"cadr/internal/service"

	_ "cadr/docs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var configFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the chamber simulator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default configs/config.yml)")
	cmd.Flags().String("port", "", "HTTP port")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error")
	cmd.Flags().String("db", "", "SQLite database path")
	cmd.Flags().String("cache", "", "result cache: none|memory|redis")
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("db.path", cmd.Flags().Lookup("db"))
	_ = v.BindPFlag("cache.backend", cmd.Flags().Lookup("cache"))
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("sqlite_close_failed", "err", cerr)
		}
	}()

	results, closeCache, err := openCache(parent, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Deps{
		Log:               log,
		Metrics:           metrics.New(prometheus.DefaultRegisterer),
		Cache:             results,
		CacheTTL:          cfg.Cache.TTL,
		DefaultProfile:    cfg.Analysis.Profile,
		DefaultBackground: cfg.Analysis.Background,
		SigningKey:        cfg.Auth.SigningKey,
		TokenTTL:          cfg.Auth.TokenTTL,
		SampleStep:        cfg.Chamber.SampleStep,
		MaxSamples:        cfg.Chamber.MaxSamples,
	})
	apiHandler := handlers.NewHandler(services, log, prometheus.DefaultGatherer)

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go services.Simulator.Run(ctx, cfg.Chamber.Tick)

	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	errc := make(chan error, 1)
	go func() { errc <- srv.Run() }()
	log.Infow("server_started", "addr", srv.Addr(), "db", cfg.DB.Path, "cache", cfg.Cache.Backend)

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting_down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// openCache builds the configured result cache and its close func.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		r := cache.NewRedis(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Cache.Redis.Addr, err)
		}
		return r, func() { _ = r.Close() }, nil
	case "memory":
		return cache.NewMemory(), func() {}, nil
	default:
		return cache.Nop{}, func() {}, nil
	}
}
