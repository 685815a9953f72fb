package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/progress"
	"github.com/abhisek/skillpath/internal/roadmap"
	"github.com/abhisek/skillpath/internal/server"
	"github.com/abhisek/skillpath/internal/store"
	"github.com/abhisek/skillpath/internal/suggest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// runServe loads configuration, builds the dependency graph, and runs the
// server until SIGINT/SIGTERM.
func runServe(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	st, err := store.Open(cfg.DBDriver, cfg.DSN(), log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := llm.NewProviderFromEnv(ctx, st.LLMLogs())
	if err != nil {
		return fmt.Errorf("init LLM provider: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, rate limiting disabled", "addr", cfg.RedisAddr, "error", err)
			redisClient = nil
		}
	}

	h := server.NewHandler(
		st,
		roadmap.NewService(st, roadmap.NewGenerator(provider, log), log),
		progress.NewService(st, log),
		suggest.NewGenerator(provider, log),
		log,
	)
	router := server.NewRouter(h, server.Options{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    server.NewRateLimiter(redisClient, log),
		LogMode:        cfg.LogMode,
		LLMTimeout:     cfg.LLMTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr, "db_driver", cfg.DBDriver, "model", provider.ModelID())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
