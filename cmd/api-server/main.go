package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"userapi/database"
	"userapi/internal/config"
	"userapi/internal/http-api/cache"
	"userapi/internal/http-api/handler"
	"userapi/internal/http-api/repository"
	"userapi/internal/http-api/router"
	"userapi/internal/http-api/service"
	"userapi/internal/middleware/auth"
	"userapi/internal/shared"
	"userapi/internal/validation"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := shared.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to the database and migrate
	sqlDB, gormDB, err := database.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	store := repository.NewStore(gormDB)

	rules, err := validation.NewRules(cfg.EmailRegex, cfg.PasswordRegex)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	// 3. Optional Redis list cache
	var listCache cache.UserListCache
	if cfg.CacheEnabled() {
		var client *redis.Client
		client, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		listCache = cache.NewRedisUserListCache(client, cfg.CacheTTL)
		logger.Info("user list cache enabled", "ttl", cfg.CacheTTL)
	}

	// 4. Wire service, handler and routes
	userService := service.NewUserService(store, rules, tokens, listCache, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	engine := router.New(cfg, userHandler, store, logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
