package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	_ "shopapi/docs" // swagger docs

	"shopapi/internal/auth"
	"shopapi/internal/cache"
	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/handler"
	"shopapi/internal/logging"
	"shopapi/internal/metrics"
	"shopapi/internal/router"
	"shopapi/internal/service"
)

// @title Shop API
// @version 1.0
// @description User accounts and product catalog API with JWT authentication.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := db.OpenStores(cfg, afero.NewOsFs())
	if err != nil {
		return err
	}
	defer stores.Close()
	logger.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, serving without cache", zap.Error(err))
	}

	// Initialize auth components
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	jwtService := auth.NewJWTService(cfg.SecretKey, cfg.TokenTTL)
	policy := auth.NewPolicy(cfg.AdminRole)

	// Initialize services
	authService := service.NewAuthService(stores.Users, hasher, jwtService, logger)
	userService := service.NewUserService(stores.Users, hasher, policy, cacheClient, logger)
	productService := service.NewProductService(stores.Products, policy, cacheClient, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, cfg, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Users:    handler.NewUserHandler(userService),
		Products: handler.NewProductHandler(productService),
	}, jwtService, logger, metrics.New())

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
