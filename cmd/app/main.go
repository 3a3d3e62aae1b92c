package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/config"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/db"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/middleware"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/repository"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/services"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/storage"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// app bundles what the route registrations need.
type app struct {
	log      logging.Logger
	guard    *middleware.Guard
	auth     *services.AuthService
	products *services.ProductService
	files    *services.FileService
	seed     *services.SeedService
}

func main() {
	cfg, err := config.LoadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.NewJSON(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	store, err := newFileStore(ctx, cfg)
	if err != nil {
		return err
	}

	tokens, err := middleware.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(userRepo, tokens, logger)
	a := &app{
		log:      logger,
		guard:    middleware.NewGuard(tokens, authSvc),
		auth:     authSvc,
		products: services.NewProductService(productRepo, logger, cfg.TxTimeout),
		files:    services.NewFileService(store, cfg.HostAPI, logger),
		seed:     services.NewSeedService(userRepo, productRepo, services.InitialData, logger),
	}

	// ======================
	// SERVER
	// ======================
	e := newServer(a)
	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info(shutdownCtx, "shutting down")
	return e.Shutdown(shutdownCtx)
}

func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	if cfg.StorageBackend == config.StorageS3 {
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(client, cfg.S3Bucket), nil
	}
	return storage.NewLocalStore(cfg.StaticDir)
}

// newServer builds the echo instance with every route under /api.
func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler(a.log)

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, a.auth, a.guard)
	registerProductRoutes(api, a.products, a.guard)
	registerFileRoutes(api, a.files)
	registerSeedRoutes(api, a.seed)

	return e
}
