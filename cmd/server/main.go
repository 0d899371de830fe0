package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/photo-gallery/internal/config"
	"github.com/iliyamo/photo-gallery/internal/database"
	"github.com/iliyamo/photo-gallery/internal/handler"
	"github.com/iliyamo/photo-gallery/internal/logging"
	"github.com/iliyamo/photo-gallery/internal/media"
	"github.com/iliyamo/photo-gallery/internal/metrics"
	"github.com/iliyamo/photo-gallery/internal/queue"
	"github.com/iliyamo/photo-gallery/internal/repository"
	"github.com/iliyamo/photo-gallery/internal/router"
	"github.com/iliyamo/photo-gallery/internal/service"
	"github.com/iliyamo/photo-gallery/internal/utils"
)

func main() {
	cfg := config.Load() // Load environment config
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.SlogLogger) error {
	if err := metrics.Init(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	hasher := utils.NewPasswordHasher(cfg.BcryptCost)
	tokens := utils.NewTokenService(cfg.UserJWTSecret, cfg.AdminJWTSecret, cfg.UserTokenTTL, cfg.AdminTokenTTL)
	admin, err := service.ResolveAdminCredential(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash, hasher)
	if err != nil {
		return fmt.Errorf("admin credential: %w", err)
	}

	upCfg := config.LoadUploadConfig()
	storage, uploadDir, err := openStorage(ctx, upCfg)
	if err != nil {
		return err
	}

	qCfg := config.LoadQueueConfig()
	var events service.Publisher = service.NopPublisher{}
	if qCfg.Enabled {
		pub := service.NewAMQPPublisher(qCfg.AMQPURL)
		pub.Timeout = qCfg.PublishTimeout
		events = pub
		if qCfg.ActivityLog != "" {
			consumer := &queue.ActivityConsumer{URL: qCfg.AMQPURL, LogPath: qCfg.ActivityLog, Log: logger.With("component", "activity")}
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error(ctx, "activity consumer stopped", "error", err)
				}
			}()
		}
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		logger.Warn(ctx, "redis unavailable, using in-process rate limiting and no response cache")
	} else {
		defer rdb.Close()
	}

	deps := router.Deps{
		Log:       logger,
		Tokens:    tokens,
		Auth:      handler.NewAuthHandler(service.NewAuthService(store, hasher, tokens, admin, events, logger)),
		Gallery:   handler.NewGalleryHandler(service.NewGalleryService(store, store)),
		Photos:    handler.NewPhotoHandler(service.NewPhotoService(store, storage, events, logger), upCfg.MaxBytes),
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
		UploadDir: uploadDir,
		PublicDir: cfg.PublicDir,
	}
	if db != nil {
		deps.DB = db
	}
	e := router.New(deps)

	addr := ":" + cfg.Port
	logger.Info(ctx, "listening", "addr", addr, "env", cfg.Env, "store", cfg.StoreDriver)

	errCh := make(chan error, 1)
	go func() {
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info(shutdownCtx, "shutting down")
	return e.Shutdown(shutdownCtx)
}

// openStore picks the backend named by STORE_DRIVER and runs migrations for
// the SQL ones. db is nil for the memory store.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, *sql.DB, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		if err := database.Migrate(ctx, db, string(repository.DialectMySQL)); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repository.NewSQLStore(db, repository.DialectMySQL), db, nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := database.Migrate(ctx, db, string(repository.DialectSQLite)); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repository.NewSQLStore(db, repository.DialectSQLite), db, nil
	default:
		return repository.NewMemoryStore(), nil, nil
	}
}

// openStorage returns S3 storage when a bucket is configured, local disk
// otherwise. dir is the local directory to serve, empty for S3.
func openStorage(ctx context.Context, c config.UploadConfig) (storage media.Storage, dir string, err error) {
	if c.UseS3() {
		s3s, err := media.NewS3Storage(ctx, media.S3Config{
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			PublicURL: c.S3PublicURL,
			Prefix:    c.S3Prefix,
		})
		if err != nil {
			return nil, "", fmt.Errorf("s3 storage: %w", err)
		}
		return s3s, "", nil
	}
	local, err := media.NewLocalStorage(c.Dir, "/uploads")
	if err != nil {
		return nil, "", err
	}
	return local, c.Dir, nil
}
