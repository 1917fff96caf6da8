package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/config"
	dbpkg "github.com/BruksfildServices01/medagenda/internal/db"
	domainVerification "github.com/BruksfildServices01/medagenda/internal/domain/verification"
	"github.com/BruksfildServices01/medagenda/internal/infra/codestore"
	"github.com/BruksfildServices01/medagenda/internal/infra/mailer"
	"github.com/BruksfildServices01/medagenda/internal/infra/storage"
	"github.com/BruksfildServices01/medagenda/internal/logger"
	"github.com/BruksfildServices01/medagenda/internal/middleware"
	"github.com/BruksfildServices01/medagenda/internal/routes"
)

const shutdownTimeout = 15 * time.Second

func main() {

	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		return err
	}

	codes, closeCodes, err := newCodeStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCodes(); err != nil {
			log.Warn("code store close", zap.Error(err))
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	shutdownWorkers := routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Blobs:  blobs,
		Codes:  codes,
		Sender: newSender(cfg, log),
	})
	defer shutdownWorkers()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newBlobStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "memory":
		return storage.NewMemoryStore(), nil
	case "local", "":
		return storage.NewLocalStore(cfg.StorageDir)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// newCodeStore also returns the function releasing the store's connection.
func newCodeStore(
	ctx context.Context,
	cfg *config.Config,
	db *gorm.DB,
) (domainVerification.Store, func() error, error) {
	if cfg.RedisURL == "" {
		return codestore.NewGormStore(db), func() error { return nil }, nil
	}

	client, err := codestore.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	policy := domainVerification.Policy{TTL: cfg.VerificationCodeTTL}
	return codestore.NewRedisStore(client, policy.Retention()), client.Close, nil
}

func newSender(cfg *config.Config, log *zap.Logger) mailer.Sender {
	if cfg.SMTPHost == "" {
		log.Warn("SMTP_HOST not set, e-mails will only be logged")
		return mailer.NewLogSender(log)
	}
	return mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
}
