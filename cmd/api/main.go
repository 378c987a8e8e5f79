// @title EventHub API
// @version 1.0
// @description University event hub: participants browse and filter events, organisers publish events and issue certificates.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"eventhub/config"
	_ "eventhub/docs"
	"eventhub/internal/adapters/auth"
	"eventhub/internal/adapters/cache"
	"eventhub/internal/adapters/email"
	"eventhub/internal/adapters/markdown"
	"eventhub/internal/adapters/storage"
	deliveryhttp "eventhub/internal/delivery/http"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/domain"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	eventCache, closeCache, err := newEventCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	organiserRepo := postgres.NewOrganiserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	certRepo := postgres.NewCertificateRepository(db)

	renderer := markdown.NewRenderer()
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(userRepo, organiserRepo, auth.NewBcryptHasher(0), auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry, emailService, logger, cfg.RequestTimeout)
	userService := services.NewUserService(userRepo, organiserRepo, renderer, cfg.RequestTimeout)
	eventService := services.NewEventService(eventRepo, organiserRepo, eventCache, renderer, logger, cfg.RequestTimeout)
	certService := services.NewCertificateService(certRepo, eventRepo, userRepo, cfg.RequestTimeout)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Logger:       logger,
		Verifier:     auth.NewJWTVerifier(cfg.JWTSecret),
		Auth:         controllers.NewAuthController(logger, authService),
		Events:       controllers.NewEventController(logger, eventService),
		Certificates: controllers.NewCertificateController(logger, certService),
		Users:        controllers.NewUserController(logger, userService),
		Uploads:      controllers.NewUploadController(logger, storage.NewLocalStore(cfg.UploadDir)),
		UploadDir:    cfg.UploadDir,
		CORSOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newEventCache connects to Redis when REDIS_URL is set. Without it the catalog is read from Postgres every time.
func newEventCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.EventCache, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("event cache disabled")
		return nil, func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, err
	}
	logger.Info("event cache enabled", "addr", opts.Addr, "ttl", cfg.CatalogCacheTTL)
	return cache.NewEventCache(rdb, cfg.CatalogCacheTTL), func() { rdb.Close() }, nil
}
