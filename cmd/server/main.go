package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	dbx "github.com/go-ozzo/ozzo-dbx"
	routing "github.com/go-ozzo/ozzo-routing/v2"
	"github.com/go-ozzo/ozzo-routing/v2/content"
	"github.com/go-ozzo/ozzo-routing/v2/cors"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/moalemy/salla-webhook/internal/archive"
	"github.com/moalemy/salla-webhook/internal/auth"
	"github.com/moalemy/salla-webhook/internal/authapi"
	"github.com/moalemy/salla-webhook/internal/config"
	"github.com/moalemy/salla-webhook/internal/errors"
	"github.com/moalemy/salla-webhook/internal/event"
	"github.com/moalemy/salla-webhook/internal/healthcheck"
	"github.com/moalemy/salla-webhook/internal/subscription"
	"github.com/moalemy/salla-webhook/internal/user"
	"github.com/moalemy/salla-webhook/internal/webhook"
	"github.com/moalemy/salla-webhook/migrations"
	"github.com/moalemy/salla-webhook/pkg/accesslog"
	"github.com/moalemy/salla-webhook/pkg/dbcontext"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

var flagConfig = flag.String("config", "./config/local.yml", "path to the config file")

func main() {
	flag.Parse()
	// create root logger tagged with server version
	logger := log.New().With(nil, "version", Version)

	// a .env file, when present, feeds the environment overrides
	_ = godotenv.Load()

	// load application configurations
	cfg, err := config.Load(*flagConfig, logger)
	if err != nil {
		logger.Errorf("failed to load application configuration: %s", err)
		os.Exit(-1)
	}

	// connect to the database
	db, err := dbx.MustOpen("postgres", cfg.DSN)
	if err != nil {
		logger.Error(err)
		os.Exit(-1)
	}
	db.QueryLogFunc = logDBQuery(logger)
	db.ExecLogFunc = logDBExec(logger)
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error(err)
		}
	}()

	if err := runMigrations(db, logger); err != nil {
		logger.Errorf("failed to apply database migrations: %s", err)
		os.Exit(-1)
	}

	archiver, err := buildArchiver(cfg, logger)
	if err != nil {
		logger.Error(err)
		os.Exit(-1)
	}

	var cache user.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = user.NewRedisCache(rdb, time.Duration(cfg.ResolverCacheTTL)*time.Second, logger)
	}

	// build HTTP server
	address := fmt.Sprintf(":%v", cfg.ServerPort)
	hs := &http.Server{
		Addr:    address,
		Handler: buildHandler(logger, dbcontext.New(db), cfg, archiver, cache),
	}

	// start the HTTP server with graceful shutdown
	go routing.GracefulShutdown(hs, 10*time.Second, logger.Infof)
	logger.Infof("server %v is running at %v", Version, address)
	if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error(err)
		os.Exit(-1)
	}
}

// buildHandler sets up the HTTP routing and builds an HTTP handler.
func buildHandler(logger log.Logger, db *dbcontext.DB, cfg *config.Config, archiver archive.Archiver, cache user.Cache) http.Handler {
	router := routing.New()

	router.Use(
		accesslog.Handler(logger),
		errors.Handler(logger),
		content.TypeNegotiator(content.JSON),
		cors.Handler(cors.AllowAll),
	)

	healthcheck.RegisterHandlers(router, Version)

	rg := router.Group("/v1")

	authClient := authapi.New(cfg.SupabaseURL, cfg.ServiceRoleKey, cfg.AuthPageSize, logger)
	resolver := user.NewResolver(
		authClient,
		user.NewProfileRepository(db, logger),
		user.NewUserRepository(db, logger),
		cache,
		logger,
	)
	subService := subscription.NewService(subscription.NewRepository(db, logger), logger)
	eventService := event.NewService(event.NewRepository(db, logger), logger)

	webhook.RegisterHandlers(rg.Group(""),
		webhook.NewService(resolver, subService, eventService, archiver, logger),
		cfg.WebhookSecret, logger,
	)

	authService := auth.NewService(cfg.JWTSigningKey, cfg.JWTExpiration, cfg.OperatorUsername, cfg.OperatorPassword, logger)
	auth.RegisterHandlers(rg.Group(""), authService, logger)

	authHandler := auth.Handler(cfg.JWTSigningKey)
	subscription.RegisterHandlers(rg.Group(""), subService, authHandler, logger)
	event.RegisterHandlers(rg.Group(""), eventService, authHandler, logger)

	return router
}

// runMigrations brings the database schema up to date.
func runMigrations(db *dbx.DB, logger log.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	driver, err := postgres.WithInstance(db.DB(), &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	logger.Info("database schema is up to date")
	return nil
}

// buildArchiver creates the payload archiver. Archiving is disabled when no
// bucket is configured.
func buildArchiver(cfg *config.Config, logger log.Logger) (archive.Archiver, error) {
	if cfg.ArchiveBucket == "" {
		return archive.NewNoop(), nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.ArchiveAccessKeyID,
				cfg.ArchiveAccessKeySecret,
				"",
			),
		),
		awsConfig.WithRegion("auto"), // Required by SDK but not used by R2
	)
	if err != nil {
		return nil, err
	}

	awsClient := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.ArchiveAccountID))
	})
	return archive.NewCloudArchiver(awsClient, cfg.ArchiveBucket, logger), nil
}

// logDBQuery returns a logging function that can be used to log SQL queries.
func logDBQuery(logger log.Logger) dbx.QueryLogFunc {
	return func(ctx context.Context, t time.Duration, sql string, rows *sql.Rows, err error) {
		if err == nil {
			logger.With(ctx, "duration", t.Milliseconds(), "sql", sql).Info("DB query successful")
		} else {
			logger.With(ctx, "sql", sql).Errorf("DB query error: %v", err)
		}
	}
}

// logDBExec returns a logging function that can be used to log SQL executions.
func logDBExec(logger log.Logger) dbx.ExecLogFunc {
	return func(ctx context.Context, t time.Duration, sql string, result sql.Result, err error) {
		if err == nil {
			logger.With(ctx, "duration", t.Milliseconds(), "sql", sql).Info("DB execution successful")
		} else {
			logger.With(ctx, "sql", sql).Errorf("DB execution error: %v", err)
		}
	}
}
