package main

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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/fashion-studio/config"
	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/container"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/fashion-studio/internal/infrastructure/postgres"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/scheduler"
	handlers "github.com/oksasatya/fashion-studio/internal/interface/http"
	"github.com/oksasatya/fashion-studio/internal/interface/middleware"
	"github.com/oksasatya/fashion-studio/internal/router"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Run migrations using database/sql with pgx stdlib
	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// GCS
	gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		log.Fatalf("failed to init GCS client: %v", err)
	}
	defer func() { _ = gcsClient.Close() }()

	// Elasticsearch is optional; model search returns nothing without it
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		container.SetES(es)
	}

	// Domain events: always appended to the event log, forwarded to RabbitMQ
	// when configured with a local spool for broker outages
	publishers := application.FanoutPublisher{pginfra.NewEventLog(pool)}
	var broker *messaging.Publisher
	if cfg.RabbitMQURL != "" {
		rabbit, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbit.Close()
		spool, err := messaging.OpenSpool(cfg.EventSpoolPath)
		if err != nil {
			log.Fatalf("failed to open event spool: %v", err)
		}
		defer func() { _ = spool.Close() }()
		container.SetSpool(spool)
		broker = messaging.NewPublisher(rabbit, spool, logger)
		publishers = append(publishers, broker)
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetGCS(gcsClient)
	container.SetJWT(jwtManager)
	container.SetEventPublisher(publishers)

	services := router.BuildServices()

	// Background jobs
	sched := scheduler.New(logger)
	if broker != nil {
		if err := sched.Every("drain-event-spool", cfg.SpoolDrainInterval, func(ctx context.Context) error {
			n, err := broker.Drain(ctx)
			if n > 0 {
				logger.WithField("events", n).Info("spooled events delivered")
			}
			return err
		}); err != nil {
			log.Fatal(err)
		}
	}
	if err := sched.Every("expire-pending-uploads", cfg.PendingUploadTTL/4, func(ctx context.Context) error {
		_, err := services.Assets.ExpireStaleUploads(ctx, cfg.PendingUploadTTL)
		return err
	}); err != nil {
		log.Fatal(err)
	}
	sched.Start()

	// Gin engine and global middleware
	handlers.SetupBinding()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	reg.Use(middleware.RateLimit(rdb, middleware.Rule{
		Name:   "api",
		Limit:  600,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Skip:   middleware.AllowPrivateIP(),
	}))
	router.InitModules(reg, services)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	sched.Stop(ctxShutdown)
	logger.Info("server exited properly")
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
