package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/fashion-studio/config"
	"github.com/oksasatya/fashion-studio/internal/container"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/fashion-studio/internal/infrastructure/postgres"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/search"
	"github.com/oksasatya/fashion-studio/internal/router"
	"github.com/oksasatya/fashion-studio/internal/worker"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
	"github.com/oksasatya/fashion-studio/pkg/mailer"
	"github.com/oksasatya/fashion-studio/pkg/mailer/templates"
)

const prefetch = 16

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env, cfg.LogLevel)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		container.SetES(es)
	}

	repos := router.BuildRepositories()
	routes := worker.NewRouter()

	if es := container.GetES(); es != nil {
		index := search.NewModelIndex(es, cfg.ESModelsIndex)
		if err := index.EnsureIndex(ctx); err != nil {
			log.Fatalf("failed to prepare model index: %v", err)
		}
		projector := &worker.ModelProjector{Models: repos.Models, Indexer: index}
		routes.On(projector.Handle, worker.ModelEvents...)
	} else {
		logger.Warn("elasticsearch not configured; model index projection disabled")
	}

	switch {
	case !cfg.MailSendEnabled:
		logger.Info("MAIL_SEND_ENABLED=false; notifications disabled")
	case !cfg.MailgunConfigured() || cfg.NotifyRecipient == "":
		logger.Warn("mailgun or NOTIFY_RECIPIENT not configured; notifications disabled")
	default:
		mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		container.SetMailgun(mg)
		notifier := &worker.Notifier{
			Stores: repos.Stores,
			Users:  repos.Users,
			Models: repos.Models,
			Sender: mg,
			To:     cfg.NotifyRecipient,
			Brand: templates.Branding{
				AppName:      cfg.AppName,
				CompanyName:  cfg.CompanyName,
				SupportURL:   cfg.SupportURL,
				DashboardURL: cfg.DashboardURL,
			},
		}
		routes.On(notifier.Handle, worker.NotifyEvents...)
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, prefetch)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer consumer.Close()

	deliveries, err := consumer.Deliveries(cfg.AppName + "-worker")
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	done := make(chan struct{})
	go func() {
		messaging.Consume(ctx, deliveries, routes.Handle, logger)
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEventsQueue).Info("event worker listening")
	select {
	case <-ctx.Done():
	case <-done:
		logger.Warn("delivery channel closed")
	}
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}
