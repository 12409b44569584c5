package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/fashion-studio/config"
	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/container"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
	pginfra "github.com/oksasatya/fashion-studio/internal/infrastructure/postgres"
	"github.com/oksasatya/fashion-studio/internal/router"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

const (
	demoExternalID = "seed|demo-user"
	demoStoreName  = "Demo Boutique"
)

// seed registers a demo user with one store and prints an access token for it.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

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
	container.SetEventPublisher(pginfra.NewEventLog(pool))
	services := router.BuildServices()

	u, err := services.Users.Register(ctx, user.NewInput{
		FullName:   "Demo User",
		Locale:     "en",
		ExternalID: demoExternalID,
	})
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	userID := u.ID().Value()
	fmt.Printf("seeded user: id=%s external_id=%s\n", userID, demoExternalID)

	stores, _, err := services.Stores.List(ctx, userID, shared.QueryOptions{Limit: 100})
	if err != nil {
		log.Fatalf("failed to list stores: %v", err)
	}
	storeID := ""
	for _, s := range stores {
		if s.Name().Value() == demoStoreName {
			storeID = s.ID().Value()
			break
		}
	}
	if storeID == "" {
		s, err := services.Stores.Create(ctx, userID, application.CreateStoreInput{
			Name:         demoStoreName,
			Description:  "Seeded store for local development",
			DefaultStyle: "editorial",
		})
		if err != nil {
			log.Fatalf("failed to seed store: %v", err)
		}
		storeID = s.ID().Value()
	}
	fmt.Printf("seeded store: id=%s name=%s\n", storeID, demoStoreName)

	token, expires, err := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL).GenerateAccessToken(userID)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Printf("access token (expires %s):\n%s\n", expires.Format("2006-01-02 15:04:05 MST"), token)
}
