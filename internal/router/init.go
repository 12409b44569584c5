package router

import (
	"context"
	"errors"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/container"
	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/fashion-studio/internal/infrastructure/postgres"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/search"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/storage"
	handlers "github.com/oksasatya/fashion-studio/internal/interface/http"
	"github.com/oksasatya/fashion-studio/internal/router/modules"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

// Repositories are the persistence adapters shared by services and workers.
type Repositories struct {
	Users  user.Repository
	Stores store.Repository
	Assets asset.Repository
	Models model.Repository
}

// BuildRepositories wires the postgres repositories; the store repository is
// fronted by the redis cache when a client is configured.
func BuildRepositories() Repositories {
	pool := container.GetPGPool()
	var stores store.Repository = pginfra.NewStoreRepository(pool)
	if rdb := container.GetRedis(); rdb != nil {
		stores = cache.NewStoreRepository(stores, rdb, container.GetConfig().StoreCacheTTL, container.GetLogger())
	}
	return Repositories{
		Users:  pginfra.NewUserRepository(pool),
		Stores: stores,
		Assets: pginfra.NewAssetRepository(pool),
		Models: pginfra.NewModelRepository(pool),
	}
}

// BuildModelIndex returns nil when Elasticsearch is not configured.
func BuildModelIndex() application.ModelIndexer {
	es := container.GetES()
	if es == nil {
		return nil
	}
	return search.NewModelIndex(es, container.GetConfig().ESModelsIndex)
}

type Services struct {
	Repos  Repositories
	Users  *application.UserService
	Stores *application.StoreService
	Assets *application.AssetService
	Models *application.ModelService
}

func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pub := container.GetEventPublisher()
	repos := BuildRepositories()
	guard := application.NewGuard(repos.Users, repos.Stores)

	objects := storage.NewGCS(container.GetGCS(), storage.Config{
		Bucket:       cfg.GCSBucket,
		CDNBaseURL:   cfg.CDNBaseURL,
		SignedURLTTL: cfg.SignedURLTTL,
	})

	return Services{
		Repos:  repos,
		Users:  application.NewUserService(repos.Users, pub, logger),
		Stores: application.NewStoreService(repos.Stores, repos.Assets, guard, pub, logger),
		Assets: application.NewAssetService(repos.Assets, guard, objects, pub, logger),
		Models: application.NewModelService(repos.Models, repos.Assets, guard, BuildModelIndex(), pub, logger),
	}
}

func healthChecks() map[string]handlers.Check {
	checks := map[string]handlers.Check{
		"postgres": func(ctx context.Context) error {
			if p := container.GetPGPool(); p != nil {
				return p.Ping(ctx)
			}
			return errors.New("not configured")
		},
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, es) }
	}
	return checks
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, svc Services) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks())))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger), jwt))
	r.Add(modules.NewStoreModule(handlers.NewStoreHandler(svc.Stores, logger), jwt))
	r.Add(modules.NewModelModule(handlers.NewModelHandler(svc.Models, logger), jwt))
	r.Add(modules.NewAssetModule(handlers.NewAssetHandler(svc.Assets, cfg.UploadMaxBytes, logger), jwt))
}
