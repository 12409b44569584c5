package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/config"
	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/messaging"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
	"github.com/oksasatya/fashion-studio/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	mailgunClient *mailer.Mailgun
	eventPub      application.EventPublisher
	spool         *messaging.Spool
	esClient      *elasticsearch.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetMailgun(m *mailer.Mailgun)  { mailgunClient = m }
func GetMailgun() *mailer.Mailgun   { return mailgunClient }
func SetSpool(s *messaging.Spool)   { spool = s }
func GetSpool() *messaging.Spool    { return spool }
func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

// SetEventPublisher installs the publisher the services hand their domain
// events to.
func SetEventPublisher(p application.EventPublisher) { eventPub = p }

// GetEventPublisher never returns nil; without a publisher events are dropped.
func GetEventPublisher() application.EventPublisher {
	if eventPub != nil {
		return eventPub
	}
	return application.FanoutPublisher{}
}
