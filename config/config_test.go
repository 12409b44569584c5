package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("STORE_CACHE_TTL", "30s")
	t.Setenv("UPLOAD_MAX_BYTES", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAIL_SEND_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.StoreCacheTTL)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, "domain-events", cfg.RabbitMQEventsQueue)
	assert.False(t, cfg.MailgunConfigured())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "fs", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/fs?sslmode=disable", cfg.PostgresDSN())
}
