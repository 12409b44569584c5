package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	path := "stores/store_1/garments/asset_1.png"

	assert.Equal(t, "https://storage.googleapis.com/fashion/"+path, publicURL(Config{Bucket: "fashion"}, path))
	assert.Equal(t, "https://cdn.example.com/"+path, publicURL(Config{Bucket: "fashion", CDNBaseURL: "https://cdn.example.com/"}, path))
}

func TestNewGCSDefaultsSignedURLTTL(t *testing.T) {
	g := NewGCS(nil, Config{Bucket: "fashion"})
	assert.Equal(t, 15*time.Minute, g.cfg.SignedURLTTL)
}
