// Package storage keeps asset bytes in a Google Cloud Storage bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

type Config struct {
	Bucket string
	// CDNBaseURL replaces the storage.googleapis.com host in public URLs when set.
	CDNBaseURL   string
	SignedURLTTL time.Duration
}

type GCS struct {
	client *gcs.Client
	cfg    Config
}

func NewGCS(client *gcs.Client, cfg Config) *GCS {
	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = 15 * time.Minute
	}
	return &GCS{client: client, cfg: cfg}
}

func (g *GCS) object(path string) *gcs.ObjectHandle {
	return g.client.Bucket(g.cfg.Bucket).Object(path)
}

// SignedUploadURL returns a V4 URL the browser can PUT the object to. The
// request must carry the same Content-Type.
func (g *GCS) SignedUploadURL(_ context.Context, path, contentType string) (string, time.Time, error) {
	expires := time.Now().Add(g.cfg.SignedURLTTL)
	url, err := g.client.Bucket(g.cfg.Bucket).SignedURL(path, &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      "PUT",
		ContentType: contentType,
		Expires:     expires,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign upload url: %w", err)
	}
	return url, expires, nil
}

func (g *GCS) Attrs(ctx context.Context, path string) (application.ObjectAttrs, error) {
	attrs, err := g.object(path).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return application.ObjectAttrs{}, application.ErrObjectNotFound
	}
	if err != nil {
		return application.ObjectAttrs{}, err
	}
	return application.ObjectAttrs{Size: attrs.Size, ContentType: attrs.ContentType}, nil
}

// ReadHead returns at most n leading bytes of the object.
func (g *GCS) ReadHead(ctx context.Context, path string, n int64) ([]byte, error) {
	rc, err := g.object(path).NewRangeReader(ctx, 0, n)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, application.ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (g *GCS) Upload(ctx context.Context, path, contentType string, r io.Reader) (int64, error) {
	return helpers.UploadObject(ctx, g.client, g.cfg.Bucket, path, contentType, r)
}

func (g *GCS) Delete(ctx context.Context, path string) error {
	err := g.object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (g *GCS) PublicURL(path string) string {
	return publicURL(g.cfg, path)
}

func publicURL(cfg Config, path string) string {
	if cfg.CDNBaseURL == "" {
		return helpers.PublicURL(cfg.Bucket, path)
	}
	return strings.TrimRight(cfg.CDNBaseURL, "/") + "/" + path
}

var _ application.ObjectStorage = (*GCS)(nil)
