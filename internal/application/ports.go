package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// ErrObjectNotFound is returned by ObjectStorage when the object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// EventPublisher dispatches domain events after the aggregate that recorded
// them has been persisted.
type EventPublisher interface {
	Publish(ctx context.Context, events ...shared.Event) error
}

type ObjectAttrs struct {
	Size        int64
	ContentType string
}

// ObjectStorage is the blob store holding asset bytes.
type ObjectStorage interface {
	SignedUploadURL(ctx context.Context, path, contentType string) (url string, expiresAt time.Time, err error)
	Attrs(ctx context.Context, path string) (ObjectAttrs, error)
	ReadHead(ctx context.Context, path string, n int64) ([]byte, error)
	Upload(ctx context.Context, path, contentType string, r io.Reader) (written int64, err error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

// ModelHit is one search result from the model index.
type ModelHit struct {
	ID      string  `json:"id"`
	StoreID string  `json:"store_id"`
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	Score   float64 `json:"score"`
}

// ModelIndexer keeps a searchable projection of models.
type ModelIndexer interface {
	Index(ctx context.Context, m *model.Model) error
	Remove(ctx context.Context, modelID string) error
	Search(ctx context.Context, storeID, query string, size int) ([]ModelHit, error)
}

// FanoutPublisher hands every batch to each publisher in order and returns
// the first error after all of them ran.
type FanoutPublisher []EventPublisher

func (f FanoutPublisher) Publish(ctx context.Context, events ...shared.Event) error {
	var first error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, events...); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// publishEvents logs publish failures instead of returning them; the state
// change is already committed when events go out.
func publishEvents(ctx context.Context, pub EventPublisher, log logrus.FieldLogger, events []shared.Event) {
	if pub == nil || len(events) == 0 {
		return
	}
	if err := pub.Publish(ctx, events...); err != nil {
		log.WithError(err).WithField("events", len(events)).Error("publish domain events failed")
	}
}
