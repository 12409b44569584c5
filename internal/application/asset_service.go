package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
)

const (
	// sniffLen is how many leading bytes are inspected to detect content type.
	sniffLen = 512

	sweepBatch          = 200
	uploadExpiredReason = "upload not confirmed before expiry"
)

type AssetService struct {
	Repo      asset.Repository
	Guard     *Guard
	Storage   ObjectStorage
	Publisher EventPublisher
	Logger    *logrus.Logger
}

func NewAssetService(repo asset.Repository, guard *Guard, storage ObjectStorage, pub EventPublisher, logger *logrus.Logger) *AssetService {
	return &AssetService{Repo: repo, Guard: guard, Storage: storage, Publisher: pub, Logger: logger}
}

type RequestUploadInput struct {
	Category  string
	Filename  string
	MimeType  string
	SizeBytes int64
	Metadata  map[string]any
}

// UploadTicket is what a client needs to PUT the bytes of a pending asset.
type UploadTicket struct {
	Asset     *asset.Asset
	UploadURL string
	ExpiresAt time.Time
}

// RequestUpload registers a PENDING_UPLOAD asset and returns a signed URL the
// client uploads to before calling ConfirmUpload.
func (s *AssetService) RequestUpload(ctx context.Context, actorID, storeID string, in RequestUploadInput) (*UploadTicket, error) {
	a, err := s.newAsset(ctx, actorID, storeID, in)
	if err != nil {
		return nil, err
	}
	url, expires, err := s.Storage.SignedUploadURL(ctx, a.StoragePath().Value(), a.MimeType().Value())
	if err != nil {
		s.Logger.WithError(err).WithField("path", a.StoragePath().Value()).Error("sign upload url failed")
		return nil, asset.NewUploadFailedError(a.ID().Value(), err)
	}
	if _, err := s.Repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, a.DomainEvents())
	return &UploadTicket{Asset: a.ClearDomainEvents(), UploadURL: url, ExpiresAt: expires}, nil
}

// ConfirmUpload checks the uploaded object against what was declared. A
// content mismatch or an oversized object marks the asset FAILED and the
// matching domain error is returned.
func (s *AssetService) ConfirmUpload(ctx context.Context, actorID, assetID string) (*asset.Asset, error) {
	a, err := s.loadOperational(ctx, actorID, assetID, "confirm upload")
	if err != nil {
		return nil, err
	}
	path := a.StoragePath().Value()
	attrs, err := s.Storage.Attrs(ctx, path)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, asset.NewUploadFailedError(assetID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read object attrs: %w", err)
	}
	head, err := s.Storage.ReadHead(ctx, path, sniffLen)
	if err != nil {
		return nil, asset.NewDownloadFailedError(assetID, err)
	}

	if detected := mimetype.Detect(head); !detected.Is(a.MimeType().Value()) {
		reason := fmt.Sprintf("uploaded content is %s, declared %s", detected.String(), a.MimeType().Value())
		if _, err := s.fail(ctx, a, reason); err != nil {
			return nil, err
		}
		return nil, asset.NewInvalidMimeTypeError(detected.String())
	}

	next, err := a.ConfirmUpload(attrs.Size)
	if errors.Is(err, asset.ErrFileTooLarge) {
		if _, ferr := s.fail(ctx, a, fmt.Sprintf("uploaded object is %d bytes, limit is %d", attrs.Size, asset.MaxSizeBytes)); ferr != nil {
			return nil, ferr
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return s.save(ctx, a, next)
}

// Upload stores r directly and returns the asset already READY.
func (s *AssetService) Upload(ctx context.Context, actorID, storeID string, in RequestUploadInput, r io.Reader) (*asset.Asset, error) {
	a, err := s.newAsset(ctx, actorID, storeID, in)
	if err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, asset.NewUploadFailedError(a.ID().Value(), err)
	}
	head = head[:n]
	if detected := mimetype.Detect(head); !detected.Is(a.MimeType().Value()) {
		return nil, asset.NewInvalidMimeTypeError(detected.String())
	}

	path := a.StoragePath().Value()
	written, err := s.Storage.Upload(ctx, path, a.MimeType().Value(), io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		s.Logger.WithError(err).WithField("path", path).Error("upload object failed")
		return nil, asset.NewUploadFailedError(a.ID().Value(), err)
	}
	uploaded, err := a.ConfirmUpload(written)
	if err != nil {
		if derr := s.Storage.Delete(ctx, path); derr != nil {
			s.Logger.WithError(derr).WithField("path", path).Warn("delete rejected object failed")
		}
		return nil, err
	}
	ready, err := uploaded.MarkReady(s.Storage.PublicURL(path), "")
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.Create(ctx, ready); err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, ready.DomainEvents())
	s.Logger.WithFields(logrus.Fields{"asset_id": ready.ID().Value(), "bytes": written}).Info("asset uploaded")
	return ready.ClearDomainEvents(), nil
}

func (s *AssetService) Get(ctx context.Context, actorID, assetID string) (*asset.Asset, error) {
	a, _, err := s.load(ctx, actorID, assetID)
	return a, err
}

func (s *AssetService) List(ctx context.Context, actorID, storeID string, f asset.Filter) ([]*asset.Asset, int, error) {
	if _, err := s.Guard.OwnedStore(ctx, actorID, storeID); err != nil {
		return nil, 0, err
	}
	f.StoreID = storeID
	items, err := s.Repo.FindMany(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	countFilter := f
	countFilter.Limit, countFilter.Offset = 0, 0
	total, err := s.Repo.Count(ctx, countFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}
	return items, total, nil
}

func (s *AssetService) StartProcessing(ctx context.Context, actorID, assetID string) (*asset.Asset, error) {
	a, err := s.loadOperational(ctx, actorID, assetID, "start processing")
	if err != nil {
		return nil, err
	}
	next, err := a.StartProcessing()
	if err != nil {
		return nil, err
	}
	return s.save(ctx, a, next)
}

// MarkReady publishes the asset. An empty cdnURL falls back to the public
// URL of the stored object.
func (s *AssetService) MarkReady(ctx context.Context, actorID, assetID, cdnURL, thumbnailURL string) (*asset.Asset, error) {
	a, err := s.loadOperational(ctx, actorID, assetID, "mark ready")
	if err != nil {
		return nil, err
	}
	if cdnURL == "" {
		cdnURL = s.Storage.PublicURL(a.StoragePath().Value())
	}
	next, err := a.MarkReady(cdnURL, thumbnailURL)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, a, next)
}

// SetDeliveryURLs repoints a READY asset at new CDN or thumbnail URLs.
// Empty arguments leave the current value.
func (s *AssetService) SetDeliveryURLs(ctx context.Context, actorID, assetID, cdnURL, thumbnailURL string) (*asset.Asset, error) {
	a, err := s.loadWritable(ctx, actorID, assetID, "set delivery urls")
	if err != nil {
		return nil, err
	}
	if !a.IsReady() {
		return nil, asset.NewInvalidStatusError(a.Status(), "set delivery urls")
	}
	next := a
	if cdnURL != "" {
		if next, err = next.SetCdnURL(cdnURL); err != nil {
			return nil, err
		}
	}
	if thumbnailURL != "" {
		if next, err = next.SetThumbnailURL(thumbnailURL); err != nil {
			return nil, err
		}
	}
	return s.save(ctx, a, next)
}

func (s *AssetService) MarkFailed(ctx context.Context, actorID, assetID, reason string) (*asset.Asset, error) {
	a, err := s.loadWritable(ctx, actorID, assetID, "mark failed")
	if err != nil {
		return nil, err
	}
	return s.fail(ctx, a, reason)
}

// Retry moves a FAILED asset back to PENDING_UPLOAD and issues a fresh
// upload URL for the same storage path.
func (s *AssetService) Retry(ctx context.Context, actorID, assetID string) (*UploadTicket, error) {
	a, err := s.loadOperational(ctx, actorID, assetID, "retry upload")
	if err != nil {
		return nil, err
	}
	next, err := a.RetryUpload()
	if err != nil {
		return nil, err
	}
	url, expires, err := s.Storage.SignedUploadURL(ctx, next.StoragePath().Value(), next.MimeType().Value())
	if err != nil {
		return nil, asset.NewUploadFailedError(assetID, err)
	}
	saved, err := s.save(ctx, a, next)
	if err != nil {
		return nil, err
	}
	return &UploadTicket{Asset: saved, UploadURL: url, ExpiresAt: expires}, nil
}

func (s *AssetService) UpdateMetadata(ctx context.Context, actorID, assetID string, patch map[string]any) (*asset.Asset, error) {
	a, err := s.loadWritable(ctx, actorID, assetID, "update metadata")
	if err != nil {
		return nil, err
	}
	next, err := a.UpdateMetadata(patch)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, a, next)
}

// Delete soft-deletes the asset. The stored object is kept so Restore can
// bring it back.
func (s *AssetService) Delete(ctx context.Context, actorID, assetID string) error {
	a, err := s.loadWritable(ctx, actorID, assetID, "delete asset")
	if err != nil {
		return err
	}
	_, err = s.save(ctx, a, a.Delete())
	return err
}

func (s *AssetService) Restore(ctx context.Context, actorID, assetID string) (*asset.Asset, error) {
	if _, err := s.Guard.Actor(ctx, actorID, "restore asset"); err != nil {
		return nil, err
	}
	a, err := s.Repo.FindByID(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("find asset: %w", err)
	}
	if a == nil {
		return nil, asset.NewNotFoundError(assetID)
	}
	if _, err := s.Guard.OwnedStore(ctx, actorID, a.StoreID().Value()); err != nil {
		return nil, err
	}
	return s.save(ctx, a, a.Restore())
}

// ExpireStaleUploads fails assets still PENDING_UPLOAD after ttl. It runs
// without an actor and returns how many assets it failed.
func (s *AssetService) ExpireStaleUploads(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := shared.Now().Add(-ttl)
	pending, err := s.Repo.FindByStatus(ctx, asset.StatusPendingUpload, shared.QueryOptions{
		Limit:     sweepBatch,
		SortBy:    "createdAt",
		SortOrder: shared.SortAsc,
	})
	if err != nil {
		return 0, fmt.Errorf("find pending uploads: %w", err)
	}
	expired := 0
	var errs []error
	for _, a := range pending {
		if !a.CreatedAt().Before(cutoff) {
			break
		}
		if _, err := s.fail(ctx, a, uploadExpiredReason); err != nil {
			s.Logger.WithError(err).WithField("asset_id", a.ID().Value()).Error("expire upload failed")
			errs = append(errs, fmt.Errorf("expire %s: %w", a.ID().Value(), err))
			continue
		}
		expired++
	}
	return expired, errors.Join(errs...)
}

func (s *AssetService) newAsset(ctx context.Context, actorID, storeID string, in RequestUploadInput) (*asset.Asset, error) {
	if _, err := s.Guard.OperationalStore(ctx, actorID, storeID, "upload asset"); err != nil {
		return nil, err
	}
	return asset.RequestUpload(asset.RequestUploadInput{
		StoreID:    storeID,
		Category:   in.Category,
		Filename:   in.Filename,
		MimeType:   in.MimeType,
		SizeBytes:  in.SizeBytes,
		UploadedBy: actorID,
		Metadata:   in.Metadata,
	})
}

func (s *AssetService) load(ctx context.Context, actorID, assetID string) (*asset.Asset, *store.Store, error) {
	a, err := s.Repo.FindByID(ctx, assetID)
	if err != nil {
		return nil, nil, fmt.Errorf("find asset: %w", err)
	}
	if a == nil || a.IsDeleted() {
		return nil, nil, asset.NewNotFoundError(assetID)
	}
	st, err := s.Guard.OwnedStore(ctx, actorID, a.StoreID().Value())
	if err != nil {
		return nil, nil, err
	}
	return a, st, nil
}

// loadWritable is load for changes: the actor must be able to act.
func (s *AssetService) loadWritable(ctx context.Context, actorID, assetID, operation string) (*asset.Asset, error) {
	if _, err := s.Guard.Actor(ctx, actorID, operation); err != nil {
		return nil, err
	}
	a, _, err := s.load(ctx, actorID, assetID)
	return a, err
}

func (s *AssetService) loadOperational(ctx context.Context, actorID, assetID, operation string) (*asset.Asset, error) {
	if _, err := s.Guard.Actor(ctx, actorID, operation); err != nil {
		return nil, err
	}
	a, st, err := s.load(ctx, actorID, assetID)
	if err != nil {
		return nil, err
	}
	if err := st.EnsureOperational(operation); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) fail(ctx context.Context, a *asset.Asset, reason string) (*asset.Asset, error) {
	next, err := a.MarkFailed(reason)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"asset_id": a.ID().Value(), "reason": reason}).Warn("asset failed")
	return s.save(ctx, a, next)
}

// save persists next when it records events or differs from prev. Some
// changes, such as delivery URLs, record no event.
func (s *AssetService) save(ctx context.Context, prev, next *asset.Asset) (*asset.Asset, error) {
	events := next.DomainEvents()
	if len(events) == 0 && reflect.DeepEqual(asset.ToPersistence(prev), asset.ToPersistence(next)) {
		return next, nil
	}
	if err := s.Repo.Update(ctx, next); err != nil {
		s.Logger.WithError(err).WithField("asset_id", next.ID().Value()).Error("update asset failed")
		return nil, fmt.Errorf("update asset: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, events)
	return next.ClearDomainEvents(), nil
}
