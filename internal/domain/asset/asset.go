// Package asset models uploaded and generated images: their storage
// location, upload and processing lifecycle, and free-form metadata.
package asset

import (
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Well-known metadata keys linking an asset to other aggregates.
const (
	MetadataModelID      = "modelId"
	MetadataGenerationID = "generationId"
)

// Props is the full state of an asset.
type Props struct {
	ID            shared.ID
	StoreID       shared.ID
	Type          Type
	Category      Category
	Filename      Filename
	MimeType      MimeType
	SizeBytes     int64
	StoragePath   StoragePath
	CdnURL        *string
	ThumbnailURL  *string
	Metadata      map[string]any
	UploadedBy    shared.ID
	Status        Status
	FailureReason *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Asset is the aggregate root. Methods never modify the receiver; each
// mutation returns a new Asset carrying the recorded event.
type Asset struct {
	props  Props
	events shared.EventRecorder
}

// Reconstitute rebuilds an asset from already validated state without
// recording any event.
func Reconstitute(props Props) (*Asset, error) {
	if props.ID.IsZero() {
		return nil, NewValidationError("id", "", []string{"is required"})
	}
	if !IsValidStatus(string(props.Status)) {
		return nil, NewValidationError("status", string(props.Status), []string{"is not a known status"})
	}
	if !IsValidCategory(string(props.Category)) {
		return nil, NewValidationError("category", string(props.Category), []string{"is not a known category"})
	}
	if props.Type == "" {
		props.Type = TypeImage
	}
	props.Metadata = maps.Clone(props.Metadata)
	if props.Metadata == nil {
		props.Metadata = map[string]any{}
	}
	return &Asset{props: props}, nil
}

// RequestUploadInput describes a new upload.
type RequestUploadInput struct {
	StoreID    string
	Category   string
	Filename   string
	MimeType   string
	SizeBytes  int64
	UploadedBy string
	Metadata   map[string]any
}

// RequestUpload creates an asset in PENDING_UPLOAD with a freshly generated
// id and storage path.
func RequestUpload(in RequestUploadInput) (*Asset, error) {
	storeID, err := NewID("storeId", in.StoreID)
	if err != nil {
		return nil, err
	}
	uploadedBy, err := NewID("uploadedBy", in.UploadedBy)
	if err != nil {
		return nil, err
	}
	category, err := ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	filename, err := NewFilename(in.Filename)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(allowedMimeTypes, strings.TrimSpace(in.MimeType)) {
		return nil, NewInvalidMimeTypeError(in.MimeType)
	}
	mimeType, err := NewMimeType(in.MimeType)
	if err != nil {
		return nil, err
	}
	if err := checkSize(in.SizeBytes); err != nil {
		return nil, err
	}

	id := shared.GenerateID()
	path, err := BuildStoragePath(storeID.Value(), category.PathSegment(), id.Value(), filename.Value())
	if err != nil {
		return nil, err
	}

	now := shared.Now()
	metadata := maps.Clone(in.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	a := &Asset{props: Props{
		ID:          id,
		StoreID:     storeID,
		Type:        TypeImage,
		Category:    category,
		Filename:    filename,
		MimeType:    mimeType,
		SizeBytes:   in.SizeBytes,
		StoragePath: path,
		Metadata:    metadata,
		UploadedBy:  uploadedBy,
		Status:      StatusPendingUpload,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}
	a.events = a.events.Record(NewUploadRequestedEvent(id.Value(), UploadRequestedData{
		StoreID:     storeID.Value(),
		Category:    category,
		Filename:    filename.Value(),
		MimeType:    mimeType.Value(),
		SizeBytes:   in.SizeBytes,
		StoragePath: path.Value(),
		UploadedBy:  uploadedBy.Value(),
	}))
	return a, nil
}

func checkSize(size int64) error {
	if size <= 0 {
		return NewValidationError("sizeBytes", size, []string{"must be greater than 0"})
	}
	if size > MaxSizeBytes {
		return NewFileTooLargeError(size, MaxSizeBytes)
	}
	return nil
}

func (a *Asset) copy() *Asset {
	c := &Asset{props: a.props, events: a.events}
	c.props.Metadata = maps.Clone(a.props.Metadata)
	return c
}

func (a *Asset) transition(to Status) (*Asset, error) {
	if !IsValidTransition(a.props.Status, to) {
		return nil, NewInvalidTransitionError(a.props.Status, to)
	}
	c := a.copy()
	c.props.Status = to
	c.props.UpdatedAt = shared.Now()
	return c, nil
}

// ConfirmUpload records that the object landed in storage with sizeBytes.
func (a *Asset) ConfirmUpload(sizeBytes int64) (*Asset, error) {
	if err := checkSize(sizeBytes); err != nil {
		return nil, err
	}
	c, err := a.transition(StatusUploaded)
	if err != nil {
		return nil, err
	}
	c.props.SizeBytes = sizeBytes
	c.events = c.events.Record(NewUploadedEvent(a.props.ID.Value(), UploadedData{
		StoreID:   a.props.StoreID.Value(),
		SizeBytes: sizeBytes,
	}))
	return c, nil
}

func (a *Asset) StartProcessing() (*Asset, error) {
	c, err := a.transition(StatusProcessing)
	if err != nil {
		return nil, err
	}
	c.events = c.events.Record(NewProcessingStartedEvent(a.props.ID.Value(), ProcessingStartedData{
		StoreID: a.props.StoreID.Value(),
	}))
	return c, nil
}

// MarkReady publishes the asset under cdnURL. thumbnailURL may be empty.
func (a *Asset) MarkReady(cdnURL, thumbnailURL string) (*Asset, error) {
	cdn, err := validateURL("cdnUrl", cdnURL)
	if err != nil {
		return nil, err
	}
	var thumb *string
	if strings.TrimSpace(thumbnailURL) != "" {
		t, err := validateURL("thumbnailUrl", thumbnailURL)
		if err != nil {
			return nil, err
		}
		thumb = &t
	}
	c, err := a.transition(StatusReady)
	if err != nil {
		return nil, err
	}
	c.props.CdnURL = &cdn
	if thumb != nil {
		c.props.ThumbnailURL = thumb
	}
	c.props.FailureReason = nil
	c.events = c.events.Record(NewReadyEvent(a.props.ID.Value(), ReadyData{
		StoreID:      a.props.StoreID.Value(),
		CdnURL:       cdn,
		ThumbnailURL: c.props.ThumbnailURL,
	}))
	return c, nil
}

func (a *Asset) MarkFailed(reason string) (*Asset, error) {
	r, err := validateReason(reason)
	if err != nil {
		return nil, err
	}
	c, err := a.transition(StatusFailed)
	if err != nil {
		return nil, err
	}
	c.props.FailureReason = &r
	c.events = c.events.Record(NewFailedEvent(a.props.ID.Value(), FailedData{
		StoreID:        a.props.StoreID.Value(),
		PreviousStatus: a.props.Status,
		Reason:         r,
		UploadedBy:     a.props.UploadedBy.Value(),
		Filename:       a.props.Filename.Value(),
	}))
	return c, nil
}

// RetryUpload moves a failed asset back to PENDING_UPLOAD and clears the
// failure reason.
func (a *Asset) RetryUpload() (*Asset, error) {
	c, err := a.transition(StatusPendingUpload)
	if err != nil {
		return nil, err
	}
	var previous string
	if a.props.FailureReason != nil {
		previous = *a.props.FailureReason
	}
	c.props.FailureReason = nil
	c.events = c.events.Record(NewUploadRetriedEvent(a.props.ID.Value(), UploadRetriedData{
		StoreID:       a.props.StoreID.Value(),
		PreviousError: previous,
	}))
	return c, nil
}

// UpdateMetadata merges patch into the metadata. A nil value removes the key.
// An event is recorded only when some key actually changed.
func (a *Asset) UpdateMetadata(patch map[string]any) (*Asset, error) {
	for k := range patch {
		if strings.TrimSpace(k) == "" {
			return nil, NewValidationError("metadata", patch, []string{"keys must not be empty"})
		}
	}
	c := a.copy()
	changes := shared.Changes{}
	for k, v := range patch {
		old, had := c.props.Metadata[k]
		switch {
		case v == nil && had:
			delete(c.props.Metadata, k)
			changes[k] = shared.Change{From: old, To: nil}
		case v == nil:
		case !had || !reflect.DeepEqual(old, v):
			c.props.Metadata[k] = v
			changes[k] = shared.Change{From: old, To: v}
		}
	}
	if changes.Empty() {
		return c, nil
	}
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewMetadataUpdatedEvent(a.props.ID.Value(), MetadataUpdatedData{Changes: changes}))
	return c, nil
}

func (a *Asset) SetCdnURL(url string) (*Asset, error) {
	v, err := validateURL("cdnUrl", url)
	if err != nil {
		return nil, err
	}
	c := a.copy()
	c.props.CdnURL = &v
	c.props.UpdatedAt = shared.Now()
	return c, nil
}

func (a *Asset) SetThumbnailURL(url string) (*Asset, error) {
	v, err := validateURL("thumbnailUrl", url)
	if err != nil {
		return nil, err
	}
	c := a.copy()
	c.props.ThumbnailURL = &v
	c.props.UpdatedAt = shared.Now()
	return c, nil
}

// Delete soft-deletes the asset. Deleting again re-stamps deletedAt.
func (a *Asset) Delete() *Asset {
	now := shared.Now()
	c := a.copy()
	c.props.DeletedAt = &now
	c.props.UpdatedAt = now
	c.events = c.events.Record(NewDeletedEvent(a.props.ID.Value(), DeletedData{
		StoreID:   a.props.StoreID.Value(),
		DeletedAt: now,
	}))
	return c
}

// Restore clears deletedAt. Restoring a live asset returns an unchanged copy.
func (a *Asset) Restore() *Asset {
	c := a.copy()
	if a.props.DeletedAt == nil {
		return c
	}
	c.props.DeletedAt = nil
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewRestoredEvent(a.props.ID.Value(), RestoredData{StoreID: a.props.StoreID.Value()}))
	return c
}

func (a *Asset) ID() shared.ID            { return a.props.ID }
func (a *Asset) StoreID() shared.ID       { return a.props.StoreID }
func (a *Asset) Type() Type               { return a.props.Type }
func (a *Asset) Category() Category       { return a.props.Category }
func (a *Asset) Filename() Filename       { return a.props.Filename }
func (a *Asset) MimeType() MimeType       { return a.props.MimeType }
func (a *Asset) SizeBytes() int64         { return a.props.SizeBytes }
func (a *Asset) StoragePath() StoragePath { return a.props.StoragePath }
func (a *Asset) UploadedBy() shared.ID    { return a.props.UploadedBy }
func (a *Asset) Status() Status           { return a.props.Status }
func (a *Asset) CreatedAt() time.Time     { return a.props.CreatedAt }
func (a *Asset) UpdatedAt() time.Time     { return a.props.UpdatedAt }
func (a *Asset) IsDeleted() bool          { return a.props.DeletedAt != nil }
func (a *Asset) IsReady() bool            { return a.props.Status == StatusReady }

func (a *Asset) CdnURL() *string        { return shared.ClonePtr(a.props.CdnURL) }
func (a *Asset) ThumbnailURL() *string  { return shared.ClonePtr(a.props.ThumbnailURL) }
func (a *Asset) FailureReason() *string { return shared.ClonePtr(a.props.FailureReason) }
func (a *Asset) DeletedAt() *time.Time  { return shared.ClonePtr(a.props.DeletedAt) }

// Metadata returns a copy of the metadata map.
func (a *Asset) Metadata() map[string]any { return maps.Clone(a.props.Metadata) }

// ModelID returns the linked model id from metadata, if any.
func (a *Asset) ModelID() string { return metadataString(a.props.Metadata, MetadataModelID) }

// GenerationID returns the linked generation id from metadata, if any.
func (a *Asset) GenerationID() string {
	return metadataString(a.props.Metadata, MetadataGenerationID)
}

func (a *Asset) DomainEvents() []shared.Event { return a.events.Events() }

// ClearDomainEvents returns a copy with an empty event queue.
func (a *Asset) ClearDomainEvents() *Asset {
	c := a.copy()
	c.events = shared.EventRecorder{}
	return c
}

// Equals compares assets by identity.
func (a *Asset) Equals(other *Asset) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.props.ID.Equals(other.props.ID)
}

func metadataString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
