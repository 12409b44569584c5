package asset

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

func fixClock(t *testing.T, at time.Time) func(time.Time) {
	t.Helper()
	current := at
	restore := shared.SetClock(func() time.Time { return current })
	t.Cleanup(restore)
	return func(next time.Time) { current = next }
}

func newPending(t *testing.T) *Asset {
	t.Helper()
	a, err := RequestUpload(RequestUploadInput{
		StoreID:    "store_1",
		Category:   string(CategoryGarment),
		Filename:   "dress.front.jpg",
		MimeType:   "image/jpeg",
		SizeBytes:  2048,
		UploadedBy: "user_1",
		Metadata:   map[string]any{MetadataModelID: "model_1"},
	})
	require.NoError(t, err)
	return a
}

func TestFilename(t *testing.T) {
	_, err := NewFilename("noext")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	f, err := NewFilename("  a.b.c.JPG ")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c.JPG", f.Value())
	assert.Equal(t, "jpg", f.Extension())

	_, err = NewFilename("with space.png")
	assert.Error(t, err)
}

func TestMimeType(t *testing.T) {
	_, err := NewMimeType("application/pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	m, err := NewMimeType("image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "jpg", m.Extension())

	m, err = NewMimeType("image/webp")
	require.NoError(t, err)
	assert.Equal(t, "webp", m.Extension())
}

func TestStoragePath(t *testing.T) {
	_, err := NewStoragePath("bad/path")
	require.Error(t, err)

	_, err = NewStoragePath("stores/s1/garments/a1/nested/f.jpg")
	require.Error(t, err)

	p, err := BuildStoragePath("s1", "garments", "a1", "f.jpg")
	require.NoError(t, err)
	assert.Equal(t, "stores/s1/garments/a1/f.jpg", p.Value())
	assert.Equal(t, "s1", p.StoreID())
	assert.Equal(t, "garments", p.Category())
	assert.Equal(t, "a1", p.AssetID())
	assert.Equal(t, "f.jpg", p.Filename())
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPendingUpload, StatusUploaded, true},
		{StatusPendingUpload, StatusFailed, true},
		{StatusPendingUpload, StatusReady, false},
		{StatusUploaded, StatusProcessing, true},
		{StatusUploaded, StatusReady, true},
		{StatusProcessing, StatusReady, true},
		{StatusProcessing, StatusPendingUpload, false},
		{StatusReady, StatusFailed, false},
		{StatusFailed, StatusPendingUpload, true},
		{StatusFailed, StatusUploaded, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, IsValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
	assert.Empty(t, ValidTransitionsFrom(StatusReady))
	assert.True(t, StatusReady.IsTerminal())
	assert.ElementsMatch(t, []Status{StatusUploaded, StatusProcessing}, ValidTransitionsTo(StatusReady))
	assert.Equal(t, "Pending upload", StatusLabel(StatusPendingUpload))
	assert.False(t, IsValidStatus("DONE"))
}

func TestRequestUpload(t *testing.T) {
	fixClock(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	a := newPending(t)

	assert.Equal(t, StatusPendingUpload, a.Status())
	assert.Equal(t, "stores/store_1/garments/"+a.ID().Value()+"/dress.front.jpg", a.StoragePath().Value())
	assert.Equal(t, "model_1", a.ModelID())

	events := a.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventUploadRequested, events[0].EventType)
	assert.Equal(t, AggregateType, events[0].AggregateType)
	assert.Equal(t, a.ID().Value(), events[0].AggregateID)
}

func TestRequestUpload_Rejections(t *testing.T) {
	base := RequestUploadInput{
		StoreID: "store_1", Category: "GARMENT", Filename: "f.png",
		MimeType: "image/png", SizeBytes: 10, UploadedBy: "user_1",
	}

	tooBig := base
	tooBig.SizeBytes = MaxSizeBytes + 1
	_, err := RequestUpload(tooBig)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	pdf := base
	pdf.MimeType = "application/pdf"
	_, err = RequestUpload(pdf)
	assert.ErrorIs(t, err, ErrInvalidMimeType)

	badCategory := base
	badCategory.Category = "VIDEO"
	_, err = RequestUpload(badCategory)
	assert.ErrorIs(t, err, ErrValidation)

	badStore := base
	badStore.StoreID = "store/1"
	_, err = RequestUpload(badStore)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "storeId", de.Details["field"])
}

func TestLifecycle_HappyPath(t *testing.T) {
	a := newPending(t)

	uploaded, err := a.ConfirmUpload(4096)
	require.NoError(t, err)
	processing, err := uploaded.StartProcessing()
	require.NoError(t, err)
	ready, err := processing.MarkReady("https://cdn.example.com/a.jpg", "")
	require.NoError(t, err)

	assert.Equal(t, StatusReady, ready.Status())
	assert.Equal(t, int64(4096), ready.SizeBytes())
	require.NotNil(t, ready.CdnURL())
	assert.Equal(t, "https://cdn.example.com/a.jpg", *ready.CdnURL())
	assert.Nil(t, ready.ThumbnailURL())

	var types []shared.EventType
	for _, e := range ready.DomainEvents() {
		types = append(types, e.EventType)
	}
	assert.Equal(t, []shared.EventType{EventUploadRequested, EventUploaded, EventProcessingStarted, EventReady}, types)
}

func TestReadyIsTerminal(t *testing.T) {
	a := newPending(t)
	a, err := a.ConfirmUpload(100)
	require.NoError(t, err)
	ready, err := a.MarkReady("https://cdn.example.com/a.jpg", "https://cdn.example.com/t.jpg")
	require.NoError(t, err)

	_, err = ready.StartProcessing()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = ready.MarkFailed("boom")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = ready.RetryUpload()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = ready.ConfirmUpload(100)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = ready.MarkReady("https://cdn.example.com/b.jpg", "")
	require.ErrorIs(t, err, ErrInvalidTransition)

	de, _ := shared.AsDomainError(err)
	assert.Equal(t, "invalid status transition from READY to READY", de.Message)
}

func TestFailAndRetry(t *testing.T) {
	a := newPending(t)
	failed, err := a.MarkFailed("  upload timed out ")
	require.NoError(t, err)
	require.NotNil(t, failed.FailureReason())
	assert.Equal(t, "upload timed out", *failed.FailureReason())

	retried, err := failed.RetryUpload()
	require.NoError(t, err)
	assert.Equal(t, StatusPendingUpload, retried.Status())
	assert.Nil(t, retried.FailureReason())

	events := retried.DomainEvents()
	require.Len(t, events, 3)
	data := events[2].EventData.(UploadRetriedData)
	assert.Equal(t, "upload timed out", data.PreviousError)

	_, err = a.MarkFailed("   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMutatorsDoNotTouchReceiver(t *testing.T) {
	a := newPending(t)
	before := ToPersistence(a)

	next, err := a.ConfirmUpload(999)
	require.NoError(t, err)
	_, err = a.UpdateMetadata(map[string]any{"color": "red"})
	require.NoError(t, err)
	_ = a.Delete()

	assert.NotSame(t, a, next)
	assert.Equal(t, before, ToPersistence(a))
	assert.Len(t, a.DomainEvents(), 1)
	assert.Len(t, next.DomainEvents(), 2)
}

func TestUpdateMetadata(t *testing.T) {
	a := newPending(t)

	same, err := a.UpdateMetadata(map[string]any{MetadataModelID: "model_1"})
	require.NoError(t, err)
	assert.Len(t, same.DomainEvents(), 1)

	changed, err := a.UpdateMetadata(map[string]any{MetadataModelID: nil, MetadataGenerationID: "gen_9"})
	require.NoError(t, err)
	assert.Equal(t, "", changed.ModelID())
	assert.Equal(t, "gen_9", changed.GenerationID())

	events := changed.DomainEvents()
	require.Len(t, events, 2)
	data := events[1].EventData.(MetadataUpdatedData)
	assert.Equal(t, shared.Change{From: "model_1", To: nil}, data.Changes[MetadataModelID])
	assert.Equal(t, shared.Change{From: nil, To: "gen_9"}, data.Changes[MetadataGenerationID])

	_, err = a.UpdateMetadata(map[string]any{" ": 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetURLs(t *testing.T) {
	a := newPending(t)
	withCdn, err := a.SetCdnURL("https://cdn.example.com/x.jpg")
	require.NoError(t, err)
	assert.Len(t, withCdn.DomainEvents(), 1)
	assert.Nil(t, a.CdnURL())

	_, err = a.SetThumbnailURL("not a url")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSoftDelete(t *testing.T) {
	set := fixClock(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	a := newPending(t)

	set(time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC))
	once := a.Delete()
	set(time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC))
	twice := once.Delete()

	require.True(t, twice.IsDeleted())
	assert.Equal(t, time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC), *twice.DeletedAt())
	assert.Len(t, twice.DomainEvents(), 3)

	restored := twice.Restore()
	assert.False(t, restored.IsDeleted())
	assert.Equal(t, EventRestored, restored.DomainEvents()[3].EventType)

	noop := a.Restore()
	assert.Len(t, noop.DomainEvents(), 1)
}

func TestClearDomainEvents(t *testing.T) {
	a := newPending(t)
	cleared := a.ClearDomainEvents()
	assert.Empty(t, cleared.DomainEvents())
	assert.Len(t, a.DomainEvents(), 1)
	assert.True(t, cleared.Equals(a))
}

func TestMapperRoundTrip(t *testing.T) {
	cdn := "https://cdn.example.com/a.jpg"
	reason := "retry later"
	deleted := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	r := Record{
		ID:            "asset_1",
		StoreID:       "store_1",
		Type:          "IMAGE",
		Category:      "CALIBRATION",
		Filename:      "shot.webp",
		MimeType:      "image/webp",
		SizeBytes:     1234,
		StoragePath:   "stores/store_1/calibration/asset_1/shot.webp",
		CdnURL:        &cdn,
		Metadata:      map[string]any{"modelId": "model_1"},
		UploadedBy:    "user_1",
		Status:        "FAILED",
		FailureReason: &reason,
		CreatedAt:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 4, 1, 1, 0, 0, 0, time.UTC),
		DeletedAt:     &deleted,
	}
	a, err := ToDomain(r)
	require.NoError(t, err)
	assert.Empty(t, a.DomainEvents())
	assert.Equal(t, r, ToPersistence(a))
}

func TestMapperNormalizesNilMetadata(t *testing.T) {
	r := Record{
		ID:          "asset_2",
		StoreID:     "store_1",
		Type:        "IMAGE",
		Category:    "GARMENT",
		Filename:    "coat.png",
		MimeType:    "image/png",
		SizeBytes:   10,
		StoragePath: "stores/store_1/garments/asset_2/coat.png",
		UploadedBy:  "user_1",
		Status:      "PENDING_UPLOAD",
		CreatedAt:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	a, err := ToDomain(r)
	require.NoError(t, err)
	stored := ToPersistence(a)
	assert.Equal(t, map[string]any{}, stored.Metadata)

	r.Metadata = map[string]any{}
	assert.Equal(t, r, stored)
	again, err := ToDomain(stored)
	require.NoError(t, err)
	assert.Equal(t, stored, ToPersistence(again))
}

func TestToDomain_RejectsCorruptRecord(t *testing.T) {
	r := Record{
		ID: "asset_1", StoreID: "store_1", Type: "IMAGE", Category: "GARMENT",
		Filename: "f.jpg", MimeType: "image/jpeg", StoragePath: "bad/path",
		UploadedBy: "user_1", Status: "READY",
	}
	_, err := ToDomain(r)
	assert.ErrorIs(t, err, ErrValidation)

	r.StoragePath = "stores/store_1/garments/asset_1/f.jpg"
	r.Status = "ARCHIVED"
	_, err = ToDomain(r)
	assert.True(t, IsDomainError(err))
}

func TestErrorHelpers(t *testing.T) {
	err := NewNotFoundError("asset_1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 404, err.StatusCode)
	assert.Equal(t, "File is too large", ErrorMessage(CodeFileTooLarge))
	assert.Equal(t, "Unknown asset error", ErrorMessage("NOPE"))
	assert.False(t, IsDomainError(errors.New("x")))
	assert.True(t, strings.Contains(NewInvalidMimeTypeError("text/plain").Error(), "text/plain"))
}
