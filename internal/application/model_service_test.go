package application

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
)

func modelInput() model.NewInput {
	return model.NewInput{
		Name:      "Mara",
		Gender:    "FEMALE",
		AgeRange:  "AGE_25_34",
		Ethnicity: "MIXED",
		BodyType:  "ATHLETIC",
		Prompt:    "soft freckles, short dark hair",
	}
}

func uploadPNG(t *testing.T, h *harness, storeID, category string) *asset.Asset {
	t.Helper()
	a, err := h.assetSvc.Upload(context.Background(), "user_1", storeID,
		RequestUploadInput{Category: category, Filename: "ref.png", MimeType: "image/png", SizeBytes: int64(len(pngBytes))},
		bytes.NewReader(pngBytes))
	require.NoError(t, err)
	return a
}

func TestModelService_CreateChecksStore(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	h.user(t, "user_2")
	s := h.store(t, "user_1")

	_, err := h.modelSvc.Create(ctx, "user_2", s.ID().Value(), modelInput())
	assert.ErrorIs(t, err, store.ErrOwnerMismatch)

	h.suspendStore(t, s.ID().Value())
	_, err = h.modelSvc.Create(ctx, "user_1", s.ID().Value(), modelInput())
	assert.ErrorIs(t, err, store.ErrSuspended)

	_, err = h.modelSvc.Create(ctx, "user_1", "store_missing", modelInput())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestModelService_ReferenceImagesMustBelongToStore(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	other := h.store(t, "user_1")
	foreign := uploadPNG(t, h, other.ID().Value(), "MODEL_REFERENCE")
	own := uploadPNG(t, h, s.ID().Value(), "MODEL_REFERENCE")

	in := modelInput()
	in.ReferenceImageIDs = []string{foreign.ID().Value()}
	_, err := h.modelSvc.Create(ctx, "user_1", s.ID().Value(), in)
	assert.ErrorIs(t, err, model.ErrBusinessRuleViolation)

	in.ReferenceImageIDs = []string{"asset_missing"}
	_, err = h.modelSvc.Create(ctx, "user_1", s.ID().Value(), in)
	assert.ErrorIs(t, err, model.ErrBusinessRuleViolation)

	in.ReferenceImageIDs = []string{own.ID().Value()}
	m, err := h.modelSvc.Create(ctx, "user_1", s.ID().Value(), in)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), m.StoreID())

	_, err = h.modelSvc.Update(ctx, "user_1", m.ID().Value(), model.UpdateInput{ReferenceImageIDs: &[]string{foreign.ID().Value()}})
	assert.ErrorIs(t, err, model.ErrBusinessRuleViolation)
}

func TestModelService_CalibrationFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	calib := uploadPNG(t, h, s.ID().Value(), "CALIBRATION")

	m, err := h.modelSvc.Create(ctx, "user_1", s.ID().Value(), modelInput())
	require.NoError(t, err)
	id := m.ID().Value()
	h.pub.reset()

	_, err = h.modelSvc.AddCalibrationImage(ctx, "user_1", id, calib.ID().Value())
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = h.modelSvc.StartCalibration(ctx, "user_1", id)
	require.NoError(t, err)
	_, err = h.modelSvc.AddCalibrationImage(ctx, "user_1", id, calib.ID().Value())
	require.NoError(t, err)
	_, err = h.modelSvc.RejectCalibration(ctx, "user_1", id, "identity drift")
	require.NoError(t, err)
	_, err = h.modelSvc.RetryCalibration(ctx, "user_1", id)
	require.NoError(t, err)
	_, err = h.modelSvc.StartCalibration(ctx, "user_1", id)
	require.NoError(t, err)
	active, err := h.modelSvc.ApproveCalibration(ctx, "user_1", id, "https://cdn.test/identity.png")
	require.NoError(t, err)
	assert.True(t, active.IsActive())

	assert.Equal(t, []shared.EventType{
		model.EventCalibrationStarted,
		model.EventCalibrationImageAdded,
		model.EventCalibrationRejected,
		model.EventCalibrationRetried,
		model.EventCalibrationStarted,
		model.EventCalibrationApproved,
	}, h.pub.types())

	items, total, err := h.modelSvc.List(ctx, "user_1", s.ID().Value(), model.Filter{Status: model.StatusActive})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, total)
}

func TestModelService_SuspendedStoreBlocksWorkButAllowsCleanup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	m, err := h.modelSvc.Create(ctx, "user_1", s.ID().Value(), modelInput())
	require.NoError(t, err)

	h.suspendStore(t, s.ID().Value())

	_, err = h.modelSvc.StartCalibration(ctx, "user_1", m.ID().Value())
	assert.ErrorIs(t, err, store.ErrSuspended)

	require.NoError(t, h.modelSvc.Delete(ctx, "user_1", m.ID().Value()))
	_, err = h.modelSvc.Get(ctx, "user_1", m.ID().Value())
	assert.ErrorIs(t, err, model.ErrNotFound)

	restored, err := h.modelSvc.Restore(ctx, "user_1", m.ID().Value())
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())
}

func TestModelService_SearchWithoutIndexer(t *testing.T) {
	h := newHarness(t)
	h.user(t, "user_1")
	s := h.store(t, "user_1")

	hits, err := h.modelSvc.Search(context.Background(), "user_1", s.ID().Value(), "mara", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
