package application

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
)

func TestStoreService_CreateRequiresKnownActiveUser(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.storeSvc.Create(ctx, "user_ghost", CreateStoreInput{Name: "Atelier Nova"})
	assert.ErrorIs(t, err, user.ErrNotFound)

	h.user(t, "user_1")
	_, err = h.userSvc.SetOwnStatus(ctx, "user_1", "INACTIVE")
	require.NoError(t, err)
	_, err = h.storeSvc.Create(ctx, "user_1", CreateStoreInput{Name: "Atelier Nova"})
	assert.ErrorIs(t, err, user.ErrInvalidStatus)
}

func TestStoreService_OwnershipIsEnforced(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	h.user(t, "user_2")
	s := h.store(t, "user_1")

	_, err := h.storeSvc.Get(ctx, "user_2", s.ID().Value())
	assert.ErrorIs(t, err, store.ErrOwnerMismatch)
	_, err = h.storeSvc.Update(ctx, "user_2", s.ID().Value(), store.UpdateInput{Name: shared.Ptr("Mine now")})
	assert.ErrorIs(t, err, store.ErrOwnerMismatch)

	items, total, err := h.storeSvc.List(ctx, "user_1", shared.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, total)
}

func TestStoreService_UpdatePublishesOnlyRealChanges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	h.pub.reset()

	_, err := h.storeSvc.Update(ctx, "user_1", s.ID().Value(), store.UpdateInput{Name: shared.Ptr("Atelier Nova")})
	require.NoError(t, err)
	assert.Empty(t, h.pub.types())

	updated, err := h.storeSvc.UpdateSettings(ctx, "user_1", s.ID().Value(), store.SettingsPatch{DefaultImageCount: shared.Ptr(6)})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Settings().DefaultImageCount)
	assert.Equal(t, []shared.EventType{store.EventSettingsUpdated}, h.pub.types())
	assert.Equal(t, 6, h.stores.items[s.ID().Value()].Settings().DefaultImageCount)
}

func TestStoreService_SetLogo(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	other := h.store(t, "user_1")

	garment, err := h.assetSvc.Upload(ctx, "user_1", s.ID().Value(),
		RequestUploadInput{Category: "GARMENT", Filename: "dress.png", MimeType: "image/png", SizeBytes: int64(len(pngBytes))},
		bytes.NewReader(pngBytes))
	require.NoError(t, err)
	_, err = h.storeSvc.SetLogo(ctx, "user_1", s.ID().Value(), garment.ID().Value())
	assert.ErrorIs(t, err, store.ErrBusinessRuleViolation)

	logo, err := h.assetSvc.Upload(ctx, "user_1", other.ID().Value(),
		RequestUploadInput{Category: "STORE_LOGO", Filename: "logo.png", MimeType: "image/png", SizeBytes: int64(len(pngBytes))},
		bytes.NewReader(pngBytes))
	require.NoError(t, err)
	_, err = h.storeSvc.SetLogo(ctx, "user_1", s.ID().Value(), logo.ID().Value())
	assert.ErrorIs(t, err, store.ErrBusinessRuleViolation)

	updated, err := h.storeSvc.SetLogo(ctx, "user_1", other.ID().Value(), logo.ID().Value())
	require.NoError(t, err)
	assert.Equal(t, logo.ID(), *updated.LogoAssetID())
}

func TestStoreService_StatusAndSoftDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	id := s.ID().Value()

	inactive, err := h.storeSvc.ChangeStatus(ctx, "user_1", id, "INACTIVE", "season break")
	require.NoError(t, err)
	assert.Equal(t, store.StatusInactive, inactive.Status())
	_, err = h.storeSvc.ChangeStatus(ctx, "user_1", id, "INACTIVE", "")
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
	_, err = h.storeSvc.ChangeStatus(ctx, "user_1", id, "CLOSED", "")
	assert.ErrorIs(t, err, store.ErrValidation)
	active, err := h.storeSvc.ChangeStatus(ctx, "user_1", id, "ACTIVE", "")
	require.NoError(t, err)
	assert.Equal(t, store.StatusActive, active.Status())

	require.NoError(t, h.storeSvc.Delete(ctx, "user_1", id))
	_, err = h.storeSvc.Get(ctx, "user_1", id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	restored, err := h.storeSvc.Restore(ctx, "user_1", id)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())
}

func TestStoreService_OwnerCannotSetOrLiftSuspension(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	id := s.ID().Value()

	_, err := h.storeSvc.ChangeStatus(ctx, "user_1", id, "SUSPENDED", "")
	assert.ErrorIs(t, err, store.ErrOperationNotAllowed)
	assert.Equal(t, store.StatusActive, h.stores.items[id].Status())

	h.suspendStore(t, id)
	_, err = h.storeSvc.ChangeStatus(ctx, "user_1", id, "ACTIVE", "")
	assert.ErrorIs(t, err, store.ErrSuspended)
	_, err = h.storeSvc.ChangeStatus(ctx, "user_1", id, "INACTIVE", "")
	assert.ErrorIs(t, err, store.ErrSuspended)
	assert.True(t, h.stores.items[id].IsSuspended())
}

func TestStoreService_InactiveOrSuspendedUserCannotChangeStores(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	id := s.ID().Value()
	require.NoError(t, h.storeSvc.Delete(ctx, "user_1", id))

	h.suspendUser(t, "user_1")
	_, err := h.storeSvc.Update(ctx, "user_1", id, store.UpdateInput{Name: shared.Ptr("Atelier Luna")})
	assert.ErrorIs(t, err, user.ErrInvalidStatus)
	_, err = h.storeSvc.RemoveLogo(ctx, "user_1", id)
	assert.ErrorIs(t, err, user.ErrInvalidStatus)
	_, err = h.storeSvc.Restore(ctx, "user_1", id)
	assert.ErrorIs(t, err, user.ErrInvalidStatus)
	assert.True(t, h.stores.items[id].IsDeleted())
}

func TestSuspendedUserCannotChangeModelsOrAssets(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	s := h.store(t, "user_1")
	a := uploadPNG(t, h, s.ID().Value(), "GARMENT")
	m, err := h.modelSvc.Create(ctx, "user_1", s.ID().Value(), modelInput())
	require.NoError(t, err)

	h.suspendUser(t, "user_1")
	_, err = h.assetSvc.UpdateMetadata(ctx, "user_1", a.ID().Value(), map[string]any{"season": "aw26"})
	assert.ErrorIs(t, err, user.ErrInvalidStatus)
	assert.ErrorIs(t, h.assetSvc.Delete(ctx, "user_1", a.ID().Value()), user.ErrInvalidStatus)
	assert.ErrorIs(t, h.modelSvc.Delete(ctx, "user_1", m.ID().Value()), user.ErrInvalidStatus)

	got, err := h.assetSvc.Get(ctx, "user_1", a.ID().Value())
	require.NoError(t, err)
	assert.False(t, got.IsDeleted())
}
