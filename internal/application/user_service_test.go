package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
)

func TestUserService_RegisterIsIdempotentByExternalID(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.userSvc.Register(ctx, user.NewInput{FullName: "Rin Sato", ExternalID: "auth0|42"})
	require.NoError(t, err)
	second, err := h.userSvc.Register(ctx, user.NewInput{FullName: "Someone Else", ExternalID: "auth0|42"})
	require.NoError(t, err)

	assert.True(t, first.Equals(second))
	assert.Equal(t, []shared.EventType{user.EventCreated}, h.pub.types())

	_, err = h.userSvc.Register(ctx, user.NewInput{ID: first.ID().Value(), FullName: "Rin Sato"})
	assert.ErrorIs(t, err, user.ErrAlreadyExists)
}

func TestUserService_UpdateProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")
	h.pub.reset()

	u, err := h.userSvc.UpdateProfile(ctx, "user_1", UpdateProfileInput{
		FullName: shared.Ptr("Rin Sato-Kim"),
		Locale:   shared.Ptr("ja-JP"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rin Sato-Kim", u.FullName().Value())
	assert.Equal(t, "ja", u.Locale().Language())
	assert.Empty(t, u.DomainEvents())
	assert.Equal(t, []shared.EventType{user.EventUpdated, user.EventUpdated}, h.pub.types())

	_, err = h.userSvc.UpdateProfile(ctx, "user_1", UpdateProfileInput{Locale: shared.Ptr("not a locale")})
	assert.ErrorIs(t, err, user.ErrValidation)

	_, err = h.userSvc.GetProfile(ctx, "user_missing")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserService_SetOwnStatus(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")

	u, err := h.userSvc.SetOwnStatus(ctx, "user_1", "INACTIVE")
	require.NoError(t, err)
	assert.Equal(t, user.StatusInactive, u.Status())

	_, err = h.userSvc.UpdateProfile(ctx, "user_1", UpdateProfileInput{FullName: shared.Ptr("Rin")})
	assert.ErrorIs(t, err, user.ErrInvalidStatus)

	_, err = h.userSvc.SetOwnStatus(ctx, "user_1", "SUSPENDED")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestUserService_DeleteAndRestore(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.user(t, "user_1")

	require.NoError(t, h.userSvc.Delete(ctx, "user_1"))
	_, err := h.userSvc.GetProfile(ctx, "user_1")
	assert.ErrorIs(t, err, user.ErrNotFound)

	u, err := h.userSvc.Restore(ctx, "user_1")
	require.NoError(t, err)
	assert.False(t, u.IsDeleted())
}
