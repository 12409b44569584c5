package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

func TestNew(t *testing.T) {
	u, err := New(NewInput{FullName: "Zoë O'Neil", ExternalID: "auth0|abc123"})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, u.Status())
	assert.Equal(t, "en", u.Locale().Value())
	require.NotNil(t, u.ExternalID())
	assert.Equal(t, "auth0|abc123", u.ExternalID().Value())
	require.Len(t, u.DomainEvents(), 1)
	assert.Equal(t, EventCreated, u.DomainEvents()[0].EventType)

	withID, err := New(NewInput{ID: "user_42", FullName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "user_42", withID.ID().Value())
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(NewInput{FullName: "R2-D2 #1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = New(NewInput{FullName: "Ana", Locale: "EN_us"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = New(NewInput{FullName: "Ana", ExternalID: "has space"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLocale(t *testing.T) {
	l, err := NewLocale("pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "pt", l.Language())
	assert.Equal(t, "BR", l.Region())

	l, err = NewLocale("fr")
	require.NoError(t, err)
	assert.Equal(t, "", l.Region())
}

func TestUpdates(t *testing.T) {
	u, err := New(NewInput{FullName: "Ana Silva", Locale: "pt-BR"})
	require.NoError(t, err)
	u = u.ClearDomainEvents()

	same, err := u.UpdateFullName(" Ana Silva ")
	require.NoError(t, err)
	assert.Empty(t, same.DomainEvents())

	renamed, err := u.UpdateFullName("Ana Souza")
	require.NoError(t, err)
	require.Len(t, renamed.DomainEvents(), 1)
	data := renamed.DomainEvents()[0].EventData.(UpdatedData)
	assert.Equal(t, shared.Change{From: "Ana Silva", To: "Ana Souza"}, data.Changes["fullName"])
	assert.Equal(t, "Ana Silva", u.FullName().Value())

	relocated, err := u.UpdateLocale("en-GB")
	require.NoError(t, err)
	assert.Equal(t, "en-GB", relocated.Locale().Value())
}

func TestStatusTransitions(t *testing.T) {
	u, err := New(NewInput{FullName: "Ana"})
	require.NoError(t, err)

	suspended, err := u.UpdateStatus(StatusSuspended)
	require.NoError(t, err)
	assert.ErrorIs(t, suspended.EnsureCanAct("create store"), ErrInvalidStatus)

	assert.False(t, IsValidTransition(StatusSuspended, StatusInactive))
	_, err = suspended.UpdateStatus(StatusInactive)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	active, err := suspended.UpdateStatus(StatusActive)
	require.NoError(t, err)
	assert.NoError(t, active.EnsureCanAct("create store"))
	assert.Equal(t, "Suspended", StatusLabel(StatusSuspended))
	assert.Equal(t, []Status{StatusInactive, StatusSuspended}, ValidTransitionsFrom(StatusActive))
}

func TestSoftDelete(t *testing.T) {
	u, err := New(NewInput{FullName: "Ana"})
	require.NoError(t, err)
	deleted := u.Delete()
	assert.True(t, deleted.IsDeleted())
	assert.False(t, u.IsDeleted())
	assert.ErrorIs(t, deleted.EnsureCanAct("update"), ErrOperationNotAllowed)
	assert.True(t, deleted.Delete().IsDeleted())
	assert.Equal(t, EventRestored, deleted.Restore().DomainEvents()[2].EventType)
}

func TestMapperRoundTrip(t *testing.T) {
	r := Record{
		ID:         "user_1",
		FullName:   "Ana Souza",
		Locale:     "pt-BR",
		Status:     "INACTIVE",
		ExternalID: shared.Ptr("google-oauth2|1"),
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	u, err := ToDomain(r)
	require.NoError(t, err)
	assert.Equal(t, r, ToPersistence(u))

	r.Locale = "portuguese"
	_, err = ToDomain(r)
	assert.True(t, IsDomainError(err))
}
