// Package store models tenants: a store owns models and assets and carries
// the generation defaults applied to them.
package store

import (
	"strings"
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

type Props struct {
	ID           shared.ID
	OwnerID      shared.ID
	Name         Name
	Description  *Description
	DefaultStyle *DefaultStyle
	LogoAssetID  *shared.ID
	Status       Status
	Settings     Settings
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Store is the tenant aggregate root. Mutators return a new Store.
type Store struct {
	props  Props
	events shared.EventRecorder
}

// Reconstitute rebuilds a store from validated state without recording events.
func Reconstitute(props Props) (*Store, error) {
	if props.ID.IsZero() {
		return nil, NewValidationError("id", "", []string{"is required"})
	}
	if !IsValidStatus(string(props.Status)) {
		return nil, NewValidationError("status", string(props.Status), []string{"is not a known status"})
	}
	settings, err := NewSettings(props.Settings)
	if err != nil {
		return nil, err
	}
	props.Settings = settings
	return &Store{props: props}, nil
}

// NewInput is the creation payload. Empty optional strings are treated as
// absent; a nil Settings patch yields the default settings.
type NewInput struct {
	OwnerID      string
	Name         string
	Description  string
	DefaultStyle string
	Settings     *SettingsPatch
}

// New creates an ACTIVE store with default settings applied and records
// StoreCreated.
func New(in NewInput) (*Store, error) {
	ownerID, err := NewID("ownerId", in.OwnerID)
	if err != nil {
		return nil, err
	}
	name, err := NewName(in.Name)
	if err != nil {
		return nil, err
	}
	description, err := optionalDescription(in.Description)
	if err != nil {
		return nil, err
	}
	style, err := optionalStyle(in.DefaultStyle)
	if err != nil {
		return nil, err
	}
	settings := DefaultSettings()
	if in.Settings != nil {
		if settings, err = settings.Apply(*in.Settings); err != nil {
			return nil, err
		}
	}

	now := shared.Now()
	s := &Store{props: Props{
		ID:           shared.GenerateID(),
		OwnerID:      ownerID,
		Name:         name,
		Description:  description,
		DefaultStyle: style,
		Status:       StatusActive,
		Settings:     settings,
		CreatedAt:    now,
		UpdatedAt:    now,
	}}
	s.events = s.events.Record(NewCreatedEvent(s.props.ID.Value(), CreatedData{
		OwnerID:  ownerID.Value(),
		Name:     name.Value(),
		Settings: settings,
	}))
	return s, nil
}

func optionalDescription(raw string) (*Description, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := NewDescription(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalStyle(raw string) (*DefaultStyle, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	s, err := NewDefaultStyle(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) copy() *Store {
	return &Store{props: s.props, events: s.events}
}

// UpdateInput changes only the non-nil fields. An empty Description or
// DefaultStyle clears it.
type UpdateInput struct {
	Name         *string
	Description  *string
	DefaultStyle *string
}

// Update edits the descriptive fields and records StoreUpdated with the
// fields that actually changed. Nothing changed means no event.
func (s *Store) Update(in UpdateInput) (*Store, error) {
	c := s.copy()
	changes := shared.Changes{}

	if in.Name != nil {
		name, err := NewName(*in.Name)
		if err != nil {
			return nil, err
		}
		shared.Track(changes, "name", s.props.Name.Value(), name.Value())
		c.props.Name = name
	}
	if in.Description != nil {
		d, err := optionalDescription(*in.Description)
		if err != nil {
			return nil, err
		}
		shared.TrackOptional(changes, "description", descriptionValue(s.props.Description), descriptionValue(d))
		c.props.Description = d
	}
	if in.DefaultStyle != nil {
		st, err := optionalStyle(*in.DefaultStyle)
		if err != nil {
			return nil, err
		}
		shared.TrackOptional(changes, "defaultStyle", styleValue(s.props.DefaultStyle), styleValue(st))
		c.props.DefaultStyle = st
	}

	if changes.Empty() {
		return c, nil
	}
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewUpdatedEvent(s.props.ID.Value(), UpdatedData{Changes: changes}))
	return c, nil
}

func (s *Store) UpdateSettings(patch SettingsPatch) (*Store, error) {
	next, err := s.props.Settings.Apply(patch)
	if err != nil {
		return nil, err
	}
	changes := shared.Changes{}
	prev := s.props.Settings
	shared.Track(changes, "defaultAspectRatio", prev.DefaultAspectRatio, next.DefaultAspectRatio)
	shared.Track(changes, "defaultImageCount", prev.DefaultImageCount, next.DefaultImageCount)
	shared.Track(changes, "watermarkEnabled", prev.WatermarkEnabled, next.WatermarkEnabled)

	c := s.copy()
	if changes.Empty() {
		return c, nil
	}
	c.props.Settings = next
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewSettingsUpdatedEvent(s.props.ID.Value(), SettingsUpdatedData{Changes: changes}))
	return c, nil
}

// SetLogo points the store logo at assetID.
func (s *Store) SetLogo(assetID string) (*Store, error) {
	id, err := NewID("logoAssetId", assetID)
	if err != nil {
		return nil, err
	}
	return s.changeLogo(&id), nil
}

func (s *Store) RemoveLogo() *Store {
	return s.changeLogo(nil)
}

func (s *Store) changeLogo(id *shared.ID) *Store {
	c := s.copy()
	prev, next := idValue(s.props.LogoAssetID), idValue(id)
	if (prev == nil && next == nil) || (prev != nil && next != nil && *prev == *next) {
		return c
	}
	c.props.LogoAssetID = id
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewLogoUpdatedEvent(s.props.ID.Value(), LogoUpdatedData{
		PreviousLogoAssetID: prev,
		LogoAssetID:         next,
	}))
	return c
}

// UpdateStatus moves the store to status. The transition table is the only
// gate; reason is carried on the event.
func (s *Store) UpdateStatus(status Status, reason string) (*Store, error) {
	if !IsValidTransition(s.props.Status, status) {
		return nil, NewInvalidTransitionError(s.props.Status, status)
	}
	c := s.copy()
	c.props.Status = status
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewStatusChangedEvent(s.props.ID.Value(), StatusChangedData{
		From:   s.props.Status,
		To:     status,
		Reason: strings.TrimSpace(reason),
	}))
	return c, nil
}

func (s *Store) Suspend(reason string) (*Store, error) { return s.UpdateStatus(StatusSuspended, reason) }
func (s *Store) Activate() (*Store, error)             { return s.UpdateStatus(StatusActive, "") }
func (s *Store) Deactivate() (*Store, error)           { return s.UpdateStatus(StatusInactive, "") }

// Delete soft-deletes the store. Deleting again re-stamps deletedAt.
func (s *Store) Delete() *Store {
	now := shared.Now()
	c := s.copy()
	c.props.DeletedAt = &now
	c.props.UpdatedAt = now
	c.events = c.events.Record(NewDeletedEvent(s.props.ID.Value(), DeletedData{
		OwnerID:   s.props.OwnerID.Value(),
		DeletedAt: now,
	}))
	return c
}

func (s *Store) Restore() *Store {
	c := s.copy()
	if s.props.DeletedAt == nil {
		return c
	}
	c.props.DeletedAt = nil
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewRestoredEvent(s.props.ID.Value(), RestoredData{OwnerID: s.props.OwnerID.Value()}))
	return c
}

// EnsureOwnedBy fails with an owner-mismatch error unless userID owns the store.
func (s *Store) EnsureOwnedBy(userID string) error {
	if s.props.OwnerID.Value() != userID {
		return NewOwnerMismatchError(s.props.ID.Value(), userID)
	}
	return nil
}

// EnsureOperational fails when the store cannot accept new work.
func (s *Store) EnsureOperational(operation string) error {
	switch {
	case s.IsDeleted():
		return NewOperationNotAllowedError(operation, "store is deleted")
	case s.props.Status == StatusSuspended:
		return NewSuspendedError(s.props.ID.Value())
	case s.props.Status != StatusActive:
		return NewInvalidStatusError(s.props.Status, operation)
	}
	return nil
}

func (s *Store) ID() shared.ID        { return s.props.ID }
func (s *Store) OwnerID() shared.ID   { return s.props.OwnerID }
func (s *Store) Name() Name           { return s.props.Name }
func (s *Store) Status() Status       { return s.props.Status }
func (s *Store) Settings() Settings   { return s.props.Settings }
func (s *Store) CreatedAt() time.Time { return s.props.CreatedAt }
func (s *Store) UpdatedAt() time.Time { return s.props.UpdatedAt }
func (s *Store) IsActive() bool       { return s.props.Status == StatusActive }
func (s *Store) IsSuspended() bool    { return s.props.Status == StatusSuspended }
func (s *Store) IsDeleted() bool      { return s.props.DeletedAt != nil }

func (s *Store) Description() *Description   { return shared.ClonePtr(s.props.Description) }
func (s *Store) DefaultStyle() *DefaultStyle { return shared.ClonePtr(s.props.DefaultStyle) }
func (s *Store) LogoAssetID() *shared.ID     { return shared.ClonePtr(s.props.LogoAssetID) }
func (s *Store) DeletedAt() *time.Time       { return shared.ClonePtr(s.props.DeletedAt) }

func (s *Store) DomainEvents() []shared.Event { return s.events.Events() }

func (s *Store) ClearDomainEvents() *Store {
	c := s.copy()
	c.events = shared.EventRecorder{}
	return c
}

func (s *Store) Equals(other *Store) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.props.ID.Equals(other.props.ID)
}

func descriptionValue(d *Description) *string {
	if d == nil {
		return nil
	}
	return shared.Ptr(d.Value())
}

func styleValue(s *DefaultStyle) *string {
	if s == nil {
		return nil
	}
	return shared.Ptr(s.Value())
}

func idValue(id *shared.ID) *string {
	if id == nil {
		return nil
	}
	return shared.Ptr(id.Value())
}
