// Package user models dashboard accounts. Identity comes from an external
// provider; the aggregate keeps the profile and account status.
package user

import (
	"strings"
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

type Props struct {
	ID         shared.ID
	FullName   FullName
	Locale     Locale
	Status     Status
	ExternalID *ExternalID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

type User struct {
	props  Props
	events shared.EventRecorder
}

func Reconstitute(props Props) (*User, error) {
	if props.ID.IsZero() {
		return nil, NewValidationError("id", "", []string{"is required"})
	}
	if !IsValidStatus(string(props.Status)) {
		return nil, NewValidationError("status", string(props.Status), []string{"is not a known status"})
	}
	return &User{props: props}, nil
}

// NewInput creates a user. ID is generated when empty; Locale defaults to
// DefaultLocale.
type NewInput struct {
	ID         string
	FullName   string
	Locale     string
	ExternalID string
}

// New creates an ACTIVE user and records UserCreated.
func New(in NewInput) (*User, error) {
	id := shared.GenerateID()
	if strings.TrimSpace(in.ID) != "" {
		var err error
		if id, err = NewID("id", in.ID); err != nil {
			return nil, err
		}
	}
	fullName, err := NewFullName(in.FullName)
	if err != nil {
		return nil, err
	}
	rawLocale := in.Locale
	if strings.TrimSpace(rawLocale) == "" {
		rawLocale = DefaultLocale
	}
	locale, err := NewLocale(rawLocale)
	if err != nil {
		return nil, err
	}
	var externalID *ExternalID
	if strings.TrimSpace(in.ExternalID) != "" {
		e, err := NewExternalID(in.ExternalID)
		if err != nil {
			return nil, err
		}
		externalID = &e
	}

	now := shared.Now()
	u := &User{props: Props{
		ID:         id,
		FullName:   fullName,
		Locale:     locale,
		Status:     StatusActive,
		ExternalID: externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}}
	u.events = u.events.Record(NewCreatedEvent(id.Value(), CreatedData{
		FullName:   fullName.Value(),
		Locale:     locale.Value(),
		ExternalID: externalValue(externalID),
	}))
	return u, nil
}

func (u *User) copy() *User {
	return &User{props: u.props, events: u.events}
}

func (u *User) updated(field string, from, to string, apply func(*Props)) *User {
	c := u.copy()
	if from == to {
		return c
	}
	apply(&c.props)
	c.props.UpdatedAt = shared.Now()
	changes := shared.Changes{}
	shared.Track(changes, field, from, to)
	c.events = c.events.Record(NewUpdatedEvent(u.props.ID.Value(), UpdatedData{Changes: changes}))
	return c
}

func (u *User) UpdateFullName(raw string) (*User, error) {
	name, err := NewFullName(raw)
	if err != nil {
		return nil, err
	}
	return u.updated("fullName", u.props.FullName.Value(), name.Value(), func(p *Props) { p.FullName = name }), nil
}

func (u *User) UpdateLocale(raw string) (*User, error) {
	locale, err := NewLocale(raw)
	if err != nil {
		return nil, err
	}
	return u.updated("locale", u.props.Locale.Value(), locale.Value(), func(p *Props) { p.Locale = locale }), nil
}

// UpdateStatus moves the user to status via the transition table.
func (u *User) UpdateStatus(status Status) (*User, error) {
	if !IsValidTransition(u.props.Status, status) {
		return nil, NewInvalidTransitionError(u.props.Status, status)
	}
	c := u.copy()
	c.props.Status = status
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewStatusChangedEvent(u.props.ID.Value(), StatusChangedData{From: u.props.Status, To: status}))
	return c, nil
}

// Delete soft-deletes the user. Deleting again re-stamps deletedAt.
func (u *User) Delete() *User {
	now := shared.Now()
	c := u.copy()
	c.props.DeletedAt = &now
	c.props.UpdatedAt = now
	c.events = c.events.Record(NewDeletedEvent(u.props.ID.Value(), DeletedData{DeletedAt: now}))
	return c
}

func (u *User) Restore() *User {
	c := u.copy()
	if u.props.DeletedAt == nil {
		return c
	}
	c.props.DeletedAt = nil
	c.props.UpdatedAt = shared.Now()
	c.events = c.events.Record(NewRestoredEvent(u.props.ID.Value()))
	return c
}

// EnsureCanAct fails unless the user is live and ACTIVE.
func (u *User) EnsureCanAct(operation string) error {
	if u.IsDeleted() {
		return NewOperationNotAllowedError(operation, "user is deleted")
	}
	if u.props.Status != StatusActive {
		return NewInvalidStatusError(u.props.Status, operation)
	}
	return nil
}

func (u *User) ID() shared.ID           { return u.props.ID }
func (u *User) FullName() FullName      { return u.props.FullName }
func (u *User) Locale() Locale          { return u.props.Locale }
func (u *User) Status() Status          { return u.props.Status }
func (u *User) ExternalID() *ExternalID { return shared.ClonePtr(u.props.ExternalID) }
func (u *User) CreatedAt() time.Time    { return u.props.CreatedAt }
func (u *User) UpdatedAt() time.Time    { return u.props.UpdatedAt }
func (u *User) DeletedAt() *time.Time   { return shared.ClonePtr(u.props.DeletedAt) }
func (u *User) IsDeleted() bool         { return u.props.DeletedAt != nil }
func (u *User) IsActive() bool          { return u.props.Status == StatusActive }

func (u *User) DomainEvents() []shared.Event { return u.events.Events() }

func (u *User) ClearDomainEvents() *User {
	c := u.copy()
	c.events = shared.EventRecorder{}
	return c
}

func (u *User) Equals(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.props.ID.Equals(other.props.ID)
}

func externalValue(e *ExternalID) *string {
	if e == nil {
		return nil
	}
	return shared.Ptr(e.Value())
}
