package user

import (
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

const AggregateType = "User"

const (
	EventCreated       shared.EventType = "UserCreated"
	EventUpdated       shared.EventType = "UserUpdated"
	EventStatusChanged shared.EventType = "UserStatusChanged"
	EventDeleted       shared.EventType = "UserDeleted"
	EventRestored      shared.EventType = "UserRestored"
)

type CreatedData struct {
	FullName   string  `json:"full_name"`
	Locale     string  `json:"locale"`
	ExternalID *string `json:"external_id,omitempty"`
}

type UpdatedData struct {
	Changes shared.Changes `json:"changes"`
}

type StatusChangedData struct {
	From Status `json:"from"`
	To   Status `json:"to"`
}

type DeletedData struct {
	DeletedAt time.Time `json:"deleted_at"`
}

type RestoredData struct{}

func NewCreatedEvent(userID string, data CreatedData) shared.Event {
	return shared.NewEvent(EventCreated, AggregateType, userID, data)
}

func NewUpdatedEvent(userID string, data UpdatedData) shared.Event {
	return shared.NewEvent(EventUpdated, AggregateType, userID, data)
}

func NewStatusChangedEvent(userID string, data StatusChangedData) shared.Event {
	return shared.NewEvent(EventStatusChanged, AggregateType, userID, data)
}

func NewDeletedEvent(userID string, data DeletedData) shared.Event {
	return shared.NewEvent(EventDeleted, AggregateType, userID, data)
}

func NewRestoredEvent(userID string) shared.Event {
	return shared.NewEvent(EventRestored, AggregateType, userID, RestoredData{})
}
