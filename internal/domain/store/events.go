package store

import (
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

const AggregateType = "Store"

const (
	EventCreated         shared.EventType = "StoreCreated"
	EventUpdated         shared.EventType = "StoreUpdated"
	EventSettingsUpdated shared.EventType = "StoreSettingsUpdated"
	EventLogoUpdated     shared.EventType = "StoreLogoUpdated"
	EventStatusChanged   shared.EventType = "StoreStatusChanged"
	EventDeleted         shared.EventType = "StoreDeleted"
	EventRestored        shared.EventType = "StoreRestored"
)

type CreatedData struct {
	OwnerID  string   `json:"owner_id"`
	Name     string   `json:"name"`
	Settings Settings `json:"settings"`
}

type UpdatedData struct {
	Changes shared.Changes `json:"changes"`
}

type SettingsUpdatedData struct {
	Changes shared.Changes `json:"changes"`
}

type LogoUpdatedData struct {
	PreviousLogoAssetID *string `json:"previous_logo_asset_id"`
	LogoAssetID         *string `json:"logo_asset_id"`
}

type StatusChangedData struct {
	From   Status `json:"from"`
	To     Status `json:"to"`
	Reason string `json:"reason,omitempty"`
}

type DeletedData struct {
	OwnerID   string    `json:"owner_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

type RestoredData struct {
	OwnerID string `json:"owner_id"`
}

func NewCreatedEvent(storeID string, data CreatedData) shared.Event {
	return shared.NewEvent(EventCreated, AggregateType, storeID, data)
}

func NewUpdatedEvent(storeID string, data UpdatedData) shared.Event {
	return shared.NewEvent(EventUpdated, AggregateType, storeID, data)
}

func NewSettingsUpdatedEvent(storeID string, data SettingsUpdatedData) shared.Event {
	return shared.NewEvent(EventSettingsUpdated, AggregateType, storeID, data)
}

func NewLogoUpdatedEvent(storeID string, data LogoUpdatedData) shared.Event {
	return shared.NewEvent(EventLogoUpdated, AggregateType, storeID, data)
}

func NewStatusChangedEvent(storeID string, data StatusChangedData) shared.Event {
	return shared.NewEvent(EventStatusChanged, AggregateType, storeID, data)
}

func NewDeletedEvent(storeID string, data DeletedData) shared.Event {
	return shared.NewEvent(EventDeleted, AggregateType, storeID, data)
}

func NewRestoredEvent(storeID string, data RestoredData) shared.Event {
	return shared.NewEvent(EventRestored, AggregateType, storeID, data)
}
