package model

import (
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

const AggregateType = "Model"

const (
	EventCreated               shared.EventType = "ModelCreated"
	EventUpdated               shared.EventType = "ModelUpdated"
	EventCalibrationStarted    shared.EventType = "ModelCalibrationStarted"
	EventCalibrationImageAdded shared.EventType = "ModelCalibrationImageAdded"
	EventCalibrationApproved   shared.EventType = "ModelCalibrationApproved"
	EventCalibrationRejected   shared.EventType = "ModelCalibrationRejected"
	EventCalibrationRetried    shared.EventType = "ModelCalibrationRetried"
	EventArchived              shared.EventType = "ModelArchived"
	EventDeleted               shared.EventType = "ModelDeleted"
	EventRestored              shared.EventType = "ModelRestored"
)

type CreatedData struct {
	StoreID           string   `json:"store_id"`
	Name              string   `json:"name"`
	Prompt            *string  `json:"prompt,omitempty"`
	ReferenceImageIDs []string `json:"reference_image_ids"`
}

type UpdatedData struct {
	Changes shared.Changes `json:"changes"`
}

type CalibrationStartedData struct {
	StoreID           string   `json:"store_id"`
	ReferenceImageIDs []string `json:"reference_image_ids"`
}

type CalibrationImageAddedData struct {
	StoreID    string `json:"store_id"`
	AssetID    string `json:"asset_id"`
	ImageCount int    `json:"image_count"`
}

type CalibrationApprovedData struct {
	StoreID           string `json:"store_id"`
	LockedIdentityURL string `json:"locked_identity_url"`
}

type CalibrationRejectedData struct {
	StoreID string `json:"store_id"`
	Reason  string `json:"reason"`
}

type CalibrationRetriedData struct {
	StoreID       string `json:"store_id"`
	PreviousError string `json:"previous_error,omitempty"`
}

type ArchivedData struct {
	StoreID string `json:"store_id"`
}

type DeletedData struct {
	StoreID   string    `json:"store_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

type RestoredData struct {
	StoreID string `json:"store_id"`
}

func NewCreatedEvent(modelID string, data CreatedData) shared.Event {
	return shared.NewEvent(EventCreated, AggregateType, modelID, data)
}

func NewUpdatedEvent(modelID string, data UpdatedData) shared.Event {
	return shared.NewEvent(EventUpdated, AggregateType, modelID, data)
}

func NewCalibrationStartedEvent(modelID string, data CalibrationStartedData) shared.Event {
	return shared.NewEvent(EventCalibrationStarted, AggregateType, modelID, data)
}

func NewCalibrationImageAddedEvent(modelID string, data CalibrationImageAddedData) shared.Event {
	return shared.NewEvent(EventCalibrationImageAdded, AggregateType, modelID, data)
}

func NewCalibrationApprovedEvent(modelID string, data CalibrationApprovedData) shared.Event {
	return shared.NewEvent(EventCalibrationApproved, AggregateType, modelID, data)
}

func NewCalibrationRejectedEvent(modelID string, data CalibrationRejectedData) shared.Event {
	return shared.NewEvent(EventCalibrationRejected, AggregateType, modelID, data)
}

func NewCalibrationRetriedEvent(modelID string, data CalibrationRetriedData) shared.Event {
	return shared.NewEvent(EventCalibrationRetried, AggregateType, modelID, data)
}

func NewArchivedEvent(modelID string, data ArchivedData) shared.Event {
	return shared.NewEvent(EventArchived, AggregateType, modelID, data)
}

func NewDeletedEvent(modelID string, data DeletedData) shared.Event {
	return shared.NewEvent(EventDeleted, AggregateType, modelID, data)
}

func NewRestoredEvent(modelID string, data RestoredData) shared.Event {
	return shared.NewEvent(EventRestored, AggregateType, modelID, data)
}
