package asset

import (
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

const AggregateType = "Asset"

const (
	EventUploadRequested   shared.EventType = "AssetUploadRequested"
	EventUploaded          shared.EventType = "AssetUploaded"
	EventProcessingStarted shared.EventType = "AssetProcessingStarted"
	EventReady             shared.EventType = "AssetReady"
	EventFailed            shared.EventType = "AssetFailed"
	EventUploadRetried     shared.EventType = "AssetUploadRetried"
	EventMetadataUpdated   shared.EventType = "AssetMetadataUpdated"
	EventDeleted           shared.EventType = "AssetDeleted"
	EventRestored          shared.EventType = "AssetRestored"
)

type UploadRequestedData struct {
	StoreID     string   `json:"store_id"`
	Category    Category `json:"category"`
	Filename    string   `json:"filename"`
	MimeType    string   `json:"mime_type"`
	SizeBytes   int64    `json:"size_bytes"`
	StoragePath string   `json:"storage_path"`
	UploadedBy  string   `json:"uploaded_by"`
}

type UploadedData struct {
	StoreID   string `json:"store_id"`
	SizeBytes int64  `json:"size_bytes"`
}

type ProcessingStartedData struct {
	StoreID string `json:"store_id"`
}

type ReadyData struct {
	StoreID      string  `json:"store_id"`
	CdnURL       string  `json:"cdn_url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type FailedData struct {
	StoreID        string `json:"store_id"`
	PreviousStatus Status `json:"previous_status"`
	Reason         string `json:"reason"`
	UploadedBy     string `json:"uploaded_by"`
	Filename       string `json:"filename"`
}

type UploadRetriedData struct {
	StoreID       string `json:"store_id"`
	PreviousError string `json:"previous_error,omitempty"`
}

type MetadataUpdatedData struct {
	Changes shared.Changes `json:"changes"`
}

type DeletedData struct {
	StoreID   string    `json:"store_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

type RestoredData struct {
	StoreID string `json:"store_id"`
}

func NewUploadRequestedEvent(assetID string, data UploadRequestedData) shared.Event {
	return shared.NewEvent(EventUploadRequested, AggregateType, assetID, data)
}

func NewUploadedEvent(assetID string, data UploadedData) shared.Event {
	return shared.NewEvent(EventUploaded, AggregateType, assetID, data)
}

func NewProcessingStartedEvent(assetID string, data ProcessingStartedData) shared.Event {
	return shared.NewEvent(EventProcessingStarted, AggregateType, assetID, data)
}

func NewReadyEvent(assetID string, data ReadyData) shared.Event {
	return shared.NewEvent(EventReady, AggregateType, assetID, data)
}

func NewFailedEvent(assetID string, data FailedData) shared.Event {
	return shared.NewEvent(EventFailed, AggregateType, assetID, data)
}

func NewUploadRetriedEvent(assetID string, data UploadRetriedData) shared.Event {
	return shared.NewEvent(EventUploadRetried, AggregateType, assetID, data)
}

func NewMetadataUpdatedEvent(assetID string, data MetadataUpdatedData) shared.Event {
	return shared.NewEvent(EventMetadataUpdated, AggregateType, assetID, data)
}

func NewDeletedEvent(assetID string, data DeletedData) shared.Event {
	return shared.NewEvent(EventDeleted, AggregateType, assetID, data)
}

func NewRestoredEvent(assetID string, data RestoredData) shared.Event {
	return shared.NewEvent(EventRestored, AggregateType, assetID, data)
}
