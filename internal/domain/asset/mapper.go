package asset

import (
	"maps"
	"time"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Record is the persistence shape of an asset. Metadata is never nil in a
// stored record (the column is NOT NULL); ToDomain reads a nil map as empty.
type Record struct {
	ID            string         `json:"id" db:"id"`
	StoreID       string         `json:"store_id" db:"store_id"`
	Type          string         `json:"type" db:"type"`
	Category      string         `json:"category" db:"category"`
	Filename      string         `json:"filename" db:"filename"`
	MimeType      string         `json:"mime_type" db:"mime_type"`
	SizeBytes     int64          `json:"size_bytes" db:"size_bytes"`
	StoragePath   string         `json:"storage_path" db:"storage_path"`
	CdnURL        *string        `json:"cdn_url" db:"cdn_url"`
	ThumbnailURL  *string        `json:"thumbnail_url" db:"thumbnail_url"`
	Metadata      map[string]any `json:"metadata" db:"metadata"`
	UploadedBy    string         `json:"uploaded_by" db:"uploaded_by"`
	Status        string         `json:"status" db:"status"`
	FailureReason *string        `json:"failure_reason" db:"failure_reason"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time     `json:"deleted_at" db:"deleted_at"`
}

// ToDomain rebuilds an asset from r, re-running every value object check.
func ToDomain(r Record) (*Asset, error) {
	if r.Metadata == nil {
		r.Metadata = map[string]any{}
	}
	id, err := NewID("id", r.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := NewID("storeId", r.StoreID)
	if err != nil {
		return nil, err
	}
	uploadedBy, err := NewID("uploadedBy", r.UploadedBy)
	if err != nil {
		return nil, err
	}
	if !IsValidType(r.Type) {
		return nil, NewValidationError("type", r.Type, []string{"must be one of: " + string(TypeImage)})
	}
	category, err := ParseCategory(r.Category)
	if err != nil {
		return nil, err
	}
	status, err := ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	filename, err := NewFilename(r.Filename)
	if err != nil {
		return nil, err
	}
	mimeType, err := NewMimeType(r.MimeType)
	if err != nil {
		return nil, err
	}
	path, err := NewStoragePath(r.StoragePath)
	if err != nil {
		return nil, err
	}
	return Reconstitute(Props{
		ID:            id,
		StoreID:       storeID,
		Type:          Type(r.Type),
		Category:      category,
		Filename:      filename,
		MimeType:      mimeType,
		SizeBytes:     r.SizeBytes,
		StoragePath:   path,
		CdnURL:        shared.ClonePtr(r.CdnURL),
		ThumbnailURL:  shared.ClonePtr(r.ThumbnailURL),
		Metadata:      maps.Clone(r.Metadata),
		UploadedBy:    uploadedBy,
		Status:        status,
		FailureReason: shared.ClonePtr(r.FailureReason),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		DeletedAt:     shared.ClonePtr(r.DeletedAt),
	})
}

// ToPersistence flattens a into its persistence shape.
func ToPersistence(a *Asset) Record {
	p := a.props
	metadata := maps.Clone(p.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return Record{
		ID:            p.ID.Value(),
		StoreID:       p.StoreID.Value(),
		Type:          string(p.Type),
		Category:      string(p.Category),
		Filename:      p.Filename.Value(),
		MimeType:      p.MimeType.Value(),
		SizeBytes:     p.SizeBytes,
		StoragePath:   p.StoragePath.Value(),
		CdnURL:        shared.ClonePtr(p.CdnURL),
		ThumbnailURL:  shared.ClonePtr(p.ThumbnailURL),
		Metadata:      metadata,
		UploadedBy:    p.UploadedBy.Value(),
		Status:        string(p.Status),
		FailureReason: shared.ClonePtr(p.FailureReason),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		DeletedAt:     shared.ClonePtr(p.DeletedAt),
	}
}
