package asset

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/pkg/validation"
)

// MaxSizeBytes is the largest accepted upload.
const MaxSizeBytes int64 = 10 << 20

// NewID validates raw as an identifier for field.
func NewID(field, raw string) (shared.ID, error) {
	id, violations := shared.ParseID(raw)
	if len(violations) > 0 {
		return shared.ID{}, NewValidationError(field, raw, violations)
	}
	return id, nil
}

// Filename is a storage-safe file name with an extension.
type Filename struct {
	value string
}

func NewFilename(raw string) (Filename, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "min=1", "max=255", "filename", "fileext"); len(violations) > 0 {
		return Filename{}, NewValidationError("filename", raw, violations)
	}
	return Filename{value: v}, nil
}

func (f Filename) Value() string                { return f.value }
func (f Filename) String() string               { return f.value }
func (f Filename) Equals(other Filename) bool   { return f.value == other.value }
func (f Filename) MarshalJSON() ([]byte, error) { return json.Marshal(f.value) }

// Extension is the lower-cased text after the last dot.
func (f Filename) Extension() string {
	i := strings.LastIndex(f.value, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(f.value[i+1:])
}

var mimeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

var allowedMimeTypes = []string{"image/jpeg", "image/png", "image/webp"}

// AllowedMimeTypes lists the accepted upload types.
func AllowedMimeTypes() []string { return slices.Clone(allowedMimeTypes) }

// MimeType is an allow-listed image content type.
type MimeType struct {
	value string
}

func NewMimeType(raw string) (MimeType, error) {
	v := strings.TrimSpace(raw)
	rule := "oneof=" + strings.Join(allowedMimeTypes, " ")
	if violations := validation.Violations(v, rule); len(violations) > 0 {
		return MimeType{}, NewValidationError("mimeType", raw, violations)
	}
	return MimeType{value: v}, nil
}

func (m MimeType) Value() string                { return m.value }
func (m MimeType) String() string               { return m.value }
func (m MimeType) Equals(other MimeType) bool   { return m.value == other.value }
func (m MimeType) MarshalJSON() ([]byte, error) { return json.Marshal(m.value) }

// Extension is the canonical file extension for the type.
func (m MimeType) Extension() string { return mimeExtensions[m.value] }

var storagePathPattern = regexp.MustCompile(`^stores/([a-zA-Z0-9_-]+)/([a-zA-Z0-9_-]+)/([a-zA-Z0-9_-]+)/([a-zA-Z0-9._-]+)$`)

// StoragePath is the object key stores/{storeId}/{category}/{assetId}/{filename}.
type StoragePath struct {
	value    string
	storeID  string
	category string
	assetID  string
	filename string
}

func NewStoragePath(raw string) (StoragePath, error) {
	v := strings.TrimSpace(raw)
	violations := validation.Violations(v, "min=1", "max=1024")
	m := storagePathPattern.FindStringSubmatch(v)
	if m == nil {
		violations = append(violations, "must match stores/{storeId}/{category}/{assetId}/{filename}")
	}
	if len(violations) > 0 {
		return StoragePath{}, NewValidationError("storagePath", raw, violations)
	}
	return StoragePath{value: v, storeID: m[1], category: m[2], assetID: m[3], filename: m[4]}, nil
}

// BuildStoragePath assembles the composite path and validates it.
func BuildStoragePath(storeID, category, assetID, filename string) (StoragePath, error) {
	return NewStoragePath(fmt.Sprintf("stores/%s/%s/%s/%s", storeID, category, assetID, filename))
}

func (p StoragePath) Value() string                 { return p.value }
func (p StoragePath) String() string                { return p.value }
func (p StoragePath) Equals(other StoragePath) bool { return p.value == other.value }
func (p StoragePath) MarshalJSON() ([]byte, error)  { return json.Marshal(p.value) }

func (p StoragePath) StoreID() string  { return p.storeID }
func (p StoragePath) Category() string { return p.category }
func (p StoragePath) AssetID() string  { return p.assetID }
func (p StoragePath) Filename() string { return p.filename }

func validateURL(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "url", "max=2048"); len(violations) > 0 {
		return "", NewValidationError(field, raw, violations)
	}
	return v, nil
}

func validateReason(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "min=1", "max=1000"); len(violations) > 0 {
		return "", NewValidationError("failureReason", raw, violations)
	}
	return v, nil
}
