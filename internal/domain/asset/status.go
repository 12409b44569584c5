package asset

import (
	"slices"
	"strings"
)

// Status is the upload/processing lifecycle state of an asset.
type Status string

const (
	StatusPendingUpload Status = "PENDING_UPLOAD"
	StatusUploaded      Status = "UPLOADED"
	StatusProcessing    Status = "PROCESSING"
	StatusReady         Status = "READY"
	StatusFailed        Status = "FAILED"
)

var allStatuses = []Status{StatusPendingUpload, StatusUploaded, StatusProcessing, StatusReady, StatusFailed}

// READY is terminal; FAILED may only go back to PENDING_UPLOAD.
var transitions = map[Status][]Status{
	StatusPendingUpload: {StatusUploaded, StatusFailed},
	StatusUploaded:      {StatusProcessing, StatusReady, StatusFailed},
	StatusProcessing:    {StatusReady, StatusFailed},
	StatusReady:         {},
	StatusFailed:        {StatusPendingUpload},
}

var statusLabels = map[Status]string{
	StatusPendingUpload: "Pending upload",
	StatusUploaded:      "Uploaded",
	StatusProcessing:    "Processing",
	StatusReady:         "Ready",
	StatusFailed:        "Failed",
}

func AllStatuses() []Status { return slices.Clone(allStatuses) }

func IsValidStatus(raw string) bool {
	return slices.Contains(allStatuses, Status(raw))
}

// ParseStatus converts raw into a Status or returns a validation error.
func ParseStatus(raw string) (Status, error) {
	if !IsValidStatus(raw) {
		return "", NewValidationError("status", raw, []string{"must be one of: " + joinStatuses(allStatuses)})
	}
	return Status(raw), nil
}

// ValidTransitionsFrom lists the statuses reachable from s in one step.
func ValidTransitionsFrom(s Status) []Status {
	return slices.Clone(transitions[s])
}

// ValidTransitionsTo lists the statuses that can reach s in one step.
func ValidTransitionsTo(s Status) []Status {
	var out []Status
	for _, from := range allStatuses {
		if slices.Contains(transitions[from], s) {
			out = append(out, from)
		}
	}
	return out
}

func IsValidTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func StatusLabel(s Status) string { return s.Label() }

func (s Status) IsTerminal() bool { return len(transitions[s]) == 0 }

func joinStatuses(ss []Status) string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Type is the media type of an asset. Only images are supported.
type Type string

const TypeImage Type = "IMAGE"

func IsValidType(raw string) bool { return Type(raw) == TypeImage }

// Category classifies what an asset is used for.
type Category string

const (
	CategoryModelReference Category = "MODEL_REFERENCE"
	CategoryGarment        Category = "GARMENT"
	CategoryGenerated      Category = "GENERATED"
	CategoryCalibration    Category = "CALIBRATION"
	CategoryStoreLogo      Category = "STORE_LOGO"
)

var categorySegments = map[Category]string{
	CategoryModelReference: "model-references",
	CategoryGarment:        "garments",
	CategoryGenerated:      "generated",
	CategoryCalibration:    "calibration",
	CategoryStoreLogo:      "logos",
}

func AllCategories() []Category {
	return []Category{CategoryModelReference, CategoryGarment, CategoryGenerated, CategoryCalibration, CategoryStoreLogo}
}

func IsValidCategory(raw string) bool {
	_, ok := categorySegments[Category(raw)]
	return ok
}

// ParseCategory converts raw into a Category or returns a validation error.
func ParseCategory(raw string) (Category, error) {
	if !IsValidCategory(raw) {
		names := make([]string, 0, len(categorySegments))
		for _, c := range AllCategories() {
			names = append(names, string(c))
		}
		return "", NewValidationError("category", raw, []string{"must be one of: " + strings.Join(names, ", ")})
	}
	return Category(raw), nil
}

// PathSegment is the storage folder name used for the category.
func (c Category) PathSegment() string { return categorySegments[c] }

// CategoryFromPathSegment maps a storage folder name back to its category.
func CategoryFromPathSegment(segment string) (Category, bool) {
	for c, s := range categorySegments {
		if s == segment {
			return c, true
		}
	}
	return "", false
}
