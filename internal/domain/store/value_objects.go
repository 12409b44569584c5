package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/pkg/validation"
)

func NewID(field, raw string) (shared.ID, error) {
	id, violations := shared.ParseID(raw)
	if len(violations) > 0 {
		return shared.ID{}, NewValidationError(field, raw, violations)
	}
	return id, nil
}

// Name is the display name of a store.
type Name struct {
	value string
}

func NewName(raw string) (Name, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "min=2", "max=100"); len(violations) > 0 {
		return Name{}, NewValidationError("name", raw, violations)
	}
	return Name{value: v}, nil
}

func (n Name) Value() string                { return n.value }
func (n Name) String() string               { return n.value }
func (n Name) Equals(other Name) bool       { return n.value == other.value }
func (n Name) MarshalJSON() ([]byte, error) { return json.Marshal(n.value) }

// Description is optional free text about a store.
type Description struct {
	value string
}

func NewDescription(raw string) (Description, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "max=500"); len(violations) > 0 {
		return Description{}, NewValidationError("description", raw, violations)
	}
	return Description{value: v}, nil
}

func (d Description) Value() string                 { return d.value }
func (d Description) String() string                { return d.value }
func (d Description) Equals(other Description) bool { return d.value == other.value }
func (d Description) MarshalJSON() ([]byte, error)  { return json.Marshal(d.value) }

// DefaultStyle is the house style applied to generations when none is given.
type DefaultStyle struct {
	value string
}

func NewDefaultStyle(raw string) (DefaultStyle, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "max=200"); len(violations) > 0 {
		return DefaultStyle{}, NewValidationError("defaultStyle", raw, violations)
	}
	return DefaultStyle{value: v}, nil
}

func (s DefaultStyle) Value() string                  { return s.value }
func (s DefaultStyle) String() string                 { return s.value }
func (s DefaultStyle) Equals(other DefaultStyle) bool { return s.value == other.value }
func (s DefaultStyle) MarshalJSON() ([]byte, error)   { return json.Marshal(s.value) }

const (
	DefaultAspectRatio = "4:5"
	DefaultImageCount  = 4
	MinImageCount      = 1
	MaxImageCount      = 8
)

var aspectRatios = []string{"1:1", "4:5", "3:4", "2:3", "9:16", "16:9"}

// AspectRatios lists the supported output aspect ratios.
func AspectRatios() []string { return slices.Clone(aspectRatios) }

// Settings are the generation defaults of a store. Always fully populated.
type Settings struct {
	DefaultAspectRatio string `json:"defaultAspectRatio"`
	DefaultImageCount  int    `json:"defaultImageCount"`
	WatermarkEnabled   bool   `json:"watermarkEnabled"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultAspectRatio: DefaultAspectRatio,
		DefaultImageCount:  DefaultImageCount,
		WatermarkEnabled:   false,
	}
}

// SettingsPatch changes only the non-nil fields.
type SettingsPatch struct {
	DefaultAspectRatio *string
	DefaultImageCount  *int
	WatermarkEnabled   *bool
}

// NewSettings validates every field of s.
func NewSettings(s Settings) (Settings, error) {
	s.DefaultAspectRatio = strings.TrimSpace(s.DefaultAspectRatio)
	violations := validation.Violations(s.DefaultAspectRatio, "aspectratio", "oneof="+strings.Join(aspectRatios, " "))
	if len(violations) > 0 {
		return Settings{}, NewValidationError("settings.defaultAspectRatio", s.DefaultAspectRatio, violations)
	}
	if violations := validation.Violations(s.DefaultImageCount, fmt.Sprintf("min=%d", MinImageCount), fmt.Sprintf("max=%d", MaxImageCount)); len(violations) > 0 {
		return Settings{}, NewValidationError("settings.defaultImageCount", s.DefaultImageCount, violations)
	}
	return s, nil
}

// Apply returns s with p's non-nil fields applied and validated.
func (s Settings) Apply(p SettingsPatch) (Settings, error) {
	if p.DefaultAspectRatio != nil {
		s.DefaultAspectRatio = *p.DefaultAspectRatio
	}
	if p.DefaultImageCount != nil {
		s.DefaultImageCount = *p.DefaultImageCount
	}
	if p.WatermarkEnabled != nil {
		s.WatermarkEnabled = *p.WatermarkEnabled
	}
	return NewSettings(s)
}
