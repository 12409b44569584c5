package user

import (
	"encoding/json"
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

type FullName struct {
	value string
}

func NewFullName(raw string) (FullName, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "min=1", "max=100", "personname"); len(violations) > 0 {
		return FullName{}, NewValidationError("fullName", raw, violations)
	}
	return FullName{value: v}, nil
}

func (n FullName) Value() string                { return n.value }
func (n FullName) String() string               { return n.value }
func (n FullName) Equals(other FullName) bool   { return n.value == other.value }
func (n FullName) MarshalJSON() ([]byte, error) { return json.Marshal(n.value) }

// DefaultLocale is used when a new user does not state one.
const DefaultLocale = "en"

// Locale is a language tag such as "en" or "en-US".
type Locale struct {
	value string
}

func NewLocale(raw string) (Locale, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "required", "locale"); len(violations) > 0 {
		return Locale{}, NewValidationError("locale", raw, violations)
	}
	return Locale{value: v}, nil
}

func (l Locale) Value() string                { return l.value }
func (l Locale) String() string               { return l.value }
func (l Locale) Equals(other Locale) bool     { return l.value == other.value }
func (l Locale) MarshalJSON() ([]byte, error) { return json.Marshal(l.value) }

// Language is the two-letter language part.
func (l Locale) Language() string {
	lang, _, _ := strings.Cut(l.value, "-")
	return lang
}

// Region is the two-letter region part, empty when absent.
func (l Locale) Region() string {
	_, region, _ := strings.Cut(l.value, "-")
	return region
}

// ExternalID is the subject assigned by the identity provider.
type ExternalID struct {
	value string
}

func NewExternalID(raw string) (ExternalID, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "min=1", "max=255", "nowhitespace"); len(violations) > 0 {
		return ExternalID{}, NewValidationError("externalId", raw, violations)
	}
	return ExternalID{value: v}, nil
}

func (e ExternalID) Value() string                { return e.value }
func (e ExternalID) String() string               { return e.value }
func (e ExternalID) Equals(other ExternalID) bool { return e.value == other.value }
func (e ExternalID) MarshalJSON() ([]byte, error) { return json.Marshal(e.value) }
