package model

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

// newIDList validates every id and rejects duplicates.
func newIDList(field string, raw []string) ([]shared.ID, error) {
	out := make([]shared.ID, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	var violations []string
	for _, r := range raw {
		id, vs := shared.ParseID(r)
		if len(vs) > 0 {
			violations = append(violations, r+": "+strings.Join(vs, ", "))
			continue
		}
		if _, dup := seen[id.Value()]; dup {
			violations = append(violations, id.Value()+": is listed more than once")
			continue
		}
		seen[id.Value()] = struct{}{}
		out = append(out, id)
	}
	if len(violations) > 0 {
		return nil, NewValidationError(field, raw, violations)
	}
	return out, nil
}

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

type Description struct {
	value string
}

func NewDescription(raw string) (Description, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "max=1000"); len(violations) > 0 {
		return Description{}, NewValidationError("description", raw, violations)
	}
	return Description{value: v}, nil
}

func (d Description) Value() string                 { return d.value }
func (d Description) String() string                { return d.value }
func (d Description) Equals(other Description) bool { return d.value == other.value }
func (d Description) MarshalJSON() ([]byte, error)  { return json.Marshal(d.value) }

// Prompt is the text description used to synthesize the model's look.
type Prompt struct {
	value string
}

func NewPrompt(raw string) (Prompt, error) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, "min=1", "max=2000"); len(violations) > 0 {
		return Prompt{}, NewValidationError("prompt", raw, violations)
	}
	return Prompt{value: v}, nil
}

func (p Prompt) Value() string                { return p.value }
func (p Prompt) String() string               { return p.value }
func (p Prompt) Equals(other Prompt) bool     { return p.value == other.value }
func (p Prompt) MarshalJSON() ([]byte, error) { return json.Marshal(p.value) }

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
