package shared

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/fashion-studio/pkg/validation"
)

// IDRules are the rules every entity identifier satisfies.
var IDRules = []string{"min=1", "max=255", "identifier"}

// ID is the identifier value object shared by all contexts.
type ID struct {
	value string
}

// ParseID trims raw and validates it, returning the violated rules on failure.
// Contexts wrap the violations into their own validation error.
func ParseID(raw string) (ID, []string) {
	v := strings.TrimSpace(raw)
	if violations := validation.Violations(v, IDRules...); len(violations) > 0 {
		return ID{}, violations
	}
	return ID{value: v}, nil
}

// GenerateID returns a fresh random identifier.
func GenerateID() ID {
	return ID{value: uuid.NewString()}
}

func (id ID) Value() string  { return id.value }
func (id ID) String() string { return id.value }
func (id ID) IsZero() bool   { return id.value == "" }

func (id ID) Equals(other ID) bool { return id.value == other.value }

func (id ID) MarshalJSON() ([]byte, error) { return json.Marshal(id.value) }
