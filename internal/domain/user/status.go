package user

import (
	"slices"
	"strings"
)

// Status is the account state of a user.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

var allStatuses = []Status{StatusActive, StatusInactive, StatusSuspended}

var transitions = map[Status][]Status{
	StatusActive:    {StatusInactive, StatusSuspended},
	StatusInactive:  {StatusActive},
	StatusSuspended: {StatusActive},
}

var statusLabels = map[Status]string{
	StatusActive:    "Active",
	StatusSuspended: "Suspended",
	StatusInactive:  "Inactive",
}

func AllStatuses() []Status { return slices.Clone(allStatuses) }

func IsValidStatus(raw string) bool {
	return slices.Contains(allStatuses, Status(raw))
}

func ParseStatus(raw string) (Status, error) {
	if !IsValidStatus(raw) {
		names := make([]string, len(allStatuses))
		for i, s := range allStatuses {
			names[i] = string(s)
		}
		return "", NewValidationError("status", raw, []string{"must be one of: " + strings.Join(names, ", ")})
	}
	return Status(raw), nil
}

// ValidTransitionsFrom lists the statuses reachable from s in one step.
func ValidTransitionsFrom(s Status) []Status {
	return slices.Clone(transitions[s])
}

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
