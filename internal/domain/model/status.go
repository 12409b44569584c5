package model

import (
	"slices"
	"strings"
)

// Status is the calibration lifecycle state of a model.
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusCalibrating Status = "CALIBRATING"
	StatusActive      Status = "ACTIVE"
	StatusFailed      Status = "FAILED"
	StatusArchived    Status = "ARCHIVED"
)

var allStatuses = []Status{StatusDraft, StatusCalibrating, StatusActive, StatusFailed, StatusArchived}

// ARCHIVED is terminal. FAILED returns to DRAFT on retry.
var transitions = map[Status][]Status{
	StatusDraft:       {StatusCalibrating},
	StatusCalibrating: {StatusActive, StatusFailed},
	StatusActive:      {StatusArchived},
	StatusFailed:      {StatusDraft},
	StatusArchived:    {},
}

var statusLabels = map[Status]string{
	StatusDraft:       "Draft",
	StatusCalibrating: "Calibrating",
	StatusActive:      "Active",
	StatusFailed:      "Failed",
	StatusArchived:    "Archived",
}

func AllStatuses() []Status { return slices.Clone(allStatuses) }

func IsValidStatus(raw string) bool {
	return slices.Contains(allStatuses, Status(raw))
}

func ParseStatus(raw string) (Status, error) {
	if !IsValidStatus(raw) {
		return "", NewValidationError("status", raw, []string{"must be one of: " + joinStatuses(allStatuses)})
	}
	return Status(raw), nil
}

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

func (s Status) IsTerminal() bool { return len(transitions[s]) == 0 }

func joinStatuses(ss []Status) string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
