package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolations(t *testing.T) {
	tests := []struct {
		name  string
		value any
		rules []string
		want  []string
	}{
		{
			name:  "valid identifier",
			value: "store_01-a",
			rules: []string{"min=1", "max=255", "identifier"},
			want:  nil,
		},
		{
			name:  "empty identifier reports every failed rule",
			value: "",
			rules: []string{"min=1", "max=255", "identifier"},
			want: []string{
				"must be at least 1 characters long",
				"must contain only letters, numbers, underscores and hyphens",
			},
		},
		{
			name:  "filename without extension",
			value: "noext",
			rules: []string{"filename", "fileext"},
			want:  []string{"must have a file extension"},
		},
		{
			name:  "filename with many dots",
			value: "a.b.c.jpg",
			rules: []string{"filename", "fileext"},
			want:  nil,
		},
		{
			name:  "mime type outside allow list",
			value: "application/pdf",
			rules: []string{"oneof=image/jpeg image/png image/webp"},
			want:  []string{"must be one of: image/jpeg, image/png, image/webp"},
		},
		{
			name:  "locale with region",
			value: "en-US",
			rules: []string{"locale"},
			want:  nil,
		},
		{
			name:  "locale lower-case region",
			value: "en-us",
			rules: []string{"locale"},
			want:  []string{"must be a locale such as 'en' or 'en-US'"},
		},
		{
			name:  "numeric range",
			value: 9,
			rules: []string{"gte=1", "lte=8"},
			want:  []string{"must be less than or equal to 8"},
		},
		{
			name:  "whitespace",
			value: "auth0 123",
			rules: []string{"nowhitespace"},
			want:  []string{"must not contain whitespace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Violations(tt.value, tt.rules...))
		})
	}
}

func TestViolations_UnicodeLengthCountsRunes(t *testing.T) {
	assert.Empty(t, Violations("Zoë", "min=3", "max=3"))
	assert.Empty(t, Violations("José-María O'Neil", "personname"))
}

func TestToDetails(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}
	v := validator.New()
	RegisterAliases(v)

	err := v.Struct(payload{})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, map[string]string{"name": "is required"}, details)
	assert.Nil(t, ToDetails(nil))
}

func TestStructViolations(t *testing.T) {
	type lighting struct {
		Intensity int    `json:"intensity" validate:"min=0,max=100"`
		Direction string `json:"direction" validate:"oneof=LEFT RIGHT"`
	}
	assert.Empty(t, StructViolations(lighting{Intensity: 40, Direction: "LEFT"}))
	assert.Equal(t,
		[]string{"intensity: must be at most 100", "direction: must be one of: LEFT, RIGHT"},
		StructViolations(lighting{Intensity: 140, Direction: "UP"}))
}
