package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotifications(t *testing.T) {
	brand := Branding{AppName: "Fashion Studio", CompanyName: "Nova Labs", DashboardURL: "https://app.example/"}
	at := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		data    NotificationData
		subject string
		text    string
	}{
		{
			name: CalibrationApproved,
			data: NewNotificationData(brand, CalibrationApproved, WithTime(at),
				WithStore("store_1", "Atelier", "Rin"), WithSubject("model_1", "Mara"),
				WithIdentityURL("https://cdn.example/id.png")),
			subject: `[Fashion Studio] Model "Mara" is ready`,
			text:    "https://app.example/stores/store_1/models/model_1",
		},
		{
			name: CalibrationRejected,
			data: NewNotificationData(brand, CalibrationRejected, WithTime(at),
				WithStore("store_1", "Atelier", ""), WithSubject("model_1", "Mara"), WithReason(" identity drift ")),
			subject: `[Fashion Studio] Calibration of "Mara" was rejected`,
			text:    "Reason: identity drift",
		},
		{
			name: AssetFailed,
			data: NewNotificationData(brand, AssetFailed, WithTime(at),
				WithStore("store_1", "Atelier", "Rin"), WithSubject("asset_1", "dress.png")),
			subject: "[Fashion Studio] Upload of dress.png failed",
			text:    "Reason: unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, text, html, err := Render(tt.name, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, subject)
			assert.Contains(t, text, tt.text)
			assert.Contains(t, text, "04 March 2026, 10:30")
			assert.Contains(t, html, "<!doctype html>")
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("welcome", NotificationData{})
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "there", defaultFn("there", "  "))
	assert.Equal(t, "Rin", defaultFn("there", "Rin"))
	assert.Equal(t, 3, defaultFn(3, 0))
	assert.Equal(t, "x", defaultFn("x", nil))
}
