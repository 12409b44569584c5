package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*NotificationData)

func WithTime(t time.Time) Option {
	return func(d *NotificationData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithStore(id, name, owner string) Option {
	return func(d *NotificationData) {
		d.StoreID = id
		d.StoreName = name
		d.OwnerName = owner
	}
}

func WithSubject(id, name string) Option {
	return func(d *NotificationData) {
		d.SubjectID = id
		d.SubjectName = name
	}
}

func WithReason(reason string) Option {
	return func(d *NotificationData) { d.Reason = strings.TrimSpace(reason) }
}

func WithIdentityURL(url string) Option {
	return func(d *NotificationData) { d.IdentityURL = url }
}

// Branding holds the fields every notification shares.
type Branding struct {
	AppName      string
	CompanyName  string
	SupportURL   string
	DashboardURL string
}

func NewNotificationData(b Branding, typ string, opts ...Option) NotificationData {
	d := NotificationData{
		Type:         typ,
		AppName:      b.AppName,
		CompanyName:  b.CompanyName,
		SupportURL:   b.SupportURL,
		DashboardURL: strings.TrimRight(b.DashboardURL, "/"),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
