package mailer

import (
	"context"
	"fmt"

	"github.com/oksasatya/fashion-studio/pkg/mailer/templates"
)

// Sender delivers one rendered email. *Mailgun satisfies it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// EmailJob is a notification to render with Template and send to To.
type EmailJob struct {
	To       string
	Template string // one of the templates.* names, e.g. "calibration_approved"
	Data     templates.NotificationData
}

// Deliver renders job and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	subject, text, html, err := templates.Render(job.Template, job.Data)
	if err != nil {
		return fmt.Errorf("render %s: %w", job.Template, err)
	}
	if err := s.Send(ctx, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send %s to %s: %w", job.Template, job.To, err)
	}
	return nil
}
