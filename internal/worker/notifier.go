package worker

import (
	"context"
	"fmt"

	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/messaging"
	"github.com/oksasatya/fashion-studio/pkg/mailer"
	"github.com/oksasatya/fashion-studio/pkg/mailer/templates"
)

// NotifyEvents are the events that produce an email.
var NotifyEvents = []shared.EventType{
	model.EventCalibrationApproved,
	model.EventCalibrationRejected,
	asset.EventFailed,
}

// Notifier emails the configured recipient when a calibration finishes or an
// upload fails. Users carry no email address, so To is an operations inbox.
type Notifier struct {
	Stores store.Repository
	Users  user.Repository
	Models model.Repository
	Sender mailer.Sender
	To     string
	Brand  templates.Branding
}

func (n *Notifier) Handle(ctx context.Context, m messaging.Message) error {
	var (
		storeID string
		tpl     string
		opts    []templates.Option
	)
	switch m.EventType {
	case model.EventCalibrationApproved:
		var d model.CalibrationApprovedData
		if err := m.Data(&d); err != nil {
			return fmt.Errorf("%w: %v", messaging.ErrSkip, err)
		}
		name, err := n.modelName(ctx, m.AggregateID)
		if err != nil {
			return err
		}
		storeID, tpl = d.StoreID, templates.CalibrationApproved
		opts = append(opts, templates.WithSubject(m.AggregateID, name), templates.WithIdentityURL(d.LockedIdentityURL))
	case model.EventCalibrationRejected:
		var d model.CalibrationRejectedData
		if err := m.Data(&d); err != nil {
			return fmt.Errorf("%w: %v", messaging.ErrSkip, err)
		}
		name, err := n.modelName(ctx, m.AggregateID)
		if err != nil {
			return err
		}
		storeID, tpl = d.StoreID, templates.CalibrationRejected
		opts = append(opts, templates.WithSubject(m.AggregateID, name), templates.WithReason(d.Reason))
	case asset.EventFailed:
		var d asset.FailedData
		if err := m.Data(&d); err != nil {
			return fmt.Errorf("%w: %v", messaging.ErrSkip, err)
		}
		storeID, tpl = d.StoreID, templates.AssetFailed
		opts = append(opts, templates.WithSubject(m.AggregateID, d.Filename), templates.WithReason(d.Reason))
	default:
		return messaging.ErrSkip
	}

	s, err := n.Stores.FindByID(ctx, storeID)
	if err != nil {
		return fmt.Errorf("load store %s: %w", storeID, err)
	}
	if s == nil || s.IsDeleted() {
		return messaging.ErrSkip
	}
	owner := ""
	if u, err := n.Users.FindByID(ctx, s.OwnerID().Value()); err == nil && u != nil {
		owner = u.FullName().Value()
	}
	opts = append(opts, templates.WithStore(storeID, s.Name().Value(), owner), templates.WithTime(m.OccurredOn))

	return mailer.Deliver(ctx, n.Sender, mailer.EmailJob{
		To:       n.To,
		Template: tpl,
		Data:     templates.NewNotificationData(n.Brand, tpl, opts...),
	})
}

func (n *Notifier) modelName(ctx context.Context, id string) (string, error) {
	found, err := n.Models.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load model %s: %w", id, err)
	}
	if found == nil {
		return "", messaging.ErrSkip
	}
	return found.Name().Value(), nil
}
