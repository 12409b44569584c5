// Package worker reacts to domain events consumed from the broker: it keeps
// the model search index current and emails store owners about outcomes
// they need to act on.
package worker

import (
	"context"
	"errors"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/messaging"
)

// Router fans one message out to every handler registered for its type.
// Unrouted types are acknowledged and ignored.
type Router struct {
	handlers map[shared.EventType][]messaging.Handler
}

func NewRouter() *Router {
	return &Router{handlers: map[shared.EventType][]messaging.Handler{}}
}

func (r *Router) On(h messaging.Handler, types ...shared.EventType) *Router {
	for _, t := range types {
		r.handlers[t] = append(r.handlers[t], h)
	}
	return r
}

// Handle runs all handlers even when one fails. The message is skipped only
// when every failing handler asked for it.
func (r *Router) Handle(ctx context.Context, m messaging.Message) error {
	var failed []error
	skipped := false
	for _, h := range r.handlers[m.EventType] {
		err := h(ctx, m)
		switch {
		case err == nil:
		case errors.Is(err, messaging.ErrSkip):
			skipped = true
		default:
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return errors.Join(failed...)
	}
	if skipped {
		return messaging.ErrSkip
	}
	return nil
}
