package worker

import (
	"context"
	"fmt"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/messaging"
)

// ModelEvents are the events after which a model's index document is rebuilt.
var ModelEvents = []shared.EventType{
	model.EventCreated,
	model.EventUpdated,
	model.EventCalibrationStarted,
	model.EventCalibrationApproved,
	model.EventCalibrationRejected,
	model.EventCalibrationRetried,
	model.EventArchived,
	model.EventDeleted,
	model.EventRestored,
}

// ModelProjector reloads the model named by an event and writes its current
// state to the index, so replays and out-of-order delivery converge.
type ModelProjector struct {
	Models  model.Repository
	Indexer application.ModelIndexer
}

func (p *ModelProjector) Handle(ctx context.Context, m messaging.Message) error {
	if m.AggregateType != model.AggregateType {
		return messaging.ErrSkip
	}
	found, err := p.Models.FindByID(ctx, m.AggregateID)
	if err != nil {
		return fmt.Errorf("load model %s: %w", m.AggregateID, err)
	}
	if found == nil {
		return p.Indexer.Remove(ctx, m.AggregateID)
	}
	return p.Indexer.Index(ctx, found)
}
