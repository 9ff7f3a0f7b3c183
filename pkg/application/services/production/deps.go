package production

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/resmng/pkg/domain/repositories"
	"github.com/vsinha/resmng/pkg/infrastructure/events"
)

// Deps bundles the collaborators shared by the admission controller and the scheduler.
type Deps struct {
	Materials   repositories.MaterialRepository
	Products    repositories.ProductRepository
	Queue       *Queue
	Finished    *FinishedStack
	Events      events.EventStore // optional
	Logger      *zap.Logger       // optional
	IDGenerator func() uuid.UUID  // optional
}

func (d Deps) validate() error {
	if d.Materials == nil {
		return errors.New("production: material repository is required")
	}
	if d.Products == nil {
		return errors.New("production: product repository is required")
	}
	if d.Queue == nil {
		return errors.New("production: queue is required")
	}
	if d.Finished == nil {
		return errors.New("production: finished stack is required")
	}
	return nil
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.IDGenerator == nil {
		d.IDGenerator = uuid.New
	}
	return d
}

type publisher struct {
	store  events.EventStore
	logger *zap.Logger
}

func (p publisher) publish(event events.Event) {
	if p.store == nil {
		return
	}
	if err := p.store.AppendEvent(event.StreamID(), event); err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("event_type", event.Type()),
			zap.Error(err),
		)
	}
}
