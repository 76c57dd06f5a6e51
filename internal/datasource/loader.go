package datasource

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/logger"
)

// Loader runs a Source exactly once and announces the outcome on the bus
type Loader struct {
	source Source
	bus    eventbus.EventBus
	log    *log.Logger

	once    sync.Once
	records []domain.Record
	err     error
}

// NewLoader creates a loader for source. bus may be nil.
func NewLoader(source Source, bus eventbus.EventBus) *Loader {
	return &Loader{
		source: source,
		bus:    bus,
		log:    logger.New("datasource"),
	}
}

// Load fetches the dataset on the first call; later calls return the same result
func (l *Loader) Load(ctx context.Context) ([]domain.Record, error) {
	l.once.Do(func() {
		l.log.Info("loading dataset", "source", l.source.String())
		l.records, l.err = l.source.Load(ctx)
		if l.err != nil {
			l.log.Error("dataset unavailable", "source", l.source.String(), "err", l.err)
			l.publish(eventbus.DatasetFailedEvent{Source: l.source.String(), Err: l.err})
			return
		}
		l.log.Info("dataset loaded", "source", l.source.String(), "records", len(l.records))
		l.publish(eventbus.DatasetLoadedEvent{Source: l.source.String(), Records: l.records})
	})
	return l.records, l.err
}

func (l *Loader) publish(event eventbus.DomainEvent) {
	if l.bus != nil {
		l.bus.Publish(event)
	}
}
