package product

import (
	"context"
	"time"

	"go-smartshop/internal/eventpublisher"
	"go-smartshop/internal/eventpublisher/common"
	"go-smartshop/internal/eventpublisher/event"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout          = time.Second
	writeFailureThreshold = 3
	queueSize             = 256
	emitTimeout           = 100 * time.Millisecond
)

type ProductPublisher interface {
	eventpublisher.Publisher
	eventpublisher.Notifier
	Start(ctx context.Context) error
}

type productPublisher struct {
	queue      chan event.Event
	submanager *common.SubManager
	publisher  *common.PublisherWithFailureThreshold
	dropped    prometheus.Counter
}

// New returns a publisher fanning product change events out to subscribers.
// dropped counts events discarded because the queue was full; it may be nil.
func New(dropped prometheus.Counter) ProductPublisher {
	return &productPublisher{
		queue:      make(chan event.Event, queueSize),
		submanager: common.NewSubManager(),
		publisher:  common.NewPublisherWithFailureThreshold(writeTimeout, writeFailureThreshold),
		dropped:    dropped,
	}
}

func (p *productPublisher) Subscribe(subscriber event.EventWChannel) {
	p.submanager.Subscribe(subscriber)
}

func (p *productPublisher) Unsubscribe(subscriber event.EventWChannel) {
	if p.submanager.Unsubscribe(subscriber) {
		p.publisher.Forget(subscriber)
	}
}

// Emit queues the event. When the queue is full it waits up to emitTimeout
// for room and then drops the event.
func (p *productPublisher) Emit(e event.Event) {
	select {
	case p.queue <- e:
		return
	default:
	}

	timer := time.NewTimer(emitTimeout)
	defer timer.Stop()

	select {
	case p.queue <- e:
	case <-timer.C:
		if p.dropped != nil {
			p.dropped.Inc()
		}
		log.Warn().Msgf("product publisher: queue full, dropping %s event", e.Type)
	}
}

func (p *productPublisher) publish(ctx context.Context, e event.Event) {
	p.submanager.OnSubscribers(func(subscriber event.EventWChannel) {
		go func() {
			if err := p.publisher.Publish(ctx, subscriber, e); err != nil {
				log.Error().Err(err).Msg("product publisher: dropping slow subscriber")
				p.Unsubscribe(subscriber)
			}
		}()
	})
}

func (p *productPublisher) Start(ctx context.Context) error {
	defer p.submanager.UnsubscribeAll()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("ProductPublisher stopped")
			return ctx.Err()
		case e := <-p.queue:
			log.Debug().Msgf("publish %s", e.Type)
			p.publish(ctx, e)
		}
	}
}
