package audit

import (
	"context"
	"sync"

	"go-smartshop/internal/eventpublisher"
	"go-smartshop/internal/eventpublisher/event"
	"go-smartshop/internal/model"

	"github.com/rs/zerolog/log"
)

// Handler writes one audit log line per product change.
type Handler struct {
	productEventPublisher eventpublisher.Publisher
	productSubscriptionCh event.EventChannel

	subscribed     chan struct{}
	subscribedOnce sync.Once

	mu     sync.Mutex
	counts map[event.EventType]int
}

func New(productEventPublisher eventpublisher.Publisher) *Handler {
	return &Handler{
		productEventPublisher: productEventPublisher,
		productSubscriptionCh: make(event.EventChannel),
		subscribed:            make(chan struct{}),
		counts:                map[event.EventType]int{},
	}
}

func (h *Handler) subscribeToEvents() {
	h.productEventPublisher.Subscribe(h.eventChannel())
	h.subscribedOnce.Do(func() { close(h.subscribed) })
}

// Subscribed is closed once EventHandler has subscribed, so writers started
// afterwards are audited from their first event.
func (h *Handler) Subscribed() <-chan struct{} {
	return h.subscribed
}

func (h *Handler) unsubscribeFromEvents() {
	h.productEventPublisher.Unsubscribe(h.eventChannel())
}

func (h *Handler) eventChannel() chan<- event.Event {
	return h.productSubscriptionCh
}

func (h *Handler) EventHandler(ctx context.Context) error {

	h.subscribeToEvents()
	defer h.unsubscribeFromEvents()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-h.productSubscriptionCh:
			if !ok {
				return nil
			}

			if e.Err != nil {
				log.Error().Err(e.Err).Msg("audit handler: error reading events")
				return e.Err
			}

			h.handle(e)
		}
	}
}

func (h *Handler) handle(e event.Event) {
	switch msg := e.Message.(type) {
	case model.Product:
		log.Info().
			Str("event", e.Type.String()).
			Str("productId", msg.Id).
			Str("name", msg.Name).
			Int("quantity", msg.Quantity).
			Str("price", msg.Price.String()).
			Msg("audit")
	case string:
		log.Info().
			Str("event", e.Type.String()).
			Str("productId", msg).
			Msg("audit")
	default:
		log.Warn().Msgf("audit handler: unexpected %s payload %T", e.Type, e.Message)
		return
	}

	h.mu.Lock()
	h.counts[e.Type]++
	h.mu.Unlock()
}

// Counts returns how many events of each type were audited.
func (h *Handler) Counts() map[event.EventType]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[event.EventType]int, len(h.counts))
	for k, v := range h.counts {
		out[k] = v
	}
	return out
}
