package eventpublisher

import (
	"go-smartshop/internal/eventpublisher/event"
)

type Publisher interface {
	Subscribe(event.EventWChannel)
	Unsubscribe(event.EventWChannel)
}

// Notifier accepts events from writers that must never block on subscribers.
type Notifier interface {
	Emit(event.Event)
}
