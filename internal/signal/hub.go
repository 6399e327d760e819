// Package signal carries the cross-context sync signal: a payload-free
// broadcast that a collection changed and every live view must reload it.
package signal

import (
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const topicPrefix = "collection:"

// Hub is the process-wide broadcast for collection changes. Receivers get no
// delta, only the collection name; the contract is to reload everything.
type Hub struct {
	bus     EventBus.Bus
	forward func(collection string)
}

func NewHub() *Hub {
	return &Hub{bus: EventBus.New()}
}

// SetForwarder installs a mirror for locally published signals, used by the
// cross-process bridge. Forwarding happens after local delivery.
func (h *Hub) SetForwarder(fn func(collection string)) {
	h.forward = fn
}

// Publish notifies all local subscribers of a change to collection, then
// mirrors the signal to other processes when a forwarder is installed.
func (h *Hub) Publish(collection string) {
	h.Dispatch(collection)
	if h.forward != nil {
		h.forward(collection)
	}
}

// Dispatch delivers a change signal to local subscribers only. The bridge uses
// it for signals that arrived from another process, so they are not echoed
// back out.
func (h *Hub) Dispatch(collection string) {
	h.bus.Publish(topicPrefix + collection)
}

// Subscription is one registered listener. Cancel releases it; a canceled
// subscription never fires again.
type Subscription struct {
	id      string
	hub     *Hub
	topic   string
	handler func()
}

func (s *Subscription) ID() string { return s.id }

func (s *Subscription) Cancel() {
	if err := s.hub.bus.Unsubscribe(s.topic, s.handler); err != nil {
		zap.S().Warnf("signal: unsubscribe %s: %v", s.topic, err)
	}
}

// Subscribe registers fn to run on every change signal for collection. The
// returned Subscription must be canceled when the view goes away.
func (h *Hub) Subscribe(collection string, fn func()) *Subscription {
	sub := &Subscription{
		id:      uuid.NewString(),
		hub:     h,
		topic:   topicPrefix + collection,
		handler: fn,
	}
	if err := h.bus.Subscribe(sub.topic, sub.handler); err != nil {
		zap.S().Errorf("signal: subscribe %s: %v", sub.topic, err)
	}
	return sub
}
