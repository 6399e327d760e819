package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	first, second := 0, 0
	subA := hub.Subscribe("products", func() { first++ })
	subB := hub.Subscribe("products", func() { second++ })
	defer subA.Cancel()
	defer subB.Cancel()

	hub.Publish("products")

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestHub_TopicsAreIsolated(t *testing.T) {
	hub := NewHub()
	products, orders := 0, 0
	subA := hub.Subscribe("products", func() { products++ })
	subB := hub.Subscribe("orders", func() { orders++ })
	defer subA.Cancel()
	defer subB.Cancel()

	hub.Publish("products")

	assert.Equal(t, 1, products)
	assert.Equal(t, 0, orders)
}

func TestHub_CanceledSubscriptionNeverFires(t *testing.T) {
	hub := NewHub()
	fired := 0
	sub := hub.Subscribe("products", func() { fired++ })

	hub.Publish("products")
	sub.Cancel()
	hub.Publish("products")

	assert.Equal(t, 1, fired)
}

func TestHub_PublishMirrorsToForwarder(t *testing.T) {
	hub := NewHub()
	var forwarded []string
	hub.SetForwarder(func(collection string) {
		forwarded = append(forwarded, collection)
	})

	hub.Publish("orders")

	assert.Equal(t, []string{"orders"}, forwarded)
}

func TestHub_DispatchSkipsForwarder(t *testing.T) {
	hub := NewHub()
	local := 0
	sub := hub.Subscribe("orders", func() { local++ })
	defer sub.Cancel()
	forwarded := 0
	hub.SetForwarder(func(string) { forwarded++ })

	hub.Dispatch("orders")

	assert.Equal(t, 1, local)
	assert.Equal(t, 0, forwarded)
}

func TestSubscription_IDsAreDistinct(t *testing.T) {
	hub := NewHub()
	subA := hub.Subscribe("products", func() {})
	subB := hub.Subscribe("products", func() {})
	defer subA.Cancel()
	defer subB.Cancel()

	assert.NotEqual(t, subA.ID(), subB.ID())
}
