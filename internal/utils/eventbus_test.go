package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventBusDispatchesToExactAndWildcardSubscribers(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	exact := make(chan Event, 1)
	all := make(chan Event, 2)

	bus.Subscribe("chat:1:messages", func(e Event) { exact <- e })
	bus.Subscribe(AllEvents, func(e Event) { all <- e })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)

	bus.Publish("chat:1:messages", "hello")
	bus.Publish("chat:2:messages:update", "edited")

	select {
	case e := <-exact:
		assert.Equal(t, "hello", e.Data)
	case <-time.After(time.Second):
		t.Fatal("exact subscriber not called")
	}

	for i := 0; i < 2; i++ {
		select {
		case <-all:
		case <-time.After(time.Second):
			t.Fatal("wildcard subscriber not called")
		}
	}
}

func TestEventBusSurvivesPanickingHandler(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	got := make(chan struct{}, 1)

	bus.Subscribe("x", func(Event) { panic("boom") })
	bus.Subscribe("x", func(Event) { got <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)

	bus.Publish("x", nil)

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("second handler not called after panic")
	}
}

func TestEventBusPublishDoesNotBlockWhenFull(t *testing.T) {
	bus := NewEventBus(zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			bus.Publish("flood", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "publish blocked")
	}
}
