package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_SubscribePublish(t *testing.T) {
	b := NewBus()

	var got []Event
	b.Subscribe(TypeAgentRemoved, func(e Event) {
		got = append(got, e)
	})

	b.Publish(NewAgentRemoved("Paris", "Worker", 7))
	b.Publish(NewUnitUpdated("Paris", "Home", 1)) // not subscribed

	require.Len(t, got, 1)
	removed, ok := got[0].(*AgentRemoved)
	require.True(t, ok)
	assert.Equal(t, "Paris", removed.CityName())
	assert.Equal(t, uint32(7), removed.AgentID)
}

func TestBus_SubscribeAll(t *testing.T) {
	b := NewBus()

	count := 0
	b.SubscribeAll(func(Event) { count++ })

	b.Publish(NewCityAdded("Paris", 32, 32))
	b.Publish(NewMapUpdated("Paris", "Water"))
	assert.Equal(t, 2, count)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus()

	count := 0
	handle := b.Subscribe(TypeAgentSpawned, func(Event) { count++ })
	require.Equal(t, 1, b.SubscriberCount())

	b.Publish(NewAgentSpawned("Paris", "Worker", 1, "Work"))
	b.Unsubscribe(handle)
	b.Publish(NewAgentSpawned("Paris", "Worker", 2, "Work"))

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBus_PanickingSubscriberIsIsolated(t *testing.T) {
	b := NewBus()

	b.Subscribe(TypeMapAdded, func(Event) { panic("boom") })
	reached := false
	b.SubscribeAll(func(Event) { reached = true })

	assert.NotPanics(t, func() {
		b.Publish(NewMapAdded("Paris", "Water"))
	})
	assert.True(t, reached, "other subscribers still run")
}

func TestNop_Handle(t *testing.T) {
	var n Nop
	assert.NotPanics(t, func() { n.Handle(NewCityAdded("Paris", 1, 1)) })
}
