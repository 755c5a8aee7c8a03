package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/domain"
)

type stopEvent struct {
	stopped *bool
}

func (e stopEvent) Type() EventType            { return "stop" }
func (e stopEvent) IsPropagationStopped() bool { return *e.stopped }

func TestTriggerDeliversInOrder(t *testing.T) {
	b := New("test")
	var got []string
	b.Subscribe(domain.EventOpen, func(DomainEvent) { got = append(got, "first") })
	b.Subscribe(domain.EventOpen, func(DomainEvent) { got = append(got, "second") })
	b.Subscribe(domain.EventClose, func(DomainEvent) { got = append(got, "close") })

	b.Trigger(domain.OpenEvent{})

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestTriggerPassesPayload(t *testing.T) {
	b := New("test")
	var got domain.SelectEvent
	b.Subscribe(domain.EventSelect, func(e DomainEvent) {
		got = e.(domain.SelectEvent)
	})

	b.Trigger(domain.SelectEvent{Suggestion: "obj", Dataset: "bar"})

	assert.Equal(t, "obj", got.Suggestion)
	assert.Equal(t, "bar", got.Dataset)
}

func TestUnsubscribe(t *testing.T) {
	b := New("test")
	calls := 0
	unsubscribe := b.Subscribe(domain.EventOpen, func(DomainEvent) { calls++ })
	keep := 0
	b.Subscribe(domain.EventOpen, func(DomainEvent) { keep++ })

	b.Trigger(domain.OpenEvent{})
	unsubscribe()
	b.Trigger(domain.OpenEvent{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, keep)
}

func TestBeforeWithoutHooksDoesNotVeto(t *testing.T) {
	b := New("test")
	assert.False(t, b.Before(domain.ActiveEvent{}))
}

func TestBeforeVetoRunsEveryHook(t *testing.T) {
	b := New("test")
	ran := 0
	b.SubscribeBefore(domain.EventSelect, func(DomainEvent) bool { ran++; return true })
	b.SubscribeBefore(domain.EventSelect, func(DomainEvent) bool { ran++; return false })

	assert.True(t, b.Before(domain.SelectEvent{}))
	assert.Equal(t, 2, ran)
	assert.False(t, b.Before(domain.OpenEvent{}), "hooks are per event type")
}

func TestBeforeUnsubscribe(t *testing.T) {
	b := New("test")
	unsubscribe := b.SubscribeBefore(domain.EventOpen, func(DomainEvent) bool { return true })
	require.True(t, b.Before(domain.OpenEvent{}))

	unsubscribe()

	assert.False(t, b.Before(domain.OpenEvent{}))
}

func TestStoppableEventHaltsDelivery(t *testing.T) {
	b := New("test")
	stopped := false
	var got []int
	b.Subscribe("stop", func(DomainEvent) { got = append(got, 1); stopped = true })
	b.Subscribe("stop", func(DomainEvent) { got = append(got, 2) })

	b.Trigger(stopEvent{stopped: &stopped})

	assert.Equal(t, []int{1}, got)
}

func TestPanickingHandlerIsRecovered(t *testing.T) {
	b := New("test")
	after := false
	b.Subscribe(domain.EventOpen, func(DomainEvent) { panic("boom") })
	b.Subscribe(domain.EventOpen, func(DomainEvent) { after = true })
	b.SubscribeBefore(domain.EventOpen, func(DomainEvent) bool { panic("boom") })

	assert.NotPanics(t, func() {
		assert.False(t, b.Before(domain.OpenEvent{}))
		b.Trigger(domain.OpenEvent{})
	})
	assert.True(t, after)
}

func TestCloseDropsSubscriptions(t *testing.T) {
	b := New("test")
	calls := 0
	b.Subscribe(domain.EventOpen, func(DomainEvent) { calls++ })
	b.SubscribeBefore(domain.EventOpen, func(DomainEvent) bool { return true })

	b.Close()
	b.Trigger(domain.OpenEvent{})

	assert.Zero(t, calls)
	assert.False(t, b.Before(domain.OpenEvent{}))
}

func TestHandlerMaySubscribeDuringTrigger(t *testing.T) {
	b := New("test")
	late := 0
	b.Subscribe(domain.EventOpen, func(DomainEvent) {
		b.Subscribe(domain.EventOpen, func(DomainEvent) { late++ })
	})

	b.Trigger(domain.OpenEvent{})
	assert.Zero(t, late, "handlers added mid-delivery wait for the next trigger")

	b.Trigger(domain.OpenEvent{})
	assert.Equal(t, 1, late)
}
