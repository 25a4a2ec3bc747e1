package eventbus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/accordhr/accord-hrms/pkg/eventbus"
)

type testEvent struct {
	Value int
}

func newBus() eventbus.EventBus {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(log)
}

func TestPublish_MatchingSubscriberIsCalled(t *testing.T) {
	bus := newBus()

	var got int
	bus.Subscribe(func(ev testEvent) {
		got = ev.Value
	})

	bus.Publish(testEvent{Value: 42})
	assert.Equal(t, 42, got)
}

func TestPublish_NonMatchingSubscriberIsSkipped(t *testing.T) {
	bus := newBus()

	called := false
	bus.Subscribe(func(s string) {
		called = true
	})

	bus.Publish(testEvent{Value: 1})
	assert.False(t, called)
}

func TestPublish_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := newBus()

	bus.Subscribe(func(ev testEvent) {
		panic("boom")
	})
	var got int
	bus.Subscribe(func(ev testEvent) {
		got = ev.Value
	})

	bus.Publish(testEvent{Value: 7})
	assert.Equal(t, 7, got)
}

func TestUnsubscribe(t *testing.T) {
	bus := newBus()

	handler := func(ev testEvent) {}
	bus.Subscribe(handler)
	assert.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(handler)
	assert.Equal(t, 0, bus.SubscribersCount())
}

func TestUnsubscribe_RemovesOnlyTheGivenHandler(t *testing.T) {
	bus := newBus()

	var got int
	removed := func(ev testEvent) { got = -1 }
	kept := func(ev testEvent) { got = ev.Value }
	bus.Subscribe(removed)
	bus.Subscribe(kept)

	bus.Unsubscribe(removed)
	assert.Equal(t, 1, bus.SubscribersCount())

	bus.Publish(testEvent{Value: 9})
	assert.Equal(t, 9, got)
}

func TestMatchSignature_InterfaceParam(t *testing.T) {
	handler := func(err error) {}
	assert.True(t, eventbus.MatchSignature(handler, []interface{}{assert.AnError}))
	assert.False(t, eventbus.MatchSignature(handler, []interface{}{"not an error"}))
}
