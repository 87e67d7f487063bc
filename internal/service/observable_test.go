package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservableDeliversInSubscriptionOrder(t *testing.T) {
	o := NewObservable[int]()

	var got []string
	o.Subscribe(func(v int) { got = append(got, "a") })
	o.Subscribe(func(v int) { got = append(got, "b") })

	o.Publish(1)
	o.Publish(2)

	assert.Equal(t, []string{"a", "b", "a", "b"}, got)
}

func TestObservableCancel(t *testing.T) {
	o := NewObservable[string]()

	var got []string
	cancel := o.Subscribe(func(v string) { got = append(got, v) })
	keep := 0
	o.Subscribe(func(v string) { keep++ })

	o.Publish("one")
	cancel()
	cancel() // cancelling twice is harmless
	o.Publish("two")

	assert.Equal(t, []string{"one"}, got)
	assert.Equal(t, 2, keep)
	assert.Equal(t, 1, o.SubscriberCount())
}

func TestObservableWithNoSubscribers(t *testing.T) {
	o := NewObservable[int]()
	o.Publish(42) // must not panic
	assert.Zero(t, o.SubscriberCount())
}
