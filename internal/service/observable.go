package service

import (
	"sync"
)

// Observable is a minimal subject: the coordinate manager is the sole
// publisher and delivers values synchronously, in subscription order, from
// its own goroutine. The mutex only guards the subscriber list; state
// consistency of published values comes from the manager's single-writer
// run loop.
type Observable[T any] struct {
	mu   sync.Mutex
	next int
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func NewObservable[T any]() *Observable[T] {
	return &Observable[T]{}
}

// Subscribe registers fn and returns a cancel function. fn runs on the
// publisher's goroutine and must not block.
func (o *Observable[T]) Subscribe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	id := o.next
	o.next++
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

func (o *Observable[T]) Publish(v T) {
	o.mu.Lock()
	subs := make([]subscriber[T], len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

func (o *Observable[T]) SubscriberCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}
