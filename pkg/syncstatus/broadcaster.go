// Package syncstatus implements the process-wide sync status observable.
package syncstatus

import (
	"sync"
	"time"
)

type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Status is the value delivered to subscribers. Timestamp is stamped by
// Publish, not by the caller.
type Status struct {
	State     State     `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type subscriber struct {
	id int64
	fn func(Status)
}

// Broadcaster holds the current status and notifies subscribers
// synchronously, in subscription order. Callbacks must not publish.
type Broadcaster struct {
	// notifyMu serializes deliveries so a subscriber never sees a newer
	// status before its initial one.
	notifyMu sync.Mutex

	mu         sync.Mutex
	current    Status
	generation uint64
	nextID     int64
	subs       []subscriber
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		current: Status{State: StateIdle, Timestamp: time.Now()},
	}
}

// Subscribe registers cb and immediately delivers the current status to it.
// The returned function removes the subscription; calling it twice is safe.
func (b *Broadcaster) Subscribe(cb func(Status)) func() {
	b.notifyMu.Lock()
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: cb})
	current := b.current
	b.mu.Unlock()

	cb(current)
	b.notifyMu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish stamps the current time, stores the status and notifies every
// subscriber. It returns a generation counter that CompareAndRevert can use
// to implement the revert-to-idle-if-untouched convention.
func (b *Broadcaster) Publish(state State, message string) uint64 {
	b.notifyMu.Lock()
	defer b.notifyMu.Unlock()

	b.mu.Lock()
	b.current = Status{State: state, Message: message, Timestamp: time.Now()}
	b.generation++
	gen := b.generation
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	current := b.current
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(current)
	}
	return gen
}

// Current returns the most recently published status.
func (b *Broadcaster) Current() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// CompareAndRevert publishes an idle status only when no newer status has
// been published since gen. Returns whether the revert happened.
func (b *Broadcaster) CompareAndRevert(gen uint64) bool {
	b.mu.Lock()
	if b.generation != gen {
		b.mu.Unlock()
		return false
	}
	b.mu.Unlock()
	b.Publish(StateIdle, "")
	return true
}
