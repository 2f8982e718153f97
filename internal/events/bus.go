// Package events carries change notifications from the write side to
// anything that renders ledger state.
package events

import (
	"sync"
	"time"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// Kind names what a write touched.
type Kind string

const (
	Transactions Kind = "transactions"
	Categories   Kind = "categories"
	Budgets      Kind = "budgets"
)

// DefaultBuffer is the number of recent events kept for Since.
const DefaultBuffer = 64

// Event is published once per successful write. Version increases by one
// per event and doubles as its id.
type Event struct {
	Version   int64
	Kind      Kind
	Month     model.YearMonth // zero when the write is not month-scoped
	Timestamp time.Time
}

// Affects reports whether the event can change what is shown for ym.
func (e Event) Affects(ym model.YearMonth) bool {
	if e.Month.IsZero() || e.Kind == Categories {
		return true
	}
	// Budget screens read the previous month for pre-fill and comparison.
	return e.Month == ym || e.Month == ym.Prev()
}

// Bus fans events out to subscribers and keeps a short history.
type Bus struct {
	mu      sync.RWMutex
	version int64
	events  []Event
	buffer  int
	now     func() time.Time

	nextSubID int
	subs      map[int]chan Event
}

// New returns a bus keeping the last buffer events. A buffer below one
// uses DefaultBuffer.
func New(buffer int) *Bus {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Bus{
		buffer: buffer,
		now:    time.Now,
		subs:   make(map[int]chan Event),
	}
}

// Publish records an event and delivers it to every subscriber that has
// room. Slow subscribers miss events rather than block the writer; they
// can catch up with Since.
func (b *Bus) Publish(kind Kind, ym model.YearMonth) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.version++
	ev := Event{
		Version:   b.version,
		Kind:      kind,
		Month:     ym,
		Timestamp: b.now(),
	}

	b.events = append(b.events, ev)
	if len(b.events) > b.buffer {
		b.events = b.events[len(b.events)-b.buffer:]
	}

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// Version returns the version of the latest event, or 0 before any.
func (b *Bus) Version() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Since returns the buffered events newer than version, oldest first.
func (b *Bus) Since(version int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Event
	for _, ev := range b.events {
		if ev.Version > version {
			out = append(out, ev)
		}
	}
	return out
}

// Subscribe registers a subscriber with a channel of the given capacity.
func (b *Bus) Subscribe(buf int) (int, <-chan Event) {
	if buf < 1 {
		buf = 1
	}
	ch := make(chan Event, buf)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSubID++
	id := b.nextSubID
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel. Unknown ids
// are ignored.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
