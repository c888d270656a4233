// Package events provides the synchronous publish/subscribe bus that carries
// domain events from the engine to interested collaborators.
package events

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/pkg/domain"
)

// Listener reacts to events. Registrations are keyed by the listener value,
// so implementations must be comparable (pointers are the usual choice).
type Listener interface {
	Handle(domain.Event)
}

type funcListener struct {
	fn func(domain.Event)
}

func (f *funcListener) Handle(e domain.Event) { f.fn(e) }

// Func adapts a function into a Listener. Each call returns a distinct
// Listener; keep the result to unregister it later.
func Func(fn func(domain.Event)) Listener {
	return &funcListener{fn: fn}
}

// Bus is a synchronous publish/subscribe hub keyed by event kind.
// Safe for concurrent use. Listeners run on the emitting goroutine,
// outside the bus lock, so they may subscribe, unsubscribe or emit reentrantly.
type Bus struct {
	mu        sync.RWMutex
	listeners map[domain.EventKind][]Listener
	logger    *slog.Logger
}

// Option configures the Bus.
type Option func(*Bus)

// WithLogger configures a logger for recovered listener panics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		listeners: make(map[domain.EventKind][]Listener),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// On registers l for kind. Registering the same listener twice is a no-op.
func (b *Bus) On(kind domain.EventKind, l Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if slices.ContainsFunc(b.listeners[kind], func(x Listener) bool { return same(x, l) }) {
		return
	}
	b.listeners[kind] = append(slices.Clone(b.listeners[kind]), l)
}

// Subscribe registers fn for kind and returns a function that unregisters it.
func (b *Bus) Subscribe(kind domain.EventKind, fn func(domain.Event)) (unsubscribe func()) {
	l := Func(fn)
	b.On(kind, l)
	return func() { b.Off(kind, l) }
}

// Off removes exactly l from kind. Unknown listeners are ignored.
func (b *Bus) Off(kind domain.EventKind, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.listeners[kind]
	idx := slices.IndexFunc(current, func(x Listener) bool { return same(x, l) })
	if idx < 0 {
		return
	}
	next := slices.Delete(slices.Clone(current), idx, idx+1)
	if len(next) == 0 {
		delete(b.listeners, kind)
		return
	}
	b.listeners[kind] = next
}

// Emit delivers e to the listeners registered for its kind at the moment of
// the call, in registration order. A panicking listener is logged and the
// remaining listeners still run.
func (b *Bus) Emit(e domain.Event) {
	b.mu.RLock()
	snapshot := b.listeners[e.Kind]
	b.mu.RUnlock()

	for _, l := range snapshot {
		b.deliver(l, e)
	}
}

func (b *Bus) deliver(l Listener, e domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event listener panicked",
				"kind", e.Kind,
				"event_id", e.ID.String(),
				"err", fmt.Errorf("%v", r),
			)
		}
	}()
	l.Handle(e)
}

// Clear removes every listener of every kind.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = make(map[domain.EventKind][]Listener)
}

// RemoveAllListeners removes the listeners of the given kinds, or of every kind when none is given.
func (b *Bus) RemoveAllListeners(kinds ...domain.EventKind) {
	if len(kinds) == 0 {
		b.Clear()
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range kinds {
		delete(b.listeners, k)
	}
}

// ListenerCount returns how many listeners are registered for kind.
func (b *Bus) ListenerCount(kind domain.EventKind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[kind])
}

// same compares listeners by identity. Non-comparable dynamic types
// (func or map based listeners) never match.
func same(a, b Listener) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
