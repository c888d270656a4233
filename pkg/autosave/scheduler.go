// Package autosave persists the live game state after it settles.
//
// The Scheduler is fed every committed state. It ignores the very first
// state it sees (the defaults a game starts with), states without a
// character, and states identical to the last one it persisted. Anything
// else (re)arms a debounce timer; only the state present when the timer
// fires is written.
package autosave

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/cespare/xxhash/v2"
)

// DefaultDelay is the debounce window between the last change and the write.
const DefaultDelay = 500 * time.Millisecond

// PersistFunc writes a state and reports success.
type PersistFunc func(ctx context.Context, state *domain.GameState) bool

// Scheduler debounces state changes into saves. Safe for concurrent use.
type Scheduler struct {
	persist PersistFunc
	delay   time.Duration
	timeout time.Duration
	onSaved func(at time.Time)
	now     func() time.Time
	logger  *slog.Logger

	mu        sync.Mutex
	enabled   bool
	seen      bool
	stopped   bool
	last      uint64
	hasLast   bool
	timer     *time.Timer
	gen       uint64
	pending   *domain.GameState
	pendingFP uint64
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithTimeout bounds each write. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = d
	}
}

// WithEnabled sets the initial enabled flag (default true).
func WithEnabled(enabled bool) Option {
	return func(s *Scheduler) {
		s.enabled = enabled
	}
}

// OnSaved registers a hook run after every successful write.
func OnSaved(fn func(at time.Time)) Option {
	return func(s *Scheduler) {
		s.onSaved = fn
	}
}

// WithClock sets the time passed to the OnSaved hook.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithLogger configures a logger for the Scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// New creates a Scheduler that writes through persist.
func New(persist PersistFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		persist: persist,
		delay:   DefaultDelay,
		now:     time.Now,
		logger:  logging.NewNop(),
		enabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe records a new committed state. Any pending write is superseded.
func (s *Scheduler) Observe(state *domain.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if !s.seen {
		s.seen = true
		return
	}

	// every newer state supersedes the pending one, even when it is not saved itself
	s.cancelLocked()

	if !s.enabled || !state.HasCharacter() {
		return
	}

	fp, err := fingerprint(state)
	if err != nil {
		s.logger.Debug("Autosave skipped: state not serializable", "err", err)
		return
	}
	if s.hasLast && fp == s.last {
		return
	}

	gen := s.gen
	s.pending, s.pendingFP = state, fp
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

// SetEnabled toggles autosaving. Disabling cancels a pending write.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
	if !enabled {
		s.cancelLocked()
	}
}

// Enabled reports the current flag.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Pending reports whether a write is armed.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Flush writes a pending state immediately instead of waiting for the timer.
// It reports whether anything was written.
func (s *Scheduler) Flush(ctx context.Context) bool {
	s.mu.Lock()
	if s.pending == nil || s.stopped {
		s.mu.Unlock()
		return false
	}
	state, fp := s.pending, s.pendingFP
	s.cancelLocked()
	s.mu.Unlock()

	return s.write(ctx, state, fp)
}

// Stop cancels a pending write and ignores every later Observe.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	s.cancelLocked()
}

// cancelLocked disarms the timer. A callback already running sees a stale
// generation and returns without writing.
func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.pending = nil
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.stopped || !s.enabled || s.pending == nil {
		s.mu.Unlock()
		return
	}
	state, fp := s.pending, s.pendingFP
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.write(ctx, state, fp)
}

func (s *Scheduler) write(ctx context.Context, state *domain.GameState, fp uint64) bool {
	if !s.persist(ctx, state) {
		// retried on the next qualifying change
		s.logger.Debug("Autosave failed")
		return false
	}

	s.mu.Lock()
	s.last, s.hasLast = fp, true
	hook := s.onSaved
	s.mu.Unlock()

	if hook != nil {
		hook(s.now())
	}
	return true
}

// fingerprint hashes the JSON form of state.
func fingerprint(state *domain.GameState) (uint64, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}
