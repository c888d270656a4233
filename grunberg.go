package grunberg

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/internal/runtime"
	"github.com/aretw0/grunberg/pkg/adapters/memory"
	"github.com/aretw0/grunberg/pkg/autosave"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/events"
	"github.com/aretw0/grunberg/pkg/observability"
	"github.com/aretw0/grunberg/pkg/persistence"
	"github.com/aretw0/grunberg/pkg/persistence/middleware"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/aretw0/grunberg/pkg/session"
)

// Game is the high-level entry point for the library.
// It owns the live state, the event bus, the persistence gateway and the autosave scheduler.
type Game struct {
	engine   *runtime.Engine
	bus      *events.Bus
	gateway  *persistence.Gateway
	autosave *autosave.Scheduler
	catalog  ports.QuestCatalog
	metrics  *observability.Metrics
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex // serializes Dispatch
	state *domain.GameState
	read  sync.RWMutex // guards state for readers

	// events wait here in commit order until one goroutine delivers them
	outMu    sync.Mutex
	outbox   []domain.Event
	draining bool

	// construction-time settings
	store           ports.SaveStore
	middlewares     []middleware.Middleware
	locker          ports.DistributedLocker
	saveKey         string
	autosaveEnabled bool
	autosaveDelay   time.Duration
	closeOnce       sync.Once
}

// Option defines a functional option for configuring the Game.
type Option func(*Game)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithStore sets the durable store for saves (default: in-memory).
func WithStore(store ports.SaveStore) Option {
	return func(g *Game) {
		g.store = store
	}
}

// WithStoreMiddleware wraps the store, e.g. with middleware.NewEncryptionMiddleware.
// The first middleware listed is the outermost.
func WithStoreMiddleware(mws ...middleware.Middleware) Option {
	return func(g *Game) {
		g.middlewares = append(g.middlewares, mws...)
	}
}

// WithLocker enables distributed locking of the save key.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(g *Game) {
		g.locker = locker
	}
}

// WithSaveKey overrides persistence.DefaultSaveKey.
func WithSaveKey(key string) Option {
	return func(g *Game) {
		g.saveKey = key
	}
}

// WithClock sets the time source for the reducer, events and saves.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// WithAutosave enables or disables autosave (default: enabled).
func WithAutosave(enabled bool) Option {
	return func(g *Game) {
		g.autosaveEnabled = enabled
	}
}

// WithAutosaveDelay overrides autosave.DefaultDelay.
func WithAutosaveDelay(d time.Duration) Option {
	return func(g *Game) {
		g.autosaveDelay = d
	}
}

// WithMetrics records actions, events and persistence outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Game) {
		g.metrics = m
	}
}

// WithBus shares an existing bus instead of creating one.
func WithBus(bus *events.Bus) Option {
	return func(g *Game) {
		g.bus = bus
	}
}

// WithQuestCatalog enables StartQuestByID and Quests.
func WithQuestCatalog(catalog ports.QuestCatalog) Option {
	return func(g *Game) {
		g.catalog = catalog
	}
}

// WithInitialState starts from state instead of the defaults.
func WithInitialState(state *domain.GameState) Option {
	return func(g *Game) {
		g.state = state
	}
}

// New creates a Game.
func New(opts ...Option) *Game {
	g := &Game{
		logger:          logging.NewNop(),
		now:             time.Now,
		autosaveEnabled: true,
		autosaveDelay:   autosave.DefaultDelay,
		saveKey:         persistence.DefaultSaveKey,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.bus == nil {
		g.bus = events.NewBus(events.WithLogger(g.logger))
	}
	if g.store == nil {
		g.store = memory.NewStore()
	}
	if g.state == nil {
		g.state = domain.NewState(g.now())
	}

	store := middleware.Chain(g.store, g.middlewares...)
	sessionOpts := []session.Option{session.WithLogger(g.logger)}
	if g.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(g.locker))
	}

	g.engine = runtime.NewEngine(runtime.WithClock(g.now))
	g.gateway = persistence.New(session.NewManager(store, sessionOpts...),
		persistence.WithSaveKey(g.saveKey),
		persistence.WithClock(g.now),
		persistence.WithLogger(g.logger),
		persistence.WithMetrics(g.metrics),
	)
	g.autosave = autosave.New(g.gateway.Save,
		autosave.WithDelay(g.autosaveDelay),
		autosave.WithEnabled(g.autosaveEnabled),
		autosave.WithClock(g.now),
		autosave.WithLogger(g.logger),
		autosave.OnSaved(g.announceSaved),
	)

	if g.metrics != nil {
		for _, kind := range domain.EventKinds {
			g.bus.On(kind, g.metrics)
		}
	}

	// the initial state is never autosaved
	g.autosave.Observe(g.state)
	return g
}

// Dispatch applies action and returns the committed state.
// Events are published after the state is committed, in commit order; listeners may dispatch again.
// A dispatch made from a listener, or while another goroutine is publishing,
// returns before its own events are delivered.
func (g *Game) Dispatch(action domain.Action) *domain.GameState {
	g.mu.Lock()
	g.read.RLock()
	prev := g.state
	g.read.RUnlock()

	next, evs := g.engine.Step(prev, action)

	g.read.Lock()
	g.state = next
	g.read.Unlock()
	if next != prev {
		g.autosave.Observe(next)
	}
	g.enqueue(evs...)
	g.mu.Unlock()

	if action != nil {
		g.metrics.ObserveAction(action.Type())
	}
	g.drain()
	return next
}

func (g *Game) enqueue(evs ...domain.Event) {
	if len(evs) == 0 {
		return
	}
	g.outMu.Lock()
	g.outbox = append(g.outbox, evs...)
	g.outMu.Unlock()
}

// drain delivers queued events until the queue is empty.
// Only one goroutine drains at a time.
func (g *Game) drain() {
	g.outMu.Lock()
	if g.draining {
		g.outMu.Unlock()
		return
	}
	g.draining = true
	for len(g.outbox) > 0 {
		e := g.outbox[0]
		g.outbox[0] = domain.Event{}
		g.outbox = g.outbox[1:]
		g.outMu.Unlock()
		g.bus.Emit(e)
		g.outMu.Lock()
	}
	g.draining = false
	g.outMu.Unlock()
}

// State returns the current snapshot. Treat it as read-only.
func (g *Game) State() *domain.GameState {
	g.read.RLock()
	defer g.read.RUnlock()
	return g.state
}

// Bus returns the event bus.
func (g *Game) Bus() *events.Bus {
	return g.bus
}

// On registers l for kind.
func (g *Game) On(kind domain.EventKind, l events.Listener) {
	g.bus.On(kind, l)
}

// Off removes l from kind.
func (g *Game) Off(kind domain.EventKind, l events.Listener) {
	g.bus.Off(kind, l)
}

// Subscribe registers fn for kind and returns a function that unregisters it.
func (g *Game) Subscribe(kind domain.EventKind, fn func(domain.Event)) (unsubscribe func()) {
	return g.bus.Subscribe(kind, fn)
}

// Publish emits a collaborator event (enemy defeated, dialogue, level up...)
// stamped with the current time.
func (g *Game) Publish(kind domain.EventKind, payload any) {
	g.enqueue(domain.NewEvent(kind, g.now(), payload))
	g.drain()
}

// SetAutosave toggles autosave. Disabling cancels a pending write.
func (g *Game) SetAutosave(enabled bool) {
	g.autosave.SetEnabled(enabled)
}

// Close writes any pending autosave and stops the scheduler.
func (g *Game) Close() error {
	g.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		g.autosave.Flush(ctx)
		g.autosave.Stop()
	})
	return nil
}

func (g *Game) announceSaved(at time.Time) {
	g.enqueue(domain.NewEvent(domain.EventGameSaved, at, domain.TimestampPayload{Timestamp: domain.UnixMilli(at)}))
	g.drain()
}

var _ ports.GameSession = (*Game)(nil)
