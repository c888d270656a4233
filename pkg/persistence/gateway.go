package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/observability"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/aretw0/grunberg/pkg/session"
)

const (
	// CurrentVersion is stamped on every envelope this package writes.
	CurrentVersion = domain.SaveVersion

	// DefaultSaveKey is the single durable slot used when no other key is configured.
	DefaultSaveKey = "grunberg_save"
)

// Gateway reads and writes save envelopes for one save key.
type Gateway struct {
	store   ports.SaveStore
	key     string
	now     func() time.Time
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithSaveKey overrides DefaultSaveKey.
func WithSaveKey(key string) Option {
	return func(g *Gateway) {
		if key != "" {
			g.key = key
		}
	}
}

// WithClock sets the time source used for lastSaved and envelope timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

// WithLogger configures a logger for the Gateway.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithMetrics records persistence outcomes and latencies.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// New creates a Gateway over store. Unless store already is a *session.Manager,
// it is wrapped in one.
func New(store ports.SaveStore, opts ...Option) *Gateway {
	g := &Gateway{
		key:    DefaultSaveKey,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if _, ok := store.(*session.Manager); !ok {
		store = session.NewManager(store, session.WithLogger(g.logger))
	}
	g.store = store
	return g
}

// Key returns the save key this gateway owns.
func (g *Gateway) Key() string {
	return g.key
}

// Save writes state to the save key with metadata.lastSaved set to now.
// The caller's state is not modified.
func (g *Gateway) Save(ctx context.Context, state *domain.GameState) bool {
	start := time.Now()
	ok := g.save(ctx, state)
	g.observe("save", ok, start)
	return ok
}

func (g *Gateway) save(ctx context.Context, state *domain.GameState) bool {
	if state == nil {
		g.logger.Warn("Refusing to save an empty state", "save_key", g.key)
		return false
	}

	data, err := json.Marshal(g.envelope(state))
	if err != nil {
		logging.LogError(g.logger, "Failed to encode save", domain.KindStorageWriteFailed.Wrap(err, "save_key", g.key))
		return false
	}

	if err := g.store.Put(ctx, g.key, data); err != nil {
		logging.LogError(g.logger, "Failed to save game", domain.KindStorageWriteFailed.Wrap(err, "save_key", g.key))
		return false
	}

	g.logger.Debug("Game saved", "save_key", g.key, "bytes", len(data))
	return true
}

// Load reads the stored state. It reports false when there is no save or
// the save cannot be read or parsed.
func (g *Gateway) Load(ctx context.Context) (*domain.GameState, bool) {
	start := time.Now()
	env, ok := g.Peek(ctx)
	if !ok || env.State == nil {
		if ok {
			g.logger.Error("Save has no state", "save_key", g.key)
		}
		g.observeResult("load", observability.ResultAbsent, start)
		return nil, false
	}

	g.warnVersion(env.Version)
	g.observeResult("load", observability.ResultOK, start)
	return env.State, true
}

// Peek reads and parses the stored envelope without version checks.
func (g *Gateway) Peek(ctx context.Context) (domain.SaveEnvelope, bool) {
	data, err := g.store.Get(ctx, g.key)
	if err != nil {
		if !errors.Is(err, domain.ErrSaveNotFound) {
			logging.LogError(g.logger, "Failed to read save", domain.KindStorageReadFailed.Wrap(err, "save_key", g.key))
		}
		return domain.SaveEnvelope{}, false
	}

	var env domain.SaveEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		logging.LogError(g.logger, "Failed to parse save", domain.KindInvalidFormat.Wrap(err, "save_key", g.key))
		return domain.SaveEnvelope{}, false
	}
	return env, true
}

// HasSave reports whether anything is stored under the save key.
func (g *Gateway) HasSave(ctx context.Context) bool {
	_, err := g.store.Get(ctx, g.key)
	if err != nil && !errors.Is(err, domain.ErrSaveNotFound) {
		logging.LogError(g.logger, "Failed to check save", domain.KindStorageReadFailed.Wrap(err, "save_key", g.key))
	}
	return err == nil
}

// SaveTimestamp returns the envelope timestamp (epoch ms) of the stored save.
func (g *Gateway) SaveTimestamp(ctx context.Context) (int64, bool) {
	env, ok := g.Peek(ctx)
	if !ok {
		return 0, false
	}
	return env.Timestamp, true
}

// Delete removes the stored save. Deleting when nothing is stored succeeds.
func (g *Gateway) Delete(ctx context.Context) bool {
	if err := g.store.Delete(ctx, g.key); err != nil {
		logging.LogError(g.logger, "Failed to delete save", domain.KindStorageWriteFailed.Wrap(err, "save_key", g.key))
		return false
	}
	return true
}

// envelope wraps a copy of state stamped with the current time.
func (g *Gateway) envelope(state *domain.GameState) domain.SaveEnvelope {
	now := domain.UnixMilli(g.now())
	stamped := *state
	stamped.Metadata.LastSaved = now
	return domain.SaveEnvelope{
		Version:   CurrentVersion,
		State:     &stamped,
		Timestamp: now,
	}
}

func (g *Gateway) observe(op string, ok bool, start time.Time) {
	result := observability.ResultOK
	if !ok {
		result = observability.ResultFailed
	}
	g.observeResult(op, result, start)
}

func (g *Gateway) observeResult(op, result string, start time.Time) {
	g.metrics.ObservePersistence(op, result, time.Since(start))
}
