package persistence_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/pkg/adapters/memory"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/observability"
	"github.com/aretw0/grunberg/pkg/persistence"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	saved   = time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleState() *domain.GameState {
	s := domain.NewState(created)
	s.Character = &domain.Character{
		Name:  "Aria",
		Race:  domain.RaceElf,
		Class: domain.ClassMage,
		Stats: domain.RaceBaseStats[domain.RaceElf],
	}
	s.CharacterStatus = domain.NewCharacterStatus(s.Character.Stats)
	s.Flags["met_elder"] = true
	s.Flags["gold_spent"] = 12.0
	s.Inventory.Currency.Gold = 40
	s.Quests.CompletedQuests = []string{"rats"}
	return s
}

// failingStore fails every operation.
type failingStore struct{}

var errDisk = errors.New("disk on fire")

func (failingStore) Put(context.Context, string, []byte) error   { return errDisk }
func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errDisk }
func (failingStore) Delete(context.Context, string) error        { return errDisk }
func (failingStore) List(context.Context) ([]string, error)      { return nil, errDisk }

var _ ports.SaveStore = failingStore{}

func TestGateway_SaveLoadRoundTrip(t *testing.T) {
	store := memory.NewStore()
	gw := persistence.New(store, persistence.WithClock(fixedClock(saved)))
	ctx := context.Background()
	original := sampleState()
	before := original.Clone()

	require.True(t, gw.Save(ctx, original))
	assert.Equal(t, before, original, "Save must not modify the caller's state")

	loaded, ok := gw.Load(ctx)
	require.True(t, ok)

	want := original.Clone()
	want.Metadata.LastSaved = saved.UnixMilli()
	assert.Equal(t, want, loaded)

	ts, ok := gw.SaveTimestamp(ctx)
	require.True(t, ok)
	assert.Equal(t, saved.UnixMilli(), ts)
}

func TestGateway_EnvelopeShape(t *testing.T) {
	store := memory.NewStore()
	gw := persistence.New(store, persistence.WithClock(fixedClock(saved)))
	ctx := context.Background()

	require.True(t, gw.Save(ctx, sampleState()))

	raw, err := store.Get(ctx, persistence.DefaultSaveKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version":"1.0.0"`)
	assert.Contains(t, string(raw), `"timestamp":1709404200000`)
	assert.Contains(t, string(raw), `"lastSaved":1709404200000`)
}

func TestGateway_LoadAbsent(t *testing.T) {
	gw := persistence.New(memory.NewStore())
	ctx := context.Background()

	state, ok := gw.Load(ctx)
	assert.False(t, ok)
	assert.Nil(t, state)
	assert.False(t, gw.HasSave(ctx))

	_, ok = gw.SaveTimestamp(ctx)
	assert.False(t, ok)
}

func TestGateway_LoadCorrupt(t *testing.T) {
	store := memory.NewStore()
	var logs bytes.Buffer
	gw := persistence.New(store, persistence.WithLogger(logging.NewWithWriter(&logs, slog.LevelDebug)))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, persistence.DefaultSaveKey, []byte("{not json")))

	_, ok := gw.Load(ctx)
	assert.False(t, ok)
	assert.True(t, gw.HasSave(ctx), "a corrupt save still occupies the slot")
	assert.Contains(t, logs.String(), "code=INVALID_FORMAT")
}

func TestGateway_VersionMismatchStillLoads(t *testing.T) {
	store := memory.NewStore()
	var logs bytes.Buffer
	gw := persistence.New(store, persistence.WithLogger(logging.NewWithWriter(&logs, slog.LevelDebug)))
	ctx := context.Background()

	doc := `{"version":"0.9.0","state":{"metadata":{"saveVersion":"0.9.0"},"inventory":{},"quests":{}},"timestamp":5}`
	require.NoError(t, store.Put(ctx, persistence.DefaultSaveKey, []byte(doc)))

	state, ok := gw.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "0.9.0", state.Metadata.SaveVersion)
	assert.Contains(t, logs.String(), "Save version mismatch")
	assert.Contains(t, logs.String(), "relation=older")
}

func TestGateway_StorageFailuresAreReported(t *testing.T) {
	var logs bytes.Buffer
	gw := persistence.New(failingStore{}, persistence.WithLogger(logging.NewWithWriter(&logs, slog.LevelDebug)))
	ctx := context.Background()

	assert.False(t, gw.Save(ctx, sampleState()))
	assert.Contains(t, logs.String(), "code=STORAGE_WRITE_FAILED")

	_, ok := gw.Load(ctx)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "code=STORAGE_READ_FAILED")

	assert.False(t, gw.HasSave(ctx))
	assert.False(t, gw.Delete(ctx))
}

func TestGateway_Delete(t *testing.T) {
	gw := persistence.New(memory.NewStore())
	ctx := context.Background()

	require.True(t, gw.Save(ctx, sampleState()))
	require.True(t, gw.HasSave(ctx))

	assert.True(t, gw.Delete(ctx))
	assert.False(t, gw.HasSave(ctx))
	assert.True(t, gw.Delete(ctx), "deleting an empty slot succeeds")
}

func TestGateway_SaveKey(t *testing.T) {
	store := memory.NewStore()
	gw := persistence.New(store, persistence.WithSaveKey("slot-2"))
	ctx := context.Background()

	require.True(t, gw.Save(ctx, sampleState()))
	assert.Equal(t, "slot-2", gw.Key())

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"slot-2"}, keys)
}

func TestGateway_SaveNil(t *testing.T) {
	gw := persistence.New(memory.NewStore())
	assert.False(t, gw.Save(context.Background(), nil))
}

func TestGateway_Metrics(t *testing.T) {
	m, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	gw := persistence.New(memory.NewStore(), persistence.WithMetrics(m))
	ctx := context.Background()

	gw.Load(ctx)
	gw.Save(ctx, sampleState())
	gw.Load(ctx)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Persistence.WithLabelValues("save", observability.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Persistence.WithLabelValues("load", observability.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Persistence.WithLabelValues("load", observability.ResultAbsent)))
}

func TestCompareVersion(t *testing.T) {
	tests := []struct {
		in   string
		want persistence.VersionRelation
	}{
		{"1.0.0", persistence.VersionCurrent},
		{"v1.0.0", persistence.VersionCurrent},
		{"0.9.1", persistence.VersionOlder},
		{"1.2.0", persistence.VersionNewer},
		{"banana", persistence.VersionUnparseable},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, persistence.CompareVersion(tt.in))
		})
	}
}
