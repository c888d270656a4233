package runtime_test

import (
	"testing"

	"github.com/aretw0/grunberg/internal/runtime"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFlag_EventExclusivity(t *testing.T) {
	s := domain.NewState(now)

	next, evs := step(t, s, domain.SetFlag{Key: "met_elder", Value: true})
	require.Len(t, evs, 1)
	assert.Equal(t, domain.EventFlagSet, evs[0].Kind)
	assert.Equal(t, domain.FlagSetPayload{FlagID: "met_elder", Value: true}, evs[0].Payload)
	assert.NotContains(t, s.Flags, "met_elder")

	next, evs = step(t, next, domain.SetFlag{Key: "met_elder", Value: false})
	require.Len(t, evs, 1)
	assert.Equal(t, domain.EventFlagUpdated, evs[0].Kind)
	assert.Equal(t, domain.FlagUpdatedPayload{FlagID: "met_elder", OldValue: true, NewValue: false}, evs[0].Payload)
	assert.Equal(t, false, next.Flags["met_elder"])
}

func TestSetFlag_NilFlagsMap(t *testing.T) {
	s := domain.NewState(now)
	s.Flags = nil
	next, evs := step(t, s, domain.SetFlag{Key: "k", Value: "v"})
	assert.Equal(t, "v", next.Flags["k"])
	assert.Equal(t, domain.EventFlagSet, evs[0].Kind)
}

func TestLoadState(t *testing.T) {
	s := withCharacter(t)
	loaded := domain.NewState(now)
	loaded.Flags["from_save"] = true

	next, evs := step(t, s, domain.LoadState{State: loaded})
	assert.Same(t, loaded, next)
	require.Len(t, evs, 1)
	assert.Equal(t, domain.EventGameLoaded, evs[0].Kind)
	assert.Equal(t, domain.TimestampPayload{Timestamp: now.UnixMilli()}, evs[0].Payload)

	same, evs := step(t, s, domain.LoadState{})
	assert.Same(t, s, same)
	assert.Empty(t, evs)
}

func TestResetState(t *testing.T) {
	s := withCharacter(t)
	s, _ = runtime.Reduce(s, domain.AddItem{Item: potion, Quantity: 1}, now)

	next, evs := step(t, s, domain.ResetState{})
	assert.Equal(t, domain.NewState(now), next)
	assert.Empty(t, evs)
}

func TestUpdatePlaytime(t *testing.T) {
	s := domain.NewState(now)
	next, evs := step(t, s, domain.UpdatePlaytime{Seconds: 3600})
	assert.EqualValues(t, 3600, next.Metadata.Playtime)
	assert.EqualValues(t, 0, s.Metadata.Playtime)
	assert.Empty(t, evs)
}
