package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/grunberg"
	"github.com/aretw0/grunberg/internal/config"
	"github.com/aretw0/grunberg/internal/logging"
	"github.com/aretw0/grunberg/pkg/adapters/memory"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Runtime {
	t.Helper()
	cfg := config.Default()
	cfg.Storage = config.StorageConfig{Backend: config.BackendMemory}
	cfg.Autosave.Enabled = false

	rt, err := Open(cfg, logging.NewNop(), RuntimeOptions{OneShot: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func withCatalog(t *testing.T) *Runtime {
	t.Helper()
	catalog, err := memory.NewCatalog(
		domain.Quest{ID: "rats", Title: "Cellar Rats", Type: domain.QuestSide, NextQuestIDs: []string{"sewers"},
			Rewards: domain.QuestRewards{Gold: 10}},
		domain.Quest{ID: "sewers", Title: "The Sewers", Type: domain.QuestMain, Requirements: []string{"rats"}},
	)
	require.NoError(t, err)

	game := grunberg.New(grunberg.WithQuestCatalog(catalog))
	t.Cleanup(func() { _ = game.Close() })
	return &Runtime{Game: game, Logger: logging.NewNop()}
}

func TestNewCharacter(t *testing.T) {
	rt := openMemory(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "Aria", Race: "elf", Class: "MAGE"}))
	assert.Contains(t, out.String(), "Aria the Elf Mage")

	state := rt.Game.State()
	require.True(t, state.HasCharacter())
	assert.Equal(t, domain.RaceElf, state.Character.Race)
	assert.Equal(t, domain.ClassMage, state.Character.Class)
	assert.Equal(t, domain.RaceBaseStats[domain.RaceElf], state.Character.Stats)
	assert.True(t, rt.Game.HasSave(ctx))

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		err := NewCharacter(ctx, rt, &out, CharacterInput{Name: "Bram"})
		assert.ErrorContains(t, err, "--force")

		require.NoError(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "Bram", Force: true}))
		assert.Equal(t, "Bram", rt.Game.State().Character.Name)
		assert.Equal(t, domain.RaceHuman, rt.Game.State().Character.Race)
	})
}

func TestNewCharacter_Rejects(t *testing.T) {
	rt := openMemory(t)
	ctx := context.Background()
	var out bytes.Buffer

	assert.ErrorContains(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "A", Race: "goblin"}), "unknown race")
	assert.ErrorContains(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "A", Class: "bard"}), "unknown class")
	assert.Error(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "  "}))

	overspent := &domain.CharacterStats{Strength: 10, Agility: 10, Intelligence: 10}
	assert.Error(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "A", Stats: overspent}))

	assert.False(t, rt.Game.HasSave(ctx))
	assert.Empty(t, out.String())
}

func TestAct(t *testing.T) {
	rt := openMemory(t)
	ctx := context.Background()
	var out bytes.Buffer
	require.NoError(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "Aria"}))
	out.Reset()

	require.NoError(t, Act(ctx, rt, &out, "update_currency", `{"type":"gold","amount":25}`))
	assert.Contains(t, out.String(), "CURRENCY_CHANGED")
	assert.Equal(t, 25, rt.Game.State().Inventory.Currency.Gold)

	saved, ok := rt.Game.LoadSave(ctx)
	require.True(t, ok)
	assert.Equal(t, 25, saved.Inventory.Currency.Gold)

	t.Run("bare word payload", func(t *testing.T) {
		out.Reset()
		require.NoError(t, Act(ctx, rt, &out, "fail_quest", "ghost"))
		assert.Contains(t, out.String(), "QUEST_FAILED")
	})

	t.Run("no-op action", func(t *testing.T) {
		out.Reset()
		require.NoError(t, Act(ctx, rt, &out, "UNEQUIP_ITEM", `{"slot":"head"}`))
		assert.Contains(t, out.String(), "changed nothing")
	})

	t.Run("unknown action", func(t *testing.T) {
		err := Act(ctx, rt, &out, "DANCE", "")
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidFormat))
	})
}

func TestStatus(t *testing.T) {
	rt := openMemory(t)
	ctx := context.Background()
	var out bytes.Buffer
	require.NoError(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "Aria", Race: "Dwarf"}))

	out.Reset()
	require.NoError(t, Status(rt, &out, FormatJSON))
	var state domain.GameState
	require.NoError(t, json.Unmarshal(out.Bytes(), &state))
	assert.Equal(t, "Aria", state.Character.Name)

	out.Reset()
	require.NoError(t, Status(rt, &out, FormatPlain))
	assert.Contains(t, out.String(), "Aria")

	assert.Error(t, Status(rt, &out, "xml"))
}

func TestQuests(t *testing.T) {
	rt := withCatalog(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, QuestStart(ctx, rt, &out, "rats"))
	assert.Contains(t, out.String(), "Quest 'rats' started.")

	out.Reset()
	require.NoError(t, QuestList(ctx, rt, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "rats")
	assert.Contains(t, lines[0], string(domain.QuestActive))
	assert.Contains(t, lines[1], string(domain.QuestAvailable))

	out.Reset()
	require.NoError(t, QuestGraph(ctx, rt, &out, true))
	assert.Contains(t, out.String(), "graph TD")
	assert.Contains(t, out.String(), "rats --> sewers")

	assert.ErrorContains(t, QuestStart(ctx, rt, &out, "dragon"), "dragon")
}

func TestQuests_NoCatalog(t *testing.T) {
	rt := openMemory(t)
	var out bytes.Buffer
	assert.ErrorContains(t, QuestList(context.Background(), rt, &out), "no quest catalog")
}

func TestSaveCommands(t *testing.T) {
	rt := openMemory(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, SaveInfo(ctx, rt, &out))
	assert.Contains(t, out.String(), "grunberg_save: no save")

	require.NoError(t, NewCharacter(ctx, rt, &out, CharacterInput{Name: "Aria"}))
	out.Reset()
	require.NoError(t, SaveInfo(ctx, rt, &out))
	assert.Contains(t, out.String(), "saved at")
	assert.Contains(t, out.String(), "character: Aria (level 1)")

	dir := t.TempDir()
	out.Reset()
	require.NoError(t, SaveExport(rt, &out, dir))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	exported := filepath.Join(dir, entries[0].Name())

	require.NoError(t, SaveRemove(ctx, rt, &out))
	assert.False(t, rt.Game.HasSave(ctx))

	rt.Game.Reset()
	require.NoError(t, SaveImport(ctx, rt, &out, exported))
	assert.True(t, rt.Game.HasSave(ctx))
	assert.Equal(t, "Aria", rt.Game.State().Character.Name)

	assert.Error(t, SaveImport(ctx, rt, &out, filepath.Join(dir, "missing.json")))
}

func TestSchema(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Schema(&out))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Contains(t, doc, "properties")
}
