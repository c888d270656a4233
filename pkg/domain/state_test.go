package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)
	s := domain.NewState(now)

	assert.Nil(t, s.Character)
	assert.Nil(t, s.CharacterStatus)
	assert.Equal(t, domain.Position{}, s.Position)
	assert.Empty(t, s.Inventory.Items)
	assert.Equal(t, domain.Equipment{}, s.Inventory.Equipment)
	assert.Equal(t, domain.Currency{}, s.Inventory.Currency)
	assert.Equal(t, 20, s.Inventory.Capacity)
	assert.Empty(t, s.Quests.ActiveQuests)
	assert.Empty(t, s.Flags)
	assert.Nil(t, s.CurrentFloor)
	assert.Equal(t, "1.0.0", s.Metadata.SaveVersion)
	assert.EqualValues(t, 1_700_000_000_123, s.Metadata.CreatedAt)
	assert.Equal(t, s.Metadata.CreatedAt, s.Metadata.LastSaved)
	assert.False(t, s.HasCharacter())
}

func TestNewState_JSONShape(t *testing.T) {
	b, err := json.Marshal(domain.NewState(time.UnixMilli(0)))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{"character", "characterStatus", "position", "inventory", "quests", "flags", "currentFloor", "exploredFloors", "dialogueHistory", "metadata"} {
		assert.Contains(t, m, key)
	}
	eq := m["inventory"].(map[string]any)["equipment"].(map[string]any)
	assert.Len(t, eq, 6)
	for slot, v := range eq {
		assert.Nil(t, v, "slot %s", slot)
	}
}

func TestGameState_Clone(t *testing.T) {
	s := domain.NewState(time.UnixMilli(0))
	s.Character = &domain.Character{Name: "Aria"}
	s.CharacterStatus = domain.NewCharacterStatus(domain.CharacterStats{Strength: 5})
	s.Inventory.Items = []domain.InventorySlot{{Item: domain.Item{ID: "potion"}, Quantity: 2}}
	s.Inventory.Equipment.Weapon = &domain.Item{ID: "sword"}
	s.Flags["a"] = true
	s.ExploredFloors[1] = domain.DungeonFloor{FloorNumber: 1, Tiles: [][]domain.MapTile{{{X: 0, Y: 0}}}}

	c := s.Clone()
	require.Equal(t, s, c)

	c.Character.Name = "Other"
	c.Inventory.Items[0].Quantity = 9
	c.Inventory.Equipment.Weapon.ID = "axe"
	c.Flags["a"] = false
	c.ExploredFloors[1].Tiles[0][0] = domain.MapTile{X: 5}

	assert.Equal(t, "Aria", s.Character.Name)
	assert.Equal(t, 2, s.Inventory.Items[0].Quantity)
	assert.Equal(t, "sword", s.Inventory.Equipment.Weapon.ID)
	assert.Equal(t, true, s.Flags["a"])
	assert.Equal(t, 0, s.ExploredFloors[1].Tiles[0][0].X)
}

func TestStatusPatch_Apply(t *testing.T) {
	base := *domain.NewCharacterStatus(domain.CharacterStats{Strength: 4})
	hp := 30
	patch := domain.StatusPatch{HP: &hp}

	got := patch.Apply(base)
	assert.Equal(t, 30, got.HP)
	assert.Equal(t, 100, got.MaxHP)
	assert.Equal(t, 50, got.MP)
	assert.Equal(t, 100, base.HP)
	assert.False(t, patch.IsEmpty())
	assert.True(t, domain.StatusPatch{}.IsEmpty())
}

func TestQuestProgress_PartitionOf(t *testing.T) {
	qp := domain.QuestProgress{
		ActiveQuests:    []domain.Quest{{ID: "a"}},
		CompletedQuests: []string{"c"},
		FailedQuests:    []string{"c"},
	}
	assert.Equal(t, []domain.QuestStatus{domain.QuestActive}, qp.PartitionOf("a"))
	assert.Equal(t, []domain.QuestStatus{domain.QuestCompleted, domain.QuestFailed}, qp.PartitionOf("c"))
	assert.Empty(t, qp.PartitionOf("x"))
}

func TestErrorKinds(t *testing.T) {
	err := domain.KindStorageWriteFailed.Wrap(errors.New("disk full"), "key", "grunberg_save")
	assert.Equal(t, domain.KindStorageWriteFailed, domain.KindOf(err))
	assert.True(t, domain.IsKind(err, domain.KindStorageWriteFailed))
	assert.False(t, domain.IsKind(err, domain.KindExportFailed))
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, domain.ErrorKind(""), domain.KindOf(errors.New("plain")))
	assert.False(t, domain.IsKind(nil, domain.KindInvalidFormat))
}

func TestNewEvent(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000)
	e1 := domain.NewEvent(domain.EventGameSaved, at, domain.TimestampPayload{Timestamp: 1})
	e2 := domain.NewEvent(domain.EventGameSaved, at, nil)

	assert.Equal(t, domain.EventGameSaved, e1.Kind)
	assert.EqualValues(t, 1_700_000_000_000, e1.Timestamp)
	assert.NotEqual(t, e1.ID, e2.ID)
	assert.Equal(t, -1, e1.ID.Compare(e2.ID))
	assert.Len(t, domain.EventKinds, 27)
	assert.Len(t, domain.ActionTypes, 16)
}
