package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, name, payload string) (domain.Action, error) {
	t.Helper()
	var p any
	if payload != "" {
		require.NoError(t, json.Unmarshal([]byte(payload), &p))
	}
	return domain.DecodeAction(name, p)
}

func TestDecodeAction(t *testing.T) {
	t.Run("CREATE_CHARACTER", func(t *testing.T) {
		a, err := decodeJSON(t, "CREATE_CHARACTER", `{"name":"Aria","race":"Elf","gender":false,"class":"Mage","stats":{"strength":3,"agility":6,"intelligence":6}}`)
		require.NoError(t, err)
		cc := a.(domain.CreateCharacter)
		assert.Equal(t, "Aria", cc.Character.Name)
		assert.Equal(t, domain.ClassMage, cc.Character.Class)
		assert.Equal(t, 6, cc.Character.Stats.Intelligence)
	})

	t.Run("UPDATE_CHARACTER_STATUS keeps unset fields nil", func(t *testing.T) {
		a, err := decodeJSON(t, "update_character_status", `{"hp":40}`)
		require.NoError(t, err)
		p := a.(domain.UpdateCharacterStatus).Patch
		require.NotNil(t, p.HP)
		assert.Equal(t, 40, *p.HP)
		assert.Nil(t, p.MP)
		assert.Nil(t, p.CurrentStats)
	})

	t.Run("ADD_ITEM defaults quantity", func(t *testing.T) {
		a, err := decodeJSON(t, "ADD_ITEM", `{"item":{"id":"potion","type":"consumable","stackable":true,"effect":{"type":"heal_hp","value":25}}}`)
		require.NoError(t, err)
		add := a.(domain.AddItem)
		assert.Equal(t, 1, add.Quantity)
		require.NotNil(t, add.Item.Effect)
		assert.Equal(t, domain.EffectHealHP, add.Item.Effect.Type)
	})

	t.Run("COMPLETE_QUEST accepts a bare id", func(t *testing.T) {
		a, err := decodeJSON(t, "COMPLETE_QUEST", `"q1"`)
		require.NoError(t, err)
		assert.Equal(t, domain.CompleteQuest{QuestID: "q1"}, a)
	})

	t.Run("FAIL_QUEST accepts an object", func(t *testing.T) {
		a, err := decodeJSON(t, "FAIL_QUEST", `{"questId":"q2"}`)
		require.NoError(t, err)
		assert.Equal(t, domain.FailQuest{QuestID: "q2"}, a)
	})

	t.Run("UPDATE_QUEST", func(t *testing.T) {
		a, err := decodeJSON(t, "UPDATE_QUEST", `{"questId":"q1","updates":{"title":"Renamed"}}`)
		require.NoError(t, err)
		u := a.(domain.UpdateQuest)
		assert.Equal(t, "q1", u.QuestID)
		require.NotNil(t, u.Patch.Title)
		assert.Equal(t, "Renamed", *u.Patch.Title)
		assert.Nil(t, u.Patch.Status)
	})

	t.Run("SET_FLAG normalizes numbers", func(t *testing.T) {
		a, err := decodeJSON(t, "SET_FLAG", `{"key":"visits","value":3}`)
		require.NoError(t, err)
		assert.Equal(t, domain.SetFlag{Key: "visits", Value: 3.0}, a)
	})

	t.Run("SET_FLAG rejects objects", func(t *testing.T) {
		_, err := decodeJSON(t, "SET_FLAG", `{"key":"bad","value":{"x":1}}`)
		assert.True(t, domain.IsKind(err, domain.KindInvalidFormat))
	})

	t.Run("UPDATE_PLAYTIME scalar", func(t *testing.T) {
		a, err := decodeJSON(t, "UPDATE_PLAYTIME", `120`)
		require.NoError(t, err)
		assert.Equal(t, domain.UpdatePlaytime{Seconds: 120}, a)
	})

	t.Run("RESET_STATE needs no payload", func(t *testing.T) {
		a, err := decodeJSON(t, "RESET_STATE", "")
		require.NoError(t, err)
		assert.Equal(t, domain.ResetState{}, a)
	})

	t.Run("LOAD_STATE", func(t *testing.T) {
		a, err := decodeJSON(t, "LOAD_STATE", `{"character":null,"position":{"floor":2,"x":1,"y":1},"flags":{"seen":true},"metadata":{"saveVersion":"1.0.0","lastSaved":5,"playtime":9,"createdAt":1}}`)
		require.NoError(t, err)
		s := a.(domain.LoadState).State
		assert.Nil(t, s.Character)
		assert.Equal(t, 2, s.Position.Floor)
		assert.Equal(t, true, s.Flags["seen"])
		assert.EqualValues(t, 9, s.Metadata.Playtime)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := decodeJSON(t, "DANCE", `{}`)
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidFormat, domain.KindOf(err))
	})

	t.Run("object payload required", func(t *testing.T) {
		_, err := decodeJSON(t, "UPDATE_POSITION", `[1,2]`)
		assert.Error(t, err)
	})
}

func TestNormalizeFlagValue(t *testing.T) {
	v, err := domain.NormalizeFlagValue(int64(7))
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = domain.NormalizeFlagValue("open")
	require.NoError(t, err)
	assert.Equal(t, "open", v)

	_, err = domain.NormalizeFlagValue([]string{"x"})
	assert.Error(t, err)

	_, err = domain.NormalizeFlagValue(nil)
	assert.Error(t, err)
}
