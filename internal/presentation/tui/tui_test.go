package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/aretw0/grunberg/internal/presentation/tui"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetState() *domain.GameState {
	s := domain.NewState(time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC))
	s.Character = &domain.Character{Name: "Aria", Race: domain.RaceElf, Class: domain.ClassMage,
		Stats: domain.RaceBaseStats[domain.RaceElf]}
	s.CharacterStatus = domain.NewCharacterStatus(s.Character.Stats)
	sword := domain.Item{ID: "sword", Name: "Rusty Sword", Type: domain.ItemWeapon}
	s.Inventory.Equipment = s.Inventory.Equipment.With(domain.SlotWeapon, &sword)
	s.Inventory.Items = []domain.InventorySlot{{Item: domain.Item{ID: "potion", Name: "Potion", Rarity: "common"}, Quantity: 3}}
	s.Inventory.Currency = domain.Currency{Gold: 42}
	s.Quests.ActiveQuests = []domain.Quest{{ID: "rats", Title: "Cellar Rats", Components: []domain.QuestComponent{
		{ID: "kill", Type: domain.ComponentDefeatEnemy, Count: 5, CurrentProgress: 5},
	}}}
	s.Quests.CompletedQuests = []string{"elder"}
	s.Flags = domain.Flags{"zeta": true, "alpha": 2.0}
	s.Metadata.Playtime = 90
	return s
}

func TestCharacterSheet(t *testing.T) {
	md := tui.CharacterSheet(sheetState())

	assert.Contains(t, md, "# Aria")
	assert.Contains(t, md, "*Elf Mage* · level 1")
	assert.Contains(t, md, "| weapon | Rusty Sword |")
	assert.Contains(t, md, "| head | - |")
	assert.Contains(t, md, "- Potion x3 *(common)*")
	assert.Contains(t, md, "Gold: **42**")
	assert.Contains(t, md, "  - [x] defeat_enemy (5/5)")
	assert.Contains(t, md, "Completed: elder")
	assert.Less(t, bytes.Index([]byte(md), []byte("`alpha`")), bytes.Index([]byte(md), []byte("`zeta`")))
	assert.Contains(t, md, "played 1m30s")
}

func TestCharacterSheet_NoCharacter(t *testing.T) {
	md := tui.CharacterSheet(domain.NewState(time.Now()))
	assert.Contains(t, md, "# No character")
	assert.Contains(t, md, "Floor 0 (0, 0)")
}

func TestPlainRenderer(t *testing.T) {
	render := tui.NewPlainRenderer()
	out, err := render(tui.CharacterSheet(sheetState()))
	require.NoError(t, err)
	assert.Contains(t, out, "Aria")
	assert.Contains(t, out, "Rusty Sword")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "0.1.0\n")
	assert.Contains(t, buf.String(), "v0.1.0")
	assert.Contains(t, buf.String(), "|___/")
}
