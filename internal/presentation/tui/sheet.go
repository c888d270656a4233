package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/grunberg/pkg/domain"
)

// CharacterSheet renders state as a Markdown document: identity, status,
// equipment, inventory, quests and world flags.
func CharacterSheet(state *domain.GameState) string {
	var sb strings.Builder

	if !state.HasCharacter() {
		sb.WriteString("# No character\n\nRun `grunberg new` to create one.\n")
		writeFooter(&sb, state)
		return sb.String()
	}

	c := state.Character
	fmt.Fprintf(&sb, "# %s\n\n", c.Name)
	fmt.Fprintf(&sb, "*%s %s*", title(string(c.Race)), title(string(c.Class)))
	if st := state.CharacterStatus; st != nil {
		fmt.Fprintf(&sb, " · level %d", st.Level)
	}
	sb.WriteString("\n\n")

	if st := state.CharacterStatus; st != nil {
		sb.WriteString("## Status\n\n")
		sb.WriteString("| HP | MP | EXP | STR | AGI | INT |\n|---|---|---|---|---|---|\n")
		fmt.Fprintf(&sb, "| %d/%d | %d/%d | %d/%d | %d | %d | %d |\n\n",
			st.HP, st.MaxHP, st.MP, st.MaxMP, st.Exp, st.ExpToNextLevel,
			st.CurrentStats.Strength, st.CurrentStats.Agility, st.CurrentStats.Intelligence)

		for _, e := range st.StatusEffects {
			fmt.Fprintf(&sb, "- **%s** (%s, %d turns)\n", e.Name, e.Type, e.Duration)
		}
		if len(st.StatusEffects) > 0 {
			sb.WriteString("\n")
		}
	}

	writeEquipment(&sb, state.Inventory.Equipment)
	writeInventory(&sb, state.Inventory)
	writeQuests(&sb, state.Quests)
	writeFlags(&sb, state.Flags)
	writeFooter(&sb, state)
	return sb.String()
}

func writeEquipment(sb *strings.Builder, eq domain.Equipment) {
	sb.WriteString("## Equipment\n\n| Slot | Item |\n|---|---|\n")
	for _, slot := range []domain.EquipmentSlot{
		domain.SlotWeapon, domain.SlotHead, domain.SlotChest,
		domain.SlotLegs, domain.SlotFeet, domain.SlotAccessory,
	} {
		item, _ := eq.Get(slot)
		name := "-"
		if item != nil {
			name = item.Name
		}
		fmt.Fprintf(sb, "| %s | %s |\n", slot, name)
	}
	sb.WriteString("\n")
}

func writeInventory(sb *strings.Builder, inv domain.Inventory) {
	fmt.Fprintf(sb, "## Inventory (%d/%d)\n\n", len(inv.Items), inv.Capacity)
	fmt.Fprintf(sb, "Gold: **%d** · Gems: **%d**\n\n", inv.Currency.Gold, inv.Currency.Gems)
	for _, slot := range inv.Items {
		fmt.Fprintf(sb, "- %s x%d", slot.Item.Name, slot.Quantity)
		if slot.Item.Rarity != "" {
			fmt.Fprintf(sb, " *(%s)*", slot.Item.Rarity)
		}
		sb.WriteString("\n")
	}
	if len(inv.Items) > 0 {
		sb.WriteString("\n")
	}
}

func writeQuests(sb *strings.Builder, q domain.QuestProgress) {
	if len(q.ActiveQuests)+len(q.CompletedQuests)+len(q.FailedQuests) == 0 {
		return
	}
	sb.WriteString("## Quests\n\n")
	for _, quest := range q.ActiveQuests {
		name := quest.Title
		if name == "" {
			name = quest.ID
		}
		fmt.Fprintf(sb, "- **%s**\n", name)
		for _, c := range quest.Components {
			mark := " "
			if c.Done() {
				mark = "x"
			}
			desc := c.Description
			if desc == "" {
				desc = string(c.Type)
			}
			fmt.Fprintf(sb, "  - [%s] %s (%d/%d)\n", mark, desc, c.CurrentProgress, c.Count)
		}
	}
	if len(q.CompletedQuests) > 0 {
		fmt.Fprintf(sb, "\nCompleted: %s\n", strings.Join(q.CompletedQuests, ", "))
	}
	if len(q.FailedQuests) > 0 {
		fmt.Fprintf(sb, "\nFailed: %s\n", strings.Join(q.FailedQuests, ", "))
	}
	sb.WriteString("\n")
}

func writeFlags(sb *strings.Builder, flags domain.Flags) {
	if len(flags) == 0 {
		return
	}
	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString("## Flags\n\n")
	for _, k := range keys {
		fmt.Fprintf(sb, "- `%s` = %v\n", k, flags[k])
	}
	sb.WriteString("\n")
}

func writeFooter(sb *strings.Builder, state *domain.GameState) {
	fmt.Fprintf(sb, "---\n\nFloor %d (%d, %d) · played %s · save v%s\n",
		state.Position.Floor, state.Position.X, state.Position.Y,
		time.Duration(state.Metadata.Playtime)*time.Second, state.Metadata.SaveVersion)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
