package domain

import (
	"reflect"
)

// StateDiff represents the changes between two game states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// Sections lists the top-level sections whose value changed, by json name.
	Sections []string `json:"sections,omitempty"`

	// Flags contains only changed, added or deleted flags.
	// For deletions, the key is present with a nil value.
	Flags map[string]any `json:"flags,omitempty"`

	// Position is set whenever the position changed.
	Position *Position `json:"position,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, every section of newState counts as changed (initial load).
// Returns nil when nothing changed.
func Diff(oldState, newState *GameState) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{}
	for _, sec := range sections {
		if oldState == nil || !sec.equal(oldState, newState) {
			diff.Sections = append(diff.Sections, sec.name)
		}
	}

	if oldState == nil || oldState.Position != newState.Position {
		p := newState.Position
		diff.Position = &p
	}
	diff.Flags = diffFlags(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

type section struct {
	name  string
	equal func(a, b *GameState) bool
}

// Engine transitions share untouched sections, so identical references short-circuit DeepEqual.
var sections = []section{
	{"character", func(a, b *GameState) bool { return a.Character == b.Character || reflect.DeepEqual(a.Character, b.Character) }},
	{"characterStatus", func(a, b *GameState) bool {
		return a.CharacterStatus == b.CharacterStatus || reflect.DeepEqual(a.CharacterStatus, b.CharacterStatus)
	}},
	{"position", func(a, b *GameState) bool { return a.Position == b.Position }},
	{"inventory", func(a, b *GameState) bool { return reflect.DeepEqual(a.Inventory, b.Inventory) }},
	{"quests", func(a, b *GameState) bool { return reflect.DeepEqual(a.Quests, b.Quests) }},
	{"flags", func(a, b *GameState) bool { return reflect.DeepEqual(a.Flags, b.Flags) }},
	{"currentFloor", func(a, b *GameState) bool {
		return a.CurrentFloor == b.CurrentFloor || reflect.DeepEqual(a.CurrentFloor, b.CurrentFloor)
	}},
	{"exploredFloors", func(a, b *GameState) bool { return reflect.DeepEqual(a.ExploredFloors, b.ExploredFloors) }},
	{"dialogueHistory", func(a, b *GameState) bool { return reflect.DeepEqual(a.DialogueHistory, b.DialogueHistory) }},
	{"metadata", func(a, b *GameState) bool { return a.Metadata == b.Metadata }},
}

func diffFlags(old *GameState, new *GameState) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Flags {
			delta[k] = v
		}
		if len(delta) == 0 {
			return nil
		}
		return delta
	}

	for k, newVal := range new.Flags {
		oldVal, exists := old.Flags[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	for k := range old.Flags {
		if _, exists := new.Flags[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return len(d.Sections) == 0 && len(d.Flags) == 0 && d.Position == nil
}
