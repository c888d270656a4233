package domain

import (
	"maps"
	"slices"
	"time"
)

// Position in the dungeon.
type Position struct {
	Floor int `json:"floor"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

// TileType is the content of a map tile.
type TileType string

const (
	TileEmpty      TileType = "empty"
	TileWall       TileType = "wall"
	TileDoor       TileType = "door"
	TileStairsUp   TileType = "stairs_up"
	TileStairsDown TileType = "stairs_down"
	TileChest      TileType = "chest"
	TileEnemy      TileType = "enemy"
	TileNPC        TileType = "npc"
)

// MapTile is one cell of a dungeon floor.
type MapTile struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Type     TileType `json:"type"`
	Explored bool     `json:"explored"`
	Visible  bool     `json:"visible"`
}

// DungeonFloor is produced by the map generator. The engine stores it opaquely.
type DungeonFloor struct {
	FloorNumber int         `json:"floorNumber"`
	Tiles       [][]MapTile `json:"tiles"`
	Seed        string      `json:"seed"`
	Enemies     []string    `json:"enemies"`
	NPCs        []string    `json:"npcs"`
}

func (f DungeonFloor) clone() DungeonFloor {
	out := f
	if f.Tiles != nil {
		out.Tiles = make([][]MapTile, len(f.Tiles))
		for i, row := range f.Tiles {
			out.Tiles[i] = slices.Clone(row)
		}
	}
	out.Enemies = slices.Clone(f.Enemies)
	out.NPCs = slices.Clone(f.NPCs)
	return out
}

// DialogueEntry records one conversation.
type DialogueEntry struct {
	NPCID       string   `json:"npcId"`
	DialogueID  string   `json:"dialogueId"`
	Timestamp   int64    `json:"timestamp"`
	ChoicesMade []string `json:"choicesMade"`
}

// GameMetadata describes the save. Times are epoch milliseconds; Playtime is seconds.
type GameMetadata struct {
	SaveVersion string `json:"saveVersion"`
	LastSaved   int64  `json:"lastSaved"`
	Playtime    int64  `json:"playtime"`
	CreatedAt   int64  `json:"createdAt"`
}

// GameState is the whole session aggregate.
// Values handed out by the engine are shared between versions and must be treated as read-only.
type GameState struct {
	Character       *Character           `json:"character"`
	CharacterStatus *CharacterStatus     `json:"characterStatus"`
	Position        Position             `json:"position"`
	Inventory       Inventory            `json:"inventory"`
	Quests          QuestProgress        `json:"quests"`
	Flags           Flags                `json:"flags"`
	CurrentFloor    *DungeonFloor        `json:"currentFloor"`
	ExploredFloors  map[int]DungeonFloor `json:"exploredFloors"`
	DialogueHistory []DialogueEntry      `json:"dialogueHistory"`
	Metadata        GameMetadata         `json:"metadata"`
}

// UnixMilli converts t to the millisecond timestamps used in state and events.
func UnixMilli(t time.Time) int64 {
	return t.UnixMilli()
}

// NewState returns the default aggregate: no character, origin of floor 0,
// an empty inventory with six empty slots and no quests, flags or history.
func NewState(now time.Time) *GameState {
	ts := UnixMilli(now)
	return &GameState{
		Position: Position{Floor: 0, X: 0, Y: 0},
		Inventory: Inventory{
			Items:    []InventorySlot{},
			Capacity: DefaultInventoryCapacity,
		},
		Quests: QuestProgress{
			ActiveQuests:    []Quest{},
			CompletedQuests: []string{},
			AvailableQuests: []string{},
			FailedQuests:    []string{},
		},
		Flags:           Flags{},
		ExploredFloors:  map[int]DungeonFloor{},
		DialogueHistory: []DialogueEntry{},
		Metadata: GameMetadata{
			SaveVersion: SaveVersion,
			LastSaved:   ts,
			Playtime:    0,
			CreatedAt:   ts,
		},
	}
}

// HasCharacter reports whether a character has been created.
func (s *GameState) HasCharacter() bool {
	return s != nil && s.Character != nil
}

// Clone returns a deep copy of the aggregate.
// The engine never needs it; stores and callers that want to mutate do.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	if s.Character != nil {
		c := *s.Character
		out.Character = &c
	}
	if s.CharacterStatus != nil {
		cs := *s.CharacterStatus
		cs.StatusEffects = slices.Clone(s.CharacterStatus.StatusEffects)
		out.CharacterStatus = &cs
	}

	out.Inventory.Items = slices.Clone(s.Inventory.Items)
	for _, slot := range EquipmentSlots {
		if it, _ := s.Inventory.Equipment.Get(slot); it != nil {
			cp := *it
			out.Inventory.Equipment = out.Inventory.Equipment.With(slot, &cp)
		}
	}

	out.Quests.ActiveQuests = slices.Clone(s.Quests.ActiveQuests)
	for i, q := range out.Quests.ActiveQuests {
		q.Components = slices.Clone(q.Components)
		q.NextQuestIDs = slices.Clone(q.NextQuestIDs)
		q.Requirements = slices.Clone(q.Requirements)
		q.Rewards.Items = slices.Clone(q.Rewards.Items)
		out.Quests.ActiveQuests[i] = q
	}
	out.Quests.CompletedQuests = slices.Clone(s.Quests.CompletedQuests)
	out.Quests.AvailableQuests = slices.Clone(s.Quests.AvailableQuests)
	out.Quests.FailedQuests = slices.Clone(s.Quests.FailedQuests)

	out.Flags = maps.Clone(s.Flags)

	if s.CurrentFloor != nil {
		f := s.CurrentFloor.clone()
		out.CurrentFloor = &f
	}
	if s.ExploredFloors != nil {
		out.ExploredFloors = make(map[int]DungeonFloor, len(s.ExploredFloors))
		for k, f := range s.ExploredFloors {
			out.ExploredFloors[k] = f.clone()
		}
	}

	out.DialogueHistory = slices.Clone(s.DialogueHistory)
	for i, d := range out.DialogueHistory {
		d.ChoicesMade = slices.Clone(d.ChoicesMade)
		out.DialogueHistory[i] = d
	}
	return &out
}
