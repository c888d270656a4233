package domain

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventKind names a domain event.
type EventKind string

const (
	EventCharacterCreated       EventKind = "CHARACTER_CREATED"
	EventCharacterStatusUpdated EventKind = "CHARACTER_STATUS_UPDATED"
	EventPositionChanged        EventKind = "POSITION_CHANGED"
	EventItemAdded              EventKind = "ITEM_ADDED"
	EventItemRemoved            EventKind = "ITEM_REMOVED"
	EventItemEquipped           EventKind = "ITEM_EQUIPPED"
	EventItemUnequipped         EventKind = "ITEM_UNEQUIPPED"
	EventCurrencyChanged        EventKind = "CURRENCY_CHANGED"
	EventQuestStarted           EventKind = "QUEST_STARTED"
	EventQuestCompleted         EventKind = "QUEST_COMPLETED"
	EventQuestFailed            EventKind = "QUEST_FAILED"
	EventQuestProgressUpdated   EventKind = "QUEST_PROGRESS_UPDATED"
	EventEnemyDefeated          EventKind = "ENEMY_DEFEATED"
	EventLocationReached        EventKind = "LOCATION_REACHED"
	EventNPCTalked              EventKind = "NPC_TALKED"
	EventDialogueStarted        EventKind = "DIALOGUE_STARTED"
	EventDialogueChoiceMade     EventKind = "DIALOGUE_CHOICE_MADE"
	EventDialogueEnded          EventKind = "DIALOGUE_ENDED"
	EventFlagSet                EventKind = "FLAG_SET"
	EventFlagUpdated            EventKind = "FLAG_UPDATED"
	EventFloorChanged           EventKind = "FLOOR_CHANGED"
	EventTileExplored           EventKind = "TILE_EXPLORED"
	EventGameSaved              EventKind = "GAME_SAVED"
	EventGameLoaded             EventKind = "GAME_LOADED"
	EventLevelUp                EventKind = "LEVEL_UP"
	EventStatusEffectApplied    EventKind = "STATUS_EFFECT_APPLIED"
	EventStatusEffectRemoved    EventKind = "STATUS_EFFECT_REMOVED"
)

// EventKinds lists every kind in declaration order.
var EventKinds = []EventKind{
	EventCharacterCreated, EventCharacterStatusUpdated, EventPositionChanged,
	EventItemAdded, EventItemRemoved, EventItemEquipped, EventItemUnequipped, EventCurrencyChanged,
	EventQuestStarted, EventQuestCompleted, EventQuestFailed, EventQuestProgressUpdated,
	EventEnemyDefeated, EventLocationReached, EventNPCTalked,
	EventDialogueStarted, EventDialogueChoiceMade, EventDialogueEnded,
	EventFlagSet, EventFlagUpdated, EventFloorChanged, EventTileExplored,
	EventGameSaved, EventGameLoaded, EventLevelUp,
	EventStatusEffectApplied, EventStatusEffectRemoved,
}

// Event is one announcement on the bus. Timestamp is epoch milliseconds.
type Event struct {
	ID        ulid.ULID `json:"id"`
	Kind      EventKind `json:"kind"`
	Timestamp int64     `json:"timestamp"`
	Payload   any       `json:"payload"`
}

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// NewEvent stamps a payload with a fresh ULID.
func NewEvent(kind EventKind, at time.Time, payload any) Event {
	entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(at), entropy)
	entropyLock.Unlock()
	return Event{ID: id, Kind: kind, Timestamp: UnixMilli(at), Payload: payload}
}

// Payloads emitted by the engine.

type CharacterCreatedPayload struct {
	CharacterName  string `json:"characterName"`
	CharacterClass Class  `json:"characterClass"`
}

// CharacterStatusUpdatedPayload carries exactly the submitted patch.
type CharacterStatusUpdatedPayload = StatusPatch

type PositionChangedPayload = Position

type FloorChangedPayload struct {
	OldFloor int `json:"oldFloor"`
	NewFloor int `json:"newFloor"`
}

type ItemQuantityPayload struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type ItemSlotPayload struct {
	ItemID string        `json:"itemId"`
	Slot   EquipmentSlot `json:"slot"`
}

// CurrencyChangedPayload reports the requested delta, not the applied one.
type CurrencyChangedPayload struct {
	Type   CurrencyType `json:"type"`
	Amount int          `json:"amount"`
}

type QuestPayload struct {
	QuestID string `json:"questId"`
}

type QuestCompletedPayload struct {
	QuestID string       `json:"questId"`
	Rewards QuestRewards `json:"rewards"`
}

type FlagSetPayload struct {
	FlagID string `json:"flagId"`
	Value  any    `json:"value"`
}

type FlagUpdatedPayload struct {
	FlagID   string `json:"flagId"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

type TimestampPayload struct {
	Timestamp int64 `json:"timestamp"`
}

// Payloads published by collaborators through the facade.

type QuestProgressPayload struct {
	QuestID     string `json:"questId"`
	ComponentID string `json:"componentId"`
	Progress    int    `json:"progress"`
}

type EnemyDefeatedPayload struct {
	EnemyType string   `json:"enemyType"`
	EnemyID   string   `json:"enemyId"`
	Location  Position `json:"location"`
}

type LocationReachedPayload struct {
	LocationID string `json:"locationId"`
	Floor      int    `json:"floor"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

type NPCTalkedPayload struct {
	NPCID string `json:"npcId"`
}

type DialoguePayload struct {
	NPCID      string `json:"npcId"`
	DialogueID string `json:"dialogueId"`
}

type DialogueChoicePayload struct {
	DialogueID string `json:"dialogueId"`
	ChoiceID   string `json:"choiceId"`
}

type TileExploredPayload = Position

type LevelUpPayload struct {
	OldLevel int `json:"oldLevel"`
	NewLevel int `json:"newLevel"`
}

type StatusEffectPayload struct {
	EffectID   string `json:"effectId"`
	EffectName string `json:"effectName"`
}
