package domain

// ActionType is the wire name of an action.
type ActionType string

const (
	ActionCreateCharacter       ActionType = "CREATE_CHARACTER"
	ActionUpdateCharacterStatus ActionType = "UPDATE_CHARACTER_STATUS"
	ActionUpdatePosition        ActionType = "UPDATE_POSITION"
	ActionAddItem               ActionType = "ADD_ITEM"
	ActionRemoveItem            ActionType = "REMOVE_ITEM"
	ActionEquipItem             ActionType = "EQUIP_ITEM"
	ActionUnequipItem           ActionType = "UNEQUIP_ITEM"
	ActionUpdateCurrency        ActionType = "UPDATE_CURRENCY"
	ActionStartQuest            ActionType = "START_QUEST"
	ActionUpdateQuest           ActionType = "UPDATE_QUEST"
	ActionCompleteQuest         ActionType = "COMPLETE_QUEST"
	ActionFailQuest             ActionType = "FAIL_QUEST"
	ActionSetFlag               ActionType = "SET_FLAG"
	ActionLoadState             ActionType = "LOAD_STATE"
	ActionResetState            ActionType = "RESET_STATE"
	ActionUpdatePlaytime        ActionType = "UPDATE_PLAYTIME"
)

// ActionTypes lists every action in declaration order.
var ActionTypes = []ActionType{
	ActionCreateCharacter, ActionUpdateCharacterStatus, ActionUpdatePosition,
	ActionAddItem, ActionRemoveItem, ActionEquipItem, ActionUnequipItem, ActionUpdateCurrency,
	ActionStartQuest, ActionUpdateQuest, ActionCompleteQuest, ActionFailQuest,
	ActionSetFlag, ActionLoadState, ActionResetState, ActionUpdatePlaytime,
}

// Action is a request to change the game state. The set is closed:
// only the types declared in this package implement it.
type Action interface {
	Type() ActionType
	action()
}

type CreateCharacter struct {
	Character Character
}

type UpdateCharacterStatus struct {
	Patch StatusPatch
}

type UpdatePosition struct {
	Position Position
}

type AddItem struct {
	Item     Item
	Quantity int
}

type RemoveItem struct {
	ItemID   string
	Quantity int
}

type EquipItem struct {
	Item Item
}

type UnequipItem struct {
	Slot EquipmentSlot
}

type UpdateCurrency struct {
	Currency CurrencyType
	Amount   int
}

type StartQuest struct {
	Quest Quest
}

type UpdateQuest struct {
	QuestID string
	Patch   QuestPatch
}

type CompleteQuest struct {
	QuestID string
}

type FailQuest struct {
	QuestID string
}

// SetFlag values should pass NormalizeFlagValue; DecodeAction does that for wire input.
type SetFlag struct {
	Key   string
	Value any
}

// LoadState replaces the whole aggregate.
type LoadState struct {
	State *GameState
}

type ResetState struct{}

// UpdatePlaytime overwrites the accumulated playtime in seconds.
type UpdatePlaytime struct {
	Seconds int64
}

func (CreateCharacter) Type() ActionType       { return ActionCreateCharacter }
func (UpdateCharacterStatus) Type() ActionType { return ActionUpdateCharacterStatus }
func (UpdatePosition) Type() ActionType        { return ActionUpdatePosition }
func (AddItem) Type() ActionType               { return ActionAddItem }
func (RemoveItem) Type() ActionType            { return ActionRemoveItem }
func (EquipItem) Type() ActionType             { return ActionEquipItem }
func (UnequipItem) Type() ActionType           { return ActionUnequipItem }
func (UpdateCurrency) Type() ActionType        { return ActionUpdateCurrency }
func (StartQuest) Type() ActionType            { return ActionStartQuest }
func (UpdateQuest) Type() ActionType           { return ActionUpdateQuest }
func (CompleteQuest) Type() ActionType         { return ActionCompleteQuest }
func (FailQuest) Type() ActionType             { return ActionFailQuest }
func (SetFlag) Type() ActionType               { return ActionSetFlag }
func (LoadState) Type() ActionType             { return ActionLoadState }
func (ResetState) Type() ActionType            { return ActionResetState }
func (UpdatePlaytime) Type() ActionType        { return ActionUpdatePlaytime }

func (CreateCharacter) action()       {}
func (UpdateCharacterStatus) action() {}
func (UpdatePosition) action()        {}
func (AddItem) action()               {}
func (RemoveItem) action()            {}
func (EquipItem) action()             {}
func (UnequipItem) action()           {}
func (UpdateCurrency) action()        {}
func (StartQuest) action()            {}
func (UpdateQuest) action()           {}
func (CompleteQuest) action()         {}
func (FailQuest) action()             {}
func (SetFlag) action()               {}
func (LoadState) action()             {}
func (ResetState) action()            {}
func (UpdatePlaytime) action()        {}
