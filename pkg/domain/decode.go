package domain

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decode copies a generic payload (as produced by encoding/json into `any`)
// into out, matching fields by their json names. Numbers are converted weakly.
func Decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// DecodeStatusPatch decodes a partial CharacterStatus.
func DecodeStatusPatch(input map[string]any) (StatusPatch, error) {
	var p StatusPatch
	err := Decode(input, &p)
	return p, err
}

// DecodeQuestPatch decodes a partial Quest.
func DecodeQuestPatch(input map[string]any) (QuestPatch, error) {
	var p QuestPatch
	err := Decode(input, &p)
	return p, err
}

// DecodeAction builds an action from its wire name and payload.
// Scalar payloads are accepted where the wire form is scalar
// (quest ids for COMPLETE_QUEST/FAIL_QUEST, seconds for UPDATE_PLAYTIME).
func DecodeAction(name string, payload any) (Action, error) {
	t := ActionType(strings.ToUpper(strings.TrimSpace(name)))
	a, err := decodeAction(t, payload)
	if err != nil {
		return nil, KindInvalidFormat.Wrap(fmt.Errorf("decode %s: %w", t, err), "action", string(t))
	}
	return a, nil
}

func decodeAction(t ActionType, payload any) (Action, error) {
	switch t {
	case ActionCreateCharacter:
		var c Character
		if err := decodeObject(payload, &c); err != nil {
			return nil, err
		}
		return CreateCharacter{Character: c}, nil

	case ActionUpdateCharacterStatus:
		var p StatusPatch
		if err := decodeObject(payload, &p); err != nil {
			return nil, err
		}
		return UpdateCharacterStatus{Patch: p}, nil

	case ActionUpdatePosition:
		var p Position
		if err := decodeObject(payload, &p); err != nil {
			return nil, err
		}
		return UpdatePosition{Position: p}, nil

	case ActionAddItem:
		var in struct {
			Item     Item `json:"item"`
			Quantity *int `json:"quantity"`
		}
		if err := decodeObject(payload, &in); err != nil {
			return nil, err
		}
		if in.Item.ID == "" {
			return nil, fmt.Errorf("item.id is required")
		}
		qty := 1
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		return AddItem{Item: in.Item, Quantity: qty}, nil

	case ActionRemoveItem:
		var in struct {
			ItemID   string `json:"itemId"`
			Quantity *int   `json:"quantity"`
		}
		if err := decodeObject(payload, &in); err != nil {
			return nil, err
		}
		qty := 1
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		return RemoveItem{ItemID: in.ItemID, Quantity: qty}, nil

	case ActionEquipItem:
		var in struct {
			Item Item `json:"item"`
		}
		if err := decodeObject(payload, &in); err != nil {
			return nil, err
		}
		return EquipItem{Item: in.Item}, nil

	case ActionUnequipItem:
		var in struct {
			Slot EquipmentSlot `json:"slot"`
		}
		if s, ok := payload.(string); ok {
			return UnequipItem{Slot: EquipmentSlot(s)}, nil
		}
		if err := decodeObject(payload, &in); err != nil {
			return nil, err
		}
		return UnequipItem{Slot: in.Slot}, nil

	case ActionUpdateCurrency:
		var in struct {
			Type   CurrencyType `json:"type"`
			Amount int          `json:"amount"`
		}
		if err := decodeObject(payload, &in); err != nil {
			return nil, err
		}
		return UpdateCurrency{Currency: in.Type, Amount: in.Amount}, nil

	case ActionStartQuest:
		var q Quest
		if err := decodeObject(payload, &q); err != nil {
			return nil, err
		}
		if q.ID == "" {
			return nil, fmt.Errorf("quest id is required")
		}
		return StartQuest{Quest: q}, nil

	case ActionUpdateQuest:
		var in struct {
			QuestID string     `json:"questId"`
			Updates QuestPatch `json:"updates"`
		}
		if err := decodeObject(payload, &in); err != nil {
			return nil, err
		}
		return UpdateQuest{QuestID: in.QuestID, Patch: in.Updates}, nil

	case ActionCompleteQuest:
		id, err := questID(payload)
		if err != nil {
			return nil, err
		}
		return CompleteQuest{QuestID: id}, nil

	case ActionFailQuest:
		id, err := questID(payload)
		if err != nil {
			return nil, err
		}
		return FailQuest{QuestID: id}, nil

	case ActionSetFlag:
		var in struct {
			Key   string `json:"key"`
			Value any    `json:"value"`
		}
		if err := decodeObject(payload, &in); err != nil {
			return nil, err
		}
		if in.Key == "" {
			return nil, fmt.Errorf("flag key is required")
		}
		v, err := NormalizeFlagValue(in.Value)
		if err != nil {
			return nil, err
		}
		return SetFlag{Key: in.Key, Value: v}, nil

	case ActionLoadState:
		var s GameState
		if err := decodeObject(payload, &s); err != nil {
			return nil, err
		}
		return LoadState{State: &s}, nil

	case ActionResetState:
		return ResetState{}, nil

	case ActionUpdatePlaytime:
		var in struct {
			Seconds int64 `json:"seconds"`
		}
		if m, ok := payload.(map[string]any); ok {
			if err := Decode(m, &in); err != nil {
				return nil, err
			}
			return UpdatePlaytime{Seconds: in.Seconds}, nil
		}
		if err := Decode(payload, &in.Seconds); err != nil {
			return nil, err
		}
		return UpdatePlaytime{Seconds: in.Seconds}, nil
	}
	return nil, fmt.Errorf("unknown action type %q", t)
}

func decodeObject(payload any, out any) error {
	m, ok := payload.(map[string]any)
	if !ok {
		return fmt.Errorf("payload must be an object, got %T", payload)
	}
	return Decode(m, out)
}

func questID(payload any) (string, error) {
	switch v := payload.(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("quest id is required")
		}
		return v, nil
	case map[string]any:
		var in struct {
			QuestID string `json:"questId"`
		}
		if err := Decode(v, &in); err != nil {
			return "", err
		}
		if in.QuestID == "" {
			return "", fmt.Errorf("questId is required")
		}
		return in.QuestID, nil
	}
	return "", fmt.Errorf("payload must be a quest id, got %T", payload)
}
