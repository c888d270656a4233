package grunberg

import (
	"context"
	"fmt"

	"github.com/aretw0/grunberg/pkg/domain"
)

// CreateCharacter replaces the character and resets its status.
func (g *Game) CreateCharacter(c domain.Character) *domain.GameState {
	return g.Dispatch(domain.CreateCharacter{Character: c})
}

// UpdateCharacterStatus merges the non-nil fields of patch.
func (g *Game) UpdateCharacterStatus(patch domain.StatusPatch) *domain.GameState {
	return g.Dispatch(domain.UpdateCharacterStatus{Patch: patch})
}

func (g *Game) UpdatePosition(pos domain.Position) *domain.GameState {
	return g.Dispatch(domain.UpdatePosition{Position: pos})
}

// AddItem adds quantity copies of item.
func (g *Game) AddItem(item domain.Item, quantity int) *domain.GameState {
	return g.Dispatch(domain.AddItem{Item: item, Quantity: quantity})
}

func (g *Game) RemoveItem(itemID string, quantity int) *domain.GameState {
	return g.Dispatch(domain.RemoveItem{ItemID: itemID, Quantity: quantity})
}

func (g *Game) EquipItem(item domain.Item) *domain.GameState {
	return g.Dispatch(domain.EquipItem{Item: item})
}

func (g *Game) UnequipItem(slot domain.EquipmentSlot) *domain.GameState {
	return g.Dispatch(domain.UnequipItem{Slot: slot})
}

// UpdateCurrency adds amount (negative to spend) to currency.
func (g *Game) UpdateCurrency(currency domain.CurrencyType, amount int) *domain.GameState {
	return g.Dispatch(domain.UpdateCurrency{Currency: currency, Amount: amount})
}

func (g *Game) StartQuest(q domain.Quest) *domain.GameState {
	return g.Dispatch(domain.StartQuest{Quest: q})
}

func (g *Game) UpdateQuest(questID string, patch domain.QuestPatch) *domain.GameState {
	return g.Dispatch(domain.UpdateQuest{QuestID: questID, Patch: patch})
}

func (g *Game) CompleteQuest(questID string) *domain.GameState {
	return g.Dispatch(domain.CompleteQuest{QuestID: questID})
}

func (g *Game) FailQuest(questID string) *domain.GameState {
	return g.Dispatch(domain.FailQuest{QuestID: questID})
}

// SetFlag normalizes value and stores it under key.
func (g *Game) SetFlag(key string, value any) (*domain.GameState, error) {
	v, err := domain.NormalizeFlagValue(value)
	if err != nil {
		return g.State(), domain.KindValidationFailed.Wrap(err, "flag", key)
	}
	return g.Dispatch(domain.SetFlag{Key: key, Value: v}), nil
}

func (g *Game) UpdatePlaytime(seconds int64) *domain.GameState {
	return g.Dispatch(domain.UpdatePlaytime{Seconds: seconds})
}

// Reset returns to a fresh game. The save slot is untouched.
func (g *Game) Reset() *domain.GameState {
	return g.Dispatch(domain.ResetState{})
}

// Quests lists the configured quest catalog.
func (g *Game) Quests(ctx context.Context) ([]domain.Quest, error) {
	if g.catalog == nil {
		return nil, fmt.Errorf("no quest catalog configured")
	}
	return g.catalog.List(ctx)
}

// StartQuestByID looks id up in the quest catalog and starts it.
func (g *Game) StartQuestByID(ctx context.Context, id string) (*domain.GameState, error) {
	if g.catalog == nil {
		return g.State(), fmt.Errorf("no quest catalog configured")
	}
	q, err := g.catalog.Get(ctx, id)
	if err != nil {
		return g.State(), err
	}
	return g.Dispatch(domain.StartQuest{Quest: q}), nil
}
